package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// OCR engines often read the decimal point as ':' or ';'.
	ocrDecimalSlip = regexp.MustCompile(`(\d)[:;](\d)`)
	// Commas are accepted only as thousands separators.
	thousandsGrouped = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
	plainAmount      = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// parseAmount converts a token like "25.50", "$1,234.56" or an OCR-mangled
// "25:50" into an exact, non-negative decimal. Signs, exponents and commas
// that are not thousands separators ("25,50") are rejected.
func parseAmount(s string) (decimal.Decimal, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ":;")
	s = ocrDecimalSlip.ReplaceAllString(s, "$1.$2")
	s = strings.NewReplacer(
		"$", "",
		"£", "",
		"€", "",
		" ", "",
	).Replace(s)

	if strings.Contains(s, ",") {
		if !thousandsGrouped.MatchString(s) {
			return decimal.Decimal{}, fmt.Errorf("malformed amount %q", raw)
		}
		s = strings.ReplaceAll(s, ",", "")
	}
	if !plainAmount.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("malformed amount %q", raw)
	}

	return decimal.NewFromString(s)
}

// splitFields splits a row into its whitespace-separated tokens.
func splitFields(line string) []string {
	return strings.Fields(line)
}
