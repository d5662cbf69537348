package extractor

import (
	"strings"
	"unicode"
)

const (
	minReadableChars   = 50
	minReadableQuality = 0.6
)

// statementWords appear on every page of the supported statement. Text
// containing none of them is taken to be mis-decoded.
var statementWords = []string{
	"account", "statement", "balance", "deposits", "withdrawals",
	"credits", "debits", "date", "description", "amount",
}

// textQuality returns the share of characters that are plain ASCII
// letters, digits, whitespace or punctuation seen on statements. Broken
// font encodings decode to accented or symbol runes, which pull it down.
func textQuality(text string) float64 {
	total, readable := 0, 0
	for _, r := range text {
		total++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			readable++
		case unicode.IsSpace(r):
			readable++
		case strings.ContainsRune(".,-/:;()'\"$£€%&@#!?+=*", r):
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func containsStatementWord(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range statementWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// isReadable reports whether text looks like a decoded statement rather
// than garbage from an undecodable text layer.
func isReadable(text string) bool {
	if len(strings.TrimSpace(text)) <= minReadableChars {
		return false
	}
	if textQuality(text) <= minReadableQuality {
		return false
	}
	return containsStatementWord(text)
}
