package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Layout describes where a statement keeps its fields. The parser assumes
// one fixed layout; everything position- or wording-dependent lives here.
type Layout struct {
	// CustomerNameLine is the 0-based line index holding the customer name.
	CustomerNameLine int
	// AddressLines is how many lines after the name make up the address.
	AddressLines int

	DepositsTitle    string
	WithdrawalsTitle string
	ClosingTitle     string
	// ColumnHeader lists the words every column-header line contains.
	ColumnHeader []string

	ATMMarker      string
	MerchantMarker string
}

// DefaultLayout returns the layout of the supported statement format.
func DefaultLayout() Layout {
	return Layout{
		CustomerNameLine: 3,
		AddressLines:     2,
		DepositsTitle:    "Deposits and Other Credits",
		WithdrawalsTitle: "Withdrawals and Other Debits",
		ClosingTitle:     "Account Service Charges and Fees",
		ColumnHeader:     []string{"Date", "Description", "Amount"},
		ATMMarker:        "ATM WITHDRAWAL",
		MerchantMarker:   "WAL-MART",
	}
}

var ErrInvalidLayout = errors.New("invalid statement layout")

// Validate checks that the layout can drive a parse.
func (l Layout) Validate() error {
	if l.CustomerNameLine < 0 {
		return fmt.Errorf("%w: customer name line %d is negative", ErrInvalidLayout, l.CustomerNameLine)
	}
	if l.AddressLines < 0 {
		return fmt.Errorf("%w: address line count %d is negative", ErrInvalidLayout, l.AddressLines)
	}
	markers := []struct{ name, value string }{
		{"deposits title", l.DepositsTitle},
		{"withdrawals title", l.WithdrawalsTitle},
		{"closing title", l.ClosingTitle},
		{"ATM marker", l.ATMMarker},
		{"merchant marker", l.MerchantMarker},
	}
	for _, m := range markers {
		if strings.TrimSpace(m.value) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidLayout, m.name)
		}
	}
	if len(l.ColumnHeader) == 0 {
		return fmt.Errorf("%w: column header has no words", ErrInvalidLayout)
	}
	return nil
}

func (l Layout) isAddressLine(n int) bool {
	return n > l.CustomerNameLine && n <= l.CustomerNameLine+l.AddressLines
}

func (l Layout) isLastAddressLine(n int) bool {
	return n == l.CustomerNameLine+l.AddressLines
}
