// Package writer renders a parsed statement for people and spreadsheets.
package writer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// ReportWriter prints a plain-text account overview.
type ReportWriter struct {
	// Currency is an ISO 4217 code; empty means USD.
	Currency string
	// Verbose adds the skipped-line diagnostics.
	Verbose bool
}

// Write prints the report for s to out.
func (w *ReportWriter) Write(out io.Writer, s *models.StatementSummary) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", s.CustomerName)
	fmt.Fprintf(tw, "%s\n\n", s.Address)
	fmt.Fprintf(tw, "Total Deposits\t%s\n", w.format(s.TotalDeposits))
	fmt.Fprintf(tw, "Total ATM Withdrawals\t%s\n\n", w.format(s.TotalATMWithdrawals))

	fmt.Fprintf(tw, "Purchases (%d)\n", len(s.CategorizedPurchases))
	fmt.Fprintf(tw, "Date\tDescription\tAmount\n")
	for _, txn := range s.CategorizedPurchases {
		fmt.Fprintf(tw, "%s\t%s\t-%s\n", txn.Date, txn.Description, w.format(txn.Amount))
	}

	if w.Verbose && len(s.SkippedLines) > 0 {
		fmt.Fprintf(tw, "\nSkipped lines (%d)\n", len(s.SkippedLines))
		for _, d := range s.SkippedLines {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", d.LineNum+1, d.Section, d.Reason)
		}
	}

	return tw.Flush()
}

// format renders an amount in the report currency, e.g. "$1,234.50".
func (w *ReportWriter) format(d decimal.Decimal) string {
	code := w.Currency
	if code == "" {
		code = money.USD
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return d.StringFixed(2) + " " + code
	}
	units := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(units, code).Display()
}
