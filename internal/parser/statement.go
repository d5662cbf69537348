// Package parser extracts customer details and transaction totals from
// the OCR text of a bank statement.
//
// The supported statement looks like this once OCR'd:
//
//	<bank header lines>
//	Jane Doe                      <- customer name (line 3)
//	123 Main St                   <- address
//	Springfield IL                <- address
//	...
//	Deposits and Other Credits
//	Date Description Amount
//	01/02 PAYROLL 500.00
//	Withdrawals and Other Debits
//	Date Description Amount
//	01/03 ATM WITHDRAWAL 40.00
//	01/04 WAL-MART STORE 25.50
//	Account Service Charges and Fees
//
// Parsing is a single top-to-bottom pass done by New.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/statement-parser/internal/lookback"
	"github.com/insightdelivered/statement-parser/internal/models"
)

// StatementParser holds the result of parsing one statement. It is fully
// populated by New and read-only afterwards.
type StatementParser struct {
	layout Layout
	log    *slog.Logger

	window  *lookback.Window
	state   State
	lineNum int

	customerName string
	address      strings.Builder
	deposits     decimal.Decimal
	atm          decimal.Decimal
	purchases    []models.Transaction
	skipped      []models.LineDiagnostic
}

// Option configures a StatementParser.
type Option func(*StatementParser)

// WithLayout overrides DefaultLayout.
func WithLayout(l Layout) Option {
	return func(p *StatementParser) { p.layout = l }
}

// WithLogger sets the logger used for skipped-line diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *StatementParser) {
		if l != nil {
			p.log = l
		}
	}
}

// New parses text, which may use "\n" or "\r\n" line breaks.
func New(text string, opts ...Option) *StatementParser {
	p := &StatementParser{
		layout: DefaultLayout(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		window: lookback.New(historySize),
		state:  Preamble,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, line := range strings.Split(text, "\n") {
		p.parseLine(strings.TrimSuffix(line, "\r"))
		p.lineNum++
	}

	if len(p.skipped) > 0 {
		p.log.Debug("statement parsed with skipped lines",
			"lines", p.lineNum,
			"skipped", len(p.skipped),
		)
	}
	return p
}

func (p *StatementParser) parseLine(line string) {
	p.window.Push(line)

	header := false
	switch n := p.lineNum; {
	case n == p.layout.CustomerNameLine:
		p.customerName = line
	case p.layout.isAddressLine(n):
		p.address.WriteString(line)
		if !p.layout.isLastAddressLine(n) {
			p.address.WriteString(", ")
		}
	default:
		var fired string
		prev := p.state
		p.state, fired, header = step(p.state, p.layout, p.window)
		if fired != "" && p.state != prev {
			p.log.Debug("section transition",
				"line", p.lineNum,
				"rule", fired,
				"from", prev.String(),
				"to", p.state.String(),
			)
		}
	}

	// The column header that opened a section is not a row.
	if header {
		return
	}

	switch p.state {
	case InDeposits:
		p.depositRow(line)
	case InWithdrawals:
		p.withdrawalRow(line)
	}
}

func (p *StatementParser) depositRow(line string) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return
	}
	amount, err := parseAmount(fields[len(fields)-1])
	if err != nil {
		p.skip(line, fmt.Sprintf("unparsable amount %q", fields[len(fields)-1]))
		return
	}
	p.deposits = p.deposits.Add(amount)
}

func (p *StatementParser) withdrawalRow(line string) {
	fields := splitFields(line)
	if len(fields) == 0 {
		return
	}
	last := fields[len(fields)-1]
	amount, err := parseAmount(last)
	if err != nil {
		p.skip(line, fmt.Sprintf("unparsable amount %q", last))
		return
	}

	if p.window.Match([]string{p.layout.ATMMarker}) {
		p.atm = p.atm.Add(amount)
	}
	if p.window.Match([]string{p.layout.MerchantMarker}) {
		var desc string
		if len(fields) > 2 {
			desc = strings.Join(fields[1:len(fields)-1], " ")
		}
		p.purchases = append(p.purchases, models.Transaction{
			Date:        fields[0],
			Amount:      amount,
			Description: desc,
		})
	}
}

func (p *StatementParser) skip(line, reason string) {
	d := models.LineDiagnostic{
		LineNum: p.lineNum,
		Text:    line,
		Section: p.state.Section(),
		Reason:  reason,
	}
	p.skipped = append(p.skipped, d)
	p.log.Debug("skipping statement line",
		"line", d.LineNum,
		"section", string(d.Section),
		"reason", reason,
	)
}

// CustomerName returns the line at Layout.CustomerNameLine, or "" if the
// statement is too short.
func (p *StatementParser) CustomerName() string { return p.customerName }

// Address returns the address lines joined with ", ".
func (p *StatementParser) Address() string { return p.address.String() }

// TotalDeposits returns the sum of all deposit rows.
func (p *StatementParser) TotalDeposits() decimal.Decimal { return p.deposits }

// TotalATMWithdrawals returns the sum of withdrawal rows marked as ATM
// withdrawals.
func (p *StatementParser) TotalATMWithdrawals() decimal.Decimal { return p.atm }

// CategorizedPurchases returns the merchant purchases in statement order.
func (p *StatementParser) CategorizedPurchases() []models.Transaction {
	out := make([]models.Transaction, len(p.purchases))
	copy(out, p.purchases)
	return out
}

// State returns the section the parser finished in.
func (p *StatementParser) State() State { return p.state }

// Diagnostics returns the in-section lines that could not be parsed.
func (p *StatementParser) Diagnostics() []models.LineDiagnostic {
	out := make([]models.LineDiagnostic, len(p.skipped))
	copy(out, p.skipped)
	return out
}

// Clean reports whether no lines were skipped.
func (p *StatementParser) Clean() bool { return len(p.skipped) == 0 }

// LineCount returns the number of lines processed.
func (p *StatementParser) LineCount() int { return p.lineNum }

// Summary returns a snapshot of everything extracted.
func (p *StatementParser) Summary() *models.StatementSummary {
	return &models.StatementSummary{
		CustomerName:         p.CustomerName(),
		Address:              p.Address(),
		TotalDeposits:        p.TotalDeposits(),
		TotalATMWithdrawals:  p.TotalATMWithdrawals(),
		CategorizedPurchases: p.CategorizedPurchases(),
		LineCount:            p.LineCount(),
		SkippedLines:         p.Diagnostics(),
	}
}
