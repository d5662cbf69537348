package models

import "github.com/shopspring/decimal"

// Transaction is a single withdrawal row picked out of a statement.
// Date is kept exactly as printed on the statement (e.g. "01/04").
type Transaction struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Section names the statement region a line was read in.
type Section string

const (
	SectionPreamble    Section = "preamble"
	SectionDeposits    Section = "deposits"
	SectionWithdrawals Section = "withdrawals"
	SectionClosed      Section = "closed"
)

// LineDiagnostic records a line the parser had to skip.
type LineDiagnostic struct {
	LineNum int     `json:"lineNum"` // 0-based
	Text    string  `json:"text"`
	Section Section `json:"section"`
	Reason  string  `json:"reason"`
}

// StatementSummary holds everything extracted from one statement.
type StatementSummary struct {
	CustomerName         string           `json:"customerName"`
	Address              string           `json:"address"`
	TotalDeposits        decimal.Decimal  `json:"totalDeposits"`
	TotalATMWithdrawals  decimal.Decimal  `json:"totalAtmWithdrawals"`
	CategorizedPurchases []Transaction    `json:"categorizedPurchases"`
	LineCount            int              `json:"lineCount"`
	SkippedLines         []LineDiagnostic `json:"skippedLines,omitempty"`
}

// Clean reports whether every in-section row was parsed.
func (s *StatementSummary) Clean() bool {
	return len(s.SkippedLines) == 0
}
