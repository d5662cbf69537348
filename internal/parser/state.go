package parser

import (
	"github.com/insightdelivered/statement-parser/internal/lookback"
	"github.com/insightdelivered/statement-parser/internal/models"
)

// State is the statement region the parser is currently in.
type State int

const (
	Preamble State = iota
	InDeposits
	InWithdrawals
	Closed
)

func (s State) String() string {
	return string(s.Section())
}

// Section maps the state to the section label used in diagnostics.
func (s State) Section() models.Section {
	switch s {
	case InDeposits:
		return models.SectionDeposits
	case InWithdrawals:
		return models.SectionWithdrawals
	case Closed:
		return models.SectionClosed
	default:
		return models.SectionPreamble
	}
}

// historySize is the longest lookback any guard uses.
const historySize = 2

// transition is one guarded edge of the section state machine. A guard
// that matches stops evaluation for the line even if next leaves the
// state unchanged.
type transition struct {
	name  string
	guard func(l Layout, w *lookback.Window) bool
	next  func(cur State) State
	// opensSection marks the line as a column header rather than a row.
	opensSection bool
}

// transitions are evaluated in order; the first matching guard wins.
var transitions = []transition{
	{
		name:         "deposits header",
		guard:        depositsHeader,
		next:         func(State) State { return InDeposits },
		opensSection: true,
	},
	{
		name:  "withdrawals title",
		guard: withdrawalsTitle,
		next: func(cur State) State {
			if cur == InDeposits {
				return Closed
			}
			return cur
		},
	},
	{
		name:         "withdrawals header",
		guard:        withdrawalsHeader,
		next:         func(State) State { return InWithdrawals },
		opensSection: true,
	},
	{
		name:  "closing title",
		guard: closingTitle,
		next: func(cur State) State {
			if cur == InWithdrawals {
				return Closed
			}
			return cur
		},
	},
}

func depositsHeader(l Layout, w *lookback.Window) bool {
	return w.Match([]string{l.DepositsTitle}, l.ColumnHeader)
}

func withdrawalsTitle(l Layout, w *lookback.Window) bool {
	return w.Match([]string{l.WithdrawalsTitle})
}

func withdrawalsHeader(l Layout, w *lookback.Window) bool {
	return w.Match([]string{l.WithdrawalsTitle}, l.ColumnHeader)
}

func closingTitle(l Layout, w *lookback.Window) bool {
	return w.Match([]string{l.ClosingTitle})
}

// step applies the first matching transition. It returns the new state,
// the name of the transition that fired ("" if none) and whether the line
// was a section's column header.
func step(cur State, l Layout, w *lookback.Window) (State, string, bool) {
	for _, t := range transitions {
		if t.guard(l, w) {
			return t.next(cur), t.name, t.opensSection
		}
	}
	return cur, "", false
}
