package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/statement-parser/internal/models"
)

// CSVWriter writes categorized purchases to CSV, optionally preceded by
// summary rows.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the summary to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, s *models.StatementSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, s); err != nil {
		return err
	}
	return f.Close()
}

// Write writes the summary in CSV format to out.
func (w *CSVWriter) Write(out io.Writer, s *models.StatementSummary) error {
	cw := csv.NewWriter(out)

	if w.IncludeHeader {
		meta := [][]string{
			{"# Customer", s.CustomerName},
			{"# Address", s.Address},
			{"# Total Deposits", s.TotalDeposits.StringFixed(2)},
			{"# Total ATM Withdrawals", s.TotalATMWithdrawals.StringFixed(2)},
		}
		if n := len(s.SkippedLines); n > 0 {
			meta = append(meta, []string{"# Skipped Lines", strconv.Itoa(n)})
		}
		for _, row := range meta {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if err := cw.Write([]string{"Date", "Description", "Amount"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range s.CategorizedPurchases {
		row := []string{txn.Date, txn.Description, txn.Amount.StringFixed(2)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
