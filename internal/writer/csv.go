package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/insightdelivered/bank-statement-tool/internal/models"
)

// Columns is the fixed column order of every export.
var Columns = []string{"Date", "Particulars", "Deposit", "Withdrawals", "Closing Balance"}

type csvRow struct {
	Date           string `csv:"Date"`
	Particulars    string `csv:"Particulars"`
	Deposit        string `csv:"Deposit"`
	Withdrawals    string `csv:"Withdrawals"`
	ClosingBalance string `csv:"Closing Balance"`
}

// CSVWriter writes transactions to CSV format.
type CSVWriter struct{}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, records []models.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, records); err != nil {
		return err
	}
	return f.Close()
}

// Write writes a header row and one row per record.
func (w *CSVWriter) Write(out io.Writer, records []models.TransactionRecord) error {
	rows := make([]csvRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, csvRow{
			Date:           rec.Date,
			Particulars:    rec.Narration,
			Deposit:        rec.Deposit.StringFixed(2),
			Withdrawals:    rec.Withdrawal.StringFixed(2),
			ClosingBalance: rec.ClosingBalance.String(),
		})
	}

	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
