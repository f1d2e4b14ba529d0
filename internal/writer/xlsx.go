package writer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/bank-statement-tool/internal/models"
)

// SheetName is the worksheet holding the exported transactions.
const SheetName = "Transactions"

// XLSXContentType is the MIME type of the spreadsheet download.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// builtin "0.00"
const twoDecimalNumFmt = 2

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "A", 12},
	{"B", "B", 60},
	{"C", "E", 16},
}

// XLSXWriter writes transactions as a single-sheet workbook. Deposit and
// Withdrawals are numeric cells; the other columns are text.
type XLSXWriter struct{}

// WriteToFile saves the workbook at path.
func (w *XLSXWriter) WriteToFile(path string, records []models.TransactionRecord) error {
	f, err := w.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write streams the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, records []models.TransactionRecord) error {
	f, err := w.build(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(records []models.TransactionRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		row := i + 2
		cells := []struct {
			col   string
			value interface{}
		}{
			{"A", rec.Date},
			{"B", rec.Narration},
			{"C", rec.Deposit.Round(2).InexactFloat64()},
			{"D", rec.Withdrawal.Round(2).InexactFloat64()},
			{"E", rec.ClosingBalance.String()},
		}
		for _, c := range cells {
			ref := fmt.Sprintf("%s%d", c.col, row)
			var err error
			switch v := c.value.(type) {
			case string:
				err = f.SetCellStr(SheetName, ref, v)
			case float64:
				err = f.SetCellFloat(SheetName, ref, v, 2, 64)
			}
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to write cell %s: %w", ref, err)
			}
		}
	}

	if len(records) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: twoDecimalNumFmt})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create number style: %w", err)
		}
		last := fmt.Sprintf("D%d", len(records)+1)
		if err := f.SetCellStyle(SheetName, "C2", last, style); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	for _, w := range columnWidths {
		if err := f.SetColWidth(SheetName, w.from, w.to, w.width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set width of column %s: %w", w.from, err)
		}
	}

	return f, nil
}
