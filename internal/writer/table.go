package writer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/insightdelivered/bank-statement-tool/internal/models"
)

// WriteTable renders records as an aligned text table for terminal output.
func WriteTable(out io.Writer, records []models.TransactionRecord) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, strings.Join(Columns, "\t")+"\t")
	for _, rec := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			rec.Date,
			rec.Narration,
			rec.Deposit.StringFixed(2),
			rec.Withdrawal.StringFixed(2),
			rec.ClosingBalance.String(),
		)
	}
	return tw.Flush()
}
