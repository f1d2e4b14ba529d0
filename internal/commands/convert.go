package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/bank-statement-tool/internal/extractor"
	"github.com/insightdelivered/bank-statement-tool/internal/logger"
	"github.com/insightdelivered/bank-statement-tool/internal/models"
	"github.com/insightdelivered/bank-statement-tool/internal/parser"
	"github.com/insightdelivered/bank-statement-tool/internal/writer"
)

const (
	formatXLSX = "xlsx"
	formatCSV  = "csv"
)

// pdftotext separates pages with a form feed.
const textPageBreak = "\f"

type convertOptions struct {
	output string
	format string
	print  bool
	debug  bool
}

func newConvertCommand() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert <statement.pdf|statement.txt> [more ...]",
		Short: "Convert statements into a spreadsheet",
		Long: `Extracts the transaction table from each statement and writes it next to
the input (or to --output) as XLSX or CSV.

A .txt input is treated as already extracted text with pages separated by
form feeds, as produced by pdftotext.`,
		Example: `  bankstatement convert statement.pdf
  bankstatement convert --format=csv --output=jan.csv statement.pdf
  bankstatement convert --print jan.pdf feb.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && len(args) > 1 {
				return errors.New("--output can only be used with a single input")
			}
			for _, path := range args {
				if err := runConvert(cmd.Context(), cmd.OutOrStdout(), path, opts); err != nil {
					return fmt.Errorf("processing %s: %w", path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (defaults to the input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: xlsx or csv (defaults from --output, else xlsx)")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print the transaction table")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "print what the parser did with every line")

	return cmd
}

func runConvert(ctx context.Context, out io.Writer, inputPath string, opts convertOptions) error {
	log := logger.FromContext(ctx).With().Str("file", inputPath).Logger()
	start := time.Now()

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	pages, err := readPages(logger.WithContext(ctx, log), inputPath)
	if err != nil {
		return err
	}

	info := parser.Parse(pages)
	log.Info().
		Int("pages", info.Pages).
		Int("transactions", len(info.Transactions)).
		Dur("duration", time.Since(start)).
		Msg("Statement parsed")

	if opts.debug {
		printTrace(out, info.DebugLines)
	}

	if len(info.Transactions) == 0 {
		fmt.Fprintln(out, "No valid transactions found.")
		return nil
	}

	if opts.print {
		if err := writer.WriteTable(out, info.Transactions); err != nil {
			return err
		}
	}

	format, err := resolveFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	outPath := opts.output
	if outPath == "" {
		outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + "." + format
	}

	switch format {
	case formatCSV:
		err = (&writer.CSVWriter{}).WriteToFile(outPath, info.Transactions)
	default:
		err = (&writer.XLSXWriter{}).WriteToFile(outPath, info.Transactions)
	}
	if err != nil {
		return err
	}

	deposits, withdrawals := parser.Totals(info.Transactions)
	fmt.Fprintf(out, "Found %d transaction(s) in %s\n", len(info.Transactions), inputPath)
	if info.AccountNumber != "" {
		fmt.Fprintf(out, "  Account number: %s\n", info.AccountNumber)
	}
	fmt.Fprintf(out, "  Total deposits: %s\n", deposits.StringFixed(2))
	fmt.Fprintf(out, "  Total withdrawals: %s\n", withdrawals.StringFixed(2))
	fmt.Fprintf(out, "  Output: %s\n", outPath)
	return nil
}

func readPages(ctx context.Context, path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		pages, err := extractor.ExtractFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("PDF extraction failed: %w", err)
		}
		return pages, nil
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading text dump: %w", err)
		}
		return splitTextDump(string(data)), nil
	default:
		return nil, fmt.Errorf("expected .pdf or .txt file, got %q", filepath.Ext(path))
	}
}

// splitTextDump breaks pdftotext output into pages. pdftotext terminates every
// page with a form feed, including the last one.
func splitTextDump(text string) [][]string {
	text = strings.TrimSuffix(text, textPageBreak)
	return parser.SplitPages(strings.Split(text, textPageBreak))
}

func resolveFormat(format, output string) (string, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(output), ".csv") {
			return formatCSV, nil
		}
		return formatXLSX, nil
	}
	switch f := strings.ToLower(format); f {
	case formatXLSX, formatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: use xlsx or csv", format)
	}
}

func printTrace(out io.Writer, lines []models.DebugLine) {
	for _, l := range lines {
		fmt.Fprintf(out, "p%d:%-4d %-12s %s\n", l.Page, l.LineNum, l.Result, l.Text)
	}
}
