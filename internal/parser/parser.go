package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/bank-statement-tool/internal/models"
)

// Reconstructor folds the lines of one statement into transaction records.
// It carries the running balance and wrapped narration across pages. A
// Reconstructor belongs to a single document and is not safe for concurrent use.
type Reconstructor struct {
	prevBalance decimal.NullDecimal
	pending     []string
	records     []models.TransactionRecord

	accountNumber string
	trace         []models.DebugLine
	keepTrace     bool
}

// NewReconstructor returns a Reconstructor with no balance carried yet.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{}
}

// Feed consumes one physical line. page and lineNum only label the debug trace.
func (r *Reconstructor) Feed(page, lineNum int, raw string) {
	line := strings.TrimSpace(raw)

	if isNoiseLine(line) {
		if r.accountNumber == "" && strings.Contains(line, "Account") {
			r.accountNumber = findAccountNumber(line)
		}
		r.record(page, lineNum, line, models.LineSkipped)
		return
	}

	if !startsWithDate(line) {
		r.pending = append(r.pending, line)
		r.record(page, lineNum, line, models.LineContinuation)
		return
	}

	// Pending narration is attached even when the date line below turns out
	// not to be a transaction.
	r.flushPending()

	rec, carry, ok := TryParseTransactionLine(line, r.prevBalance)
	r.prevBalance = carry
	if !ok {
		r.record(page, lineNum, line, models.LineRejected)
		return
	}
	r.records = append(r.records, rec)
	r.record(page, lineNum, line, models.LineParsed)
}

// Finish attaches any trailing narration and returns the records in document order.
func (r *Reconstructor) Finish() []models.TransactionRecord {
	r.flushPending()
	return r.records
}

// flushPending appends wrapped narration to the last record. With no record
// yet the text stays pending and lands on the first record once one exists.
func (r *Reconstructor) flushPending() {
	if len(r.pending) == 0 || len(r.records) == 0 {
		return
	}
	last := &r.records[len(r.records)-1]
	last.Narration = joinNarration(last.Narration, strings.Join(r.pending, " "))
	r.pending = nil
}

func (r *Reconstructor) record(page, lineNum int, text, result string) {
	if !r.keepTrace {
		return
	}
	r.trace = append(r.trace, models.DebugLine{Page: page, LineNum: lineNum, Text: text, Result: result})
}

func joinNarration(head, tail string) string {
	head, tail = strings.TrimSpace(head), strings.TrimSpace(tail)
	switch {
	case head == "":
		return tail
	case tail == "":
		return head
	}
	return head + " " + tail
}

// ExtractTransactions reconstructs the transactions of one document given its
// pages in order, each page being its lines in order. A document with no
// transaction lines yields an empty result.
func ExtractTransactions(pages [][]string) []models.TransactionRecord {
	r := NewReconstructor()
	for p, lines := range pages {
		for i, line := range lines {
			r.Feed(p+1, i+1, line)
		}
	}
	return r.Finish()
}

// Parse is ExtractTransactions plus the per-line debug trace and the account
// number found on skipped header lines.
func Parse(pages [][]string) *models.StatementInfo {
	r := NewReconstructor()
	r.keepTrace = true
	for p, lines := range pages {
		for i, line := range lines {
			r.Feed(p+1, i+1, line)
		}
	}

	return &models.StatementInfo{
		AccountNumber: r.accountNumber,
		Pages:         len(pages),
		Transactions:  r.Finish(),
		DebugLines:    r.trace,
	}
}

// SplitPages breaks raw page text into lines. An empty page contributes no lines.
func SplitPages(texts []string) [][]string {
	pages := make([][]string, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n"))
	}
	return pages
}

// Totals sums deposits and withdrawals across records.
func Totals(records []models.TransactionRecord) (deposits, withdrawals decimal.Decimal) {
	for _, rec := range records {
		deposits = deposits.Add(rec.Deposit)
		withdrawals = withdrawals.Add(rec.Withdrawal)
	}
	return deposits, withdrawals
}
