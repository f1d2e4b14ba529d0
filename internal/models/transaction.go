package models

import "github.com/shopspring/decimal"

// Polarity is the Cr/Dr suffix printed after a balance.
type Polarity string

const (
	Credit Polarity = "Cr"
	Debit  Polarity = "Dr"
)

// ClosingBalance is the running balance printed at the end of a transaction line.
type ClosingBalance struct {
	Amount decimal.Decimal // signed: negative when Marker is Dr
	Raw    string          // numeral as printed, comma grouping intact
	Marker Polarity
}

// String renders the balance the way the statement prints it, e.g. "14,96,485.63Cr".
func (b ClosingBalance) String() string {
	return b.Raw + string(b.Marker)
}

// TransactionRecord represents one reconstructed statement row.
type TransactionRecord struct {
	Date           string          `json:"date"` // DD-MM-YYYY
	Narration      string          `json:"particulars"`
	Deposit        decimal.Decimal `json:"deposit"`
	Withdrawal     decimal.Decimal `json:"withdrawal"`
	ClosingBalance ClosingBalance  `json:"-"`
}

// Line results recorded in the debug trace.
const (
	LineParsed       = "parsed"
	LineRejected     = "rejected"
	LineContinuation = "continuation"
	LineSkipped      = "skipped"
)

// DebugLine captures what the parser did with each input line.
type DebugLine struct {
	Page    int    `json:"page"`
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"`
}

// StatementInfo holds the reconstructed transactions plus metadata seen along the way.
type StatementInfo struct {
	AccountNumber string
	Pages         int
	Transactions  []TransactionRecord
	DebugLines    []DebugLine
}
