package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/bank-statement-tool/internal/models"
)

// TryParseTransactionLine decides whether a trimmed line starts a transaction.
//
// A transaction line opens with a DD-MM-YY[YY] date and ends with a balance,
// optionally suffixed Cr or Dr (Cr when absent). Deposit and withdrawal are
// inferred from the difference between the new balance and prev; with no
// previous balance both are zero.
//
// The returned carry must be threaded into the next call. When ok is false the
// line is not a transaction and carry equals prev.
func TryParseTransactionLine(line string, prev decimal.NullDecimal) (rec models.TransactionRecord, carry decimal.NullDecimal, ok bool) {
	token := extractDate(line)
	if token == "" {
		return models.TransactionRecord{}, prev, false
	}

	date, valid := normalizeDate(token)
	if !valid {
		return models.TransactionRecord{}, prev, false
	}

	rest := strings.TrimSpace(line[len(token):])
	balance, start, found := trailingBalance(rest)
	if !found {
		return models.TransactionRecord{}, prev, false
	}

	deposit, withdrawal := decimal.Zero, decimal.Zero
	if prev.Valid {
		diff := balance.Amount.Sub(prev.Decimal)
		switch diff.Sign() {
		case 1:
			deposit = diff
		case -1:
			withdrawal = diff.Neg()
		}
	}

	rec = models.TransactionRecord{
		Date:           date,
		Narration:      strings.TrimSpace(rest[:start]),
		Deposit:        deposit.Round(2),
		Withdrawal:     withdrawal.Round(2),
		ClosingBalance: balance,
	}
	return rec, decimal.NewNullDecimal(balance.Amount), true
}
