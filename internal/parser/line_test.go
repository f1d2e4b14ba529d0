package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/bank-statement-tool/internal/models"
)

func balance(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestTryParseTransactionLine_BalancePolarity(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantAmount string
		wantMarker models.Polarity
		wantString string
	}{
		{"no marker defaults to credit", "01-02-24 NEFT SALARY 14,96,485.63", "1496485.63", models.Credit, "14,96,485.63Cr"},
		{"explicit credit", "01-02-24 NEFT SALARY 14,96,485.63Cr", "1496485.63", models.Credit, "14,96,485.63Cr"},
		{"debit is negative", "01-02-24 NEFT SALARY 14,96,485.63Dr", "-1496485.63", models.Debit, "14,96,485.63Dr"},
		{"ungrouped numeral", "01-02-24 UPI 1250.50", "1250.5", models.Credit, "1250.50Cr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, carry, ok := TryParseTransactionLine(tt.line, decimal.NullDecimal{})
			require.True(t, ok)
			assert.Equal(t, tt.wantAmount, rec.ClosingBalance.Amount.String())
			assert.Equal(t, tt.wantMarker, rec.ClosingBalance.Marker)
			assert.Equal(t, tt.wantString, rec.ClosingBalance.String())
			require.True(t, carry.Valid)
			assert.True(t, carry.Decimal.Equal(rec.ClosingBalance.Amount))
		})
	}
}

func TestTryParseTransactionLine_InfersDepositAndWithdrawal(t *testing.T) {
	tests := []struct {
		name           string
		prev           decimal.NullDecimal
		line           string
		wantDeposit    string
		wantWithdrawal string
	}{
		{"deposit", balance("1000.00"), "02-02-24 CASH DEP 1,250.50", "250.50", "0.00"},
		{"withdrawal", balance("1250.50"), "02-02-24 ATM WDL 1,000.00", "0.00", "250.50"},
		{"unchanged balance", balance("1000.00"), "02-02-24 REVERSAL 1,000.00Cr", "0.00", "0.00"},
		{"credit into overdraft", balance("100.00"), "02-02-24 CHQ 50.00Dr", "0.00", "150.00"},
		{"overdraft repaid", balance("-50.00"), "02-02-24 NEFT 25.00", "75.00", "0.00"},
		{"first transaction", decimal.NullDecimal{}, "02-02-24 OPENING 9,999.99", "0.00", "0.00"},
		{"first transaction in debit", decimal.NullDecimal{}, "02-02-24 OPENING 9,999.99Dr", "0.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _, ok := TryParseTransactionLine(tt.line, tt.prev)
			require.True(t, ok)
			assert.Equal(t, tt.wantDeposit, rec.Deposit.StringFixed(2))
			assert.Equal(t, tt.wantWithdrawal, rec.Withdrawal.StringFixed(2))
		})
	}
}

func TestTryParseTransactionLine_DateNormalisation(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"05-01-24 X 1.00", "05-01-2024"},
		{"05-01-2024 X 1.00", "05-01-2024"},
		{"31-12-99 X 1.00", "31-12-1999"},
		{"01-01-68 X 1.00", "01-01-2068"},
		{"29-02-2024 LEAP 1.00", "29-02-2024"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			rec, _, ok := TryParseTransactionLine(tt.line, decimal.NullDecimal{})
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Date)
		})
	}
}

func TestTryParseTransactionLine_Narration(t *testing.T) {
	rec, _, ok := TryParseTransactionLine("01-02-24 ATM WDL 500.00Dr", decimal.NullDecimal{})
	require.True(t, ok)
	assert.Equal(t, "ATM WDL", rec.Narration)

	rec, _, ok = TryParseTransactionLine("01-02-24   NEFT-HDFC0001 REF 7781   1,500.00   2,96,485.63Cr", decimal.NullDecimal{})
	require.True(t, ok)
	assert.Equal(t, "NEFT-HDFC0001 REF 7781   1,500.00", rec.Narration)
	assert.Equal(t, "2,96,485.63", rec.ClosingBalance.Raw)

	rec, _, ok = TryParseTransactionLine("01-02-24 500.00", decimal.NullDecimal{})
	require.True(t, ok)
	assert.Empty(t, rec.Narration)
}

func TestTryParseTransactionLine_Rejects(t *testing.T) {
	prev := balance("123.45")

	tests := []struct {
		name string
		line string
	}{
		{"no date", "ATM WDL 500.00Dr"},
		{"date not at start", "REF 01-02-24 500.00"},
		{"impossible day", "31-02-24 BAD DATE 500.00"},
		{"impossible month", "01-13-2024 BAD MONTH 500.00"},
		{"three digit year", "01-02-245 ODD 500.00"},
		{"year zero", "01-01-0000 X 1.00"},
		{"no trailing balance", "01-02-24 OPENING BALANCE"},
		{"balance not at end", "01-02-24 500.00 CHARGES"},
		{"marker separated by space", "01-02-24 CHQ 500.00 Cr"},
		{"single fractional digit", "01-02-24 CHQ 500.0"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, carry, ok := TryParseTransactionLine(tt.line, prev)
			assert.False(t, ok)
			assert.Equal(t, models.TransactionRecord{}, rec)
			assert.Equal(t, prev, carry)
		})
	}
}
