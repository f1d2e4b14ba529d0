package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/bank-statement-tool/internal/models"
)

// CanonicalDateLayout is the DD-MM-YYYY form every record date is normalised to.
const CanonicalDateLayout = "02-01-2006"

const (
	shortYearLayout = "02-01-06"
	longYearLayout  = "02-01-2006"
)

var (
	// DD-MM-YY or DD-MM-YYYY anchored at the start of a line.
	datePrefixPattern = regexp.MustCompile(`^(\d{2}-\d{2}-\d{2,4})`)

	// Trailing balance, e.g. "14,96,485.63Cr", "500.00Dr" or "1250.50".
	trailingBalancePattern = regexp.MustCompile(`(\d[\d,]*\.\d{2})(Cr|Dr)?$`)

	// Bank account numbers printed on "Account" header lines.
	accountNumberPattern = regexp.MustCompile(`\b(\d{9,18})\b`)
)

// startsWithDate reports whether line opens with a DD-MM-YY[YY] token.
func startsWithDate(line string) bool {
	return datePrefixPattern.MatchString(line)
}

// extractDate returns the date token at the start of line, or "".
func extractDate(line string) string {
	m := datePrefixPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return m[1]
}

// normalizeDate parses a DD-MM-YY or DD-MM-YYYY token and renders it as DD-MM-YYYY.
// Two digit years follow time.Parse: 69-99 map to 19xx, 00-68 to 20xx.
func normalizeDate(token string) (string, bool) {
	parts := strings.Split(token, "-")
	if len(parts) != 3 {
		return "", false
	}

	layout := longYearLayout
	if len(parts[2]) == 2 {
		layout = shortYearLayout
	}

	t, err := time.Parse(layout, token)
	if err != nil || t.Year() == 0 {
		return "", false
	}
	return t.Format(CanonicalDateLayout), true
}

// trailingBalance finds the balance at the end of text. It returns the balance,
// the byte offset where the match starts, and whether a match was found.
func trailingBalance(text string) (models.ClosingBalance, int, bool) {
	loc := trailingBalancePattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return models.ClosingBalance{}, 0, false
	}

	raw := text[loc[2]:loc[3]]
	marker := models.Credit
	if loc[4] >= 0 {
		marker = models.Polarity(text[loc[4]:loc[5]])
	}

	amount, err := parseAmount(raw)
	if err != nil {
		return models.ClosingBalance{}, 0, false
	}
	if marker == models.Debit {
		amount = amount.Neg()
	}

	return models.ClosingBalance{Amount: amount, Raw: raw, Marker: marker}, loc[0], true
}

// parseAmount converts a comma grouped numeral such as "14,96,485.63" to a decimal.
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
}

// isNoiseLine reports header, footer and blank lines that never take part in parsing.
func isNoiseLine(line string) bool {
	return line == "" || strings.Contains(line, "Account") || strings.Contains(line, "Page")
}

func findAccountNumber(text string) string {
	return accountNumberPattern.FindString(text)
}
