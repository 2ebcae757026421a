package importer

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// europeanFormat matches amounts like 1.234,56 where the dot groups thousands
// and the comma carries exactly two decimal digits.
var europeanFormat = regexp.MustCompile(`^-?\d+(\.\d{3})+,\d{2}$`)

var currencyStripper = strings.NewReplacer(
	"$", "", "€", "", "£", "", "¥", "", " ", "", " ", "",
)

// cleanAmount strips currency symbols and whitespace and normalizes the
// decimal separator to a dot.
func cleanAmount(raw string) string {
	cleaned := currencyStripper.Replace(strings.TrimSpace(raw))

	if europeanFormat.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}
	return cleaned
}

// ParseSignedAmount parses a statement amount as a signed decimal. Zero is a
// valid result here; transaction amounts additionally reject zero in
// ParseAmountWithDirection.
func ParseSignedAmount(raw string) (decimal.Decimal, bool) {
	cleaned := cleanAmount(raw)
	if cleaned == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// ParseAmountWithDirection parses a signed amount and infers direction from
// its sign: positive means credit, negative means debit. The returned
// magnitude is always non-negative. A zero or unparseable amount fails.
func ParseAmountWithDirection(raw string) (decimal.Decimal, transaction.Direction, bool) {
	amount, ok := ParseSignedAmount(raw)
	if !ok || amount.IsZero() {
		return decimal.Zero, "", false
	}

	if amount.IsNegative() {
		return amount.Abs(), transaction.DirectionDebit, true
	}
	return amount, transaction.DirectionCredit, true
}

// ParseDirection maps an explicit statement direction keyword onto a
// Direction, used when the column mapping names a direction column.
func ParseDirection(raw string) (transaction.Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "credit", "cr", "in", "+", "deposit", "income":
		return transaction.DirectionCredit, true
	case "debit", "dr", "out", "-", "withdrawal", "expense":
		return transaction.DirectionDebit, true
	}
	return "", false
}
