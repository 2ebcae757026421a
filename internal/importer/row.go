package importer

import (
	"strings"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// ColumnMapping holds zero-indexed statement column positions. Date,
// Description and Amount are required; the rest are optional.
type ColumnMapping struct {
	Date        int
	Description int
	Amount      int
	Reference   *int
	Balance     *int
	Direction   *int
}

// DuplicatePolicy names the duplicate-detection strategy an import runs
// under. The two policies are materially different and not interchangeable.
type DuplicatePolicy int

const (
	// DuplicateByFields matches on (date, amount, description). Legitimate
	// repeats on the same day pass through if any field differs, so
	// re-importing an unchanged file is not idempotent under this policy.
	DuplicateByFields DuplicatePolicy = iota

	// DuplicateByStatementBalance matches on the statement-declared balance
	// alone. Declared balances encode cumulative state, making them a
	// near-unique fingerprint of a statement line; re-imports are idempotent.
	DuplicateByStatementBalance
)

// DuplicatePolicy selects the strategy implied by the mapping shape.
func (m ColumnMapping) DuplicatePolicy() DuplicatePolicy {
	if m.Balance != nil {
		return DuplicateByStatementBalance
	}
	return DuplicateByFields
}

// Row failure reasons surfaced to the user on FailedRow records.
const (
	ReasonInvalidAmount    = "Invalid amount format"
	ReasonInvalidDirection = "Invalid direction"
	ReasonMissingFields    = "Missing required fields"
	ReasonDuplicate        = "Duplicate transaction"
)

// RowOutcome is the result of running one statement row through the parsing
// stages. Exactly one of Create or FailureReason is set. Raw field values are
// retained for FailedRow records.
type RowOutcome struct {
	Create          *transaction.TransactionCreate
	FailureReason   string
	RawDate         string
	RawDescription  string
	RawAmount       string
	DeclaredBalance decimal.NullDecimal
}

func (o RowOutcome) Failed() bool {
	return o.FailureReason != ""
}

// ProcessRow runs the parse-only stages of the row pipeline: date parsing,
// amount parsing with sign-to-direction inference (or an explicit direction
// column), and the required-field check. First failure wins. Duplicate
// detection and reconciliation need the store and happen in Importer.Run.
func ProcessRow(record []string, mapping ColumnMapping, accountID uuid.UUID) RowOutcome {
	outcome := RowOutcome{
		RawDate:        field(record, mapping.Date),
		RawDescription: field(record, mapping.Description),
		RawAmount:      field(record, mapping.Amount),
	}

	date, dateOK := ParseDate(outcome.RawDate)

	amount, direction, amountOK := ParseAmountWithDirection(outcome.RawAmount)
	if !amountOK {
		outcome.FailureReason = ReasonInvalidAmount
		return outcome
	}

	if mapping.Direction != nil {
		explicit, ok := ParseDirection(field(record, *mapping.Direction))
		if !ok {
			outcome.FailureReason = ReasonInvalidDirection
			return outcome
		}
		direction = explicit
	}

	if !dateOK || outcome.RawDescription == "" {
		outcome.FailureReason = ReasonMissingFields
		return outcome
	}

	create := &transaction.TransactionCreate{
		AccountID:       accountID,
		TransactionDate: date,
		Description:     outcome.RawDescription,
		Amount:          amount,
		Direction:       direction,
	}

	if mapping.Reference != nil {
		if ref := field(record, *mapping.Reference); ref != "" {
			create.Reference = omit.From(ref)
		}
	}

	if mapping.Balance != nil {
		if declared, ok := ParseSignedAmount(field(record, *mapping.Balance)); ok {
			outcome.DeclaredBalance = decimal.NewNullDecimal(declared)
			create.StatementBalance = omit.From(declared)
		}
	}

	outcome.Create = create
	return outcome
}

// field returns the trimmed cell at index i, or "" when the row is short.
// Spreadsheet exports sometimes pad cells with non-breaking spaces, so those
// are trimmed too.
func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.Trim(record[i], " \t\r\n ")
}
