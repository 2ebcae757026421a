package importer

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

func intPtr(i int) *int { return &i }

func basicMapping() ColumnMapping {
	return ColumnMapping{Date: 0, Description: 1, Amount: 2}
}

func TestDuplicatePolicy(t *testing.T) {
	assert.Equal(t, DuplicateByFields, basicMapping().DuplicatePolicy())

	withBalance := basicMapping()
	withBalance.Balance = intPtr(3)
	assert.Equal(t, DuplicateByStatementBalance, withBalance.DuplicatePolicy())
}

func TestProcessRow_Valid(t *testing.T) {
	accountID := uuid.Must(uuid.NewV4())
	outcome := ProcessRow([]string{"15/01/2026", "Salary", "2500.00"}, basicMapping(), accountID)

	require.False(t, outcome.Failed())
	require.NotNil(t, outcome.Create)
	assert.Equal(t, accountID, outcome.Create.AccountID)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), outcome.Create.TransactionDate)
	assert.Equal(t, "Salary", outcome.Create.Description)
	assert.True(t, decimal.RequireFromString("2500.00").Equal(outcome.Create.Amount))
	assert.Equal(t, transaction.DirectionCredit, outcome.Create.Direction)
}

func TestProcessRow_InvalidAmountWinsOverBadDate(t *testing.T) {
	// First failure wins: a row with both a bad date and a bad amount reports
	// the amount.
	outcome := ProcessRow([]string{"not a date", "Coffee", "garbage"}, basicMapping(), uuid.Must(uuid.NewV4()))
	assert.True(t, outcome.Failed())
	assert.Equal(t, ReasonInvalidAmount, outcome.FailureReason)
}

func TestProcessRow_ZeroAmountFails(t *testing.T) {
	outcome := ProcessRow([]string{"15/01/2026", "Nothing", "0.00"}, basicMapping(), uuid.Must(uuid.NewV4()))
	assert.True(t, outcome.Failed())
	assert.Equal(t, ReasonInvalidAmount, outcome.FailureReason)
}

func TestProcessRow_DirectionColumnOverridesSign(t *testing.T) {
	mapping := basicMapping()
	mapping.Direction = intPtr(3)

	outcome := ProcessRow([]string{"15/01/2026", "Rent", "950.00", "debit"}, mapping, uuid.Must(uuid.NewV4()))
	require.False(t, outcome.Failed())
	assert.Equal(t, transaction.DirectionDebit, outcome.Create.Direction, "positive sign overridden by direction column")
}

func TestProcessRow_UnknownDirectionKeywordFails(t *testing.T) {
	mapping := basicMapping()
	mapping.Direction = intPtr(3)

	outcome := ProcessRow([]string{"15/01/2026", "Rent", "950.00", "sideways"}, mapping, uuid.Must(uuid.NewV4()))
	assert.True(t, outcome.Failed())
	assert.Equal(t, ReasonInvalidDirection, outcome.FailureReason)
}

func TestProcessRow_MissingRequiredFields(t *testing.T) {
	badDate := ProcessRow([]string{"", "Coffee", "3.50"}, basicMapping(), uuid.Must(uuid.NewV4()))
	assert.Equal(t, ReasonMissingFields, badDate.FailureReason)

	noDescription := ProcessRow([]string{"15/01/2026", "", "3.50"}, basicMapping(), uuid.Must(uuid.NewV4()))
	assert.Equal(t, ReasonMissingFields, noDescription.FailureReason)

	shortRow := ProcessRow([]string{"15/01/2026"}, basicMapping(), uuid.Must(uuid.NewV4()))
	assert.True(t, shortRow.Failed())
}

func TestProcessRow_OptionalColumns(t *testing.T) {
	mapping := basicMapping()
	mapping.Reference = intPtr(3)
	mapping.Balance = intPtr(4)

	outcome := ProcessRow([]string{"15/01/2026", "Salary", "2500.00", "REF-1", "4100.00"}, mapping, uuid.Must(uuid.NewV4()))
	require.False(t, outcome.Failed())
	assert.Equal(t, "REF-1", outcome.Create.Reference.MustGet())
	require.True(t, outcome.DeclaredBalance.Valid)
	assert.True(t, decimal.RequireFromString("4100.00").Equal(outcome.DeclaredBalance.Decimal))
	assert.True(t, decimal.RequireFromString("4100.00").Equal(outcome.Create.StatementBalance.MustGet()), "declared balance stored verbatim")
}

func TestProcessRow_UnparseableBalanceCellIsNotFatal(t *testing.T) {
	mapping := basicMapping()
	mapping.Balance = intPtr(3)

	outcome := ProcessRow([]string{"15/01/2026", "Salary", "2500.00", "n/a"}, mapping, uuid.Must(uuid.NewV4()))
	require.False(t, outcome.Failed())
	assert.False(t, outcome.DeclaredBalance.Valid)
	assert.False(t, outcome.Create.StatementBalance.IsValue())
}
