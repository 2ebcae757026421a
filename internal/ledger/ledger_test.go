package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func entry(date time.Time, createdAt time.Time, amount string, direction transaction.Direction) *transaction.Transaction {
	return &transaction.Transaction{
		TransactionDate: date,
		CreatedAt:       createdAt,
		Amount:          decimal.RequireFromString(amount),
		Direction:       direction,
	}
}

func TestBalance_FoldsSignedAmounts(t *testing.T) {
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	balance := Balance(decimal.RequireFromString("1000.00"), []*transaction.Transaction{
		entry(day(16), created, "950.00", transaction.DirectionDebit),
		entry(day(15), created, "2500.00", transaction.DirectionCredit),
	})
	assert.True(t, decimal.RequireFromString("2550.00").Equal(balance))
}

func TestBalance_InsertionOrderBreaksDateTies(t *testing.T) {
	// Same-date transactions apply in insertion order. The fold result is the
	// same either way; this pins the ordering contract the running balance
	// depends on.
	first := entry(day(15), day(20), "100.00", transaction.DirectionCredit)
	second := entry(day(15), day(21), "40.00", transaction.DirectionDebit)

	balance := Balance(decimal.Zero, []*transaction.Transaction{second, first})
	assert.True(t, decimal.RequireFromString("60.00").Equal(balance))
}

func TestBalance_Empty(t *testing.T) {
	opening := decimal.RequireFromString("123.45")
	assert.True(t, opening.Equal(Balance(opening, nil)))
}

func TestBalanceThrough(t *testing.T) {
	created := day(30)
	transactions := []*transaction.Transaction{
		entry(day(10), created, "500.00", transaction.DirectionCredit),
		entry(day(15), created, "200.00", transaction.DirectionDebit),
		entry(day(20), created, "75.00", transaction.DirectionDebit),
	}

	through15 := BalanceThrough(decimal.RequireFromString("100.00"), transactions, day(15))
	assert.True(t, decimal.RequireFromString("400.00").Equal(through15), "bound is inclusive")

	through19 := BalanceThrough(decimal.RequireFromString("100.00"), transactions, day(19))
	assert.True(t, decimal.RequireFromString("400.00").Equal(through19))

	before := BalanceThrough(decimal.RequireFromString("100.00"), transactions, day(1))
	assert.True(t, decimal.RequireFromString("100.00").Equal(before))
}

type fakeSummer struct {
	sum        decimal.Decimal
	gotAccount uuid.UUID
	gotThrough time.Time
}

func (f *fakeSummer) SignedSum(_ context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	f.gotAccount = accountID
	return f.sum, nil
}

func (f *fakeSummer) SignedSumThrough(_ context.Context, accountID uuid.UUID, through time.Time) (decimal.Decimal, error) {
	f.gotAccount = accountID
	f.gotThrough = through
	return f.sum, nil
}

func TestCalculator(t *testing.T) {
	acct := &account.Account{
		ID:             uuid.Must(uuid.NewV4()),
		OpeningBalance: decimal.RequireFromString("1000.00"),
	}
	summer := &fakeSummer{sum: decimal.RequireFromString("1550.00")}
	calc := NewCalculator(summer)

	current, err := calc.CurrentBalance(context.Background(), acct)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2550.00").Equal(current))
	assert.Equal(t, acct.ID, summer.gotAccount)

	asOf, err := calc.BalanceAsOf(context.Background(), acct, day(15))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2550.00").Equal(asOf))
	assert.True(t, day(15).Equal(summer.gotThrough))
}
