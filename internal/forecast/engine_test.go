package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

type fakeTransactionSource struct {
	transactions []*transaction.Transaction
	gotAccounts  []uuid.UUID
	gotFrom      time.Time
	gotTo        time.Time
}

func (f *fakeTransactionSource) ListForForecast(_ context.Context, accountIDs []uuid.UUID, from, to time.Time) ([]*transaction.Transaction, error) {
	f.gotAccounts = accountIDs
	f.gotFrom = from
	f.gotTo = to
	return f.transactions, nil
}

type fakeBalanceSource struct {
	balance decimal.Decimal
	called  bool
}

func (f *fakeBalanceSource) SumCurrentBalances(_ context.Context, _ []uuid.UUID) (decimal.Decimal, error) {
	f.called = true
	return f.balance, nil
}

func fixedEngine(transactions *fakeTransactionSource, accounts *fakeBalanceSource, now time.Time) *Engine {
	engine := NewEngine(transactions, accounts)
	engine.Now = func() time.Time { return now }
	return engine
}

func TestPredict_UnknownMethod(t *testing.T) {
	engine := fixedEngine(&fakeTransactionSource{}, &fakeBalanceSource{}, day(2026, 3, 1))

	_, err := engine.Predict(context.Background(), nil, 30, 30, Method("crystal_ball"))
	assert.Error(t, err)
}

func TestPredict_EmptyWindow(t *testing.T) {
	accounts := &fakeBalanceSource{balance: decimal.RequireFromString("5000.00")}
	engine := fixedEngine(&fakeTransactionSource{}, accounts, day(2026, 3, 1))

	result, err := engine.Predict(context.Background(), []uuid.UUID{uuid.Must(uuid.NewV4())}, 30, 30, MethodMovingAverage)
	require.NoError(t, err)

	assert.True(t, result.PredictedBalance.IsZero())
	assert.Equal(t, 0.0, result.ConfidenceLevel)
	assert.Equal(t, TrendStable, result.Trend)
	assert.False(t, accounts.called, "no balance fetch for an empty analysis window")
}

func TestPredict_MovingAverage(t *testing.T) {
	now := day(2026, 3, 1)
	transactions := &fakeTransactionSource{transactions: []*transaction.Transaction{
		tx(day(2026, 2, 10), "40.00", transaction.DirectionCredit),
		tx(day(2026, 2, 11), "60.00", transaction.DirectionCredit),
	}}
	accounts := &fakeBalanceSource{balance: decimal.RequireFromString("1000.00")}

	accountID := uuid.Must(uuid.NewV4())
	engine := fixedEngine(transactions, accounts, now)

	result, err := engine.Predict(context.Background(), []uuid.UUID{accountID}, 30, 30, MethodMovingAverage)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("2500.00").Equal(result.PredictedBalance))
	assert.InDelta(t, 90, result.ConfidenceLevel, 0.001)
	assert.Equal(t, []uuid.UUID{accountID}, transactions.gotAccounts)
	assert.True(t, now.AddDate(0, 0, -30).Equal(transactions.gotFrom), "analysis window starts analysisDays back")
	assert.True(t, now.Equal(transactions.gotTo))
}

func TestPredict_TrendAnalysisZeroFillsQuietDays(t *testing.T) {
	// Flow on only the first and last day of a five-day window. The
	// regression runs over the dense series [10 0 0 0 50]: slope 8,
	// intercept -12, R-squared about 0.34. Two forecast days project
	// 8*6-12 + 8*7-12 = 80.
	now := day(2026, 3, 10)
	transactions := &fakeTransactionSource{transactions: []*transaction.Transaction{
		tx(day(2026, 3, 6), "10.00", transaction.DirectionCredit),
		tx(day(2026, 3, 10), "50.00", transaction.DirectionCredit),
	}}
	accounts := &fakeBalanceSource{balance: decimal.RequireFromString("500.00")}

	engine := fixedEngine(transactions, accounts, now)

	result, err := engine.Predict(context.Background(), []uuid.UUID{uuid.Must(uuid.NewV4())}, 4, 2, MethodTrendAnalysis)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("580.00").Equal(result.PredictedBalance))
	assert.InDelta(t, 34.04, result.ConfidenceLevel, 0.01)
	assert.Equal(t, TrendIncreasing, result.Trend)
}
