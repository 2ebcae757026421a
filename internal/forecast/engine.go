// Package forecast projects future account balances from historical
// transaction flow. The two methods are pure functions of the daily-flow
// series, the current balance and the forecast window; the Engine only
// fetches their inputs.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// Method selects the projection algorithm.
type Method string

const (
	MethodMovingAverage Method = "moving_average"
	MethodTrendAnalysis Method = "trend_analysis"
)

// Valid reports whether the method name is one the engine implements.
func (m Method) Valid() bool {
	return m == MethodMovingAverage || m == MethodTrendAnalysis
}

// Trend is the coarse classification of recent cash-flow direction.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Result is one forecast outcome. ConfidenceLevel is a 0-100 heuristic.
type Result struct {
	PredictedBalance decimal.Decimal
	ConfidenceLevel  float64
	Trend            Trend
}

// zeroResult is the defined outcome for an empty analysis window. Not an
// error.
func zeroResult() Result {
	return Result{
		PredictedBalance: decimal.Zero,
		ConfidenceLevel:  0,
		Trend:            TrendStable,
	}
}

// TransactionSource supplies analysis-window transactions, already filtered
// of rows excluded from analysis.
type TransactionSource interface {
	ListForForecast(ctx context.Context, accountIDs []uuid.UUID, from, to time.Time) ([]*transaction.Transaction, error)
}

// BalanceSource supplies the summed cached balances of the selected accounts.
type BalanceSource interface {
	SumCurrentBalances(ctx context.Context, accountIDs []uuid.UUID) (decimal.Decimal, error)
}

// Engine wires the pure forecast methods to the transaction store. Forecasts
// are read-only; concurrent runs over the same accounts are safe.
type Engine struct {
	Transactions TransactionSource
	Accounts     BalanceSource
	Now          func() time.Time
}

func NewEngine(transactions TransactionSource, accounts BalanceSource) *Engine {
	return &Engine{
		Transactions: transactions,
		Accounts:     accounts,
		Now:          time.Now,
	}
}

// Predict computes a forecast over the selected accounts.
func (e *Engine) Predict(ctx context.Context, accountIDs []uuid.UUID, analysisDays, forecastDays int, method Method) (Result, error) {
	if !method.Valid() {
		return Result{}, fmt.Errorf("unknown forecast method %q", method)
	}

	end := e.Now()
	start := end.AddDate(0, 0, -analysisDays)

	transactions, err := e.Transactions.ListForForecast(ctx, accountIDs, start, end)
	if err != nil {
		return Result{}, err
	}
	if len(transactions) == 0 {
		return zeroResult(), nil
	}

	currentBalance, err := e.Accounts.SumCurrentBalances(ctx, accountIDs)
	if err != nil {
		return Result{}, err
	}

	flows := DailyFlows(transactions)

	switch method {
	case MethodTrendAnalysis:
		return TrendAnalysis(ZeroFilled(flows, start, end), currentBalance, forecastDays), nil
	default:
		return MovingAverage(flows, currentBalance, forecastDays), nil
	}
}
