// Package ledger computes derived account balances. Every balance shown,
// reconciled against or cached anywhere in the system comes from this
// package; the accounts table's current_balance column is only ever written
// with a value produced here.
package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// Balance folds the signed amounts of all transactions onto the opening
// balance. Transactions are applied in date order, with insertion order
// breaking same-date ties.
func Balance(opening decimal.Decimal, transactions []*transaction.Transaction) decimal.Decimal {
	ordered := make([]*transaction.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].TransactionDate.Equal(ordered[j].TransactionDate) {
			return ordered[i].TransactionDate.Before(ordered[j].TransactionDate)
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	balance := opening
	for _, tx := range ordered {
		balance = balance.Add(tx.Direction.Signed(tx.Amount))
	}
	return balance
}

// BalanceThrough is Balance restricted to transactions dated on or before the
// given date.
func BalanceThrough(opening decimal.Decimal, transactions []*transaction.Transaction, through time.Time) decimal.Decimal {
	var included []*transaction.Transaction
	for _, tx := range transactions {
		if !tx.TransactionDate.After(through) {
			included = append(included, tx)
		}
	}
	return Balance(opening, included)
}

// TransactionSummer is the slice of the transaction store the calculator
// needs.
type TransactionSummer interface {
	SignedSum(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
	SignedSumThrough(ctx context.Context, accountID uuid.UUID, through time.Time) (decimal.Decimal, error)
}

// Calculator answers balance questions against the transaction store.
type Calculator struct {
	transactions TransactionSummer
}

func NewCalculator(transactions TransactionSummer) *Calculator {
	return &Calculator{transactions: transactions}
}

// CurrentBalance derives the account's balance from its full history.
func (c *Calculator) CurrentBalance(ctx context.Context, acct *account.Account) (decimal.Decimal, error) {
	sum, err := c.transactions.SignedSum(ctx, acct.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.OpeningBalance.Add(sum), nil
}

// BalanceAsOf derives the account's running balance through the given date.
// Reconciliation compares statement-declared balances against this value.
func (c *Calculator) BalanceAsOf(ctx context.Context, acct *account.Account, through time.Time) (decimal.Decimal, error) {
	sum, err := c.transactions.SignedSumThrough(ctx, acct.ID, through)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.OpeningBalance.Add(sum), nil
}
