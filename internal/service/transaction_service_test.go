package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*transaction.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionReader) ListForAccount(ctx context.Context, accountID uuid.UUID, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, accountID, filter)
	txs, _ := args.Get(0).([]*transaction.Transaction)
	return txs, args.Error(1)
}

func storedTransaction(accountID uuid.UUID) *transaction.Transaction {
	return &transaction.Transaction{
		ID:              uuid.Must(uuid.NewV4()),
		AccountID:       accountID,
		TransactionDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:     "Salary",
		Amount:          decimal.RequireFromString("2500.00"),
		Direction:       transaction.DirectionCredit,
	}
}

func TestGetTransaction(t *testing.T) {
	organisationID := uuid.Must(uuid.NewV4())
	acct := storedAccount(organisationID)
	stored := storedTransaction(acct.ID)
	stored.StatementBalance = decimal.NewNullDecimal(decimal.RequireFromString("3500.00"))

	transactions := new(mockTransactionReader)
	transactions.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	accounts := new(mockAccountReader)
	accounts.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)

	svc := NewTransactionService(accounts, transactions)

	got, err := svc.GetTransaction(context.Background(), organisationID, stored.ID)
	assert.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "credit", got.Direction)
	assert.NotNil(t, got.StatementBalance)
	assert.True(t, decimal.RequireFromString("3500.00").Equal(*got.StatementBalance))
}

func TestGetTransaction_WrongOrganisation(t *testing.T) {
	acct := storedAccount(uuid.Must(uuid.NewV4()))
	stored := storedTransaction(acct.ID)

	transactions := new(mockTransactionReader)
	transactions.On("FindByID", mock.Anything, stored.ID).Return(stored, nil)
	accounts := new(mockAccountReader)
	accounts.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)

	svc := NewTransactionService(accounts, transactions)

	_, err := svc.GetTransaction(context.Background(), uuid.Must(uuid.NewV4()), stored.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestListTransactions_OwnershipCheckedBeforeListing(t *testing.T) {
	acct := storedAccount(uuid.Must(uuid.NewV4()))

	transactions := new(mockTransactionReader)
	accounts := new(mockAccountReader)
	accounts.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)

	svc := NewTransactionService(accounts, transactions)

	_, _, err := svc.ListTransactions(context.Background(), uuid.Must(uuid.NewV4()), acct.ID, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNotOwned)
	transactions.AssertNotCalled(t, "ListForAccount")
}

func TestListTransactions_DateBoundsPassedThrough(t *testing.T) {
	organisationID := uuid.Must(uuid.NewV4())
	acct := storedAccount(organisationID)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	accounts := new(mockAccountReader)
	accounts.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)

	transactions := new(mockTransactionReader)
	transactions.On("ListForAccount", mock.Anything, acct.ID, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.From != nil && f.From.Equal(from) &&
			f.To != nil && f.To.Equal(to) &&
			f.Limit == defaultTransactionLimit+1 && f.Offset == 0
	})).Return([]*transaction.Transaction{storedTransaction(acct.ID)}, nil)

	svc := NewTransactionService(accounts, transactions)

	got, next, err := svc.ListTransactions(context.Background(), organisationID, acct.ID, &from, &to, nil)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Nil(t, next)
	transactions.AssertExpectations(t)
}

func TestListTransactions_NextCursor(t *testing.T) {
	organisationID := uuid.Must(uuid.NewV4())
	acct := storedAccount(organisationID)

	rows := make([]*transaction.Transaction, 3)
	for i := range rows {
		rows[i] = storedTransaction(acct.ID)
	}

	accounts := new(mockAccountReader)
	accounts.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)
	transactions := new(mockTransactionReader)
	transactions.On("ListForAccount", mock.Anything, acct.ID, mock.Anything).Return(rows, nil)

	svc := NewTransactionService(accounts, transactions)

	got, next, err := svc.ListTransactions(context.Background(), organisationID, acct.ID, nil, nil,
		&TransactionCursor{Position: 0, Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, &TransactionCursor{Position: 2, Limit: 2}, next)
}

func TestListTransactions_Empty(t *testing.T) {
	organisationID := uuid.Must(uuid.NewV4())
	acct := storedAccount(organisationID)

	accounts := new(mockAccountReader)
	accounts.On("FindByID", mock.Anything, acct.ID).Return(acct, nil)
	transactions := new(mockTransactionReader)
	transactions.On("ListForAccount", mock.Anything, acct.ID, mock.Anything).
		Return(([]*transaction.Transaction)(nil), nil)

	svc := NewTransactionService(accounts, transactions)

	got, next, err := svc.ListTransactions(context.Background(), organisationID, acct.ID, nil, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, next)
}
