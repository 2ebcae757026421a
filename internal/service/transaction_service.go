package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

const defaultTransactionLimit = 20

type transactionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error)
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	accounts     accountFinder
	transactions transactionReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(accounts accountFinder, transactions transactionReader) *TransactionService {
	return &TransactionService{
		accounts:     accounts,
		transactions: transactions,
	}
}

// GetTransaction retrieves a transaction by ID for the organisation.
func (s *TransactionService) GetTransaction(ctx context.Context, organisationID, id uuid.UUID) (*Transaction, error) {
	row, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	acct, err := s.accounts.FindByID(ctx, row.AccountID)
	if err != nil {
		return nil, err
	}
	if acct.OrganisationID != organisationID {
		return nil, ErrNotOwned
	}

	converted := transactionFromStorage(row)
	return &converted, nil
}

// ListTransactions returns a page of an account's transactions, newest first,
// optionally bounded by dates, using cursor pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, organisationID, accountID uuid.UUID, from, to *time.Time, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	acct, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if acct.OrganisationID != organisationID {
		return nil, nil, ErrNotOwned
	}

	limit := defaultTransactionLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &transaction.TransactionFilter{
		From:   from,
		To:     to,
		Limit:  limit + 1,
		Offset: offset,
	}

	rows, err := s.transactions.ListForAccount(ctx, accountID, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nextCursor, nil
}
