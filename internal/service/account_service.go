package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/ledger"
	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

const (
	defaultAccountLimit    = 20
	recentTransactionCount = 5
)

// accountFinder resolves accounts for ownership checks.
type accountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

type accountReader interface {
	accountFinder
	ListForOrganisation(ctx context.Context, organisationID uuid.UUID, filter *account.AccountFilter) ([]*account.Account, error)
}

// activityReader is the slice of the transaction store the summary needs.
type activityReader interface {
	ledger.TransactionSummer
	SumByDirection(ctx context.Context, accountID uuid.UUID, direction transaction.Direction, from, to *time.Time) (decimal.Decimal, error)
	CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	RecentForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*transaction.Transaction, error)
}

type importHistoryReader interface {
	LastCompletedForAccount(ctx context.Context, accountID uuid.UUID) (*importbatch.ImportBatch, error)
}

// AccountService handles account business logic.
type AccountService struct {
	accounts accountReader
	activity activityReader
	imports  importHistoryReader
	now      func() time.Time
}

// NewAccountService creates a new AccountService.
func NewAccountService(accounts accountReader, activity activityReader, imports importHistoryReader) *AccountService {
	return &AccountService{
		accounts: accounts,
		activity: activity,
		imports:  imports,
		now:      time.Now,
	}
}

// GetAccount retrieves an account by ID for the organisation.
func (s *AccountService) GetAccount(ctx context.Context, organisationID, id uuid.UUID) (*Account, error) {
	row, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.OrganisationID != organisationID {
		return nil, ErrNotOwned
	}

	converted := accountFromStorage(row)
	return &converted, nil
}

// ListAccounts returns a page of the organisation's accounts using cursor
// pagination.
func (s *AccountService) ListAccounts(ctx context.Context, organisationID uuid.UUID, activeOnly bool, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultAccountLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	filter := &account.AccountFilter{
		ActiveOnly: activeOnly,
		Limit:      limit + 1,
		Offset:     offset,
	}

	rows, err := s.accounts.ListForOrganisation(ctx, organisationID, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedAccounts := make([]Account, len(rows))
	for i, row := range rows {
		convertedAccounts[i] = accountFromStorage(row)
	}

	return convertedAccounts, nextCursor, nil
}

// Summary builds the derived activity view for one account. The balance is
// recomputed from the ledger so a stale cache cannot leak into the summary.
func (s *AccountService) Summary(ctx context.Context, organisationID, id uuid.UUID) (*AccountSummary, error) {
	row, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.OrganisationID != organisationID {
		return nil, ErrNotOwned
	}

	calc := ledger.NewCalculator(s.activity)
	derived, err := calc.CurrentBalance(ctx, row)
	if err != nil {
		return nil, err
	}

	totalCredits, err := s.activity.SumByDirection(ctx, id, transaction.DirectionCredit, nil, nil)
	if err != nil {
		return nil, err
	}
	totalDebits, err := s.activity.SumByDirection(ctx, id, transaction.DirectionDebit, nil, nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthCredits, err := s.activity.SumByDirection(ctx, id, transaction.DirectionCredit, &monthStart, nil)
	if err != nil {
		return nil, err
	}
	monthDebits, err := s.activity.SumByDirection(ctx, id, transaction.DirectionDebit, &monthStart, nil)
	if err != nil {
		return nil, err
	}

	count, err := s.activity.CountForAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	recent, err := s.activity.RecentForAccount(ctx, id, recentTransactionCount)
	if err != nil {
		return nil, err
	}
	recentConverted := make([]Transaction, len(recent))
	for i, tx := range recent {
		recentConverted[i] = transactionFromStorage(tx)
	}

	lastBatch, err := s.imports.LastCompletedForAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	var lastImportAt *time.Time
	if lastBatch != nil {
		importedAt := lastBatch.CreatedAt
		lastImportAt = &importedAt
	}

	return &AccountSummary{
		Account:            accountFromStorage(row),
		DerivedBalance:     derived,
		TotalCredits:       totalCredits,
		TotalDebits:        totalDebits,
		NetFlow:            totalCredits.Sub(totalDebits),
		MonthCredits:       monthCredits,
		MonthDebits:        monthDebits,
		TransactionCount:   count,
		RecentTransactions: recentConverted,
		LastImportAt:       lastImportAt,
	}, nil
}
