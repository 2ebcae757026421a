package importer

import (
	"context"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// memoryStore is an in-memory TransactionStore and FailedRowStore so Run can
// be exercised without a database.
type memoryStore struct {
	inserted []*transaction.TransactionCreate
	failed   []*importbatch.FailedRowCreate
}

func (s *memoryStore) SignedSum(_ context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range s.inserted {
		if tx.AccountID == accountID {
			sum = sum.Add(tx.Direction.Signed(tx.Amount))
		}
	}
	return sum, nil
}

func (s *memoryStore) SignedSumThrough(_ context.Context, accountID uuid.UUID, through time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, tx := range s.inserted {
		if tx.AccountID == accountID && !tx.TransactionDate.After(through) {
			sum = sum.Add(tx.Direction.Signed(tx.Amount))
		}
	}
	return sum, nil
}

func (s *memoryStore) ExistsByFields(_ context.Context, accountID uuid.UUID, date time.Time, amount decimal.Decimal, description string) (bool, error) {
	for _, tx := range s.inserted {
		if tx.AccountID == accountID && tx.TransactionDate.Equal(date) &&
			tx.Amount.Equal(amount) && tx.Description == description {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) ExistsByStatementBalance(_ context.Context, accountID uuid.UUID, balance decimal.Decimal) (bool, error) {
	for _, tx := range s.inserted {
		if tx.AccountID == accountID && tx.StatementBalance.IsValue() &&
			tx.StatementBalance.MustGet().Equal(balance) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) Insert(_ context.Context, create *transaction.TransactionCreate) (uuid.UUID, error) {
	s.inserted = append(s.inserted, create)
	return uuid.Must(uuid.NewV4()), nil
}

func (s *memoryStore) InsertFailedRow(_ context.Context, create *importbatch.FailedRowCreate) error {
	s.failed = append(s.failed, create)
	return nil
}

func testAccount(opening string) *account.Account {
	return &account.Account{
		ID:             uuid.Must(uuid.NewV4()),
		OrganisationID: uuid.Must(uuid.NewV4()),
		OpeningBalance: decimal.RequireFromString(opening),
	}
}

func newImporter(store *memoryStore) *Importer {
	return &Importer{Transactions: store, FailedRows: store}
}

func TestRun_CommitsValidRows(t *testing.T) {
	store := &memoryStore{}
	acct := testAccount("1000.00")

	rows := [][]string{
		{"Date", "Description", "Amount"},
		{"15/01/2026", "Salary", "2500.00"},
		{"16/01/2026", "Rent", "-950.00"},
		{"17/01/2026", "Coffee", "-3.50"},
	}

	result, err := newImporter(store).Run(context.Background(), acct, uuid.Must(uuid.NewV4()), basicMapping(), rows)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Successful)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, importbatch.StatusCompleted, result.Status())

	require.Len(t, store.inserted, 3)
	assert.Equal(t, transaction.DirectionCredit, store.inserted[0].Direction)
	assert.Equal(t, transaction.DirectionDebit, store.inserted[1].Direction)
	assert.True(t, decimal.RequireFromString("950.00").Equal(store.inserted[1].Amount))
}

func TestRun_HeaderAlwaysSkipped(t *testing.T) {
	store := &memoryStore{}
	acct := testAccount("0")

	// A header that happens to parse as data must still be skipped.
	result, err := newImporter(store).Run(context.Background(), acct, uuid.Must(uuid.NewV4()), basicMapping(), [][]string{
		{"15/01/2026", "Salary", "2500.00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, store.inserted)
	assert.Equal(t, importbatch.StatusCompleted, result.Status())
}

func TestRun_RecordsRowFailures(t *testing.T) {
	store := &memoryStore{}
	acct := testAccount("0")
	batchID := uuid.Must(uuid.NewV4())

	rows := [][]string{
		{"Date", "Description", "Amount"},
		{"15/01/2026", "Coffee", "garbage"},
		{"16/01/2026", "", "12.00"},
		{"17/01/2026", "Groceries", "-45.20"},
	}

	result, err := newImporter(store).Run(context.Background(), acct, batchID, basicMapping(), rows)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, result.Total, result.Successful+result.Failed)
	assert.Equal(t, []string{
		"Row 1: Invalid amount format",
		"Row 2: Missing required fields",
	}, result.Errors)
	assert.Equal(t, importbatch.StatusCompletedWithErrors, result.Status())

	require.Len(t, store.failed, 2, spew.Sdump(store.failed))
	assert.Equal(t, batchID, store.failed[0].ImportBatchID)
	assert.Equal(t, 1, store.failed[0].RowNumber)
	assert.Equal(t, "garbage", store.failed[0].RawAmount)
	assert.Equal(t, ReasonInvalidAmount, store.failed[0].Reason)
	assert.Equal(t, 2, store.failed[1].RowNumber)
	assert.Equal(t, ReasonMissingFields, store.failed[1].Reason)
}

func TestRun_DuplicateByFields(t *testing.T) {
	store := &memoryStore{}
	acct := testAccount("0")

	rows := [][]string{
		{"Date", "Description", "Amount"},
		{"15/01/2026", "Coffee", "-3.50"},
		{"15/01/2026", "Coffee", "-3.50"},
		{"15/01/2026", "Coffee", "-4.00"},
	}

	result, err := newImporter(store).Run(context.Background(), acct, uuid.Must(uuid.NewV4()), basicMapping(), rows)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Successful, "same-day repeat with a different amount passes")
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"Row 2: Duplicate transaction"}, result.Errors)
	require.Len(t, store.failed, 1)
	assert.Equal(t, ReasonDuplicate, store.failed[0].Reason)
}

func TestRun_BalancePolicyIdempotentReimport(t *testing.T) {
	store := &memoryStore{}
	acct := testAccount("1000.00")
	mapping := basicMapping()
	mapping.Balance = intPtr(3)

	rows := [][]string{
		{"Date", "Description", "Amount", "Balance"},
		{"15/01/2026", "Salary", "2500.00", "3500.00"},
		{"16/01/2026", "Rent", "-950.00", "2550.00"},
	}

	first, err := newImporter(store).Run(context.Background(), acct, uuid.Must(uuid.NewV4()), mapping, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Successful)

	second, err := newImporter(store).Run(context.Background(), acct, uuid.Must(uuid.NewV4()), mapping, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Successful)
	assert.Equal(t, 2, second.Failed)
	assert.Len(t, store.inserted, 2, "re-importing the same statement creates nothing")
}

func TestRun_SameFieldsDifferentBalanceBothCommit(t *testing.T) {
	store := &memoryStore{}
	acct := testAccount("0")
	mapping := basicMapping()
	mapping.Balance = intPtr(3)

	// Under the balance policy the declared balance alone is the duplicate
	// key, so identical-looking rows with different balances both commit.
	rows := [][]string{
		{"Date", "Description", "Amount", "Balance"},
		{"15/01/2026", "Coffee", "-3.50", "96.50"},
		{"15/01/2026", "Coffee", "-3.50", "93.00"},
	}

	result, err := newImporter(store).Run(context.Background(), acct, uuid.Must(uuid.NewV4()), mapping, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 0, result.Failed)
}

func TestRun_Reconciliation(t *testing.T) {
	store := &memoryStore{}
	acct := testAccount("1000.00")
	mapping := basicMapping()
	mapping.Balance = intPtr(3)

	// The running balance is computed before the row is inserted: opening
	// balance plus prior transactions through the row's date.
	rows := [][]string{
		{"Date", "Description", "Amount", "Balance"},
		{"15/01/2026", "Salary", "2500.00", "1000.00"},
		{"16/01/2026", "Rent", "-950.00", "3500.005"},
		{"17/01/2026", "Coffee", "-3.50", "9999.00"},
	}

	result, err := newImporter(store).Run(context.Background(), acct, uuid.Must(uuid.NewV4()), mapping, rows)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Successful, "a reconciliation mismatch never blocks creation")
	require.Len(t, store.inserted, 3)
	assert.True(t, store.inserted[0].IsReconciled, "exact match")
	assert.True(t, store.inserted[1].IsReconciled, "within the 0.01 tolerance")
	assert.False(t, store.inserted[2].IsReconciled)
	assert.True(t, decimal.RequireFromString("9999.00").Equal(store.inserted[2].StatementBalance.MustGet()),
		"declared balance stored verbatim even when unreconciled")
}
