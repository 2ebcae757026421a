package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "account_id", "transaction_date", "description", "amount",
	"direction", "reference", "statement_balance", "is_reconciled",
	"excluded_from_analysis", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row), nil
}

// ListForAccount returns an account's transactions, newest first.
func (r *Reader) ListForAccount(ctx context.Context, accountID uuid.UUID, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.OrderBy("transaction_date").Desc(),
		sm.OrderBy("created_at").Desc(),
	}
	if filter != nil {
		if filter.From != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.From))))
		}
		if filter.To != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(*filter.To))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	return rowsToTransactions(rows), nil
}

// ListForForecast returns transactions across the given accounts dated within
// [from, to], oldest first, skipping rows excluded from analysis.
func (r *Reader) ListForForecast(ctx context.Context, accountIDs []uuid.UUID, from, to time.Time) ([]*Transaction, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	ids := make([]any, len(accountIDs))
	for i, id := range accountIDs {
		ids[i] = id
	}

	q := psql.Select(
		sm.Columns(columns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("account_id").In(psql.Arg(ids...))),
		sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(from))),
		sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(to))),
		sm.Where(psql.Quote("excluded_from_analysis").EQ(psql.Arg(false))),
		sm.OrderBy("transaction_date").Asc(),
		sm.OrderBy("created_at").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	return rowsToTransactions(rows), nil
}

// RecentForAccount returns the newest transactions for an account.
func (r *Reader) RecentForAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*Transaction, error) {
	return r.ListForAccount(ctx, accountID, &TransactionFilter{Limit: limit})
}

// ExistsByFields reports whether a transaction with the exact same
// date/amount/description already exists for the account. This is the
// duplicate key used when no statement balance column is available.
func (r *Reader) ExistsByFields(ctx context.Context, accountID uuid.UUID, date time.Time, amount decimal.Decimal, description string) (bool, error) {
	q := psql.RawQuery(
		`SELECT EXISTS(
			SELECT 1 FROM transactions
			WHERE account_id = ? AND transaction_date = ? AND amount = ? AND description = ?
		)`,
		accountID, date, amount, description,
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[bool])
}

// ExistsByStatementBalance reports whether any transaction for the account
// already carries the given statement-declared balance. Declared balances act
// as a near-unique fingerprint of a statement line.
func (r *Reader) ExistsByStatementBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) (bool, error) {
	q := psql.RawQuery(
		`SELECT EXISTS(
			SELECT 1 FROM transactions
			WHERE account_id = ? AND statement_balance = ?
		)`,
		accountID, balance,
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[bool])
}

// SignedSumThrough returns the signed sum of all the account's transactions
// dated on or before the given date.
func (r *Reader) SignedSumThrough(ctx context.Context, accountID uuid.UUID, through time.Time) (decimal.Decimal, error) {
	q := psql.RawQuery(
		`SELECT COALESCE(SUM(CASE WHEN direction = 'credit' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE account_id = ? AND transaction_date <= ?`,
		accountID, through,
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

// SignedSum returns the signed sum of all the account's transactions.
func (r *Reader) SignedSum(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	q := psql.RawQuery(
		`SELECT COALESCE(SUM(CASE WHEN direction = 'credit' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE account_id = ?`,
		accountID,
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

// SumByDirection totals the account's transaction magnitudes for one
// direction, optionally bounded by dates.
func (r *Reader) SumByDirection(ctx context.Context, accountID uuid.UUID, direction Direction, from, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = ? AND direction = ?`
	args := []any{accountID, string(direction)}
	if from != nil {
		query += ` AND transaction_date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND transaction_date <= ?`
		args = append(args, *to)
	}
	return bob.One(ctx, r.exec, psql.RawQuery(query, args...), scan.SingleColumnMapper[decimal.Decimal])
}

// CountForAccount returns the number of transactions held by an account.
func (r *Reader) CountForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	q := psql.RawQuery(`SELECT COUNT(*) FROM transactions WHERE account_id = ?`, accountID)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}

func rowsToTransactions(rows []transactionRow) []*Transaction {
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = rowToTransaction(row)
	}
	return result
}
