package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "organisation_id", "name", "account_number", "bank_name",
	"currency", "opening_balance", "opening_balance_date", "current_balance",
	"is_active", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[accountRow]())
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

// ListForOrganisation returns the organisation's accounts ordered by name.
func (r *Reader) ListForOrganisation(ctx context.Context, organisationID uuid.UUID, filter *AccountFilter) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("organisation_id").EQ(psql.Arg(organisationID))),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	}
	if filter != nil {
		if filter.ActiveOnly {
			queryMods = append(queryMods, sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[accountRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Account, len(rows))
	for i, row := range rows {
		result[i] = rowToAccount(row)
	}
	return result, nil
}

// SumCurrentBalances totals the cached balances of the given accounts. The
// forecast engine reads this rather than recomputing from history.
func (r *Reader) SumCurrentBalances(ctx context.Context, accountIDs []uuid.UUID) (decimal.Decimal, error) {
	if len(accountIDs) == 0 {
		return decimal.Zero, nil
	}

	args := make([]any, len(accountIDs))
	placeholders := ""
	for i, id := range accountIDs {
		args[i] = id
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
	}

	q := psql.RawQuery(
		`SELECT COALESCE(SUM(current_balance), 0) FROM accounts WHERE id IN (`+placeholders+`)`,
		args...,
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[decimal.Decimal])
}

// CountForOrganisation counts how many of the given account ids belong to the
// organisation, used to validate prediction account selections.
func (r *Reader) CountForOrganisation(ctx context.Context, organisationID uuid.UUID, accountIDs []uuid.UUID) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}

	args := []any{organisationID}
	placeholders := ""
	for i, id := range accountIDs {
		args = append(args, id)
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
	}

	q := psql.RawQuery(
		`SELECT COUNT(*) FROM accounts WHERE organisation_id = ? AND id IN (`+placeholders+`)`,
		args...,
	)
	return bob.One(ctx, r.exec, q, scan.SingleColumnMapper[int64])
}
