package transaction

import (
	"context"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("transactions",
			"account_id", "transaction_date", "description", "amount",
			"direction", "reference", "statement_balance", "is_reconciled",
			"excluded_from_analysis",
		),
		im.Values(psql.Arg(
			create.AccountID,
			create.TransactionDate,
			create.Description,
			create.Amount,
			string(create.Direction),
			nullable(create.Reference),
			nullable(create.StatementBalance),
			create.IsReconciled,
			create.ExcludedFromAnalysis,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// SetExcluded toggles the only user-mutable flag on a transaction.
func (w *Writer) SetExcluded(ctx context.Context, id uuid.UUID, excluded bool) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("excluded_from_analysis").ToArg(excluded),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// SetReconciled is used by reconciliation only; direction and amount stay
// immutable after creation.
func (w *Writer) SetReconciled(ctx context.Context, id uuid.UUID, reconciled bool) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("is_reconciled").ToArg(reconciled),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// DeleteForAccount removes every transaction held by the account and returns
// the number deleted.
func (w *Writer) DeleteForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	)
	result, err := bob.Exec(ctx, w.tx, q)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// nullable converts an omitted optional value to a SQL NULL argument.
func nullable[T any](v omit.Val[T]) any {
	if v.IsValue() {
		return v.MustGet()
	}
	return nil
}
