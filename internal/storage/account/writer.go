package account

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
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

// FindByIDForUpdate locks the account row for the duration of the transaction.
func (w *Writer) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("accounts"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, w.tx, q, scan.StructMapper[accountRow]())
	if err != nil {
		return nil, err
	}
	return rowToAccount(row), nil
}

// Insert creates an account. The cached current balance starts equal to the
// opening balance, which is the ledger-derived value for an empty history.
func (w *Writer) Insert(ctx context.Context, create *AccountCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("accounts",
			"organisation_id", "name", "account_number", "bank_name",
			"currency", "opening_balance", "opening_balance_date",
			"current_balance", "is_active",
		),
		im.Values(psql.Arg(
			create.OrganisationID,
			create.Name,
			create.AccountNumber,
			create.BankName,
			create.Currency,
			create.OpeningBalance,
			create.OpeningBalanceDate,
			create.OpeningBalance,
			true,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// UpdateCurrentBalance overwrites the cached balance. Callers must pass a
// value computed by the ledger.
func (w *Writer) UpdateCurrentBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("current_balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// SetActive flips the active flag.
func (w *Writer) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	q := psql.Update(
		um.Table("accounts"),
		um.SetCol("is_active").ToArg(active),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
