package storage

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
	"github.com/carson-networks/cashflow-server/internal/storage/prediction"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

type Writer struct {
	tx          bob.Tx
	Account     *account.Writer
	Transaction *transaction.Writer
	ImportBatch *importbatch.Writer
	Prediction  *prediction.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Account:     account.NewWriter(tx),
		Transaction: transaction.NewWriter(tx),
		ImportBatch: importbatch.NewWriter(tx),
		Prediction:  prediction.NewWriter(tx),
	}
}

// LockAccount takes a transaction-scoped advisory lock keyed by the account
// id. Imports against the same account serialize on this, so concurrent
// uploads cannot both pass duplicate detection on the pre-import state.
func (w *Writer) LockAccount(ctx context.Context, accountID uuid.UUID) error {
	_, err := w.tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		accountID.String(),
	)
	return err
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
