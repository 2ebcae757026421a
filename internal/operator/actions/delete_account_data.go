package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

// DeleteAccountData wipes an account's transactions, optionally its import
// history, and resets the cached balance to the ledger value of an empty
// history (the opening balance). Maintenance tooling passes uuid.Nil as the
// organisation to skip the ownership check.
type DeleteAccountData struct {
	OrganisationID      uuid.UUID
	AccountID           uuid.UUID
	DeleteImportHistory bool

	// Set on success.
	DeletedTransactions int64
	DeletedBatches      int64

	IAction
}

func (d *DeleteAccountData) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.LockAccount(ctx, d.AccountID); err != nil {
		return err
	}

	acct, err := writer.Account.FindByIDForUpdate(ctx, d.AccountID)
	if err != nil {
		return err
	}
	if d.OrganisationID != uuid.Nil && acct.OrganisationID != d.OrganisationID {
		return ErrNotOwned
	}

	deleted, err := writer.Transaction.DeleteForAccount(ctx, d.AccountID)
	if err != nil {
		return err
	}
	d.DeletedTransactions = deleted

	if d.DeleteImportHistory {
		batches, err := writer.ImportBatch.DeleteForAccount(ctx, d.AccountID)
		if err != nil {
			return err
		}
		d.DeletedBatches = batches
	}

	return refreshCachedBalance(ctx, writer, acct)
}
