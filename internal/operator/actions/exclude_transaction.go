package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

// ExcludeTransaction flips the excluded_from_analysis flag. Exclusion only
// affects forecasting; the ledger balance still counts the transaction.
type ExcludeTransaction struct {
	OrganisationID uuid.UUID
	TransactionID  uuid.UUID
	Excluded       bool

	IAction
}

func (e *ExcludeTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	txn, err := writer.Transaction.FindByID(ctx, e.TransactionID)
	if err != nil {
		return err
	}

	acct, err := writer.Account.FindByID(ctx, txn.AccountID)
	if err != nil {
		return err
	}
	if acct.OrganisationID != e.OrganisationID {
		return ErrNotOwned
	}

	return writer.Transaction.SetExcluded(ctx, e.TransactionID, e.Excluded)
}
