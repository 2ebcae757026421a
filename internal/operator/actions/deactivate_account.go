package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

// SetAccountActive flips the account's active flag. Deactivated accounts keep
// their history and still resolve by id; they only drop out of active-only
// listings.
type SetAccountActive struct {
	OrganisationID uuid.UUID
	AccountID      uuid.UUID
	Active         bool

	IAction
}

func (s *SetAccountActive) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, err := writer.Account.FindByID(ctx, s.AccountID)
	if err != nil {
		return err
	}
	if acct.OrganisationID != s.OrganisationID {
		return ErrNotOwned
	}

	return writer.Account.SetActive(ctx, s.AccountID, s.Active)
}
