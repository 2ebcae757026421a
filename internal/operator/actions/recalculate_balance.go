package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/ledger"
	"github.com/carson-networks/cashflow-server/internal/storage"
)

// RecalculateBalance rebuilds the cached balance from the ledger. Maintenance
// tooling passes uuid.Nil as the organisation to skip the ownership check.
type RecalculateBalance struct {
	OrganisationID uuid.UUID
	AccountID      uuid.UUID

	// Set on success.
	Balance decimal.Decimal

	IAction
}

func (r *RecalculateBalance) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, err := writer.Account.FindByIDForUpdate(ctx, r.AccountID)
	if err != nil {
		return err
	}
	if r.OrganisationID != uuid.Nil && acct.OrganisationID != r.OrganisationID {
		return ErrNotOwned
	}

	calc := ledger.NewCalculator(writer.Transaction)
	balance, err := calc.CurrentBalance(ctx, acct)
	if err != nil {
		return err
	}
	r.Balance = balance

	return writer.Account.UpdateCurrentBalance(ctx, acct.ID, balance)
}
