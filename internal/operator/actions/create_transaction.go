package actions

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/ledger"
	"github.com/carson-networks/cashflow-server/internal/storage"
	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// CreateTransaction is the manual-entry path. The cached account balance is
// recomputed from the ledger after the insert, never incremented in place.
type CreateTransaction struct {
	OrganisationID  uuid.UUID
	AccountID       uuid.UUID
	TransactionDate time.Time
	Description     string
	Amount          decimal.Decimal
	Direction       transaction.Direction
	Reference       string

	// Set on success.
	CreatedID uuid.UUID

	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, err := writer.Account.FindByIDForUpdate(ctx, t.AccountID)
	if err != nil {
		return err
	}
	if acct.OrganisationID != t.OrganisationID {
		return ErrNotOwned
	}

	create := &transaction.TransactionCreate{
		AccountID:       t.AccountID,
		TransactionDate: t.TransactionDate,
		Description:     t.Description,
		Amount:          t.Amount,
		Direction:       t.Direction,
	}
	if t.Reference != "" {
		create.Reference = omit.From(t.Reference)
	}

	id, err := writer.Transaction.Insert(ctx, create)
	if err != nil {
		return err
	}
	t.CreatedID = id

	return refreshCachedBalance(ctx, writer, acct)
}

// refreshCachedBalance overwrites the account's denormalized balance with the
// ledger-derived value.
func refreshCachedBalance(ctx context.Context, writer *storage.Writer, acct *account.Account) error {
	calc := ledger.NewCalculator(writer.Transaction)
	balance, err := calc.CurrentBalance(ctx, acct)
	if err != nil {
		return err
	}
	return writer.Account.UpdateCurrentBalance(ctx, acct.ID, balance)
}
