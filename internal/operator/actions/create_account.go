package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage"
	"github.com/carson-networks/cashflow-server/internal/storage/account"
)

type CreateAccount struct {
	OrganisationID     uuid.UUID
	Name               string
	AccountNumber      string
	BankName           string
	Currency           string
	OpeningBalance     decimal.Decimal
	OpeningBalanceDate time.Time

	// Set on success.
	CreatedID uuid.UUID

	IAction
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Account.Insert(ctx, &account.AccountCreate{
		OrganisationID:     c.OrganisationID,
		Name:               c.Name,
		AccountNumber:      c.AccountNumber,
		BankName:           c.BankName,
		Currency:           c.Currency,
		OpeningBalance:     c.OpeningBalance,
		OpeningBalanceDate: c.OpeningBalanceDate,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
