package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/importer"
	"github.com/carson-networks/cashflow-server/internal/storage"
	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
)

// CreateImportBatch records an upload attempt before any rows are processed.
// It commits independently of the import itself so a crashed import still
// leaves an audit record in processing state.
type CreateImportBatch struct {
	OrganisationID uuid.UUID
	AccountID      uuid.UUID
	Filename       string
	Mapping        importer.ColumnMapping

	// Set on success.
	CreatedID uuid.UUID

	IAction
}

func (c *CreateImportBatch) Perform(ctx context.Context, writer *storage.Writer) error {
	acct, err := writer.Account.FindByID(ctx, c.AccountID)
	if err != nil {
		return err
	}
	if acct.OrganisationID != c.OrganisationID {
		return ErrNotOwned
	}

	id, err := writer.ImportBatch.Insert(ctx, &importbatch.ImportBatchCreate{
		OrganisationID:  c.OrganisationID,
		AccountID:       c.AccountID,
		Filename:        c.Filename,
		DateColumn:      c.Mapping.Date,
		DescColumn:      c.Mapping.Description,
		AmountColumn:    c.Mapping.Amount,
		ReferenceColumn: c.Mapping.Reference,
		BalanceColumn:   c.Mapping.Balance,
		DirectionColumn: c.Mapping.Direction,
	})
	if err != nil {
		return err
	}

	c.CreatedID = id
	return nil
}
