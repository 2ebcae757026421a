package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

// MarkImportFailed records a file-level failure against a batch. It runs in
// its own transaction so the failure sticks even though the import's
// transaction rolled back.
type MarkImportFailed struct {
	OrganisationID uuid.UUID
	BatchID        uuid.UUID
	Message        string

	IAction
}

func (m *MarkImportFailed) Perform(ctx context.Context, writer *storage.Writer) error {
	batch, err := writer.ImportBatch.FindByID(ctx, m.BatchID)
	if err != nil {
		return err
	}
	if batch.OrganisationID != m.OrganisationID {
		return ErrNotOwned
	}

	return writer.ImportBatch.MarkFailed(ctx, m.BatchID, m.Message)
}
