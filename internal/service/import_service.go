package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
)

const defaultImportLimit = 20

type importBatchReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*importbatch.ImportBatch, error)
	ListForOrganisation(ctx context.Context, organisationID uuid.UUID, limit, offset int) ([]*importbatch.ImportBatch, error)
	FailedRowsForBatch(ctx context.Context, batchID uuid.UUID) ([]*importbatch.FailedRow, error)
}

// ImportService handles import-history business logic. Running an import is a
// write and lives in the operator.
type ImportService struct {
	batches importBatchReader
}

// NewImportService creates a new ImportService.
func NewImportService(batches importBatchReader) *ImportService {
	return &ImportService{batches: batches}
}

// GetImport retrieves a batch with its failed rows.
func (s *ImportService) GetImport(ctx context.Context, organisationID, id uuid.UUID) (*ImportBatchDetail, error) {
	row, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.OrganisationID != organisationID {
		return nil, ErrNotOwned
	}

	failedRows, err := s.batches.FailedRowsForBatch(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ImportBatchDetail{
		Batch:      importBatchFromStorage(row),
		FailedRows: make([]FailedRow, len(failedRows)),
	}
	for i, failed := range failedRows {
		detail.FailedRows[i] = failedRowFromStorage(failed)
	}
	return detail, nil
}

// ListImports returns a page of the organisation's import history, newest
// first, using cursor pagination.
func (s *ImportService) ListImports(ctx context.Context, organisationID uuid.UUID, cursor *ImportCursor) ([]ImportBatch, *ImportCursor, error) {
	limit := defaultImportLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.batches.ListForOrganisation(ctx, organisationID, limit+1, offset)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *ImportCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &ImportCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedBatches := make([]ImportBatch, len(rows))
	for i, row := range rows {
		convertedBatches[i] = importBatchFromStorage(row)
	}

	return convertedBatches, nextCursor, nil
}
