package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
)

// ImportBatch represents an import batch in the service layer.
type ImportBatch struct {
	ID             uuid.UUID
	OrganisationID uuid.UUID
	AccountID      uuid.UUID
	Filename       string
	TotalRows      int
	SuccessfulRows int
	FailedRows     int
	Status         string
	ErrorMessage   string
	CreatedAt      time.Time
}

// FailedRow is one rejected statement row, preserved verbatim.
type FailedRow struct {
	RowNumber      int
	RawDate        string
	RawDescription string
	RawAmount      string
	Reason         string
}

// ImportBatchDetail is a batch together with its rejected rows.
type ImportBatchDetail struct {
	Batch      ImportBatch
	FailedRows []FailedRow
}

// ImportCursor identifies a position in a paginated result set.
type ImportCursor struct {
	Position int
	Limit    int
}

func importBatchFromStorage(row *importbatch.ImportBatch) ImportBatch {
	return ImportBatch{
		ID:             row.ID,
		OrganisationID: row.OrganisationID,
		AccountID:      row.AccountID,
		Filename:       row.Filename,
		TotalRows:      row.TotalRows,
		SuccessfulRows: row.SuccessfulRows,
		FailedRows:     row.FailedRows,
		Status:         string(row.Status),
		ErrorMessage:   row.ErrorMessage,
		CreatedAt:      row.CreatedAt,
	}
}

func failedRowFromStorage(row *importbatch.FailedRow) FailedRow {
	return FailedRow{
		RowNumber:      row.RowNumber,
		RawDate:        row.RawDate,
		RawDescription: row.RawDescription,
		RawAmount:      row.RawAmount,
		Reason:         row.Reason,
	}
}
