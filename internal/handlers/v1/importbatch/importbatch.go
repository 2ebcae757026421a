package importbatch

import (
	"time"

	"github.com/carson-networks/cashflow-server/internal/service"
)

// ImportBatch is the API response model for an import batch.
type ImportBatch struct {
	ID             string `json:"id" doc:"Import batch UUID"`
	AccountID      string `json:"accountID" doc:"Account UUID"`
	Filename       string `json:"filename" doc:"Uploaded filename"`
	TotalRows      int    `json:"totalRows" doc:"Data rows processed"`
	SuccessfulRows int    `json:"successfulRows" doc:"Rows committed as transactions"`
	FailedRows     int    `json:"failedRows" doc:"Rows rejected"`
	Status         string `json:"status" doc:"processing, completed, completed_with_errors or failed"`
	ErrorMessage   string `json:"errorMessage,omitempty" doc:"Row failure summary or file-level error"`
	CreatedAt      string `json:"createdAt" doc:"RFC3339 creation time"`
}

// FailedRow is the API response model for one rejected statement row.
type FailedRow struct {
	RowNumber      int    `json:"rowNumber" doc:"1-based data row number"`
	RawDate        string `json:"rawDate" doc:"Date cell as uploaded"`
	RawDescription string `json:"rawDescription" doc:"Description cell as uploaded"`
	RawAmount      string `json:"rawAmount" doc:"Amount cell as uploaded"`
	Reason         string `json:"reason" doc:"Rejection reason"`
}

func batchToAPI(batch service.ImportBatch) ImportBatch {
	return ImportBatch{
		ID:             batch.ID.String(),
		AccountID:      batch.AccountID.String(),
		Filename:       batch.Filename,
		TotalRows:      batch.TotalRows,
		SuccessfulRows: batch.SuccessfulRows,
		FailedRows:     batch.FailedRows,
		Status:         batch.Status,
		ErrorMessage:   batch.ErrorMessage,
		CreatedAt:      batch.CreatedAt.Format(time.RFC3339),
	}
}

func failedRowToAPI(row service.FailedRow) FailedRow {
	return FailedRow{
		RowNumber:      row.RowNumber,
		RawDate:        row.RawDate,
		RawDescription: row.RawDescription,
		RawAmount:      row.RawAmount,
		Reason:         row.Reason,
	}
}
