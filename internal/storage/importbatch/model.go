package importbatch

import (
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Status is the terminal (or in-flight) state of an import batch.
type Status string

const (
	StatusProcessing          Status = "processing"
	StatusCompleted           Status = "completed"
	StatusCompletedWithErrors Status = "completed_with_errors"
	StatusFailed              Status = "failed"
)

// ImportBatch records one CSV upload attempt against an account.
type ImportBatch struct {
	ID              uuid.UUID
	OrganisationID  uuid.UUID
	AccountID       uuid.UUID
	Filename        string
	DateColumn      int
	DescColumn      int
	AmountColumn    int
	ReferenceColumn *int
	BalanceColumn   *int
	DirectionColumn *int
	TotalRows       int
	SuccessfulRows  int
	FailedRows      int
	Status          Status
	ErrorMessage    string
	CreatedAt       time.Time
}

// ImportBatchCreate is the input for recording a new upload attempt. Batches
// start in StatusProcessing.
type ImportBatchCreate struct {
	OrganisationID  uuid.UUID
	AccountID       uuid.UUID
	Filename        string
	DateColumn      int
	DescColumn      int
	AmountColumn    int
	ReferenceColumn *int
	BalanceColumn   *int
	DirectionColumn *int
}

// FailedRow preserves a rejected statement row verbatim so the user can
// inspect why it was skipped. Never mutated after creation.
type FailedRow struct {
	ID             uuid.UUID
	ImportBatchID  uuid.UUID
	RowNumber      int
	RawDate        string
	RawDescription string
	RawAmount      string
	Reason         string
	CreatedAt      time.Time
}

// FailedRowCreate is the input for recording a rejected row.
type FailedRowCreate struct {
	ImportBatchID  uuid.UUID
	RowNumber      int
	RawDate        string
	RawDescription string
	RawAmount      string
	Reason         string
}

type importBatchRow struct {
	ID              uuid.UUID      `db:"id"`
	OrganisationID  uuid.UUID      `db:"organisation_id"`
	AccountID       uuid.UUID      `db:"account_id"`
	Filename        string         `db:"filename"`
	DateColumn      int            `db:"date_column"`
	DescColumn      int            `db:"description_column"`
	AmountColumn    int            `db:"amount_column"`
	ReferenceColumn sql.NullInt32  `db:"reference_column"`
	BalanceColumn   sql.NullInt32  `db:"balance_column"`
	DirectionColumn sql.NullInt32  `db:"direction_column"`
	TotalRows       int            `db:"total_rows"`
	SuccessfulRows  int            `db:"successful_rows"`
	FailedRows      int            `db:"failed_rows"`
	Status          string         `db:"status"`
	ErrorMessage    sql.NullString `db:"error_message"`
	CreatedAt       time.Time      `db:"created_at"`
}

type failedRowRow struct {
	ID             uuid.UUID `db:"id"`
	ImportBatchID  uuid.UUID `db:"import_batch_id"`
	RowNumber      int       `db:"row_number"`
	RawDate        string    `db:"raw_date"`
	RawDescription string    `db:"raw_description"`
	RawAmount      string    `db:"raw_amount"`
	Reason         string    `db:"reason"`
	CreatedAt      time.Time `db:"created_at"`
}

func rowToImportBatch(row importBatchRow) *ImportBatch {
	return &ImportBatch{
		ID:              row.ID,
		OrganisationID:  row.OrganisationID,
		AccountID:       row.AccountID,
		Filename:        row.Filename,
		DateColumn:      row.DateColumn,
		DescColumn:      row.DescColumn,
		AmountColumn:    row.AmountColumn,
		ReferenceColumn: nullableInt(row.ReferenceColumn),
		BalanceColumn:   nullableInt(row.BalanceColumn),
		DirectionColumn: nullableInt(row.DirectionColumn),
		TotalRows:       row.TotalRows,
		SuccessfulRows:  row.SuccessfulRows,
		FailedRows:      row.FailedRows,
		Status:          Status(row.Status),
		ErrorMessage:    row.ErrorMessage.String,
		CreatedAt:       row.CreatedAt,
	}
}

func rowToFailedRow(row failedRowRow) *FailedRow {
	return &FailedRow{
		ID:             row.ID,
		ImportBatchID:  row.ImportBatchID,
		RowNumber:      row.RowNumber,
		RawDate:        row.RawDate,
		RawDescription: row.RawDescription,
		RawAmount:      row.RawAmount,
		Reason:         row.Reason,
		CreatedAt:      row.CreatedAt,
	}
}

func nullableInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}
