package importbatch

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var batchColumns = []any{
	"id", "organisation_id", "account_id", "filename", "date_column",
	"description_column", "amount_column", "reference_column",
	"balance_column", "direction_column", "total_rows", "successful_rows",
	"failed_rows", "status", "error_message", "created_at",
}

var failedRowColumns = []any{
	"id", "import_batch_id", "row_number", "raw_date", "raw_description",
	"raw_amount", "reason", "created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*ImportBatch, error) {
	q := psql.Select(
		sm.Columns(batchColumns...),
		sm.From("import_batches"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[importBatchRow]())
	if err != nil {
		return nil, err
	}
	return rowToImportBatch(row), nil
}

// ListForOrganisation returns the organisation's import history, newest first.
func (r *Reader) ListForOrganisation(ctx context.Context, organisationID uuid.UUID, limit, offset int) ([]*ImportBatch, error) {
	if limit <= 0 {
		limit = 20
	}

	q := psql.Select(
		sm.Columns(batchColumns...),
		sm.From("import_batches"),
		sm.Where(psql.Quote("organisation_id").EQ(psql.Arg(organisationID))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(limit),
		sm.Offset(offset),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[importBatchRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*ImportBatch, len(rows))
	for i, row := range rows {
		result[i] = rowToImportBatch(row)
	}
	return result, nil
}

// LastCompletedForAccount returns the newest batch for the account that
// finished in a completed state, or nil if none has.
func (r *Reader) LastCompletedForAccount(ctx context.Context, accountID uuid.UUID) (*ImportBatch, error) {
	q := psql.Select(
		sm.Columns(batchColumns...),
		sm.From("import_batches"),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
		sm.Where(psql.Quote("status").In(psql.Arg(
			string(StatusCompleted), string(StatusCompletedWithErrors),
		))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(1),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[importBatchRow]())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rowToImportBatch(rows[0]), nil
}

// FailedRowsForBatch returns a batch's rejected rows in row order.
func (r *Reader) FailedRowsForBatch(ctx context.Context, batchID uuid.UUID) ([]*FailedRow, error) {
	q := psql.Select(
		sm.Columns(failedRowColumns...),
		sm.From("failed_rows"),
		sm.Where(psql.Quote("import_batch_id").EQ(psql.Arg(batchID))),
		sm.OrderBy("row_number").Asc(),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[failedRowRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*FailedRow, len(rows))
	for i, row := range rows {
		result[i] = rowToFailedRow(row)
	}
	return result, nil
}
