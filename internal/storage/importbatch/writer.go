package importbatch

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert records a new upload attempt in StatusProcessing and returns its ID.
func (w *Writer) Insert(ctx context.Context, create *ImportBatchCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("import_batches",
			"organisation_id", "account_id", "filename", "date_column",
			"description_column", "amount_column", "reference_column",
			"balance_column", "direction_column", "status",
		),
		im.Values(psql.Arg(
			create.OrganisationID,
			create.AccountID,
			create.Filename,
			create.DateColumn,
			create.DescColumn,
			create.AmountColumn,
			nullableIntArg(create.ReferenceColumn),
			nullableIntArg(create.BalanceColumn),
			nullableIntArg(create.DirectionColumn),
			string(StatusProcessing),
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// UpdateResult records the outcome of a processed batch.
func (w *Writer) UpdateResult(ctx context.Context, id uuid.UUID, total, successful, failed int, status Status, errorMessage string) error {
	q := psql.Update(
		um.Table("import_batches"),
		um.SetCol("total_rows").ToArg(total),
		um.SetCol("successful_rows").ToArg(successful),
		um.SetCol("failed_rows").ToArg(failed),
		um.SetCol("status").ToArg(string(status)),
		um.SetCol("error_message").ToArg(nullableString(errorMessage)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// MarkFailed flags a batch whose import aborted at the file level. Nothing
// else about the batch changes; no transactions were committed.
func (w *Writer) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string) error {
	q := psql.Update(
		um.Table("import_batches"),
		um.SetCol("status").ToArg(string(StatusFailed)),
		um.SetCol("error_message").ToArg(nullableString(errorMessage)),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// InsertFailedRow records one rejected statement row.
func (w *Writer) InsertFailedRow(ctx context.Context, create *FailedRowCreate) error {
	q := psql.Insert(
		im.Into("failed_rows",
			"import_batch_id", "row_number", "raw_date", "raw_description",
			"raw_amount", "reason",
		),
		im.Values(psql.Arg(
			create.ImportBatchID,
			create.RowNumber,
			create.RawDate,
			create.RawDescription,
			create.RawAmount,
			create.Reason,
		)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// DeleteForAccount removes the account's import history including failed rows.
func (w *Writer) DeleteForAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	_, err := w.tx.ExecContext(ctx,
		`DELETE FROM failed_rows
		WHERE import_batch_id IN (SELECT id FROM import_batches WHERE account_id = $1)`,
		accountID,
	)
	if err != nil {
		return 0, err
	}

	result, err := w.tx.ExecContext(ctx,
		`DELETE FROM import_batches WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func nullableIntArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
