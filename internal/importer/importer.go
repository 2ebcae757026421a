// Package importer turns raw bank statements into committed transactions.
// Row-level failures (bad dates, bad amounts, duplicates) are expected,
// routine outcomes recorded as FailedRows; only file-level problems abort a
// batch.
package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/ledger"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// balanceTolerance is the absolute tolerance for reconciling a computed
// running balance against a statement-declared one: 0.01 currency units.
var balanceTolerance = decimal.RequireFromString("0.01")

// TransactionStore is the slice of the transaction writer an import needs.
// All calls run inside the batch's single database transaction.
type TransactionStore interface {
	ledger.TransactionSummer
	ExistsByFields(ctx context.Context, accountID uuid.UUID, date time.Time, amount decimal.Decimal, description string) (bool, error)
	ExistsByStatementBalance(ctx context.Context, accountID uuid.UUID, balance decimal.Decimal) (bool, error)
	Insert(ctx context.Context, create *transaction.TransactionCreate) (uuid.UUID, error)
}

// FailedRowStore records rejected rows.
type FailedRowStore interface {
	InsertFailedRow(ctx context.Context, create *importbatch.FailedRowCreate) error
}

// Result summarizes a processed batch. Total == Successful + Failed always.
type Result struct {
	Total      int
	Successful int
	Failed     int
	Errors     []string
}

// Status maps the row counts onto the batch's terminal status.
func (r *Result) Status() importbatch.Status {
	if r.Failed == 0 {
		return importbatch.StatusCompleted
	}
	return importbatch.StatusCompletedWithErrors
}

// Importer runs statement rows through the import pipeline.
type Importer struct {
	Transactions TransactionStore
	FailedRows   FailedRowStore
	LogData      *logging.LogData
}

// Run processes a statement's rows (header included, always skipped) against
// the account. Row failures are recorded and never abort the batch; a
// returned error is file-level and the caller must roll the batch back.
func (imp *Importer) Run(ctx context.Context, acct *account.Account, batchID uuid.UUID, mapping ColumnMapping, rows [][]string) (*Result, error) {
	result := &Result{}
	policy := mapping.DuplicatePolicy()
	calc := ledger.NewCalculator(imp.Transactions)

	if len(rows) > 0 {
		rows = rows[1:]
	}

	for i, record := range rows {
		rowNumber := i + 1
		result.Total++

		outcome := ProcessRow(record, mapping, acct.ID)
		if outcome.Failed() {
			if err := imp.recordFailure(ctx, result, batchID, rowNumber, outcome, outcome.FailureReason); err != nil {
				return nil, err
			}
			continue
		}

		duplicate, err := imp.isDuplicate(ctx, policy, acct.ID, outcome)
		if err != nil {
			return nil, fmt.Errorf("row %d duplicate check: %w", rowNumber, err)
		}
		if duplicate {
			if err := imp.recordFailure(ctx, result, batchID, rowNumber, outcome, ReasonDuplicate); err != nil {
				return nil, err
			}
			continue
		}

		// Reconciliation never blocks creation; a mismatch just leaves the
		// transaction unreconciled.
		if mapping.Balance != nil && outcome.DeclaredBalance.Valid {
			running, err := calc.BalanceAsOf(ctx, acct, outcome.Create.TransactionDate)
			if err != nil {
				return nil, fmt.Errorf("row %d reconciliation: %w", rowNumber, err)
			}
			diff := running.Sub(outcome.DeclaredBalance.Decimal).Abs()
			outcome.Create.IsReconciled = diff.LessThan(balanceTolerance)
		}

		if _, err := imp.Transactions.Insert(ctx, outcome.Create); err != nil {
			return nil, fmt.Errorf("row %d insert: %w", rowNumber, err)
		}
		result.Successful++
	}

	if imp.LogData != nil {
		imp.LogData.AddData("totalRows", result.Total)
		imp.LogData.AddData("successfulRows", result.Successful)
		imp.LogData.AddData("failedRows", result.Failed)
	}

	return result, nil
}

func (imp *Importer) isDuplicate(ctx context.Context, policy DuplicatePolicy, accountID uuid.UUID, outcome RowOutcome) (bool, error) {
	switch policy {
	case DuplicateByStatementBalance:
		// The declared balance alone is the duplicate key. A row whose
		// balance cell failed to parse can't match anything.
		if !outcome.DeclaredBalance.Valid {
			return false, nil
		}
		return imp.Transactions.ExistsByStatementBalance(ctx, accountID, outcome.DeclaredBalance.Decimal)
	default:
		return imp.Transactions.ExistsByFields(ctx, accountID,
			outcome.Create.TransactionDate, outcome.Create.Amount, outcome.Create.Description)
	}
}

func (imp *Importer) recordFailure(ctx context.Context, result *Result, batchID uuid.UUID, rowNumber int, outcome RowOutcome, reason string) error {
	result.Failed++
	result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNumber, reason))

	return imp.FailedRows.InsertFailedRow(ctx, &importbatch.FailedRowCreate{
		ImportBatchID:  batchID,
		RowNumber:      rowNumber,
		RawDate:        outcome.RawDate,
		RawDescription: outcome.RawDescription,
		RawAmount:      outcome.RawAmount,
		Reason:         reason,
	})
}
