package actions

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/importer"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/storage"
)

// RunImport processes one statement's rows against an account inside a single
// database transaction: every successful row commits together or not at all.
// A per-account advisory lock serializes concurrent imports so duplicate
// detection and reconciliation see a stable history.
type RunImport struct {
	OrganisationID uuid.UUID
	AccountID      uuid.UUID
	BatchID        uuid.UUID
	Mapping        importer.ColumnMapping
	Rows           [][]string
	LogData        *logging.LogData

	// Set on success.
	Result *importer.Result

	IAction
}

func (r *RunImport) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.LockAccount(ctx, r.AccountID); err != nil {
		return err
	}

	acct, err := writer.Account.FindByIDForUpdate(ctx, r.AccountID)
	if err != nil {
		return err
	}
	if acct.OrganisationID != r.OrganisationID {
		return ErrNotOwned
	}

	imp := &importer.Importer{
		Transactions: writer.Transaction,
		FailedRows:   writer.ImportBatch,
		LogData:      r.LogData,
	}

	result, err := imp.Run(ctx, acct, r.BatchID, r.Mapping, r.Rows)
	if err != nil {
		return err
	}

	err = writer.ImportBatch.UpdateResult(ctx, r.BatchID,
		result.Total, result.Successful, result.Failed,
		result.Status(), strings.Join(result.Errors, "; "))
	if err != nil {
		return err
	}

	if err := refreshCachedBalance(ctx, writer, acct); err != nil {
		return err
	}

	r.Result = result
	return nil
}
