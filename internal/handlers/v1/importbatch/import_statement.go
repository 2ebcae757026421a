package importbatch

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/importer"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// ColumnMappingBody maps statement columns to transaction fields,
// zero-indexed.
type ColumnMappingBody struct {
	DateColumn        int  `json:"dateColumn" minimum:"0" doc:"Date column index"`
	DescriptionColumn int  `json:"descriptionColumn" minimum:"0" doc:"Description column index"`
	AmountColumn      int  `json:"amountColumn" minimum:"0" doc:"Amount column index"`
	ReferenceColumn   *int `json:"referenceColumn,omitempty" minimum:"0" doc:"Optional reference column index"`
	BalanceColumn     *int `json:"balanceColumn,omitempty" minimum:"0" doc:"Optional statement balance column index"`
	DirectionColumn   *int `json:"directionColumn,omitempty" minimum:"0" doc:"Optional direction column index"`
}

// ImportStatementBody is the request body for importing a statement.
type ImportStatementBody struct {
	OrganisationID string            `json:"organisationID" required:"true" doc:"Organisation UUID"`
	AccountID      string            `json:"accountID" required:"true" doc:"Account UUID"`
	Filename       string            `json:"filename" required:"true" minLength:"1" doc:"Uploaded filename; .xlsx selects workbook decoding"`
	Content        []byte            `json:"content" required:"true" doc:"Base64-encoded statement file"`
	Mapping        ColumnMappingBody `json:"mapping" required:"true" doc:"Column mapping"`
}

// ImportStatementInput is the Huma input for importing a statement.
type ImportStatementInput struct {
	Body ImportStatementBody
}

// ImportStatementResponse is the response body for importing a statement.
type ImportStatementResponse struct {
	BatchID        string   `json:"batchID" doc:"Import batch UUID"`
	TotalRows      int      `json:"totalRows" doc:"Data rows processed"`
	SuccessfulRows int      `json:"successfulRows" doc:"Rows committed as transactions"`
	FailedRows     int      `json:"failedRows" doc:"Rows rejected"`
	Status         string   `json:"status" doc:"completed or completed_with_errors"`
	Errors         []string `json:"errors,omitempty" doc:"Per-row rejection messages"`
}

// ImportStatementOutput is the Huma output for importing a statement.
type ImportStatementOutput struct {
	Status int
	Body   ImportStatementResponse
}

// ImportStatementHandler handles POST /v1/import.
type ImportStatementHandler struct {
	Operator *operator.OperatorDelegator
}

// NewImportStatementHandler creates a new ImportStatementHandler.
func NewImportStatementHandler(op *operator.OperatorDelegator) *ImportStatementHandler {
	return &ImportStatementHandler{Operator: op}
}

// Register registers the import statement endpoint with the Huma API.
func (h *ImportStatementHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "import-statement",
		Method:      http.MethodPost,
		Path:        "/v1/import",
		Summary:     "Import a bank statement",
		Description: "Runs an uploaded CSV or XLSX statement through the import pipeline against one account.",
		Tags:        []string{"Imports"},
	}, h.handle)
}

func (b ColumnMappingBody) toMapping() importer.ColumnMapping {
	return importer.ColumnMapping{
		Date:        b.DateColumn,
		Description: b.DescriptionColumn,
		Amount:      b.AmountColumn,
		Reference:   b.ReferenceColumn,
		Balance:     b.BalanceColumn,
		Direction:   b.DirectionColumn,
	}
}

func (h *ImportStatementHandler) handle(ctx context.Context, input *ImportStatementInput) (*ImportStatementOutput, error) {
	logData := logging.GetLogData(ctx)

	organisationID, err := uuid.FromString(input.Body.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}
	mapping := input.Body.Mapping.toMapping()

	// The batch record commits on its own before any rows run, so even a
	// crashed import leaves an audit trail.
	createBatch := &actions.CreateImportBatch{
		OrganisationID: organisationID,
		AccountID:      accountID,
		Filename:       input.Body.Filename,
		Mapping:        mapping,
	}
	err = h.Operator.Process(ctx, createBatch)
	if errors.Is(err, actions.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create import batch", err)
	}
	batchID := createBatch.CreatedID

	if logData != nil {
		logData.AddData("importBatchID", batchID.String())
	}

	rows, err := importer.ReadStatement(bytes.NewReader(input.Body.Content), input.Body.Filename)
	if err != nil {
		h.markFailed(ctx, organisationID, batchID, err)
		return nil, huma.NewError(http.StatusBadRequest, "failed to read statement", err)
	}

	run := &actions.RunImport{
		OrganisationID: organisationID,
		AccountID:      accountID,
		BatchID:        batchID,
		Mapping:        mapping,
		Rows:           rows,
		LogData:        logData,
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("importMs")
	}
	err = h.Operator.Process(ctx, run)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		h.markFailed(ctx, organisationID, batchID, err)
		return nil, huma.NewError(http.StatusInternalServerError, "import failed", err)
	}

	result := run.Result
	return &ImportStatementOutput{
		Status: http.StatusCreated,
		Body: ImportStatementResponse{
			BatchID:        batchID.String(),
			TotalRows:      result.Total,
			SuccessfulRows: result.Successful,
			FailedRows:     result.Failed,
			Status:         string(result.Status()),
			Errors:         result.Errors,
		},
	}, nil
}

// markFailed records a file-level failure on its own transaction. Best
// effort: the import error is what the caller sees either way.
func (h *ImportStatementHandler) markFailed(ctx context.Context, organisationID, batchID uuid.UUID, cause error) {
	_ = h.Operator.Process(ctx, &actions.MarkImportFailed{
		OrganisationID: organisationID,
		BatchID:        batchID,
		Message:        cause.Error(),
	})
}
