package importbatch

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/service"
)

// GetImportInput is the Huma input for fetching one import batch.
type GetImportInput struct {
	ID             string `path:"id" doc:"Import batch UUID"`
	OrganisationID string `query:"organisationID" required:"true" doc:"Organisation UUID"`
}

// GetImportResponseBody is a batch together with its rejected rows.
type GetImportResponseBody struct {
	Batch      ImportBatch `json:"batch" doc:"The import batch"`
	FailedRows []FailedRow `json:"failedRows" doc:"Rejected rows in row order"`
}

// GetImportOutput is the Huma output for fetching one import batch.
type GetImportOutput struct {
	Body GetImportResponseBody
}

// importGetter is the interface for fetching one import batch.
type importGetter interface {
	GetImport(ctx context.Context, organisationID, id uuid.UUID) (*service.ImportBatchDetail, error)
}

// GetImportHandler handles GET /v1/import/{id}.
type GetImportHandler struct {
	ImportService importGetter
}

// NewGetImportHandler creates a new GetImportHandler.
func NewGetImportHandler(svc importGetter) *GetImportHandler {
	return &GetImportHandler{ImportService: svc}
}

// Register registers the get import endpoint with the Huma API.
func (h *GetImportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-import",
		Method:      http.MethodGet,
		Path:        "/v1/import/{id}",
		Summary:     "Get import batch",
		Description: "Returns one import batch with its rejected rows.",
		Tags:        []string{"Imports"},
	}, h.handle)
}

func (h *GetImportHandler) handle(ctx context.Context, input *GetImportInput) (*GetImportOutput, error) {
	organisationID, err := uuid.FromString(input.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid import id", err)
	}

	detail, err := h.ImportService.GetImport(ctx, organisationID, id)
	if errors.Is(err, service.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "import not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get import", err)
	}

	resp := GetImportResponseBody{
		Batch:      batchToAPI(detail.Batch),
		FailedRows: make([]FailedRow, len(detail.FailedRows)),
	}
	for i, row := range detail.FailedRows {
		resp.FailedRows[i] = failedRowToAPI(row)
	}

	return &GetImportOutput{Body: resp}, nil
}
