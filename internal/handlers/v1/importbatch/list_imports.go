package importbatch

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/service"
)

// ListImportsInput is the Huma input for listing import history.
type ListImportsInput struct {
	OrganisationID string `query:"organisationID" required:"true" doc:"Organisation UUID"`
	Position       int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit          int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, default 20"`
}

// ListImportsCursor is the pagination cursor echoed in responses.
type ListImportsCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

// ListImportsResponseBody is the response body for listing import history.
type ListImportsResponseBody struct {
	Imports    []ImportBatch      `json:"imports" doc:"Page of import batches, newest first"`
	NextCursor *ListImportsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListImportsOutput is the Huma output for listing import history.
type ListImportsOutput struct {
	Body ListImportsResponseBody
}

// importLister is the interface for listing import history.
type importLister interface {
	ListImports(ctx context.Context, organisationID uuid.UUID, cursor *service.ImportCursor) ([]service.ImportBatch, *service.ImportCursor, error)
}

// ListImportsHandler handles GET /v1/imports.
type ListImportsHandler struct {
	ImportService importLister
}

// NewListImportsHandler creates a new ListImportsHandler.
func NewListImportsHandler(svc importLister) *ListImportsHandler {
	return &ListImportsHandler{ImportService: svc}
}

// Register registers the list imports endpoint with the Huma API.
func (h *ListImportsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-imports",
		Method:      http.MethodGet,
		Path:        "/v1/imports",
		Summary:     "List import history",
		Description: "Returns a paginated list of the organisation's import batches, newest first.",
		Tags:        []string{"Imports"},
	}, h.handle)
}

func (h *ListImportsHandler) handle(ctx context.Context, input *ListImportsInput) (*ListImportsOutput, error) {
	logData := logging.GetLogData(ctx)

	organisationID, err := uuid.FromString(input.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}

	var cursor *service.ImportCursor
	if input.Limit > 0 {
		cursor = &service.ImportCursor{
			Position: input.Position,
			Limit:    input.Limit,
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listImportsMs")
	}
	batches, nextCursor, err := h.ImportService.ListImports(ctx, organisationID, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list imports", err)
	}

	if logData != nil {
		logData.AddData("importCount", len(batches))
	}

	resp := ListImportsResponseBody{
		Imports: make([]ImportBatch, len(batches)),
	}
	for i, batch := range batches {
		resp.Imports[i] = batchToAPI(batch)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListImportsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListImportsOutput{Body: resp}, nil
}
