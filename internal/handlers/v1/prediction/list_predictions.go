package prediction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/service"
)

// ListPredictionsInput is the Huma input for listing predictions.
type ListPredictionsInput struct {
	OrganisationID string `query:"organisationID" required:"true" doc:"Organisation UUID"`
	Position       int    `query:"position" minimum:"0" doc:"Offset for pagination"`
	Limit          int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size, default 20"`
}

// ListPredictionsCursor is the pagination cursor echoed in responses.
type ListPredictionsCursor struct {
	Position int `json:"position" doc:"Offset for next page"`
	Limit    int `json:"limit" doc:"Page size"`
}

// ListPredictionsResponseBody is the response body for listing predictions.
type ListPredictionsResponseBody struct {
	Predictions []Prediction           `json:"predictions" doc:"Page of predictions, newest first"`
	NextCursor  *ListPredictionsCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListPredictionsOutput is the Huma output for listing predictions.
type ListPredictionsOutput struct {
	Body ListPredictionsResponseBody
}

// predictionLister is the interface for listing predictions.
type predictionLister interface {
	ListPredictions(ctx context.Context, organisationID uuid.UUID, cursor *service.PredictionCursor) ([]service.Prediction, *service.PredictionCursor, error)
}

// ListPredictionsHandler handles GET /v1/predictions.
type ListPredictionsHandler struct {
	PredictionService predictionLister
}

// NewListPredictionsHandler creates a new ListPredictionsHandler.
func NewListPredictionsHandler(svc predictionLister) *ListPredictionsHandler {
	return &ListPredictionsHandler{PredictionService: svc}
}

// Register registers the list predictions endpoint with the Huma API.
func (h *ListPredictionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-predictions",
		Method:      http.MethodGet,
		Path:        "/v1/predictions",
		Summary:     "List predictions",
		Description: "Returns a paginated list of the organisation's predictions, newest first.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func (h *ListPredictionsHandler) handle(ctx context.Context, input *ListPredictionsInput) (*ListPredictionsOutput, error) {
	logData := logging.GetLogData(ctx)

	organisationID, err := uuid.FromString(input.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}

	var cursor *service.PredictionCursor
	if input.Limit > 0 {
		cursor = &service.PredictionCursor{
			Position: input.Position,
			Limit:    input.Limit,
		}
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listPredictionsMs")
	}
	predictions, nextCursor, err := h.PredictionService.ListPredictions(ctx, organisationID, cursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list predictions", err)
	}

	if logData != nil {
		logData.AddData("predictionCount", len(predictions))
	}

	resp := ListPredictionsResponseBody{
		Predictions: make([]Prediction, len(predictions)),
	}
	for i, pred := range predictions {
		resp.Predictions[i] = predictionToAPI(pred)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListPredictionsCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListPredictionsOutput{Body: resp}, nil
}
