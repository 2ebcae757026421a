package prediction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/service"
)

// GetPredictionInput is the Huma input for fetching one prediction.
type GetPredictionInput struct {
	ID             string `path:"id" doc:"Prediction UUID"`
	OrganisationID string `query:"organisationID" required:"true" doc:"Organisation UUID"`
}

// GetPredictionResponseBody is a prediction with its account selections.
type GetPredictionResponseBody struct {
	Prediction Prediction `json:"prediction" doc:"The prediction"`
	AccountIDs []string   `json:"accountIDs" doc:"Accounts the forecast was run over"`
}

// GetPredictionOutput is the Huma output for fetching one prediction.
type GetPredictionOutput struct {
	Body GetPredictionResponseBody
}

// predictionGetter is the interface for fetching one prediction.
type predictionGetter interface {
	GetPrediction(ctx context.Context, organisationID, id uuid.UUID) (*service.PredictionDetail, error)
}

// GetPredictionHandler handles GET /v1/prediction/{id}.
type GetPredictionHandler struct {
	PredictionService predictionGetter
}

// NewGetPredictionHandler creates a new GetPredictionHandler.
func NewGetPredictionHandler(svc predictionGetter) *GetPredictionHandler {
	return &GetPredictionHandler{PredictionService: svc}
}

// Register registers the get prediction endpoint with the Huma API.
func (h *GetPredictionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-prediction",
		Method:      http.MethodGet,
		Path:        "/v1/prediction/{id}",
		Summary:     "Get prediction",
		Description: "Returns one prediction with its account selections.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func (h *GetPredictionHandler) handle(ctx context.Context, input *GetPredictionInput) (*GetPredictionOutput, error) {
	organisationID, err := uuid.FromString(input.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid prediction id", err)
	}

	detail, err := h.PredictionService.GetPrediction(ctx, organisationID, id)
	if errors.Is(err, service.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "prediction not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to get prediction", err)
	}

	resp := GetPredictionResponseBody{
		Prediction: predictionToAPI(detail.Prediction),
		AccountIDs: make([]string, len(detail.AccountIDs)),
	}
	for i, accountID := range detail.AccountIDs {
		resp.AccountIDs[i] = accountID.String()
	}

	return &GetPredictionOutput{Body: resp}, nil
}
