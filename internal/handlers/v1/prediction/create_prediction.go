package prediction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/forecast"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// CreatePredictionBody is the request body for running a forecast.
type CreatePredictionBody struct {
	OrganisationID     string   `json:"organisationID" required:"true" doc:"Organisation UUID"`
	Name               string   `json:"name" required:"true" minLength:"1" doc:"User-facing name"`
	Method             string   `json:"method" required:"true" enum:"moving_average,trend_analysis" doc:"Forecast method"`
	AnalysisPeriodDays int      `json:"analysisPeriodDays" minimum:"1" maximum:"365" doc:"History window length in days, default 90"`
	ForecastPeriodDays int      `json:"forecastPeriodDays" minimum:"1" maximum:"365" doc:"Projection window length in days, default 30"`
	AccountIDs         []string `json:"accountIDs" required:"true" minItems:"1" doc:"Accounts to forecast over"`
}

// CreatePredictionInput is the Huma input for running a forecast.
type CreatePredictionInput struct {
	Body CreatePredictionBody
}

// CreatePredictionResponse is the response body for running a forecast.
type CreatePredictionResponse struct {
	ID               string  `json:"id" doc:"Created prediction UUID"`
	PredictedBalance string  `json:"predictedBalance" doc:"Projected balance at the end of the forecast window"`
	ConfidenceLevel  float64 `json:"confidenceLevel" doc:"Confidence heuristic, 0-100"`
	Trend            string  `json:"trend" doc:"increasing, decreasing or stable"`
}

// CreatePredictionOutput is the Huma output for running a forecast.
type CreatePredictionOutput struct {
	Status int
	Body   CreatePredictionResponse
}

// CreatePredictionHandler handles POST /v1/prediction.
type CreatePredictionHandler struct {
	Operator *operator.OperatorDelegator
}

// NewCreatePredictionHandler creates a new CreatePredictionHandler.
func NewCreatePredictionHandler(op *operator.OperatorDelegator) *CreatePredictionHandler {
	return &CreatePredictionHandler{Operator: op}
}

// Register registers the create prediction endpoint with the Huma API.
func (h *CreatePredictionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-prediction",
		Method:      http.MethodPost,
		Path:        "/v1/prediction",
		Summary:     "Run a forecast",
		Description: "Runs the forecast engine over the selected accounts and stores the result.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func parseCreatePredictionInput(input *CreatePredictionInput) (*actions.CreatePrediction, error) {
	organisationID, err := uuid.FromString(input.Body.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}

	method := forecast.Method(input.Body.Method)
	if !method.Valid() {
		return nil, huma.NewError(http.StatusBadRequest, "method must be moving_average or trend_analysis")
	}

	accountIDs := make([]uuid.UUID, len(input.Body.AccountIDs))
	for i, raw := range input.Body.AccountIDs {
		accountIDs[i], err = uuid.FromString(raw)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
		}
	}

	analysisDays := input.Body.AnalysisPeriodDays
	if analysisDays == 0 {
		analysisDays = 90
	}
	forecastDays := input.Body.ForecastPeriodDays
	if forecastDays == 0 {
		forecastDays = 30
	}

	return &actions.CreatePrediction{
		OrganisationID: organisationID,
		Name:           input.Body.Name,
		Method:         method,
		AnalysisDays:   analysisDays,
		ForecastDays:   forecastDays,
		AccountIDs:     accountIDs,
	}, nil
}

func (h *CreatePredictionHandler) handle(ctx context.Context, input *CreatePredictionInput) (*CreatePredictionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreatePredictionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createPredictionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, actions.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "one or more accounts not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create prediction", err)
	}

	if logData != nil {
		logData.AddData("predictionID", action.CreatedID.String())
	}

	return &CreatePredictionOutput{
		Status: http.StatusCreated,
		Body: CreatePredictionResponse{
			ID:               action.CreatedID.String(),
			PredictedBalance: action.Result.PredictedBalance.String(),
			ConfidenceLevel:  action.Result.ConfidenceLevel,
			Trend:            string(action.Result.Trend),
		},
	}, nil
}
