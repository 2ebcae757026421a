package prediction

import (
	"time"

	"github.com/carson-networks/cashflow-server/internal/service"
)

// Prediction is the API response model for a stored forecast run.
type Prediction struct {
	ID                 string `json:"id" doc:"Prediction UUID"`
	Name               string `json:"name" doc:"User-facing name"`
	Method             string `json:"method" doc:"moving_average or trend_analysis"`
	AnalysisPeriodDays int    `json:"analysisPeriodDays" doc:"History window length in days"`
	ForecastPeriodDays int    `json:"forecastPeriodDays" doc:"Projection window length in days"`
	PredictedBalance   string `json:"predictedBalance" doc:"Projected balance at the end of the forecast window"`
	ConfidenceLevel    string `json:"confidenceLevel" doc:"Confidence heuristic, 0-100"`
	Trend              string `json:"trend" doc:"increasing, decreasing or stable"`
	CreatedAt          string `json:"createdAt" doc:"RFC3339 creation time"`
}

func predictionToAPI(pred service.Prediction) Prediction {
	return Prediction{
		ID:                 pred.ID.String(),
		Name:               pred.Name,
		Method:             pred.Method,
		AnalysisPeriodDays: pred.AnalysisPeriodDays,
		ForecastPeriodDays: pred.ForecastPeriodDays,
		PredictedBalance:   pred.PredictedBalance.String(),
		ConfidenceLevel:    pred.ConfidenceLevel.String(),
		Trend:              pred.Trend,
		CreatedAt:          pred.CreatedAt.Format(time.RFC3339),
	}
}
