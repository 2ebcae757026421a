package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/prediction"
)

// Prediction represents a stored forecast run in the service layer.
type Prediction struct {
	ID                 uuid.UUID
	OrganisationID     uuid.UUID
	Name               string
	Method             string
	AnalysisPeriodDays int
	ForecastPeriodDays int
	PredictedBalance   decimal.Decimal
	ConfidenceLevel    decimal.Decimal
	Trend              string
	CreatedAt          time.Time
}

// PredictionDetail is a prediction together with its account selections.
type PredictionDetail struct {
	Prediction Prediction
	AccountIDs []uuid.UUID
}

// PredictionCursor identifies a position in a paginated result set.
type PredictionCursor struct {
	Position int
	Limit    int
}

func predictionFromStorage(row *prediction.Prediction) Prediction {
	return Prediction{
		ID:                 row.ID,
		OrganisationID:     row.OrganisationID,
		Name:               row.Name,
		Method:             row.Method,
		AnalysisPeriodDays: row.AnalysisPeriodDays,
		ForecastPeriodDays: row.ForecastPeriodDays,
		PredictedBalance:   row.PredictedBalance,
		ConfidenceLevel:    row.ConfidenceLevel,
		Trend:              row.Trend,
		CreatedAt:          row.CreatedAt,
	}
}
