package prediction

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Prediction records one forecast run. Immutable once created.
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

// PredictionCreate is the input for persisting a forecast run.
type PredictionCreate struct {
	OrganisationID     uuid.UUID
	Name               string
	Method             string
	AnalysisPeriodDays int
	ForecastPeriodDays int
	PredictedBalance   decimal.Decimal
	ConfidenceLevel    decimal.Decimal
	Trend              string
}

type predictionRow struct {
	ID                 uuid.UUID       `db:"id"`
	OrganisationID     uuid.UUID       `db:"organisation_id"`
	Name               string          `db:"name"`
	Method             string          `db:"method"`
	AnalysisPeriodDays int             `db:"analysis_period_days"`
	ForecastPeriodDays int             `db:"forecast_period_days"`
	PredictedBalance   decimal.Decimal `db:"predicted_balance"`
	ConfidenceLevel    decimal.Decimal `db:"confidence_level"`
	Trend              string          `db:"trend"`
	CreatedAt          time.Time       `db:"created_at"`
}

func rowToPrediction(row predictionRow) *Prediction {
	return &Prediction{
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
