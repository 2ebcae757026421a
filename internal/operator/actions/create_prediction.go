package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/forecast"
	"github.com/carson-networks/cashflow-server/internal/storage"
	"github.com/carson-networks/cashflow-server/internal/storage/prediction"
)

// CreatePrediction runs a forecast over the selected accounts and persists
// the outcome. Every selected account must belong to the organisation or the
// whole action fails.
type CreatePrediction struct {
	OrganisationID uuid.UUID
	Name           string
	Method         forecast.Method
	AnalysisDays   int
	ForecastDays   int
	AccountIDs     []uuid.UUID

	// Set on success.
	CreatedID uuid.UUID
	Result    forecast.Result

	IAction
}

func (p *CreatePrediction) Perform(ctx context.Context, writer *storage.Writer) error {
	owned, err := writer.Account.CountForOrganisation(ctx, p.OrganisationID, p.AccountIDs)
	if err != nil {
		return err
	}
	if owned != int64(len(p.AccountIDs)) {
		return ErrNotOwned
	}

	engine := forecast.NewEngine(writer.Transaction, writer.Account)
	result, err := engine.Predict(ctx, p.AccountIDs, p.AnalysisDays, p.ForecastDays, p.Method)
	if err != nil {
		return err
	}

	id, err := writer.Prediction.Insert(ctx, &prediction.PredictionCreate{
		OrganisationID:     p.OrganisationID,
		Name:               p.Name,
		Method:             string(p.Method),
		AnalysisPeriodDays: p.AnalysisDays,
		ForecastPeriodDays: p.ForecastDays,
		PredictedBalance:   result.PredictedBalance,
		ConfidenceLevel:    decimal.NewFromFloat(result.ConfidenceLevel),
		Trend:              string(result.Trend),
	})
	if err != nil {
		return err
	}

	for _, accountID := range p.AccountIDs {
		if err := writer.Prediction.InsertAccountSelection(ctx, id, accountID); err != nil {
			return err
		}
	}

	p.CreatedID = id
	p.Result = result
	return nil
}
