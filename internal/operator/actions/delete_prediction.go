package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

type DeletePrediction struct {
	OrganisationID uuid.UUID
	PredictionID   uuid.UUID

	IAction
}

func (d *DeletePrediction) Perform(ctx context.Context, writer *storage.Writer) error {
	pred, err := writer.Prediction.FindByID(ctx, d.PredictionID)
	if err != nil {
		return err
	}
	if pred.OrganisationID != d.OrganisationID {
		return ErrNotOwned
	}

	return writer.Prediction.Delete(ctx, d.PredictionID)
}
