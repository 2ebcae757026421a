package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/storage/prediction"
)

const defaultPredictionLimit = 20

type predictionReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*prediction.Prediction, error)
	ListForOrganisation(ctx context.Context, organisationID uuid.UUID, limit, offset int) ([]*prediction.Prediction, error)
	AccountIDsForPrediction(ctx context.Context, predictionID uuid.UUID) ([]uuid.UUID, error)
}

// PredictionService handles stored-forecast business logic. Creating a
// prediction runs the engine inside an operator action.
type PredictionService struct {
	predictions predictionReader
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(predictions predictionReader) *PredictionService {
	return &PredictionService{predictions: predictions}
}

// GetPrediction retrieves a prediction with its account selections.
func (s *PredictionService) GetPrediction(ctx context.Context, organisationID, id uuid.UUID) (*PredictionDetail, error) {
	row, err := s.predictions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row.OrganisationID != organisationID {
		return nil, ErrNotOwned
	}

	accountIDs, err := s.predictions.AccountIDsForPrediction(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PredictionDetail{
		Prediction: predictionFromStorage(row),
		AccountIDs: accountIDs,
	}, nil
}

// ListPredictions returns a page of the organisation's predictions, newest
// first, using cursor pagination.
func (s *PredictionService) ListPredictions(ctx context.Context, organisationID uuid.UUID, cursor *PredictionCursor) ([]Prediction, *PredictionCursor, error) {
	limit := defaultPredictionLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.predictions.ListForOrganisation(ctx, organisationID, limit+1, offset)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *PredictionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &PredictionCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	convertedPredictions := make([]Prediction, len(rows))
	for i, row := range rows {
		convertedPredictions[i] = predictionFromStorage(row)
	}

	return convertedPredictions, nextCursor, nil
}
