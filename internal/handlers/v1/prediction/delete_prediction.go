package prediction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// DeletePredictionInput is the Huma input for deleting a prediction.
type DeletePredictionInput struct {
	ID             string `path:"id" doc:"Prediction UUID"`
	OrganisationID string `query:"organisationID" required:"true" doc:"Organisation UUID"`
}

// DeletePredictionOutput is the Huma output for deleting a prediction.
type DeletePredictionOutput struct {
	Status int
}

// DeletePredictionHandler handles DELETE /v1/prediction/{id}.
type DeletePredictionHandler struct {
	Operator *operator.OperatorDelegator
}

// NewDeletePredictionHandler creates a new DeletePredictionHandler.
func NewDeletePredictionHandler(op *operator.OperatorDelegator) *DeletePredictionHandler {
	return &DeletePredictionHandler{Operator: op}
}

// Register registers the delete prediction endpoint with the Huma API.
func (h *DeletePredictionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-prediction",
		Method:      http.MethodDelete,
		Path:        "/v1/prediction/{id}",
		Summary:     "Delete prediction",
		Description: "Deletes a prediction and its account selections.",
		Tags:        []string{"Predictions"},
	}, h.handle)
}

func (h *DeletePredictionHandler) handle(ctx context.Context, input *DeletePredictionInput) (*DeletePredictionOutput, error) {
	organisationID, err := uuid.FromString(input.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid prediction id", err)
	}

	action := &actions.DeletePrediction{
		OrganisationID: organisationID,
		PredictionID:   id,
	}
	err = h.Operator.Process(ctx, action)
	if errors.Is(err, actions.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "prediction not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to delete prediction", err)
	}

	return &DeletePredictionOutput{Status: http.StatusNoContent}, nil
}
