package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// ExcludeTransactionBody is the request body for toggling analysis exclusion.
type ExcludeTransactionBody struct {
	OrganisationID string `json:"organisationID" required:"true" doc:"Organisation UUID"`
	Excluded       bool   `json:"excluded" doc:"Whether forecasts should skip this transaction"`
}

// ExcludeTransactionInput is the Huma input for toggling analysis exclusion.
type ExcludeTransactionInput struct {
	ID   string `path:"id" doc:"Transaction UUID"`
	Body ExcludeTransactionBody
}

// ExcludeTransactionOutput is the Huma output for toggling analysis exclusion.
type ExcludeTransactionOutput struct {
	Status int
}

// ExcludeTransactionHandler handles POST /v1/transaction/{id}/exclude.
type ExcludeTransactionHandler struct {
	Operator *operator.OperatorDelegator
}

// NewExcludeTransactionHandler creates a new ExcludeTransactionHandler.
func NewExcludeTransactionHandler(op *operator.OperatorDelegator) *ExcludeTransactionHandler {
	return &ExcludeTransactionHandler{Operator: op}
}

// Register registers the exclude transaction endpoint with the Huma API.
func (h *ExcludeTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "exclude-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction/{id}/exclude",
		Summary:     "Exclude or include a transaction in analysis",
		Description: "Toggles the excluded-from-analysis flag. The ledger balance is unaffected.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *ExcludeTransactionHandler) handle(ctx context.Context, input *ExcludeTransactionInput) (*ExcludeTransactionOutput, error) {
	organisationID, err := uuid.FromString(input.Body.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	action := &actions.ExcludeTransaction{
		OrganisationID: organisationID,
		TransactionID:  id,
		Excluded:       input.Body.Excluded,
	}
	err = h.Operator.Process(ctx, action)
	if errors.Is(err, actions.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "transaction not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update transaction", err)
	}

	return &ExcludeTransactionOutput{Status: http.StatusNoContent}, nil
}
