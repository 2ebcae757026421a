package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// SetAccountActiveBody is the request body for flipping the active flag.
type SetAccountActiveBody struct {
	OrganisationID string `json:"organisationID" required:"true" doc:"Organisation UUID"`
	Active         bool   `json:"active" doc:"New active state"`
}

// SetAccountActiveInput is the Huma input for flipping the active flag.
type SetAccountActiveInput struct {
	ID   string `path:"id" doc:"Account UUID"`
	Body SetAccountActiveBody
}

// SetAccountActiveOutput is the Huma output for flipping the active flag.
type SetAccountActiveOutput struct {
	Status int
}

// SetAccountActiveHandler handles POST /v1/account/{id}/active.
type SetAccountActiveHandler struct {
	Operator *operator.OperatorDelegator
}

// NewSetAccountActiveHandler creates a new SetAccountActiveHandler.
func NewSetAccountActiveHandler(op *operator.OperatorDelegator) *SetAccountActiveHandler {
	return &SetAccountActiveHandler{Operator: op}
}

// Register registers the set account active endpoint with the Huma API.
func (h *SetAccountActiveHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "set-account-active",
		Method:      http.MethodPost,
		Path:        "/v1/account/{id}/active",
		Summary:     "Activate or deactivate an account",
		Description: "Flips the account's active flag. History is kept either way.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *SetAccountActiveHandler) handle(ctx context.Context, input *SetAccountActiveInput) (*SetAccountActiveOutput, error) {
	organisationID, err := uuid.FromString(input.Body.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	action := &actions.SetAccountActive{
		OrganisationID: organisationID,
		AccountID:      id,
		Active:         input.Body.Active,
	}
	err = h.Operator.Process(ctx, action)
	if errors.Is(err, actions.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to update account", err)
	}

	return &SetAccountActiveOutput{Status: http.StatusNoContent}, nil
}
