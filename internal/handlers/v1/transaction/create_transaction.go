package transaction

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
	storagetx "github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	OrganisationID  string `json:"organisationID" required:"true" doc:"Organisation UUID"`
	AccountID       string `json:"accountID" required:"true" doc:"Account UUID"`
	TransactionDate string `json:"transactionDate" required:"true" doc:"Calendar date (YYYY-MM-DD)"`
	Description     string `json:"description" required:"true" minLength:"1" doc:"Transaction description"`
	Amount          string `json:"amount" required:"true" doc:"Positive decimal magnitude"`
	Direction       string `json:"direction" required:"true" enum:"credit,debit" doc:"credit or debit"`
	Reference       string `json:"reference,omitempty" doc:"Optional reference"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionResponse is the response body for creating a transaction.
type CreateTransactionResponse struct {
	ID string `json:"id" doc:"Created transaction UUID"`
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int
	Body   CreateTransactionResponse
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	Operator *operator.OperatorDelegator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(op *operator.OperatorDelegator) *CreateTransactionHandler {
	return &CreateTransactionHandler{Operator: op}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Create transaction",
		Description: "Creates a manual transaction and refreshes the account's cached balance from the ledger.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) (*actions.CreateTransaction, error) {
	organisationID, err := uuid.FromString(input.Body.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	accountID, err := uuid.FromString(input.Body.AccountID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid accountID", err)
	}

	transactionDate, err := time.Parse("2006-01-02", input.Body.TransactionDate)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
	}

	amount, err := decimal.NewFromString(input.Body.Amount)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid amount", err)
	}
	if !amount.IsPositive() {
		return nil, huma.NewError(http.StatusBadRequest, "amount must be positive")
	}

	direction := storagetx.Direction(input.Body.Direction)
	if direction != storagetx.DirectionCredit && direction != storagetx.DirectionDebit {
		return nil, huma.NewError(http.StatusBadRequest, "direction must be credit or debit")
	}

	return &actions.CreateTransaction{
		OrganisationID:  organisationID,
		AccountID:       accountID,
		TransactionDate: transactionDate,
		Description:     input.Body.Description,
		Amount:          amount,
		Direction:       direction,
		Reference:       input.Body.Reference,
	}, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, actions.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", action.CreatedID.String())
	}

	return &CreateTransactionOutput{
		Status: http.StatusCreated,
		Body:   CreateTransactionResponse{ID: action.CreatedID.String()},
	}, nil
}
