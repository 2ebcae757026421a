package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
)

// CreateAccountBody is the request body for creating an account.
type CreateAccountBody struct {
	OrganisationID     string `json:"organisationID" required:"true" doc:"Organisation UUID"`
	Name               string `json:"name" required:"true" minLength:"1" doc:"Account name"`
	AccountNumber      string `json:"accountNumber" doc:"Account number at the bank"`
	BankName           string `json:"bankName" doc:"Bank name"`
	Currency           string `json:"currency" doc:"ISO currency code, defaults to GBP"`
	OpeningBalance     string `json:"openingBalance,omitempty" doc:"Decimal opening balance (e.g. '1234.56'), defaults to 0"`
	OpeningBalanceDate string `json:"openingBalanceDate,omitempty" doc:"YYYY-MM-DD date the opening balance applies from, defaults to today"`
}

// CreateAccountInput is the Huma input for creating an account.
type CreateAccountInput struct {
	Body CreateAccountBody
}

// CreateAccountResponse is the response body for creating an account.
type CreateAccountResponse struct {
	ID string `json:"id" doc:"Created account UUID"`
}

// CreateAccountOutput is the Huma output for creating an account.
type CreateAccountOutput struct {
	Status int
	Body   CreateAccountResponse
}

// CreateAccountHandler handles POST /v1/account.
type CreateAccountHandler struct {
	Operator *operator.OperatorDelegator
}

// NewCreateAccountHandler creates a new CreateAccountHandler.
func NewCreateAccountHandler(op *operator.OperatorDelegator) *CreateAccountHandler {
	return &CreateAccountHandler{Operator: op}
}

// Register registers the create account endpoint with the Huma API.
func (h *CreateAccountHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-account",
		Method:      http.MethodPost,
		Path:        "/v1/account",
		Summary:     "Create an account",
		Description: "Creates a new bank account for the organisation.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func parseCreateAccountInput(input *CreateAccountInput) (*actions.CreateAccount, error) {
	organisationID, err := uuid.FromString(input.Body.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}

	openingBalanceStr := input.Body.OpeningBalance
	if openingBalanceStr == "" {
		openingBalanceStr = "0"
	}
	openingBalance, err := decimal.NewFromString(openingBalanceStr)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid openingBalance", err)
	}

	openingBalanceDate := time.Now().UTC().Truncate(24 * time.Hour)
	if input.Body.OpeningBalanceDate != "" {
		openingBalanceDate, err = time.Parse("2006-01-02", input.Body.OpeningBalanceDate)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid openingBalanceDate", err)
		}
	}

	currency := input.Body.Currency
	if currency == "" {
		currency = "GBP"
	}

	return &actions.CreateAccount{
		OrganisationID:     organisationID,
		Name:               input.Body.Name,
		AccountNumber:      input.Body.AccountNumber,
		BankName:           input.Body.BankName,
		Currency:           currency,
		OpeningBalance:     openingBalance,
		OpeningBalanceDate: openingBalanceDate,
	}, nil
}

func (h *CreateAccountHandler) handle(ctx context.Context, input *CreateAccountInput) (*CreateAccountOutput, error) {
	logData := logging.GetLogData(ctx)

	action, err := parseCreateAccountInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createAccountMs")
	}
	err = h.Operator.Process(ctx, action)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to create account", err)
	}

	if logData != nil {
		logData.AddData("accountID", action.CreatedID.String())
	}

	return &CreateAccountOutput{
		Status: http.StatusCreated,
		Body:   CreateAccountResponse{ID: action.CreatedID.String()},
	}, nil
}
