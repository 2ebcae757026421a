package account

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/cashflow-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/service"
)

// AccountSummaryInput is the Huma input for the account summary.
type AccountSummaryInput struct {
	ID             string `path:"id" doc:"Account UUID"`
	OrganisationID string `query:"organisationID" required:"true" doc:"Organisation UUID"`
}

// AccountSummaryResponseBody is the derived activity view of one account.
type AccountSummaryResponseBody struct {
	Account            Account                   `json:"account" doc:"The account"`
	DerivedBalance     string                    `json:"derivedBalance" doc:"Balance recomputed from the ledger"`
	TotalCredits       string                    `json:"totalCredits" doc:"All-time inflow total"`
	TotalDebits        string                    `json:"totalDebits" doc:"All-time outflow total"`
	NetFlow            string                    `json:"netFlow" doc:"Total credits minus total debits"`
	MonthCredits       string                    `json:"monthCredits" doc:"Inflow total for the current calendar month"`
	MonthDebits        string                    `json:"monthDebits" doc:"Outflow total for the current calendar month"`
	TransactionCount   int64                     `json:"transactionCount" doc:"Number of transactions held"`
	RecentTransactions []transaction.Transaction `json:"recentTransactions" doc:"Newest transactions"`
	LastImportAt       string                    `json:"lastImportAt,omitempty" doc:"RFC3339 time of the last completed import"`
}

// AccountSummaryOutput is the Huma output for the account summary.
type AccountSummaryOutput struct {
	Body AccountSummaryResponseBody
}

// accountSummariser is the interface for building account summaries.
type accountSummariser interface {
	Summary(ctx context.Context, organisationID, id uuid.UUID) (*service.AccountSummary, error)
}

// AccountSummaryHandler handles GET /v1/account/{id}/summary.
type AccountSummaryHandler struct {
	AccountService accountSummariser
}

// NewAccountSummaryHandler creates a new AccountSummaryHandler.
func NewAccountSummaryHandler(svc accountSummariser) *AccountSummaryHandler {
	return &AccountSummaryHandler{AccountService: svc}
}

// Register registers the account summary endpoint with the Huma API.
func (h *AccountSummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "account-summary",
		Method:      http.MethodGet,
		Path:        "/v1/account/{id}/summary",
		Summary:     "Account summary",
		Description: "Returns the account's ledger-derived balance and activity totals.",
		Tags:        []string{"Accounts"},
	}, h.handle)
}

func (h *AccountSummaryHandler) handle(ctx context.Context, input *AccountSummaryInput) (*AccountSummaryOutput, error) {
	logData := logging.GetLogData(ctx)

	organisationID, err := uuid.FromString(input.OrganisationID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid organisationID", err)
	}
	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid account id", err)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("accountSummaryMs")
	}
	summary, err := h.AccountService.Summary(ctx, organisationID, id)
	if stopTimer != nil {
		stopTimer()
	}
	if errors.Is(err, service.ErrNotOwned) {
		return nil, huma.NewError(http.StatusNotFound, "account not found")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to build account summary", err)
	}

	resp := AccountSummaryResponseBody{
		Account:            accountToAPI(summary.Account),
		DerivedBalance:     summary.DerivedBalance.String(),
		TotalCredits:       summary.TotalCredits.String(),
		TotalDebits:        summary.TotalDebits.String(),
		NetFlow:            summary.NetFlow.String(),
		MonthCredits:       summary.MonthCredits.String(),
		MonthDebits:        summary.MonthDebits.String(),
		TransactionCount:   summary.TransactionCount,
		RecentTransactions: make([]transaction.Transaction, len(summary.RecentTransactions)),
	}
	for i, tx := range summary.RecentTransactions {
		resp.RecentTransactions[i] = transaction.TransactionToAPI(tx)
	}
	if summary.LastImportAt != nil {
		resp.LastImportAt = summary.LastImportAt.Format(time.RFC3339)
	}

	return &AccountSummaryOutput{Body: resp}, nil
}
