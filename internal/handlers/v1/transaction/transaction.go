package transaction

import (
	"time"

	"github.com/carson-networks/cashflow-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID                   string `json:"id" doc:"Transaction UUID"`
	AccountID            string `json:"accountID" doc:"Account UUID"`
	TransactionDate      string `json:"transactionDate" doc:"Calendar date (YYYY-MM-DD)"`
	Description          string `json:"description" doc:"Statement description"`
	Amount               string `json:"amount" doc:"Non-negative decimal magnitude"`
	Direction            string `json:"direction" doc:"credit or debit"`
	Reference            string `json:"reference,omitempty" doc:"Optional statement reference"`
	StatementBalance     string `json:"statementBalance,omitempty" doc:"Balance declared by the statement, verbatim"`
	IsReconciled         bool   `json:"isReconciled" doc:"Whether the declared balance matched the ledger"`
	ExcludedFromAnalysis bool   `json:"excludedFromAnalysis" doc:"Whether forecasts skip this transaction"`
	CreatedAt            string `json:"createdAt" doc:"RFC3339 creation time"`
}

// TransactionToAPI converts a service-layer transaction to the API model.
func TransactionToAPI(tx service.Transaction) Transaction {
	converted := Transaction{
		ID:                   tx.ID.String(),
		AccountID:            tx.AccountID.String(),
		TransactionDate:      tx.TransactionDate.Format("2006-01-02"),
		Description:          tx.Description,
		Amount:               tx.Amount.String(),
		Direction:            tx.Direction,
		Reference:            tx.Reference,
		IsReconciled:         tx.IsReconciled,
		ExcludedFromAnalysis: tx.ExcludedFromAnalysis,
		CreatedAt:            tx.CreatedAt.Format(time.RFC3339),
	}
	if tx.StatementBalance != nil {
		converted.StatementBalance = tx.StatementBalance.String()
	}
	return converted
}
