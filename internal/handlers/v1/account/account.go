package account

import (
	"time"

	"github.com/carson-networks/cashflow-server/internal/service"
)

// Account is the API response model for an account.
type Account struct {
	ID                 string `json:"id" doc:"Account UUID"`
	Name               string `json:"name" doc:"Account name"`
	AccountNumber      string `json:"accountNumber" doc:"Account number at the bank"`
	BankName           string `json:"bankName" doc:"Bank name"`
	Currency           string `json:"currency" doc:"ISO currency code"`
	OpeningBalance     string `json:"openingBalance" doc:"Decimal opening balance"`
	OpeningBalanceDate string `json:"openingBalanceDate" doc:"Date the opening balance applies from (YYYY-MM-DD)"`
	CurrentBalance     string `json:"currentBalance" doc:"Cached ledger-derived balance"`
	IsActive           bool   `json:"isActive" doc:"Whether the account is active"`
	CreatedAt          string `json:"createdAt" doc:"RFC3339 creation time"`
}

func accountToAPI(acc service.Account) Account {
	return Account{
		ID:                 acc.ID.String(),
		Name:               acc.Name,
		AccountNumber:      acc.AccountNumber,
		BankName:           acc.BankName,
		Currency:           acc.Currency,
		OpeningBalance:     acc.OpeningBalance.String(),
		OpeningBalanceDate: acc.OpeningBalanceDate.Format("2006-01-02"),
		CurrentBalance:     acc.CurrentBalance.String(),
		IsActive:           acc.IsActive,
		CreatedAt:          acc.CreatedAt.Format(time.RFC3339),
	}
}
