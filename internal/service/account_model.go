package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/account"
)

// Account represents an account in the service layer.
type Account struct {
	ID                 uuid.UUID
	OrganisationID     uuid.UUID
	Name               string
	AccountNumber      string
	BankName           string
	Currency           string
	OpeningBalance     decimal.Decimal
	OpeningBalanceDate time.Time
	CurrentBalance     decimal.Decimal
	IsActive           bool
	CreatedAt          time.Time
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// AccountSummary is the derived view of one account's activity. DerivedBalance
// comes from the ledger, not the cached column.
type AccountSummary struct {
	Account            Account
	DerivedBalance     decimal.Decimal
	TotalCredits       decimal.Decimal
	TotalDebits        decimal.Decimal
	NetFlow            decimal.Decimal
	MonthCredits       decimal.Decimal
	MonthDebits        decimal.Decimal
	TransactionCount   int64
	RecentTransactions []Transaction
	LastImportAt       *time.Time
}

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:                 row.ID,
		OrganisationID:     row.OrganisationID,
		Name:               row.Name,
		AccountNumber:      row.AccountNumber,
		BankName:           row.BankName,
		Currency:           row.Currency,
		OpeningBalance:     row.OpeningBalance,
		OpeningBalanceDate: row.OpeningBalanceDate,
		CurrentBalance:     row.CurrentBalance,
		IsActive:           row.IsActive,
		CreatedAt:          row.CreatedAt,
	}
}
