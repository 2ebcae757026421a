package account

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Account represents a bank account record. CurrentBalance is a denormalized
// cache: it is only ever written from the ledger's derived balance, never
// incremented in place.
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

// AccountCreate is the input for creating a new account. The opening balance
// is fixed at creation.
type AccountCreate struct {
	OrganisationID     uuid.UUID
	Name               string
	AccountNumber      string
	BankName           string
	Currency           string
	OpeningBalance     decimal.Decimal
	OpeningBalanceDate time.Time
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

type accountRow struct {
	ID                 uuid.UUID       `db:"id"`
	OrganisationID     uuid.UUID       `db:"organisation_id"`
	Name               string          `db:"name"`
	AccountNumber      string          `db:"account_number"`
	BankName           string          `db:"bank_name"`
	Currency           string          `db:"currency"`
	OpeningBalance     decimal.Decimal `db:"opening_balance"`
	OpeningBalanceDate time.Time       `db:"opening_balance_date"`
	CurrentBalance     decimal.Decimal `db:"current_balance"`
	IsActive           bool            `db:"is_active"`
	CreatedAt          time.Time       `db:"created_at"`
}

func rowToAccount(row accountRow) *Account {
	return &Account{
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
