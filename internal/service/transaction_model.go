package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID                   uuid.UUID
	AccountID            uuid.UUID
	TransactionDate      time.Time
	Description          string
	Amount               decimal.Decimal
	Direction            string
	Reference            string
	StatementBalance     *decimal.Decimal
	IsReconciled         bool
	ExcludedFromAnalysis bool
	CreatedAt            time.Time
}

// TransactionCursor identifies a position in a paginated result set.
type TransactionCursor struct {
	Position int
	Limit    int
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	converted := Transaction{
		ID:                   row.ID,
		AccountID:            row.AccountID,
		TransactionDate:      row.TransactionDate,
		Description:          row.Description,
		Amount:               row.Amount,
		Direction:            string(row.Direction),
		Reference:            row.Reference,
		IsReconciled:         row.IsReconciled,
		ExcludedFromAnalysis: row.ExcludedFromAnalysis,
		CreatedAt:            row.CreatedAt,
	}
	if row.StatementBalance.Valid {
		balance := row.StatementBalance.Decimal
		converted.StatementBalance = &balance
	}
	return converted
}
