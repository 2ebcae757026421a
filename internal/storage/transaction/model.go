package transaction

import (
	"database/sql"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Direction tags a transaction as an inflow or an outflow. The amount itself
// is always a non-negative magnitude; sign lives here.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Signed returns the amount with the sign implied by the direction.
func (d Direction) Signed(amount decimal.Decimal) decimal.Decimal {
	if d == DirectionDebit {
		return amount.Neg()
	}
	return amount
}

// Transaction represents a transaction record.
type Transaction struct {
	ID                   uuid.UUID
	AccountID            uuid.UUID
	TransactionDate      time.Time
	Description          string
	Amount               decimal.Decimal
	Direction            Direction
	Reference            string
	StatementBalance     decimal.NullDecimal
	IsReconciled         bool
	ExcludedFromAnalysis bool
	CreatedAt            time.Time
}

// TransactionCreate is the input for creating a new transaction.
// Amount must already be a non-negative magnitude.
type TransactionCreate struct {
	AccountID            uuid.UUID
	TransactionDate      time.Time
	Description          string
	Amount               decimal.Decimal
	Direction            Direction
	Reference            omit.Val[string]
	StatementBalance     omit.Val[decimal.Decimal]
	IsReconciled         bool
	ExcludedFromAnalysis bool
}

// TransactionFilter specifies filters for listing an account's transactions.
type TransactionFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// transactionRow is the scan target for the transactions table.
type transactionRow struct {
	ID                   uuid.UUID           `db:"id"`
	AccountID            uuid.UUID           `db:"account_id"`
	TransactionDate      time.Time           `db:"transaction_date"`
	Description          string              `db:"description"`
	Amount               decimal.Decimal     `db:"amount"`
	Direction            string              `db:"direction"`
	Reference            sql.NullString      `db:"reference"`
	StatementBalance     decimal.NullDecimal `db:"statement_balance"`
	IsReconciled         bool                `db:"is_reconciled"`
	ExcludedFromAnalysis bool                `db:"excluded_from_analysis"`
	CreatedAt            time.Time           `db:"created_at"`
}

func rowToTransaction(row transactionRow) *Transaction {
	return &Transaction{
		ID:                   row.ID,
		AccountID:            row.AccountID,
		TransactionDate:      row.TransactionDate,
		Description:          row.Description,
		Amount:               row.Amount,
		Direction:            Direction(row.Direction),
		Reference:            row.Reference.String,
		StatementBalance:     row.StatementBalance,
		IsReconciled:         row.IsReconciled,
		ExcludedFromAnalysis: row.ExcludedFromAnalysis,
		CreatedAt:            row.CreatedAt,
	}
}
