package service

import (
	"errors"

	"github.com/carson-networks/cashflow-server/internal/storage"
)

// Service holds all read-path services. Writes go through the operator.
type Service struct {
	Account     *AccountService
	Transaction *TransactionService
	Import      *ImportService
	Prediction  *PredictionService
}

// NewService creates a new Service over the storage read side.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Account:     NewAccountService(store.Reader.Accounts, store.Reader.Transactions, store.Reader.ImportBatch),
		Transaction: NewTransactionService(store.Reader.Accounts, store.Reader.Transactions),
		Import:      NewImportService(store.Reader.ImportBatch),
		Prediction:  NewPredictionService(store.Reader.Predictions),
	}
}

// ErrNotOwned marks a lookup that resolved to another organisation's
// resource. Handlers translate it to a not-found so tenants cannot probe
// for foreign ids.
var ErrNotOwned = errors.New("resource does not belong to organisation")
