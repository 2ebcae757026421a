package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/cashflow-server/internal/storage/account"
	"github.com/carson-networks/cashflow-server/internal/storage/importbatch"
	"github.com/carson-networks/cashflow-server/internal/storage/prediction"
	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

type Reader struct {
	Accounts     *account.Reader
	Transactions *transaction.Reader
	ImportBatch  *importbatch.Reader
	Predictions  *prediction.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		ImportBatch:  importbatch.NewReader(exec),
		Predictions:  prediction.NewReader(exec),
	}
}
