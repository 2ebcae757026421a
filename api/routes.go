package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/cashflow-server/internal/handlers/v1/account"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/importbatch"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/prediction"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/status"
	"github.com/carson-networks/cashflow-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/cashflow-server/internal/logging"
	"github.com/carson-networks/cashflow-server/internal/operator"
	"github.com/carson-networks/cashflow-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("cashflow-server", "1.0.0"))
	humaAPI.UseMiddleware(r.logDataMiddleware)

	account.NewCreateAccountHandler(r.Operator).Register(humaAPI)
	account.NewListAccountsHandler(r.Service.Account).Register(humaAPI)
	account.NewGetAccountHandler(r.Service.Account).Register(humaAPI)
	account.NewAccountSummaryHandler(r.Service.Account).Register(humaAPI)
	account.NewSetAccountActiveHandler(r.Operator).Register(humaAPI)

	transaction.NewCreateTransactionHandler(r.Operator).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewExcludeTransactionHandler(r.Operator).Register(humaAPI)

	importbatch.NewImportStatementHandler(r.Operator).Register(humaAPI)
	importbatch.NewListImportsHandler(r.Service.Import).Register(humaAPI)
	importbatch.NewGetImportHandler(r.Service.Import).Register(humaAPI)

	prediction.NewCreatePredictionHandler(r.Operator).Register(humaAPI)
	prediction.NewListPredictionsHandler(r.Service.Prediction).Register(humaAPI)
	prediction.NewGetPredictionHandler(r.Service.Prediction).Register(humaAPI)
	prediction.NewDeletePredictionHandler(r.Operator).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// logDataMiddleware attaches a fresh LogData to every huma request and logs
// the accumulated fields once the operation finishes.
func (r *Rest) logDataMiddleware(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	logData.AddData("path", ctx.URL().Path)

	endTimer := logData.AddTiming("duration")
	next(huma.WithValue(ctx, logging.LogDataKey, logData))
	endTimer()

	logData.Log().Infof("Handler.%v.Complete", ctx.Operation().OperationID)
}
