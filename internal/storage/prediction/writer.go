package prediction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert persists a forecast run and returns its ID.
func (w *Writer) Insert(ctx context.Context, create *PredictionCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("predictions",
			"organisation_id", "name", "method", "analysis_period_days",
			"forecast_period_days", "predicted_balance", "confidence_level",
			"trend",
		),
		im.Values(psql.Arg(
			create.OrganisationID,
			create.Name,
			create.Method,
			create.AnalysisPeriodDays,
			create.ForecastPeriodDays,
			create.PredictedBalance,
			create.ConfidenceLevel,
			create.Trend,
		)),
		im.Returning("id"),
	)
	return bob.One(ctx, w.tx, q, scan.SingleColumnMapper[uuid.UUID])
}

// InsertAccountSelection links an account into the prediction's account set.
func (w *Writer) InsertAccountSelection(ctx context.Context, predictionID, accountID uuid.UUID) error {
	q := psql.Insert(
		im.Into("prediction_accounts", "prediction_id", "account_id"),
		im.Values(psql.Arg(predictionID, accountID)),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}

// Delete removes a prediction and its account selections.
func (w *Writer) Delete(ctx context.Context, id uuid.UUID) error {
	selections := psql.Delete(
		dm.From("prediction_accounts"),
		dm.Where(psql.Quote("prediction_id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, selections); err != nil {
		return err
	}

	q := psql.Delete(
		dm.From("predictions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := bob.Exec(ctx, w.tx, q)
	return err
}
