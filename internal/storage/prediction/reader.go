package prediction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "organisation_id", "name", "method", "analysis_period_days",
	"forecast_period_days", "predicted_balance", "confidence_level", "trend",
	"created_at",
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*Prediction, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From("predictions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[predictionRow]())
	if err != nil {
		return nil, err
	}
	return rowToPrediction(row), nil
}

// ListForOrganisation returns the organisation's predictions, newest first.
func (r *Reader) ListForOrganisation(ctx context.Context, organisationID uuid.UUID, limit, offset int) ([]*Prediction, error) {
	if limit <= 0 {
		limit = 20
	}

	q := psql.Select(
		sm.Columns(columns...),
		sm.From("predictions"),
		sm.Where(psql.Quote("organisation_id").EQ(psql.Arg(organisationID))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(limit),
		sm.Offset(offset),
	)
	rows, err := bob.All(ctx, r.exec, q, scan.StructMapper[predictionRow]())
	if err != nil {
		return nil, err
	}

	result := make([]*Prediction, len(rows))
	for i, row := range rows {
		result[i] = rowToPrediction(row)
	}
	return result, nil
}

// AccountIDsForPrediction returns the accounts the prediction was run over.
func (r *Reader) AccountIDsForPrediction(ctx context.Context, predictionID uuid.UUID) ([]uuid.UUID, error) {
	q := psql.Select(
		sm.Columns("account_id"),
		sm.From("prediction_accounts"),
		sm.Where(psql.Quote("prediction_id").EQ(psql.Arg(predictionID))),
	)
	return bob.All(ctx, r.exec, q, scan.SingleColumnMapper[uuid.UUID])
}
