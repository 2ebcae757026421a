package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carson-networks/cashflow-server/internal/forecast"
)

func validPredictionBody() CreatePredictionBody {
	return CreatePredictionBody{
		OrganisationID: "0c9cc3d7-4b82-4f8a-bb6f-3b0d9f0a8d11",
		Name:           "Q2 outlook",
		Method:         "moving_average",
		AccountIDs:     []string{"b1a7df10-9f41-4f30-a2f0-91c64c2f0a44"},
	}
}

func TestParseCreatePredictionInput_Defaults(t *testing.T) {
	action, err := parseCreatePredictionInput(&CreatePredictionInput{Body: validPredictionBody()})

	assert.NoError(t, err)
	assert.Equal(t, forecast.MethodMovingAverage, action.Method)
	assert.Equal(t, 90, action.AnalysisDays)
	assert.Equal(t, 30, action.ForecastDays)
	assert.Len(t, action.AccountIDs, 1)
}

func TestParseCreatePredictionInput_ExplicitWindows(t *testing.T) {
	body := validPredictionBody()
	body.Method = "trend_analysis"
	body.AnalysisPeriodDays = 180
	body.ForecastPeriodDays = 60

	action, err := parseCreatePredictionInput(&CreatePredictionInput{Body: body})

	assert.NoError(t, err)
	assert.Equal(t, forecast.MethodTrendAnalysis, action.Method)
	assert.Equal(t, 180, action.AnalysisDays)
	assert.Equal(t, 60, action.ForecastDays)
}

func TestParseCreatePredictionInput_UnknownMethod(t *testing.T) {
	body := validPredictionBody()
	body.Method = "crystal_ball"

	_, err := parseCreatePredictionInput(&CreatePredictionInput{Body: body})
	assert.Error(t, err)
}

func TestParseCreatePredictionInput_InvalidAccountID(t *testing.T) {
	body := validPredictionBody()
	body.AccountIDs = []string{"not-a-uuid"}

	_, err := parseCreatePredictionInput(&CreatePredictionInput{Body: body})
	assert.Error(t, err)
}
