package forecast

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTrendAnalysis_PerfectLine(t *testing.T) {
	// y = 10x fits exactly: slope 10, intercept 0, R-squared 1. Projecting 3
	// days past n=5 adds 10*(6+7+8) = 210.
	result := TrendAnalysis(flowsOf("10", "20", "30", "40", "50"), decimal.RequireFromString("100.00"), 3)

	assert.True(t, decimal.RequireFromString("310.00").Equal(result.PredictedBalance))
	assert.InDelta(t, 100, result.ConfidenceLevel, 0.001)
	assert.Equal(t, TrendIncreasing, result.Trend)
}

func TestTrendAnalysis_DecreasingLine(t *testing.T) {
	result := TrendAnalysis(flowsOf("50", "40", "30", "20", "10"), decimal.RequireFromString("1000.00"), 2)

	// slope -10, intercept 60: days 6 and 7 project 0 and -10.
	assert.True(t, decimal.RequireFromString("990.00").Equal(result.PredictedBalance))
	assert.Equal(t, TrendDecreasing, result.Trend)
}

func TestTrendAnalysis_FlatSeries(t *testing.T) {
	// Zero variance means R-squared is undefined; confidence reads 0 and the
	// flat line still projects forward.
	result := TrendAnalysis(flowsOf("5", "5", "5", "5"), decimal.RequireFromString("100.00"), 4)

	assert.True(t, decimal.RequireFromString("120.00").Equal(result.PredictedBalance))
	assert.Equal(t, 0.0, result.ConfidenceLevel)
	assert.Equal(t, TrendStable, result.Trend)
}

func TestTrendAnalysis_SinglePoint(t *testing.T) {
	result := TrendAnalysis(flowsOf("25"), decimal.RequireFromString("80.00"), 10)

	assert.True(t, decimal.RequireFromString("80.00").Equal(result.PredictedBalance), "one point fits a flat zero line")
	assert.Equal(t, 0.0, result.ConfidenceLevel)
	assert.Equal(t, TrendStable, result.Trend)
}

func TestTrendAnalysis_EmptySeries(t *testing.T) {
	result := TrendAnalysis(nil, decimal.RequireFromString("500.00"), 30)
	assert.True(t, result.PredictedBalance.IsZero())
	assert.Equal(t, 0.0, result.ConfidenceLevel)
	assert.Equal(t, TrendStable, result.Trend)
}
