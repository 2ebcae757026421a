package forecast

import (
	"github.com/shopspring/decimal"
)

// TrendAnalysis fits an ordinary-least-squares line to the daily-flow series
// and projects it forward day by day. Callers pass the zero-filled series so
// every calendar day in the analysis window contributes a point.
func TrendAnalysis(flows []DailyFlow, currentBalance decimal.Decimal, forecastDays int) Result {
	if len(flows) == 0 {
		return zeroResult()
	}

	y := values(flows)
	slope, intercept, rSquared := linearRegression(y)

	n := float64(len(y))
	projected := 0.0
	for i := 1; i <= forecastDays; i++ {
		projected += slope*(n+float64(i)) + intercept
	}

	trend := TrendStable
	switch {
	case slope > 0:
		trend = TrendIncreasing
	case slope < 0:
		trend = TrendDecreasing
	}

	return Result{
		PredictedBalance: currentBalance.Add(decimal.NewFromFloat(projected)).Round(2),
		ConfidenceLevel:  round2(clamp(rSquared*100, 0, 100)),
		Trend:            trend,
	}
}

// linearRegression returns the OLS slope, intercept and R² for y indexed
// 1..n. Fewer than two points yields a flat zero-confidence line.
func linearRegression(y []float64) (slope, intercept, rSquared float64) {
	n := len(y)
	if n < 2 {
		return 0, 0, 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range y {
		x := float64(i + 1)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}

	fn := float64(n)
	slope = (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
	intercept = (sumY - slope*sumX) / fn

	yMean := sumY / fn
	var ssTotal, ssResidual float64
	for i, v := range y {
		predicted := slope*float64(i+1) + intercept
		ssTotal += (v - yMean) * (v - yMean)
		ssResidual += (v - predicted) * (v - predicted)
	}

	if ssTotal > 0 {
		rSquared = clamp(1-ssResidual/ssTotal, 0, 1)
	}
	return slope, intercept, rSquared
}
