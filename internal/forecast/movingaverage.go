package forecast

import (
	"math"

	"github.com/shopspring/decimal"
)

// MovingAverage projects the balance forward by the mean daily flow.
//
// The divisor is the number of distinct days that had flow, not the window
// length, so a sparse window inflates the average. That matches the reference
// behaviour and is deliberately preserved; the zero-filled treatment lives in
// TrendAnalysis only.
func MovingAverage(flows []DailyFlow, currentBalance decimal.Decimal, forecastDays int) Result {
	if len(flows) == 0 {
		return zeroResult()
	}

	y := values(flows)
	avg := mean(y)
	stdDev := populationStdDev(y, avg)

	projected := avg * float64(forecastDays)
	predicted := currentBalance.Add(decimal.NewFromFloat(projected)).Round(2)

	return Result{
		PredictedBalance: predicted,
		ConfidenceLevel:  movingAverageConfidence(stdDev, avg),
		Trend:            flowTrend(y, avg),
	}
}

// movingAverageConfidence converts the coefficient of variation to a 0-100
// score: lower variation means higher confidence. With zero average flow the
// coefficient is undefined, so confidence defaults to 50.
func movingAverageConfidence(stdDev, avg float64) float64 {
	if avg == 0 {
		return 50
	}

	cv := stdDev / math.Abs(avg)
	return round2(clamp(100-cv*50, 0, 100))
}

// flowTrend compares the mean of the last 7 entries against the overall
// mean. Differences under 10% of the overall mean's magnitude read as stable.
func flowTrend(y []float64, avg float64) Trend {
	recent := y
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}
	recentAvg := mean(recent)

	threshold := math.Abs(avg) * 0.1
	if math.Abs(recentAvg-avg) < threshold {
		return TrendStable
	}
	if recentAvg > avg {
		return TrendIncreasing
	}
	return TrendDecreasing
}

func mean(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}

func populationStdDev(y []float64, avg float64) float64 {
	if len(y) < 2 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range y {
		sumSquares += (v - avg) * (v - avg)
	}
	return math.Sqrt(sumSquares / float64(len(y)))
}

func clamp(v, low, high float64) float64 {
	return math.Min(high, math.Max(low, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
