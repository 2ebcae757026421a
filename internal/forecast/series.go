package forecast

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/cashflow-server/internal/storage/transaction"
)

// DailyFlow is one calendar day's net signed cash flow.
type DailyFlow struct {
	Date time.Time
	Net  decimal.Decimal
}

// DailyFlows groups transactions by calendar date into a net-flow series,
// oldest first. Days with no transactions do not appear; see ZeroFilled for
// the dense variant.
func DailyFlows(transactions []*transaction.Transaction) []DailyFlow {
	byDate := make(map[time.Time]decimal.Decimal)
	for _, tx := range transactions {
		date := dateOnly(tx.TransactionDate)
		byDate[date] = byDate[date].Add(tx.Direction.Signed(tx.Amount))
	}

	flows := make([]DailyFlow, 0, len(byDate))
	for date, net := range byDate {
		flows = append(flows, DailyFlow{Date: date, Net: net})
	}
	sort.Slice(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})
	return flows
}

// ZeroFilled expands a sparse series to every calendar day in [start, end],
// inserting zero-flow days. The regression method runs on this dense series
// so quiet days pull the trend toward zero instead of vanishing.
func ZeroFilled(flows []DailyFlow, start, end time.Time) []DailyFlow {
	byDate := make(map[time.Time]decimal.Decimal, len(flows))
	for _, f := range flows {
		byDate[dateOnly(f.Date)] = f.Net
	}

	var filled []DailyFlow
	for day := dateOnly(start); !day.After(dateOnly(end)); day = day.AddDate(0, 0, 1) {
		filled = append(filled, DailyFlow{Date: day, Net: byDate[day]})
	}
	return filled
}

// values projects the series onto float64 for the statistics.
func values(flows []DailyFlow) []float64 {
	out := make([]float64, len(flows))
	for i, f := range flows {
		out[i] = f.Net.InexactFloat64()
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
