package hyperliquid

import (
	"github.com/web3-frozen/hypurr-exporter/internal/upstream"
)

const dailyPeriod = "day"

// DailyEntry returns the "day" entry of a portfolio.
func DailyEntry(entries []PortfolioEntry) (*PortfolioEntry, error) {
	for i := range entries {
		if entries[i].Period == dailyPeriod {
			return &entries[i], nil
		}
	}
	return nil, upstream.ErrNoDailyPeriod
}

// Latest returns the point with the greatest timestamp regardless of order.
// On a tie the first one encountered wins.
func Latest(history []HistoryPoint) (HistoryPoint, bool) {
	if len(history) == 0 {
		return HistoryPoint{}, false
	}
	best := history[0]
	for _, p := range history[1:] {
		if p.Timestamp > best.Timestamp {
			best = p
		}
	}
	return best, true
}

// LatestValue parses the most recent value of history.
func LatestValue(field string, history []HistoryPoint) (float64, error) {
	p, ok := Latest(history)
	if !ok {
		return 0, upstream.Field(field, upstream.ErrEmptyHistory)
	}
	return upstream.ParseDecimal(field, p.Value)
}

// Current holds the latest account value and PnL of a daily entry.
type Current struct {
	AccountValue float64
	PnL          float64
}

// CurrentDaily resolves the current account value and PnL from a portfolio.
func CurrentDaily(entries []PortfolioEntry) (Current, error) {
	day, err := DailyEntry(entries)
	if err != nil {
		return Current{}, err
	}
	av, err := LatestValue("accountValueHistory", day.Data.AccountValueHistory)
	if err != nil {
		return Current{}, err
	}
	pnl, err := LatestValue("pnlHistory", day.Data.PnLHistory)
	if err != nil {
		return Current{}, err
	}
	return Current{AccountValue: av, PnL: pnl}, nil
}
