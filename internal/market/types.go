package market

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot holds the Bitcoin market statistics retrieved for a single run.
// Monetary fields are decimals; momentum percentages may be negative.
type Snapshot struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Price     decimal.Decimal `json:"price"`
	High24h   decimal.Decimal `json:"high_24h"`
	Low24h    decimal.Decimal `json:"low_24h"`
	MarketCap decimal.Decimal `json:"market_cap"`
	Volume24h decimal.Decimal `json:"volume_24h"`

	// Percentage price changes over the short/daily/weekly windows.
	Change1h  float64 `json:"change_pct_1h"`
	Change24h float64 `json:"change_pct_24h"`
	Change7d  float64 `json:"change_pct_7d"`
}

// PricePoint is a single price/time observation.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// SortPoints orders a series by observation time, oldest first.
func SortPoints(points []PricePoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
}

// Prices extracts the price column from a series.
func Prices(points []PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Price
	}
	return out
}
