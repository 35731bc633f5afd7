// Package indicators implements the small set of statistics the advisor
// derives from a price series: moving averages, last-step change, and
// trailing volatility.
package indicators

import (
	"fmt"
	"math"

	"github.com/btcwatch/btcwatch/internal/market"
)

// MovingAverage returns the arithmetic mean of the trailing window.
func MovingAverage(prices []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("window must be positive, got %d", window)
	}
	if len(prices) < window {
		return 0, fmt.Errorf("need %d points for moving average, have %d", window, len(prices))
	}

	sum := 0.0
	for _, p := range prices[len(prices)-window:] {
		sum += p
	}
	return sum / float64(window), nil
}

// PriceChange returns the percentage move between the last two observations.
// Series shorter than two points, or a zero starting price, yield 0.
func PriceChange(points []market.PricePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	start := points[len(points)-2].Price
	end := points[len(points)-1].Price
	if start == 0 {
		return 0
	}
	return (end - start) / start * 100
}

// Volatility returns the sample standard deviation of the trailing window.
// Series shorter than the window yield 0.
func Volatility(points []market.PricePoint, window int) float64 {
	if window < 2 || len(points) < window {
		return 0
	}

	prices := market.Prices(points[len(points)-window:])
	mean := 0.0
	for _, p := range prices {
		mean += p
	}
	mean /= float64(len(prices))

	variance := 0.0
	for _, p := range prices {
		d := p - mean
		variance += d * d
	}
	variance /= float64(len(prices) - 1)

	return math.Sqrt(variance)
}
