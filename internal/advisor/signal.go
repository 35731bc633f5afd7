package advisor

import (
	"fmt"
	"time"

	"github.com/btcwatch/btcwatch/internal/config"
	"github.com/btcwatch/btcwatch/internal/indicators"
	"github.com/btcwatch/btcwatch/internal/market"
)

// Sentiment labels the crossover read on a price series.
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// Caution accompanies every signal. The advisor is a toy ruleset over public
// data, and the output must never read as investment advice.
const Caution = "Signals are derived from public data and simple indicators. " +
	"They are informational only and not investment advice; digital assets are volatile."

// crossoverBand is the tolerance around the long MA before a crossover counts.
const crossoverBand = 0.002

// Signal is the moving-average crossover read over a price series.
type Signal struct {
	Sentiment  Sentiment `json:"sentiment"`
	Headline   string    `json:"headline"`
	Price      float64   `json:"price"`
	ShortMA    float64   `json:"short_ma"`
	LongMA     float64   `json:"long_ma"`
	Volatility float64   `json:"volatility"`
	ChangePct  float64   `json:"change_pct"`
	Caution    string    `json:"caution"`
	Timestamp  time.Time `json:"timestamp"`
}

// Evaluate computes the short/long moving-average crossover signal for a
// series. The series must span at least the long window.
func Evaluate(points []market.PricePoint, cfg config.SignalConfig) (Signal, error) {
	if len(points) < cfg.LongWindow {
		return Signal{}, fmt.Errorf("need %d points to compute signals, have %d", cfg.LongWindow, len(points))
	}

	prices := market.Prices(points)
	shortMA, err := indicators.MovingAverage(prices, cfg.ShortWindow)
	if err != nil {
		return Signal{}, err
	}
	longMA, err := indicators.MovingAverage(prices, cfg.LongWindow)
	if err != nil {
		return Signal{}, err
	}

	vol := indicators.Volatility(points, cfg.LongWindow)
	change := indicators.PriceChange(points)

	sentiment := SentimentNeutral
	headline := "No clear price signal"
	switch {
	case shortMA > longMA*(1+crossoverBand) && change > 0:
		sentiment = SentimentBullish
		headline = "Short MA crossed above long MA, momentum building"
	case shortMA < longMA*(1-crossoverBand) && change < 0:
		sentiment = SentimentBearish
		headline = "Short MA crossed below long MA, watch for pullback"
	}

	if vol > 0.01*longMA {
		headline += "; volatility elevated, size positions carefully"
	}

	return Signal{
		Sentiment:  sentiment,
		Headline:   headline,
		Price:      prices[len(prices)-1],
		ShortMA:    shortMA,
		LongMA:     longMA,
		Volatility: vol,
		ChangePct:  change,
		Caution:    Caution,
		Timestamp:  time.Now().UTC(),
	}, nil
}
