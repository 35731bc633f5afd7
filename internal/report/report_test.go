package report

import (
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/btcwatch/btcwatch/internal/advisor"
	"github.com/btcwatch/btcwatch/internal/market"
)

func init() {
	// Keep assertions free of escape codes.
	color.NoColor = true
}

func sampleSnapshot() market.Snapshot {
	return market.Snapshot{
		FetchedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Price:     decimal.NewFromInt(50000),
		High24h:   decimal.NewFromInt(51000),
		Low24h:    decimal.NewFromInt(49000),
		MarketCap: decimal.NewFromInt(1000000),
		Volume24h: decimal.NewFromInt(10000),
	}
}

func TestRender_ContainsKeyLines(t *testing.T) {
	rec := advisor.Recommendation{Action: advisor.ActionHold, Reasons: []string{"Test reason"}}
	out := Render(sampleSnapshot(), rec)

	assert.Contains(t, out, "BTC Market Snapshot")
	assert.Contains(t, out, "Fetched at: 2024-01-01T00:00:00Z")
	assert.Contains(t, out, "Price: $50,000.00")
	assert.Contains(t, out, "24h High / Low: $51,000.00 / $49,000.00")
	assert.Contains(t, out, "Market Cap: $1,000,000")
	assert.Contains(t, out, "24h Volume: $10,000")
	assert.Contains(t, out, "Recommended action: HOLD")
	assert.Contains(t, out, "- Test reason")
}

func TestRenderSignal_ContainsKeyLines(t *testing.T) {
	sig := advisor.Signal{
		Sentiment:  advisor.SentimentBullish,
		Headline:   "Short MA crossed above long MA, momentum building",
		Price:      47900,
		ShortMA:    46950,
		LongMA:     44950,
		Volatility: 1732.05,
		ChangePct:  0.21,
		Caution:    advisor.Caution,
		Timestamp:  time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	out := RenderSignal(sig, 20, 60)
	assert.Contains(t, out, "[2024-01-01T12:00:00Z] Price: $47900.00")
	assert.Contains(t, out, "Short MA (20): $46950.00 | Long MA (60): $44950.00")
	assert.Contains(t, out, "Change: +0.21% | Volatility: 1732.05")
	assert.Contains(t, out, "Signal: bullish | Short MA crossed above long MA")
	assert.Contains(t, out, "not investment advice")
}

func TestMoney(t *testing.T) {
	cases := []struct {
		in     string
		places int32
		want   string
	}{
		{"0", 2, "0.00"},
		{"999", 0, "999"},
		{"1000", 0, "1,000"},
		{"50000", 2, "50,000.00"},
		{"1234567.891", 2, "1,234,567.89"},
		{"-1234567", 0, "-1,234,567"},
		{"1150000000000", 0, "1,150,000,000,000"},
	}
	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, Money(d, tc.places), "Money(%s, %d)", tc.in, tc.places)
	}
}
