package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/btcwatch/btcwatch/internal/config"
	"github.com/btcwatch/btcwatch/internal/market"
)

func snapshotWithChanges(hourly, daily, weekly float64) market.Snapshot {
	return market.Snapshot{
		Change1h:  hourly,
		Change24h: daily,
		Change7d:  weekly,
	}
}

func TestRecommend_Buy(t *testing.T) {
	// Weekly +10%, daily +2%, short-term positive: momentum everywhere.
	rec := Recommend(snapshotWithChanges(1.0, 2.0, 10.0), config.Default().Advisor)

	assert.Equal(t, ActionBuy, rec.Action)
	assert.Contains(t, strings.Join(rec.Reasons, "\n"), "Momentum is positive")
	assert.Contains(t, strings.Join(rec.Reasons, "\n"), "Strong weekly performance")
}

func TestRecommend_Reduce(t *testing.T) {
	// Weekly -8%, daily -3%: downward pressure across timeframes.
	rec := Recommend(snapshotWithChanges(-1.0, -3.0, -8.0), config.Default().Advisor)

	assert.Equal(t, ActionReduce, rec.Action)
	assert.Contains(t, strings.Join(rec.Reasons, "\n"), "Downward pressure")
	assert.Contains(t, strings.Join(rec.Reasons, "\n"), "weekly drawdown")
}

func TestRecommend_HoldOnFlatMarket(t *testing.T) {
	rec := Recommend(snapshotWithChanges(0.01, -0.02, 0.05), config.Default().Advisor)

	assert.Equal(t, ActionHold, rec.Action)
	assert.Contains(t, strings.Join(rec.Reasons, "\n"), "Signals are mixed")
}

func TestRecommend_MixedSignalsHold(t *testing.T) {
	cases := []struct {
		name                  string
		hourly, daily, weekly float64
	}{
		{"hourly up daily down", 1.0, -2.0, 0},
		{"hourly down daily up", -1.0, 2.0, 0},
		{"hourly inside band", 0.1, 2.0, 0},
		{"daily inside band", 1.0, 0.3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Recommend(snapshotWithChanges(tc.hourly, tc.daily, tc.weekly), config.Default().Advisor)
			assert.Equal(t, ActionHold, rec.Action)
		})
	}
}

func TestRecommend_Totality(t *testing.T) {
	// Every input maps to exactly one of the three actions.
	values := []float64{-50, -8, -3, -0.5, -0.1, 0, 0.1, 0.5, 3, 8, 50}
	for _, h := range values {
		for _, d := range values {
			for _, w := range values {
				rec := Recommend(snapshotWithChanges(h, d, w), config.Default().Advisor)
				switch rec.Action {
				case ActionBuy, ActionHold, ActionReduce:
				default:
					t.Fatalf("unexpected action %q for (%g, %g, %g)", rec.Action, h, d, w)
				}
				assert.NotEmpty(t, rec.Reasons)
			}
		}
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	snap := snapshotWithChanges(0.4, 0.9, 6.2)
	first := Recommend(snap, config.Default().Advisor)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Recommend(snap, config.Default().Advisor))
	}
}

func TestRecommend_ReasonsCarryObservedFigures(t *testing.T) {
	rec := Recommend(snapshotWithChanges(0.5, 1.0, 6.0), config.Default().Advisor)

	joined := strings.Join(rec.Reasons, "\n")
	assert.Contains(t, joined, "1h change: +0.50%")
	assert.Contains(t, joined, "24h change: +1.00%")
	assert.Contains(t, joined, "7d change: +6.00%")
}
