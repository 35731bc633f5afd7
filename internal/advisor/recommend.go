// Package advisor turns market data into human-readable guidance. Both
// engines are pure functions: the same input always yields the same
// recommendation or signal.
package advisor

import (
	"fmt"

	"github.com/btcwatch/btcwatch/internal/config"
	"github.com/btcwatch/btcwatch/internal/market"
)

// Action is the tri-state advice label.
type Action string

const (
	ActionBuy    Action = "BUY"
	ActionHold   Action = "HOLD"
	ActionReduce Action = "REDUCE"
)

// Recommendation pairs an action with the rationale behind it. Reasons are
// ordered: the observed momentum figures first, then the drawn conclusions.
type Recommendation struct {
	Action  Action   `json:"action"`
	Reasons []string `json:"reasons"`
}

// Recommend classifies a snapshot into BUY/HOLD/REDUCE using symmetric
// thresholds on the short-term and daily momentum. The weekly change never
// flips the action; it only adds context to the rationale.
func Recommend(snap market.Snapshot, cfg config.AdvisorConfig) Recommendation {
	reasons := []string{
		fmt.Sprintf("1h change: %+.2f%%", snap.Change1h),
		fmt.Sprintf("24h change: %+.2f%%", snap.Change24h),
		fmt.Sprintf("7d change: %+.2f%%", snap.Change7d),
	}

	var action Action
	switch {
	case snap.Change1h > cfg.HourlyThreshold && snap.Change24h > cfg.DailyThreshold:
		action = ActionBuy
		reasons = append(reasons, "Momentum is positive across multiple timeframes.")
	case snap.Change1h < -cfg.HourlyThreshold && snap.Change24h < -cfg.DailyThreshold:
		action = ActionReduce
		reasons = append(reasons, "Downward pressure visible in short-term and daily moves.")
	default:
		action = ActionHold
		reasons = append(reasons, "Signals are mixed; waiting for clarity may reduce risk.")
	}

	if snap.Change7d > cfg.WeeklyThreshold {
		reasons = append(reasons, "Strong weekly performance suggests upward trend.")
	} else if snap.Change7d < -cfg.WeeklyThreshold {
		reasons = append(reasons, "Sustained weekly drawdown indicates elevated downside risk.")
	}

	return Recommendation{Action: action, Reasons: reasons}
}
