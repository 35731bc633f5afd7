// Package report renders advisor output for the terminal. Color is driven
// by the fatih/color global switch, which the CLI layer flips off for
// --no-color and non-TTY output.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/btcwatch/btcwatch/internal/advisor"
	"github.com/btcwatch/btcwatch/internal/market"
)

var (
	header = color.New(color.FgCyan, color.Bold)

	actionColors = map[advisor.Action]*color.Color{
		advisor.ActionBuy:    color.New(color.FgGreen, color.Bold),
		advisor.ActionHold:   color.New(color.FgYellow, color.Bold),
		advisor.ActionReduce: color.New(color.FgRed, color.Bold),
	}

	sentimentColors = map[advisor.Sentiment]*color.Color{
		advisor.SentimentBullish: color.New(color.FgGreen),
		advisor.SentimentBearish: color.New(color.FgRed),
		advisor.SentimentNeutral: color.New(color.FgYellow),
	}
)

// Render produces the one-shot snapshot report.
func Render(snap market.Snapshot, rec advisor.Recommendation) string {
	var b strings.Builder
	b.WriteString(header.Sprint("BTC Market Snapshot"))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "Fetched at: %s\n", snap.FetchedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Price: $%s\n", Money(snap.Price, 2))
	fmt.Fprintf(&b, "24h High / Low: $%s / $%s\n", Money(snap.High24h, 2), Money(snap.Low24h, 2))
	fmt.Fprintf(&b, "Market Cap: $%s\n", Money(snap.MarketCap, 0))
	fmt.Fprintf(&b, "24h Volume: $%s\n", Money(snap.Volume24h, 0))
	b.WriteByte('\n')

	actionColor, ok := actionColors[rec.Action]
	if !ok {
		actionColor = color.New(color.Reset)
	}
	fmt.Fprintf(&b, "Recommended action: %s\n", actionColor.Sprint(string(rec.Action)))
	for _, reason := range rec.Reasons {
		fmt.Fprintf(&b, "- %s\n", reason)
	}
	return b.String()
}

// RenderSignal produces one watch-loop status block.
func RenderSignal(sig advisor.Signal, shortWindow, longWindow int) string {
	sentimentColor, ok := sentimentColors[sig.Sentiment]
	if !ok {
		sentimentColor = color.New(color.Reset)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] Price: $%.2f\n", sig.Timestamp.Format(time.RFC3339), sig.Price)
	fmt.Fprintf(&b, "Short MA (%d): $%.2f | Long MA (%d): $%.2f\n", shortWindow, sig.ShortMA, longWindow, sig.LongMA)
	fmt.Fprintf(&b, "Change: %+.2f%% | Volatility: %.2f\n", sig.ChangePct, sig.Volatility)
	fmt.Fprintf(&b, "Signal: %s | %s\n", sentimentColor.Sprint(string(sig.Sentiment)), sig.Headline)
	b.WriteString(sig.Caution)
	b.WriteByte('\n')
	return b.String()
}

// Money formats a decimal with thousands separators at the given precision.
func Money(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
