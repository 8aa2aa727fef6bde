package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"CarrySentinel/internal/model"
	"CarrySentinel/internal/rates"
	"CarrySentinel/internal/strategy"
)

// Display limits for the Telegram views.
const (
	DetailCount       = 3
	WatchlistPerGroup = 5
)

var riskNotes = []string{
	"Risk no more than 1-2% of the account per position",
	"Carry accrues daily; confirm swap rates with your broker",
	"Re-check open positions whenever the regime changes",
}

func directionIcon(d model.Direction) string {
	switch d {
	case model.DirectionLong:
		return "🟢"
	case model.DirectionShort:
		return "🔴"
	case model.DirectionRange:
		return "🟡"
	default:
		return "⚪"
	}
}

func formatVIX(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func writeMarketOverview(b *strings.Builder, regime model.Regime, snap model.MarketSnapshot) {
	b.WriteString(fmt.Sprintf("Regime: <b>%s</b> (%s)\n", regime, regime.Description()))
	b.WriteString(fmt.Sprintf("VIX: %s\n", formatVIX(snap.VIX)))
	if br := snap.Broad; br != nil {
		rel := "below"
		if br.AboveMA {
			rel = "above"
		}
		b.WriteString(fmt.Sprintf("S&amp;P 500: %.2f, %s MA %.2f\n", br.Current, rel, br.MovingAverage))
	} else {
		b.WriteString("S&amp;P 500: n/a\n")
	}
}

// FormatSignalReport formats the run overview and the signals chosen for display.
func FormatSignalReport(a *strategy.Analysis, shown []model.TradingSignal) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>CarrySentinel Signals</b> | %s\n\n", a.CreatedAt.Format("2006-01-02 15:04")))
	writeMarketOverview(&b, a.Regime, a.Snapshot)
	b.WriteString(fmt.Sprintf("Signals: %d total | %d high confidence\n\n",
		len(a.Signals), strategy.CountConfidence(a.Signals, model.ConfidenceHigh)))

	if len(shown) == 0 {
		b.WriteString("No signals meet the current filters.\n")
		return b.String()
	}

	for _, s := range shown {
		b.WriteString(fmt.Sprintf("%s <b>%s %s</b> %+.2f%% [%s] %s\n",
			directionIcon(s.Direction), s.Direction, s.Pair, s.Diff, s.Confidence, s.Trend))
		b.WriteString(fmt.Sprintf("   %s\n", html.EscapeString(s.Rationale)))
	}
	return b.String()
}

// FormatDetail formats the top HIGH-confidence signals with their execution plan.
// prices may be nil or partial; missing pairs omit the range line.
func FormatDetail(signals []model.TradingSignal, prices map[model.CurrencyPair]model.PriceTrendInfo) string {
	high, _ := strategy.FilterByConfidence(signals, model.ConfidenceHigh)
	high = strategy.Limit(high, DetailCount)

	var b strings.Builder
	b.WriteString("🎯 <b>High-Confidence Setups</b>\n\n")
	if len(high) == 0 {
		b.WriteString("No high-confidence signals this run.\n")
		return b.String()
	}

	for i, s := range high {
		b.WriteString(fmt.Sprintf("<b>%d. %s %s</b> (%s)\n", i+1, s.Pair, s.Direction, s.Category.Title()))
		b.WriteString(fmt.Sprintf("Rate diff: %s | Trend: %s\n", s.RateDiff, s.Trend))
		b.WriteString(html.EscapeString(s.Rationale) + "\n")
		b.WriteString("Execution plan:\n")
		b.WriteString(fmt.Sprintf("  Entry: %s\n", html.EscapeString(s.Entry)))
		b.WriteString(fmt.Sprintf("  Stop: %s\n", html.EscapeString(s.Stop)))
		b.WriteString(fmt.Sprintf("  Target: %s\n", html.EscapeString(s.Target)))
		if info, ok := prices[s.Pair]; ok {
			b.WriteString(fmt.Sprintf("Recent range: %.4f - %.4f | RSI(14): %.1f\n", info.Low, info.High, info.RSI))
		}
		b.WriteString("\n")
	}

	b.WriteString("⚠️ <b>Risk management</b>\n")
	for _, n := range riskNotes {
		b.WriteString("• " + n + "\n")
	}
	return b.String()
}

// FormatWatchlist lists the leading entries of every non-empty category.
func FormatWatchlist(w *model.Watchlist) string {
	var b strings.Builder
	b.WriteString("👀 <b>Watchlist</b>\n")
	if w == nil || w.Len() == 0 {
		b.WriteString("\nNo pairs classified.\n")
		return b.String()
	}

	for _, c := range w.Categories() {
		entries := w.Entries(c)
		if len(entries) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n<b>%s</b> (%d)\n", c.Title(), len(entries)))
		for i, e := range entries {
			if i == WatchlistPerGroup {
				b.WriteString(fmt.Sprintf("  … and %d more\n", len(entries)-WatchlistPerGroup))
				break
			}
			b.WriteString(fmt.Sprintf("• %s %+.2f%% %s → %s [%s]\n", e.Pair, e.Diff, e.Trend, e.Direction, e.Confidence))
		}
	}
	return b.String()
}

// FormatRegime formats the market overview alone.
func FormatRegime(regime model.Regime, snap model.MarketSnapshot) string {
	var b strings.Builder
	b.WriteString("🌡 <b>Market Regime</b>\n\n")
	writeMarketOverview(&b, regime, snap)
	if !snap.FetchedAt.IsZero() {
		b.WriteString(fmt.Sprintf("As of: %s\n", snap.FetchedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatRates formats the stored rate table.
func FormatRates(r model.RateMap, updatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("🏦 <b>Central Bank Rates</b>\n")
	if len(r) == 0 {
		b.WriteString("\nNo rates stored. Send /rates followed by a table.\n")
		return b.String()
	}
	b.WriteString("<pre>" + html.EscapeString(rates.Format(r)) + "</pre>\n")
	if !updatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Updated: %s\n", updatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}
