package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"CarrySentinel/internal/export"
	"CarrySentinel/internal/model"
	"CarrySentinel/internal/rates"
	"CarrySentinel/internal/strategy"
)

// analyzeCmd runs one analysis and prints the signals
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify the regime, scan pairs and print trading signals",
	Long: `Run one analysis over a central-bank rate table.

Examples:
  carrysentinel analyze --rates rates.txt
  carrysentinel analyze --rates - --min-confidence HIGH < rates.txt
  carrysentinel analyze --offline --vix 18.5 --csv signals.csv`,
	RunE: runAnalyze,
}

var (
	analyzeRates         string
	analyzeVIX           float64
	analyzeMinConfidence string
	analyzeMaxSignals    int
	analyzeCSV           string
	analyzeOffline       bool
	analyzeWatchlist     bool
	analyzeDetail        bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeRates, "rates", "", "Rate table file, or - for stdin")
	analyzeCmd.Flags().Float64Var(&analyzeVIX, "vix", 0, "Override the VIX reading")
	analyzeCmd.Flags().StringVar(&analyzeMinConfidence, "min-confidence", "", "Minimum confidence to show (HIGH, MEDIUM, LOW)")
	analyzeCmd.Flags().IntVar(&analyzeMaxSignals, "max-signals", 0, "Maximum signals to show")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "Write all signals to this CSV file")
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "Skip market data; regime is UNKNOWN unless --vix is given")
	analyzeCmd.Flags().BoolVar(&analyzeWatchlist, "watchlist", false, "Also print the watchlist")
	analyzeCmd.Flags().BoolVar(&analyzeDetail, "detail", false, "Also print the high-confidence execution plans")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("min-confidence") {
		cfg.Strategy.MinConfidence = analyzeMinConfidence
	}
	if cmd.Flags().Changed("max-signals") {
		cfg.Strategy.MaxSignals = analyzeMaxSignals
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	text, err := rateText(analyzeRates)
	if err != nil {
		return err
	}
	rs, err := rates.Parse(text)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		snap     model.MarketSnapshot
		analyzer *strategy.Analyzer
		prices   func(model.CurrencyPair) (model.PriceTrendInfo, bool)
	)
	if analyzeOffline {
		analyzer = buildAnalyzer(cfg, nil)
		prices = func(model.CurrencyPair) (model.PriceTrendInfo, bool) { return model.PriceTrendInfo{}, false }
	} else {
		market, cleanup := buildMarket(ctx, cfg, nil)
		defer cleanup()
		snap = market.Snapshot(ctx)
		analyzer = buildAnalyzer(cfg, market)
		prices = func(p model.CurrencyPair) (model.PriceTrendInfo, bool) {
			l := market.Lookup(ctx, p, cfg.Market.Lookback)
			return l.Info(), l.OK()
		}
	}
	if cmd.Flags().Changed("vix") {
		snap.VIX = model.Volatility(analyzeVIX)
	}

	a := analyzer.Run(ctx, rs, snap)

	shown, err := strategy.FilterByConfidence(a.Signals, cfg.MinConfidence())
	if err != nil {
		return err
	}
	shown = strategy.Limit(shown, cfg.Strategy.MaxSignals)

	out := cmd.OutOrStdout()
	printOverview(out, a, len(shown))
	printSignals(out, shown)
	if analyzeWatchlist {
		printWatchlist(out, a.Watchlist)
	}
	if analyzeDetail {
		printDetail(out, shown, prices)
	}

	if analyzeCSV != "" {
		f, err := os.Create(analyzeCSV)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := export.WriteCSV(f, a.Signals); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Info().Str("path", analyzeCSV).Int("signals", len(a.Signals)).Msg("signals exported")
	}
	return nil
}

func printOverview(w io.Writer, a *strategy.Analysis, shown int) {
	fmt.Fprintf(w, "Regime: %s (%s)\n", a.Regime, a.Regime.Description())
	if a.Snapshot.VIX != nil {
		fmt.Fprintf(w, "VIX: %.2f\n", *a.Snapshot.VIX)
	} else {
		fmt.Fprintln(w, "VIX: n/a")
	}
	if b := a.Snapshot.Broad; b != nil {
		fmt.Fprintf(w, "S&P 500: %.2f (MA %.2f, %s)\n", b.Current, b.MovingAverage, b.Trend)
	}
	fmt.Fprintf(w, "Signals: %d total, %d high confidence, %d shown\n\n",
		len(a.Signals), strategy.CountConfidence(a.Signals, model.ConfidenceHigh), shown)
}

func printSignals(w io.Writer, signals []model.TradingSignal) {
	if len(signals) == 0 {
		fmt.Fprintln(w, "No signals meet the current filters.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAIR\tSIGNAL\tCATEGORY\tRATE DIFF\tTREND\tCONFIDENCE\tRATIONALE")
	for _, s := range signals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Pair, s.Direction, s.Category, s.RateDiff, s.Trend, s.Confidence, s.Rationale)
	}
	tw.Flush()
}

func printWatchlist(w io.Writer, wl *model.Watchlist) {
	for _, c := range wl.Categories() {
		entries := wl.Entries(c)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s (%d)\n", c.Title(), len(entries))
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, e := range entries {
			fmt.Fprintf(tw, "  %s\t%+.2f%%\t%s\t%s\t%s\n", e.Pair, e.Diff, e.Trend, e.Direction, e.Confidence)
		}
		tw.Flush()
	}
}

// printDetail shows the execution plans of the leading HIGH signals among those displayed.
func printDetail(w io.Writer, shown []model.TradingSignal, prices func(model.CurrencyPair) (model.PriceTrendInfo, bool)) {
	high, _ := strategy.FilterByConfidence(shown, model.ConfidenceHigh)
	high = strategy.Limit(high, 3)
	fmt.Fprintln(w, "\nHigh-confidence setups")
	if len(high) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for i, s := range high {
		fmt.Fprintf(w, "\n%d. %s %s (%s)\n", i+1, s.Pair, s.Direction, s.RateDiff)
		fmt.Fprintf(w, "   Entry:  %s\n   Stop:   %s\n   Target: %s\n", s.Entry, s.Stop, s.Target)
		if info, ok := prices(s.Pair); ok {
			fmt.Fprintf(w, "   Range:  %.4f - %.4f, RSI(14) %.1f\n", info.Low, info.High, info.RSI)
		}
	}
}
