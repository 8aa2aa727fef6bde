package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"CarrySentinel/internal/metrics"
	"CarrySentinel/internal/model"
	"CarrySentinel/internal/notifier"
	"CarrySentinel/internal/rates"
	"CarrySentinel/internal/recorder"
	"CarrySentinel/internal/strategy"
)

var errNoRates = errors.New("no rate table stored; send /rates followed by a table")

// Market supplies the per-run snapshot and per-pair price observations.
type Market interface {
	Snapshot(ctx context.Context) model.MarketSnapshot
	strategy.PriceLookup
}

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Presentation controls which signals are shown in reports.
type Presentation struct {
	MinConfidence model.Confidence
	MaxSignals    int
	Lookback      time.Duration
}

// Scheduler manages the cron tasks and answers bot commands.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *strategy.Analyzer
	Market   Market
	Book     *rates.Book
	Notifier Sender
	Recorder recorder.Recorder
	Metrics  *metrics.Recorder
	Present  Presentation
	Ctx      context.Context

	// runMu serializes analysis runs started by cron and by commands.
	runMu sync.Mutex
	mu    sync.Mutex
	last  *strategy.Analysis
}

// NewScheduler creates a new Scheduler. rec may be nil.
func NewScheduler(ctx context.Context, an *strategy.Analyzer, mkt Market, book *rates.Book,
	tn Sender, store recorder.Recorder, rec *metrics.Recorder, present Presentation) *Scheduler {
	if store == nil {
		store = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: an,
		Market:   mkt,
		Book:     book,
		Notifier: tn,
		Recorder: store,
		Metrics:  rec,
		Present:  present,
		Ctx:      ctx,
	}
}

// RegisterAll registers the analysis report and the weekly watchlist tasks.
func (s *Scheduler) RegisterAll(analysisCron, watchlistCron string) error {
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	if watchlistCron != "" {
		if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistTask); err != nil {
			return fmt.Errorf("register watchlist task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunAnalysisNow executes the analysis task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunAnalysisNow() {
	s.analysisTask()
}

// Last returns the most recent analysis, or nil.
func (s *Scheduler) Last() *strategy.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Analyze runs one analysis over the stored rate table, records it and keeps it as the latest.
func (s *Scheduler) Analyze(ctx context.Context) (*strategy.Analysis, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	rs := s.Book.Rates()
	if len(rs) == 0 {
		return nil, errNoRates
	}

	snap := s.Market.Snapshot(ctx)
	a := s.Analyzer.Run(ctx, rs, snap)

	s.mu.Lock()
	s.last = a
	s.mu.Unlock()

	if err := s.Recorder.RecordAnalysis(a); err != nil {
		log.Error().Err(err).Str("run", a.ID).Msg("record analysis")
	}
	s.Metrics.RecordRun(a.Regime.String(), map[string]int{
		model.ConfidenceHigh.String():   strategy.CountConfidence(a.Signals, model.ConfidenceHigh),
		model.ConfidenceMedium.String(): strategy.CountConfidence(a.Signals, model.ConfidenceMedium),
		model.ConfidenceLow.String():    strategy.CountConfidence(a.Signals, model.ConfidenceLow),
	})
	return a, nil
}

// shown applies the presentation filter and limit.
func (s *Scheduler) shown(a *strategy.Analysis) []model.TradingSignal {
	filtered, err := strategy.FilterByConfidence(a.Signals, s.Present.MinConfidence)
	if err != nil {
		log.Warn().Err(err).Msg("invalid presentation threshold, showing all signals")
		filtered = a.Signals
	}
	return strategy.Limit(filtered, s.Present.MaxSignals)
}

// detailPrices looks up range and RSI for the signals the detail view will show.
func (s *Scheduler) detailPrices(ctx context.Context, shown []model.TradingSignal) map[model.CurrencyPair]model.PriceTrendInfo {
	high, _ := strategy.FilterByConfidence(shown, model.ConfidenceHigh)
	prices := make(map[model.CurrencyPair]model.PriceTrendInfo)
	for _, sig := range strategy.Limit(high, notifier.DetailCount) {
		if l := s.Market.Lookup(ctx, sig.Pair, s.Present.Lookback); l.OK() {
			prices[sig.Pair] = l.Info()
		}
	}
	return prices
}

// report renders the overview and, when any shown signal is HIGH, the detail view
// drawn from the same shown signals.
func (s *Scheduler) report(ctx context.Context, a *strategy.Analysis) string {
	shown := s.shown(a)
	out := notifier.FormatSignalReport(a, shown)
	if strategy.CountConfidence(shown, model.ConfidenceHigh) > 0 {
		out += "\n" + notifier.FormatDetail(shown, s.detailPrices(ctx, shown))
	}
	return out
}

func (s *Scheduler) analysisTask() {
	log.Info().Msg("running analysis task")
	a, err := s.Analyze(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("analysis task")
		s.trySend(fmt.Sprintf("❌ Analysis failed: %v", err))
		return
	}
	s.trySend(s.report(s.Ctx, a))
}

func (s *Scheduler) watchlistTask() {
	log.Info().Msg("running watchlist task")
	a, err := s.Analyze(s.Ctx)
	if err != nil {
		log.Error().Err(err).Msg("watchlist task")
		return
	}
	s.trySend(notifier.FormatWatchlist(a.Watchlist))
}

const helpText = "Available commands:\n" +
	"• /signals - run an analysis and show signals\n" +
	"• /watchlist - show the latest watchlist\n" +
	"• /regime - show the current market regime\n" +
	"• /rates - show the stored rate table\n" +
	"• /rates &lt;table&gt; - replace the rate table"

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, text string) string {
	cmd, arg := splitCommand(text)
	switch cmd {
	case "/signals":
		a, err := s.Analyze(ctx)
		if err != nil {
			return "❌ " + err.Error()
		}
		return s.report(ctx, a)
	case "/watchlist":
		a := s.Last()
		if a == nil {
			var err error
			if a, err = s.Analyze(ctx); err != nil {
				return "❌ " + err.Error()
			}
		}
		return notifier.FormatWatchlist(a.Watchlist)
	case "/regime":
		snap := s.Market.Snapshot(ctx)
		return notifier.FormatRegime(s.Analyzer.Policy.Classify(snap.VIX, snap.Broad), snap)
	case "/rates":
		if arg == "" {
			return notifier.FormatRates(s.Book.Rates(), s.Book.UpdatedAt())
		}
		rs, err := s.Book.ReplaceText(arg)
		if err != nil {
			return "❌ " + err.Error()
		}
		if err := s.Recorder.RecordRates(rs, "telegram"); err != nil {
			log.Error().Err(err).Msg("record rates")
		}
		log.Info().Int("currencies", len(rs)).Msg("rate table replaced")
		return fmt.Sprintf("✅ Stored %d rates\n\n", len(rs)) + notifier.FormatRates(rs, s.Book.UpdatedAt())
	default:
		return helpText
	}
}

// splitCommand separates "/cmd@bot rest" into "/cmd" and "rest".
func splitCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		cmd, arg = text[:i], strings.TrimSpace(text[i:])
	} else {
		cmd = text
	}
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), arg
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
