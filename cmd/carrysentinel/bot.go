package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"CarrySentinel/internal/metrics"
	"CarrySentinel/internal/model"
	"CarrySentinel/internal/notifier"
	"CarrySentinel/internal/rates"
	"CarrySentinel/internal/recorder"
	"CarrySentinel/internal/scheduler"
)

// botCmd runs the long-lived Telegram bot
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot with scheduled re-analysis",
	Long: `Run as a Telegram bot. The bot answers /signals, /watchlist, /regime and
/rates, re-runs the analysis on the stored rate table on a cron schedule,
records every run to SQLite and optionally serves Prometheus metrics.`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateBot(); err != nil {
		return err
	}
	log.Info().Msg("CarrySentinel bot starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mrec := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
		defer func() {
			shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
			defer c()
			srv.Shutdown(shutdownCtx)
		}()
	}

	// Market data
	market, cleanup := buildMarket(ctx, cfg, mrec)
	defer cleanup()

	// Rate book, seeded from config on first start
	var initial model.RateMap
	if cfg.Rates.Table != "" {
		rs, err := rates.Parse(cfg.Rates.Table)
		if err != nil {
			log.Warn().Err(err).Msg("configured rate table is unusable")
		} else {
			initial = rs
		}
	}
	book, err := rates.NewBook(cfg.Rates.StateFile, initial)
	if err != nil {
		return err
	}
	log.Info().Int("currencies", len(book.Rates())).Msg("rate book loaded")

	// Recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, buildAnalyzer(cfg, market), market, book, tn, rec, mrec,
		scheduler.Presentation{
			MinConfidence: cfg.MinConfidence(),
			MaxSignals:    cfg.Strategy.MaxSignals,
			Lookback:      cfg.Market.Lookback,
		})
	if err := sched.RegisterAll(cfg.Schedule.AnalysisCron, cfg.Schedule.WatchlistCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	if cfg.Schedule.RunOnStart {
		log.Info().Msg("run_on_start enabled, executing analysis now")
		go sched.RunAnalysisNow()
	}

	log.Info().Msg("CarrySentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	return nil
}
