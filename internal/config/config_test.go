package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CarrySentinel/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("MAX_SIGNALS", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30*24*time.Hour, cfg.Market.Lookback)
	assert.Equal(t, time.Hour, cfg.Market.CacheTTL)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 3, cfg.Strategy.PerCategoryCap)
	assert.Equal(t, 10, cfg.Strategy.MaxSignals)
	assert.Equal(t, model.ConfidenceMedium, cfg.MinConfidence())

	policy := cfg.RegimePolicy()
	assert.Equal(t, 20.0, policy.RiskOnBelow)
	assert.Equal(t, 25.0, policy.RiskOffAbove)
	assert.True(t, policy.RequireTrendConfirmation)

	sc := cfg.ScannerConfig()
	assert.Equal(t, 0.5, sc.MinLookupDiff)
	assert.True(t, sc.SortByConfidence)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
strategy:
  require_trend_confirmation: false
  min_lookup_diff: 0
  min_confidence: HIGH
market:
  lookback: 2160h
telegram:
  bot_token: from-file
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("MAX_SIGNALS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateBot())

	assert.False(t, cfg.RegimePolicy().RequireTrendConfirmation)
	assert.Equal(t, 0.0, cfg.ScannerConfig().MinLookupDiff)
	assert.Equal(t, 90*24*time.Hour, cfg.ScannerConfig().Lookback)
	assert.Equal(t, model.ConfidenceHigh, cfg.MinConfidence())
	assert.Equal(t, "from-file", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.Equal(t, 5, cfg.Strategy.MaxSignals)
}

func TestValidate_Errors(t *testing.T) {
	load := func(t *testing.T) *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := load(t)
	cfg.Strategy.MinConfidence = "EXTREME"
	assert.ErrorIs(t, cfg.Validate(), model.ErrInvalidConfidence)

	cfg = load(t)
	cfg.Strategy.RiskOnBelow = 30
	assert.Error(t, cfg.Validate())

	cfg = load(t)
	cfg.Cache.Backend = "memcached"
	assert.Error(t, cfg.Validate())

	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	cfg = load(t)
	assert.Error(t, cfg.ValidateBot(), "telegram credentials are required for the bot")
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: [unterminated"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ExplicitZeroValuesKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
schedule:
  watchlist_cron: ""
database:
  sqlite_path: ""
strategy:
  risk_on_below: 0
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("CRON_WATCHLIST", "")
	t.Setenv("SQLITE_PATH", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Empty(t, cfg.Schedule.WatchlistCron)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.Equal(t, 0.0, cfg.RegimePolicy().RiskOnBelow)

	// untouched keys still get defaults
	assert.Equal(t, "0 0 8 * * 1-5", cfg.Schedule.AnalysisCron)
	assert.Equal(t, 25.0, cfg.Strategy.RiskOffAbove)
	assert.Equal(t, "data/rates.json", cfg.Rates.StateFile)
}
