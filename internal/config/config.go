package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"CarrySentinel/internal/model"
	"CarrySentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
		APIKey  string        `yaml:"api_key"`
		Timeout time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"data_source"`
	Market struct {
		Lookback          time.Duration `yaml:"lookback" default:"720h" validate:"gt=0"`
		CacheTTL          time.Duration `yaml:"cache_ttl" default:"1h" validate:"gte=0"`
		RequestsPerSec    float64       `yaml:"requests_per_sec" default:"2" validate:"gt=0"`
		Burst             int           `yaml:"burst" default:"4" validate:"gte=1"`
		BreakerFailures   uint32        `yaml:"breaker_failures" default:"5" validate:"gte=1"`
		BreakerCooldown   time.Duration `yaml:"breaker_cooldown" default:"60s" validate:"gt=0"`
		BroadMarketWindow int           `yaml:"broad_market_window" default:"30" validate:"gte=2"`
	} `yaml:"market"`
	Strategy struct {
		RiskOnBelow              float64  `yaml:"risk_on_below" default:"20" validate:"gte=0"`
		RiskOffAbove             float64  `yaml:"risk_off_above" default:"25" validate:"gte=0"`
		RequireTrendConfirmation *bool    `yaml:"require_trend_confirmation" default:"true"`
		MinLookupDiff            *float64 `yaml:"min_lookup_diff" default:"0.5" validate:"omitempty,gte=0"`
		PerCategoryCap           int      `yaml:"per_category_cap" default:"3" validate:"gte=1"`
		MinConfidence            string   `yaml:"min_confidence" default:"MEDIUM"`
		MaxSignals               int      `yaml:"max_signals" default:"10" validate:"gte=1,lte=50"`
		SortByConfidence         *bool    `yaml:"sort_by_confidence" default:"true"`
	} `yaml:"strategy"`
	Cache struct {
		Backend string `yaml:"backend" default:"memory" validate:"oneof=memory redis none"`
		Redis   struct {
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Schedule struct {
		AnalysisCron  string `yaml:"analysis_cron" default:"0 0 8 * * 1-5"`
		WatchlistCron string `yaml:"watchlist_cron" default:"0 0 9 * * 1"`
		RunOnStart    bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" default:"data/carry_sentinel.db"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Rates struct {
		StateFile string `yaml:"state_file" default:"data/rates.json"`
		Table     string `yaml:"table"`
	} `yaml:"rates"`
	Proxy string `yaml:"proxy" validate:"omitempty,url"`
}

var validate = validator.New()

// Load applies defaults, then the YAML file, then environment variable overrides.
// Values set explicitly in the file win over defaults, zero values included.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("VSTRADER_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("VSTRADER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Backend = "redis"
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("MIN_CONFIDENCE"); v != "" {
		cfg.Strategy.MinConfidence = v
	}
	if v := os.Getenv("MAX_SIGNALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Strategy.MaxSignals = n
		}
	}
	if v := os.Getenv("CRON_ANALYSIS"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("CRON_WATCHLIST"); v != "" {
		cfg.Schedule.WatchlistCron = v
	}
	if os.Getenv("RUN_ON_START") == "true" {
		cfg.Schedule.RunOnStart = true
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Strategy.RiskOnBelow > c.Strategy.RiskOffAbove {
		return errors.New("strategy.risk_on_below must not exceed strategy.risk_off_above")
	}
	if _, err := model.ParseConfidence(c.Strategy.MinConfidence); err != nil {
		return fmt.Errorf("strategy.min_confidence: %w", err)
	}
	return nil
}

// ValidateBot additionally requires the Telegram credentials.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return errors.New("telegram.chat_id is required")
	}
	return nil
}

// RegimePolicy builds the regime thresholds.
func (c *Config) RegimePolicy() strategy.RegimePolicy {
	return strategy.RegimePolicy{
		RiskOnBelow:              c.Strategy.RiskOnBelow,
		RiskOffAbove:             c.Strategy.RiskOffAbove,
		RequireTrendConfirmation: boolOr(c.Strategy.RequireTrendConfirmation, true),
	}
}

// ScannerConfig builds the scanner settings.
func (c *Config) ScannerConfig() strategy.ScannerConfig {
	return strategy.ScannerConfig{
		MinLookupDiff:    floatOr(c.Strategy.MinLookupDiff, 0.5),
		Lookback:         c.Market.Lookback,
		SortByConfidence: boolOr(c.Strategy.SortByConfidence, true),
	}
}

// MinConfidence returns the parsed presentation threshold. Call after Validate.
func (c *Config) MinConfidence() model.Confidence {
	conf, err := model.ParseConfidence(c.Strategy.MinConfidence)
	if err != nil {
		return model.ConfidenceMedium
	}
	return conf
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func floatOr(f *float64, def float64) float64 {
	if f == nil {
		return def
	}
	return *f
}
