package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"CarrySentinel/internal/config"
	"CarrySentinel/internal/logger"
	"CarrySentinel/internal/rates"
)

var (
	configPath string
	cfg        *config.Config
)

// rootCmd is the base command for the CarrySentinel CLI
var rootCmd = &cobra.Command{
	Use:   "carrysentinel",
	Short: "Regime-aware FX carry trade screener",
	Long: `CarrySentinel classifies the market regime from VIX and the S&P 500 trend,
scans the 28 major currency pairs for carry opportunities using central-bank
policy rates, and turns the watchlist into trading signals.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := logger.Setup(c.Log.Level, c.Log.Format, c.Log.Output); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "Path to the YAML configuration file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readInput reads a rate table from path, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read rates file: %w", err)
	}
	return string(b), nil
}

// rateText picks the rate table: --rates flag, then config, then the bundled sample.
func rateText(path string) (string, error) {
	if path != "" {
		return readInput(path)
	}
	if cfg.Rates.Table != "" {
		return cfg.Rates.Table, nil
	}
	log.Warn().Msg("no rate table given, using the bundled sample table")
	return rates.SampleTable, nil
}
