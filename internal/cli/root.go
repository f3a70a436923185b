// Package cli wires the tourism-engine commands.
package cli

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tourism-engine/internal/baseline"
	"tourism-engine/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tourism-engine",
	Short: "Tourism visitor scenario estimates",
	Long: `Projects tourism visitor counts by scaling a baseline with fixed scenario
coefficients: world cup effects on league attendance, and quarterly
seasonality with promotion and new-attraction factors.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "cli: load config")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "cli: init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newBaselineRegistry() *baseline.Registry {
	return baseline.New(baseline.Options{
		URL:         cfg.Baseline.RegistryURL,
		Timeout:     cfg.Baseline.Timeout,
		CacheSize:   cfg.Baseline.CacheSize,
		CacheTTL:    cfg.Baseline.CacheTTL,
		Concurrency: cfg.Baseline.Concurrency,
	})
}
