package cmd

import (
	"backtestreport/internal/config"
	"backtestreport/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "backtester",
	Short: "Performance and risk reports for closed backtest positions",
	Long: `Backtester turns the closed positions of a strategy into a performance
and risk report: realized trades, drawdowns, classic risk-adjusted ratios,
benchmark-relative statistics and a composite 0-10 score.

Bars come from Postgres/TimescaleDB, parquet files or CSV files; positions
come from a CSV file with entry_index, exit_index and side columns.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logger, err = logging.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to YAML config (defaults apply when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}
