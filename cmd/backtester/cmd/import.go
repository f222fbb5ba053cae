package cmd

import (
	"backtestreport/internal/repository"
	"backtestreport/types"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import [bars.csv ...]",
	Short: "Import CSV bar files into the parquet store",
	Long: `Import reads CSV bar files (end_time, close and optional open, high, low,
volume columns) and merges them into <dir>/<TICKER>/<interval>.parquet.
Bars with an end time already in the store are replaced.

Example:
  backtester import --ticker AAPL --interval 1D aapl_2023.csv aapl_2024.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var (
	importTicker   string
	importInterval string
	importDir      string
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importTicker, "ticker", "t", "", "ticker the bars belong to (required)")
	importCmd.Flags().StringVarP(&importInterval, "interval", "i", "", "bar interval; defaults to data.interval")
	importCmd.Flags().StringVarP(&importDir, "dir", "d", "", "parquet store directory; defaults to data.bars_dir")

	importCmd.MarkFlagRequired("ticker")
}

func runImport(cmd *cobra.Command, args []string) error {
	label := importInterval
	if label == "" {
		label = cfg.Data.Interval
	}
	interval, err := types.ParseInterval(label)
	if err != nil {
		return err
	}
	dir := importDir
	if dir == "" {
		dir = cfg.Data.BarsDir
	}
	ticker := strings.ToUpper(importTicker)
	store := repository.NewParquetBarStore(dir)

	for _, path := range args {
		bars, err := readBarsFile(path, ticker)
		if err != nil {
			return err
		}
		if err := store.WriteBars(cmd.Context(), ticker, interval, bars); err != nil {
			return err
		}
		logger.Info("imported bars",
			zap.String("file", path),
			zap.String("ticker", ticker),
			zap.String("interval", string(interval)),
			zap.Int("bars", len(bars)))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d file(s) into %s\n", len(args), dir)
	return nil
}

func readBarsFile(path, ticker string) ([]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	bars, err := repository.ReadBarsCSV(f, ticker)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return bars, nil
}
