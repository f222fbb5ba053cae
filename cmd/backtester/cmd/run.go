package cmd

import (
	"backtestreport/internal/engine"
	"backtestreport/internal/repository"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate one set of closed positions",
	Long: `Run loads the bars of data.ticker (and data.benchmark_ticker when set),
reads the positions CSV and prints the performance report.

Example:
  backtester run -c backtest.yaml --positions breakout.csv --name breakout`,
	RunE: runRun,
}

var (
	runPositionsPath string
	runTicker        string
	runBenchmark     string
	runName          string
	runParams        string
	runTradesCSV     string
	runJSON          bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runPositionsPath, "positions", "p", "", "positions CSV (entry_index,exit_index,side); defaults to data.positions_path")
	runCmd.Flags().StringVarP(&runTicker, "ticker", "t", "", "override data.ticker")
	runCmd.Flags().StringVarP(&runBenchmark, "benchmark", "b", "", "override data.benchmark_ticker")
	runCmd.Flags().StringVarP(&runName, "name", "n", "strategy", "strategy name shown in the report")
	runCmd.Flags().StringVar(&runParams, "params", "", "parameter description shown in the report")
	runCmd.Flags().StringVar(&runTradesCSV, "trades-csv", "", "override report.trades_csv")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "write the report as JSON instead of text")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	data := cfg.Data
	if runTicker != "" {
		data.Ticker = runTicker
	}
	if runBenchmark != "" {
		data.BenchmarkTicker = runBenchmark
	}
	positionsPath := runPositionsPath
	if positionsPath == "" {
		positionsPath = data.PositionsPath
	}
	if positionsPath == "" {
		return errors.New("positions CSV is required (--positions or data.positions_path)")
	}
	tradesCSV := cfg.Report.TradesCSV
	if runTradesCSV != "" {
		tradesCSV = runTradesCSV
	}

	feed, err := dataFeed(data)
	if err != nil {
		return err
	}
	evalCfg, err := evaluationConfig(cfg.Evaluation)
	if err != nil {
		return err
	}
	positions, err := repository.ReadPositionsCSVFile(positionsPath)
	if err != nil {
		return err
	}

	src, release, err := openBarSource(ctx, data)
	if err != nil {
		return err
	}
	defer release()

	out := cmd.OutOrStdout()
	reporting := engine.NewReportingConfig(cfg.Report.Print && !runJSON, tradesCSV, out)
	eng := engine.NewEngine(src, evalCfg, reporting, logger)

	report, err := eng.Run(ctx, engine.RunRequest{
		StrategyName:         runName,
		ParameterDescription: runParams,
		Feed:                 feed,
		BenchmarkTicker:      data.BenchmarkTicker,
		Positions:            positions,
	})
	if err != nil {
		return err
	}
	if runJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	}
	if !report.Success {
		return fmt.Errorf("evaluation failed: %s", report.ErrorMessage)
	}
	return nil
}
