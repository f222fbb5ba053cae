package cmd

import (
	"backtestreport/internal/config"
	"backtestreport/internal/engine"
	"backtestreport/internal/repository"
	"backtestreport/types"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every job in batch.jobs and rank them",
	Long: `Batch loads the bars once, evaluates each configured job concurrently
(batch.workers at a time, batch.timeout per job) and ranks the results by
total return. Failed or timed out jobs are listed last.

Example:
  backtester batch -c backtest.yaml --json > summary.json`,
	RunE: runBatch,
}

var (
	batchJSON       bool
	batchNoProgress bool
)

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "write the batch summary as JSON")
	batchCmd.Flags().BoolVar(&batchNoProgress, "no-progress", false, "disable the progress bar")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if len(cfg.Batch.Jobs) == 0 {
		return fmt.Errorf("%w: batch.jobs is empty", config.ErrInvalidConfig)
	}

	feed, err := dataFeed(cfg.Data)
	if err != nil {
		return err
	}
	evalCfg, err := evaluationConfig(cfg.Evaluation)
	if err != nil {
		return err
	}

	src, release, err := openBarSource(ctx, cfg.Data)
	if err != nil {
		return err
	}
	defer release()

	eng := engine.NewEngine(src, evalCfg, nil, logger)
	series, benchmark, err := eng.LoadSeries(ctx, feed, cfg.Data.BenchmarkTicker)
	if err != nil {
		return err
	}

	jobs := make([]engine.Input, 0, len(cfg.Batch.Jobs))
	for _, job := range cfg.Batch.Jobs {
		positions, err := repository.ReadPositionsCSVFile(job.PositionsPath)
		if err != nil {
			return fmt.Errorf("job %s: %w", job.Name, err)
		}
		jobs = append(jobs, eng.NewInput(job.Name, job.Parameters, series, benchmark, positions))
	}

	opts := engine.BatchOptions{
		Workers: cfg.Batch.Workers,
		Timeout: cfg.Batch.Timeout,
		Logger:  logger,
	}
	if !batchNoProgress {
		opts.Progress = cmd.ErrOrStderr()
	}
	summary := engine.RunBatch(ctx, jobs, opts)

	out := cmd.OutOrStdout()
	if batchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return printSummary(out, summary)
}

func printSummary(w io.Writer, s engine.BatchSummary) error {
	fmt.Fprintf(w, "Batch %s: %d jobs, %d successful, %d failed\n", s.ID, s.Total, s.Successful, s.Failed)
	if s.Successful > 0 {
		fmt.Fprintf(w, "Best: %s (%s)  Average return: %s\n\n", s.BestStrategy, s.BestReturn.StringFixed(4), s.AverageReturn.StringFixed(4))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSTRATEGY\tTRADES\tTOTAL RETURN\tSHARPE\tMAX DD\tSCORE\tSTATUS")
	for i, r := range s.Results {
		status := "ok"
		if !r.Success {
			status = r.ErrorMessage
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1, r.StrategyName, r.NumberOfTrades,
			r.Metric(types.TotalReturn).StringFixed(4),
			r.Metric(types.SharpeRatio).StringFixed(4),
			r.Metric(types.MaxDrawdown).StringFixed(4),
			r.CompositeScore.StringFixed(2),
			status)
	}
	return tw.Flush()
}
