package engine

import (
	"backtestreport/types"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultJobTimeout = 30 * time.Second

var ErrJobTimeout = errors.New("evaluation timed out")

type BatchOptions struct {
	// Workers caps concurrent evaluations; 0 means one per job.
	Workers int
	// Timeout bounds each job; 0 means DefaultJobTimeout.
	Timeout time.Duration
	// Progress, when set, receives a progress bar.
	Progress io.Writer
	Logger   *zap.Logger
}

type BatchSummary struct {
	ID            string                `json:"batchId"`
	Total         int                   `json:"total"`
	Successful    int                   `json:"successful"`
	Failed        int                   `json:"failed"`
	BestReturn    decimal.Decimal       `json:"maxReturn"`
	BestStrategy  string                `json:"maxReturnStrategy"`
	AverageReturn decimal.Decimal       `json:"avgReturn"`
	Results       []types.MetricsReport `json:"results"`
}

// RunBatch evaluates every job concurrently. A job that fails or runs past
// its timeout is reported as failed and never stops the others. Results
// are ranked with successful jobs first by total return, best first.
func RunBatch(ctx context.Context, jobs []Input, opts BatchOptions) BatchSummary {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = max(len(jobs), 1)
	}

	summary := BatchSummary{ID: uuid.NewString(), Total: len(jobs)}
	logger = logger.With(zap.String("batch_id", summary.ID))
	logger.Info("batch started", zap.Int("jobs", len(jobs)), zap.Int("workers", workers), zap.Duration("timeout", timeout))

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = initProgressBar(len(jobs), opts.Progress)
	}

	results := make([]types.MetricsReport, len(jobs))
	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = runJob(ctx, job, timeout, Evaluate)
			if results[i].Success {
				logger.Info("batch job finished",
					zap.String("strategy", job.StrategyName),
					zap.String("total_return", results[i].Metric(types.TotalReturn).String()))
			} else {
				logger.Warn("batch job failed",
					zap.String("strategy", job.StrategyName),
					zap.String("error", results[i].ErrorMessage))
			}
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	rankReports(results)
	summary.Results = results
	summarize(&summary)

	logger.Info("batch finished",
		zap.Int("successful", summary.Successful),
		zap.Int("failed", summary.Failed),
		zap.String("best_strategy", summary.BestStrategy))
	return summary
}

// runJob abandons the evaluation once the timeout or ctx expires. The
// evaluation goroutine is left to finish on its own since the core cannot
// be interrupted.
func runJob(ctx context.Context, job Input, timeout time.Duration, eval func(Input) types.MetricsReport) types.MetricsReport {
	done := make(chan types.MetricsReport, 1)
	go func() {
		done <- eval(job)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r
	case <-timer.C:
		return failedReport(job, fmt.Errorf("%w after %s", ErrJobTimeout, timeout))
	case <-ctx.Done():
		return failedReport(job, ctx.Err())
	}
}

func rankReports(reports []types.MetricsReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := reports[i], reports[j]
		if a.Success != b.Success {
			return a.Success
		}
		if !a.Success {
			return false
		}
		return a.Metric(types.TotalReturn).GreaterThan(b.Metric(types.TotalReturn))
	})
}

func summarize(s *BatchSummary) {
	sum := decimal.Zero
	s.BestReturn = decimal.Zero
	s.AverageReturn = decimal.Zero
	for _, r := range s.Results {
		if !r.Success {
			s.Failed++
			continue
		}
		ret := r.Metric(types.TotalReturn)
		if s.Successful == 0 || ret.GreaterThan(s.BestReturn) {
			s.BestReturn = ret
			s.BestStrategy = r.StrategyName
		}
		s.Successful++
		sum = sum.Add(ret)
	}
	if s.Successful > 0 {
		s.AverageReturn = sum.DivRound(decimal.NewFromInt(int64(s.Successful)), 4)
	}
}

func initProgressBar(maxTicks int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Evaluating strategies..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
