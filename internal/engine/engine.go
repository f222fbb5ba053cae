package engine

import (
	"backtestreport/types"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// barSource is anything that can serve closed bars for a ticker, such as
// the Postgres repository or the parquet and CSV stores.
type barSource interface {
	GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error)
}

type Engine struct {
	bars             barSource
	evaluationConfig *EvaluationConfig
	reportingConfig  *ReportingConfig
	logger           *zap.Logger
}

func NewEngine(bars barSource, evaluationConfig *EvaluationConfig, reportingConfig *ReportingConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reportingConfig == nil {
		reportingConfig = NewReportingConfig(false, "", nil)
	}
	return &Engine{
		bars:             bars,
		evaluationConfig: evaluationConfig,
		reportingConfig:  reportingConfig,
		logger:           logger,
	}
}

// RunRequest names the bars to load and the positions a strategy produced
// on them.
type RunRequest struct {
	StrategyName         string
	ParameterDescription string
	Feed                 DataFeed
	BenchmarkTicker      string
	Positions            []types.ClosedPosition
}

// Run loads the data for req, evaluates it and hands the report to the
// configured outputs. A failed evaluation is not an error: it comes back
// as a report with Success false.
func (e *Engine) Run(ctx context.Context, req RunRequest) (types.MetricsReport, error) {
	in, err := e.loadData(ctx, req)
	if err != nil {
		return types.MetricsReport{}, err
	}

	report := e.evaluate(in)

	if e.reportingConfig.printReport {
		PrintReport(e.reportingConfig.out, report)
	}
	if path := e.reportingConfig.tradesCSVPath; path != "" && report.Success {
		if err := WriteTradesCSVFile(path, report.Trades); err != nil {
			return report, err
		}
		e.logger.Info("wrote trades csv", zap.String("path", path), zap.Int("trades", len(report.Trades)))
	}
	return report, nil
}

// NewInput builds an evaluation input for positions on already loaded bars.
func (e *Engine) NewInput(name, params string, series types.Series, benchmark []types.Bar, positions []types.ClosedPosition) Input {
	return Input{
		StrategyName:         name,
		ParameterDescription: params,
		Series:               series,
		Benchmark:            benchmark,
		Positions:            positions,
		Config:               e.evaluationConfig,
	}
}

func (e *Engine) evaluate(in Input) types.MetricsReport {
	log := e.logger.With(zap.String("strategy", in.StrategyName), zap.String("ticker", in.Series.Ticker))
	log.Debug("annualization factor detected",
		zap.String("interval", string(in.Series.Interval)),
		zap.Int("factor", annualizationFactor(in.Series)),
	)

	report := Evaluate(in)
	if !report.Success {
		log.Error("backtest evaluation failed", zap.String("error", report.ErrorMessage))
		return report
	}
	log.Info("backtest evaluated",
		zap.Int("trades", report.NumberOfTrades),
		zap.String("total_return", report.Metric(types.TotalReturn).String()),
		zap.String("score", report.CompositeScore.String()),
	)
	return report
}

// LoadSeries loads the bars for feed and, when benchmarkTicker is set, the
// benchmark bars over the same window. A missing benchmark is logged and
// comes back empty.
func (e *Engine) LoadSeries(ctx context.Context, feed DataFeed, benchmarkTicker string) (types.Series, []types.Bar, error) {
	series, err := feed.GetData(ctx, e.bars)
	if err != nil {
		return types.Series{}, nil, err
	}
	if benchmarkTicker == "" {
		return series, nil, nil
	}

	feed.Ticker = benchmarkTicker
	bs, err := feed.GetData(ctx, e.bars)
	if err != nil {
		e.logger.Warn("benchmark unavailable, using neutral defaults",
			zap.String("benchmark", benchmarkTicker), zap.Error(err))
		return series, nil, nil
	}
	return series, bs.Bars, nil
}

func (e *Engine) loadData(ctx context.Context, req RunRequest) (Input, error) {
	if e.evaluationConfig == nil {
		return Input{}, fmt.Errorf("%w: missing evaluation config", ErrInvalidInput)
	}
	series, benchmark, err := e.LoadSeries(ctx, req.Feed, req.BenchmarkTicker)
	if err != nil {
		return Input{}, err
	}
	return e.NewInput(req.StrategyName, req.ParameterDescription, series, benchmark, req.Positions), nil
}
