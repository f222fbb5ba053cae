package engine

import (
	"backtestreport/internal/metrics"
	"backtestreport/types"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidInput = errors.New("invalid backtest input")
var ErrComputation = errors.New("metric computation failed")

var infiniteRatio = decimal.RequireFromString("999.9999")

// Input is one backtest to evaluate. Bars and positions are read only.
type Input struct {
	StrategyName         string
	ParameterDescription string
	Series               types.Series
	Benchmark            []types.Bar
	Positions            []types.ClosedPosition
	Config               *EvaluationConfig
}

// Evaluate builds the full report for one backtest. It never panics: bad
// input or an arithmetic failure yields a report with Success false.
func Evaluate(in Input) (report types.MetricsReport) {
	defer func() {
		if r := recover(); r != nil {
			report = failedReport(in, fmt.Errorf("%w: %v", ErrComputation, r))
		}
	}()

	report, err := evaluate(in)
	if err != nil {
		return failedReport(in, err)
	}
	return report
}

func evaluate(in Input) (types.MetricsReport, error) {
	if in.Config == nil {
		return types.MetricsReport{}, fmt.Errorf("%w: missing evaluation config", ErrInvalidInput)
	}
	if err := in.Config.validate(); err != nil {
		return types.MetricsReport{}, err
	}

	bars := in.Series.Bars
	if len(bars) == 0 || len(in.Positions) == 0 {
		return emptyReport(in), nil
	}
	if err := validatePositions(len(bars), in.Positions); err != nil {
		return types.MetricsReport{}, err
	}

	cfg := in.Config
	trades := realizeTrades(bars, in.Positions, cfg.initialCapital, cfg.feeRatio)
	for i, ex := range analyzeDrawdowns(bars, in.Positions) {
		trades[i].MaxLoss = ex.maxLoss.Round(metrics.Scale)
		trades[i].MaxDrawdown = ex.maxDrawdown.Round(metrics.Scale)
	}

	report := newReport(in)
	stats := summarizeTrades(trades, cfg.initialCapital)
	report.FinalAmount = stats.finalAmount
	report.TotalProfit = stats.totalProfit
	report.TotalFee = stats.totalFee
	report.NumberOfTrades = len(trades)
	report.ProfitableTrades = stats.profitable
	report.UnprofitableTrades = len(trades) - stats.profitable
	report.Trades = trades

	seed := stats.seed(cfg.initialCapital, len(trades))
	annualized := metrics.AnnualizedReturn(seed.Float(types.TotalReturn), in.Series.Start(), in.Series.End())
	seed[types.AnnualizedReturn] = metrics.ToDecimal(annualized, metrics.Scale)

	var benchmark []float64
	if len(in.Benchmark) >= 2 {
		benchmark = metrics.LogReturns(types.Closes(in.Benchmark))
	}

	set, err := metrics.Compute(metrics.Inputs{
		Returns:   BuildReturnSeries(bars, in.Positions, cfg.returnKind),
		Prices:    types.Closes(bars),
		Benchmark: benchmark,
		RiskFree:  cfg.riskFreeRate.InexactFloat64(),
		Factor:    report.AnnualizationFactor,
		Seed:      seed,
	})
	if err != nil {
		return types.MetricsReport{}, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	report.Metrics = set
	report.CompositeScore = Score(ScoreInputs{Metrics: set, TradeCount: len(trades)})
	return report, nil
}

func validatePositions(barCount int, positions []types.ClosedPosition) error {
	for i, p := range positions {
		switch {
		case p.EntryIndex < 0 || p.EntryIndex >= barCount:
			return fmt.Errorf("%w: position %d entry index %d outside %d bars", ErrInvalidInput, i, p.EntryIndex, barCount)
		case p.ExitIndex < 0 || p.ExitIndex >= barCount:
			return fmt.Errorf("%w: position %d exit index %d outside %d bars", ErrInvalidInput, i, p.ExitIndex, barCount)
		case p.ExitIndex < p.EntryIndex:
			return fmt.Errorf("%w: position %d exits at %d before entry at %d", ErrInvalidInput, i, p.ExitIndex, p.EntryIndex)
		}
	}
	return nil
}

// annualizationFactor needs at least two bars to trust the interval.
func annualizationFactor(s types.Series) int {
	if s.Len() < 2 {
		return metrics.DefaultAnnualizationFactor
	}
	return metrics.AnnualizationFactor(s.Interval)
}

func newReport(in Input) types.MetricsReport {
	return types.MetricsReport{
		Success:              true,
		StrategyName:         in.StrategyName,
		ParameterDescription: in.ParameterDescription,
		Interval:             in.Series.Interval,
		StartTime:            in.Series.Start(),
		EndTime:              in.Series.End(),
		AnnualizationFactor:  annualizationFactor(in.Series),
		InitialAmount:        in.Config.initialCapital,
		FinalAmount:          in.Config.initialCapital,
		TotalProfit:          decimal.Zero,
		TotalFee:             decimal.Zero,
		Trades:               []types.TradeRecord{},
	}
}

// emptyReport is the valid result of a backtest with no bars or no trades.
func emptyReport(in Input) types.MetricsReport {
	report := newReport(in)
	report.CompositeScore = Score(ScoreInputs{Metrics: report.Metrics})
	return report
}

func failedReport(in Input, err error) types.MetricsReport {
	return types.MetricsReport{
		Success:              false,
		ErrorMessage:         "evaluate backtest: " + err.Error(),
		StrategyName:         in.StrategyName,
		ParameterDescription: in.ParameterDescription,
		Interval:             in.Series.Interval,
	}
}

type tradeStats struct {
	profitable  int
	totalProfit decimal.Decimal
	totalFee    decimal.Decimal
	finalAmount decimal.Decimal
	grossProfit decimal.Decimal
	grossLoss   decimal.Decimal
	maximumLoss decimal.Decimal
	maxDrawdown decimal.Decimal
}

func summarizeTrades(trades []types.TradeRecord, initialCapital decimal.Decimal) tradeStats {
	stats := tradeStats{
		totalProfit: decimal.Zero,
		totalFee:    decimal.Zero,
		grossProfit: decimal.Zero,
		grossLoss:   decimal.Zero,
		maximumLoss: decimal.Zero,
		maxDrawdown: decimal.Zero,
	}
	for _, t := range trades {
		stats.totalProfit = stats.totalProfit.Add(t.Profit)
		stats.totalFee = stats.totalFee.Add(t.Fee)
		if t.IsWin() {
			stats.profitable++
			stats.grossProfit = stats.grossProfit.Add(t.Profit)
		} else {
			stats.grossLoss = stats.grossLoss.Add(t.Profit.Abs())
		}
		stats.maximumLoss = decimal.Max(stats.maximumLoss, t.MaxLoss)
		stats.maxDrawdown = decimal.Max(stats.maxDrawdown, t.MaxDrawdown)
	}
	stats.finalAmount = initialCapital.Add(stats.totalProfit)
	return stats
}

// seed returns the trade level metric kinds the ratio registry builds on.
func (s tradeStats) seed(initialCapital decimal.Decimal, count int) types.MetricSet {
	var set types.MetricSet
	n := decimal.NewFromInt(int64(count))

	totalReturn := s.totalProfit.DivRound(initialCapital, metrics.Scale)
	set[types.TotalReturn] = totalReturn
	set[types.WinRate] = decimal.NewFromInt(int64(s.profitable)).DivRound(n, metrics.Scale)
	set[types.AverageProfit] = totalReturn.DivRound(n, metrics.Scale)
	set[types.MaximumLoss] = s.maximumLoss
	set[types.MaxDrawdown] = s.maxDrawdown

	switch {
	case s.grossLoss.IsPositive():
		set[types.ProfitFactor] = s.grossProfit.DivRound(s.grossLoss, metrics.Scale)
	case s.grossProfit.IsPositive():
		set[types.ProfitFactor] = infiniteRatio
	}
	return set
}

// reportSections groups the metric kinds for PrintReport.
var reportSections = []struct {
	title string
	kinds []types.MetricKind
}{
	{"Return", []types.MetricKind{types.TotalReturn, types.AnnualizedReturn, types.RiskAdjustedReturn}},
	{"Trade-Level Metrics", []types.MetricKind{types.WinRate, types.AverageProfit, types.ProfitFactor, types.MaximumLoss}},
	{"Drawdown Metrics", []types.MetricKind{
		types.MaxDrawdown, types.MaxDrawdownDuration, types.UlcerIndex, types.PainIndex,
	}},
	{"Risk-Adjusted Metrics", []types.MetricKind{
		types.SharpeRatio, types.SortinoRatio, types.CalmarRatio, types.Omega, types.TreynorRatio,
		types.SterlingRatio, types.BurkeRatio, types.ModifiedSharpeRatio,
	}},
	{"Distribution", []types.MetricKind{
		types.Volatility, types.DownsideDeviation, types.Skewness, types.Kurtosis,
		types.VaR95, types.VaR99, types.CVaR,
	}},
	{"Benchmark", []types.MetricKind{
		types.Alpha, types.Beta, types.TrackingError, types.InformationRatio,
		types.UptrendCapture, types.DowntrendCapture,
	}},
}

func PrintReport(w io.Writer, r types.MetricsReport) {
	fmt.Fprintln(w, "===== Trading Report =====")
	if r.StrategyName != "" {
		fmt.Fprintf(w, "Strategy:              %s\n", r.StrategyName)
	}
	if r.ParameterDescription != "" {
		fmt.Fprintf(w, "Parameters:            %s\n", r.ParameterDescription)
	}
	if !r.Success {
		fmt.Fprintf(w, "Error:                 %s\n", r.ErrorMessage)
		fmt.Fprintln(w, "==========================")
		return
	}

	fmt.Fprintf(w, "Start Date:            %s\n", r.StartTime.Format("2006-01-02"))
	fmt.Fprintf(w, "Total Period:          %d days\n", r.EndTime.Sub(r.StartTime)/(24*time.Hour))
	fmt.Fprintf(w, "Interval:              %s (x%d per year)\n", r.Interval, r.AnnualizationFactor)

	fmt.Fprintln(w, "\n-- Absolute Performance --")
	fmt.Fprintf(w, "Initial Amount:        %s\n", r.InitialAmount.StringFixed(2))
	fmt.Fprintf(w, "Final Amount:          %s\n", r.FinalAmount.StringFixed(2))
	fmt.Fprintf(w, "Net Profit:            %s\n", r.TotalProfit.StringFixed(2))
	fmt.Fprintf(w, "Total Fees:            %s\n", r.TotalFee.StringFixed(2))
	fmt.Fprintf(w, "Total Trades:          %d (%d won, %d lost)\n", r.NumberOfTrades, r.ProfitableTrades, r.UnprofitableTrades)

	for _, section := range reportSections {
		fmt.Fprintf(w, "\n-- %s --\n", section.title)
		for _, k := range section.kinds {
			fmt.Fprintf(w, "%-23s%s\n", k.String()+":", r.Metric(k).StringFixed(metrics.Scale))
		}
	}

	fmt.Fprintln(w, "\n-- Score --")
	for _, c := range ScoreBreakdown(ScoreInputs{Metrics: r.Metrics, TradeCount: r.NumberOfTrades}) {
		fmt.Fprintf(w, "%-23s%s (weight %.2f)\n", c.Name+":", c.Score.StringFixed(2), c.Weight)
	}
	fmt.Fprintf(w, "%-23s%s\n", "composite:", r.CompositeScore.StringFixed(2))
	fmt.Fprintln(w, "==========================")
}
