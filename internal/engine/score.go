package engine

import (
	"backtestreport/types"
	"math"

	"github.com/shopspring/decimal"
)

const (
	maxScore   = 10.0
	scoreScale = 2
)

// curve maps a metric value onto [0, 1].
type curve func(x float64) float64

// ramp is 0 at or below lo and rises linearly to 1 at hi.
func ramp(lo, hi float64) curve {
	return func(x float64) float64 {
		switch {
		case x <= lo:
			return 0
		case x >= hi:
			return 1
		}
		return (x - lo) / (hi - lo)
	}
}

// decay is 1 at or below good and falls linearly to 0 at bad.
func decay(good, bad float64) curve {
	return func(x float64) float64 {
		switch {
		case x <= good:
			return 1
		case x >= bad:
			return 0
		}
		return 1 - (x-good)/(bad-good)
	}
}

// band is 1 on [fullLo, fullHi], rising from lo and falling to hi.
func band(lo, fullLo, fullHi, hi float64) curve {
	rise := ramp(lo, fullLo)
	fall := decay(fullHi, hi)
	return func(x float64) float64 {
		if x < fullLo {
			return rise(x)
		}
		return fall(x)
	}
}

type ScoreInputs struct {
	Metrics    types.MetricSet
	TradeCount int
}

type scoreTerm struct {
	weight float64
	value  func(ScoreInputs) float64
	curve  curve
}

type subScore struct {
	name   string
	weight float64
	terms  []scoreTerm
}

func metric(k types.MetricKind) func(ScoreInputs) float64 {
	return func(in ScoreInputs) float64 {
		return in.Metrics.Float(k)
	}
}

func absMetric(k types.MetricKind) func(ScoreInputs) float64 {
	return func(in ScoreInputs) float64 {
		return math.Abs(in.Metrics.Float(k))
	}
}

func tradeCount(in ScoreInputs) float64 {
	return float64(in.TradeCount)
}

var scoreTable = []subScore{
	{
		name:   "return",
		weight: 0.35,
		terms: []scoreTerm{
			{0.4, metric(types.AnnualizedReturn), ramp(0, 0.20)},
			{0.3, metric(types.TotalReturn), ramp(0, 0.50)},
			{0.3, metric(types.ProfitFactor), ramp(1, 2)},
		},
	},
	{
		name:   "risk",
		weight: 0.35,
		terms: []scoreTerm{
			{0.30, metric(types.SharpeRatio), ramp(0, 2)},
			{0.25, absMetric(types.MaxDrawdown), decay(0.05, 0.30)},
			{0.20, metric(types.SortinoRatio), ramp(0, 1.5)},
			{0.15, metric(types.VaR95), decay(0.02, 0.10)},
			{0.10, metric(types.CalmarRatio), ramp(0, 1)},
		},
	},
	{
		name:   "trade quality",
		weight: 0.20,
		terms: []scoreTerm{
			{0.4, metric(types.WinRate), ramp(0.30, 0.65)},
			{0.3, tradeCount, band(5, 10, 100, 200)},
			{0.3, metric(types.AverageProfit), ramp(0, 0.02)},
		},
	},
	{
		name:   "stability",
		weight: 0.10,
		terms: []scoreTerm{
			{0.4, absMetric(types.Skewness), decay(0, 0.5)},
			{0.3, absMetric(types.Kurtosis), decay(0, 2)},
			{0.3, metric(types.PainIndex), decay(0.01, 0.05)},
		},
	},
}

func (s subScore) score(in ScoreInputs) float64 {
	var total float64
	for _, t := range s.terms {
		total += t.weight * maxScore * t.curve(t.value(in))
	}
	return total
}

// Score blends the return, risk, trade quality and stability sub-scores,
// each on a 0-10 scale, into one composite clamped to [0, 10].
func Score(in ScoreInputs) decimal.Decimal {
	var total float64
	for _, s := range scoreTable {
		total += s.weight * s.score(in)
	}
	if math.IsNaN(total) {
		total = 0
	}
	total = math.Max(0, math.Min(maxScore, total))
	return decimal.NewFromFloat(total).Round(scoreScale)
}

// ScoreComponent is one weighted sub-score of the composite.
type ScoreComponent struct {
	Name   string
	Weight float64
	Score  decimal.Decimal
}

func ScoreBreakdown(in ScoreInputs) []ScoreComponent {
	out := make([]ScoreComponent, len(scoreTable))
	for i, s := range scoreTable {
		out[i] = ScoreComponent{
			Name:   s.name,
			Weight: s.weight,
			Score:  decimal.NewFromFloat(s.score(in)).Round(scoreScale),
		}
	}
	return out
}
