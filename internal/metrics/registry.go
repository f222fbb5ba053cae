package metrics

import (
	"backtestreport/types"
)

// Inputs is everything the registry needs to evaluate every ratio kind once.
type Inputs struct {
	// Returns is the mark-to-market strategy return series, one point per
	// bar step.
	Returns []float64
	// Prices are the strategy bar closes.
	Prices []float64
	// Benchmark holds the benchmark log returns, unaligned. Fewer than one
	// point means no benchmark.
	Benchmark []float64
	RiskFree  float64
	Factor    int
	// Seed carries the trade level kinds (TotalReturn through MaxDrawdown)
	// already computed from the trade list.
	Seed types.MetricSet
}

type evaluator func(in Inputs, set *types.MetricSet) float64

// registry maps every ratio kind to its formula. Kinds not present are
// taken from Inputs.Seed.
var registry = map[types.MetricKind]evaluator{
	types.SharpeRatio: func(in Inputs, _ *types.MetricSet) float64 {
		return Sharpe(in.Returns, in.RiskFree, in.Factor)
	},
	types.SortinoRatio: func(in Inputs, _ *types.MetricSet) float64 {
		return Sortino(in.Returns, in.RiskFree, in.Factor)
	},
	types.Omega: func(in Inputs, _ *types.MetricSet) float64 {
		return Omega(in.Returns, in.RiskFree)
	},
	types.Volatility: func(in Inputs, _ *types.MetricSet) float64 {
		return Volatility(in.Prices, in.Factor)
	},
	types.Alpha: func(in Inputs, _ *types.MetricSet) float64 {
		alpha, _ := AlphaBeta(in.Returns, in.Benchmark)
		return alpha
	},
	types.Beta: func(in Inputs, _ *types.MetricSet) float64 {
		_, beta := AlphaBeta(in.Returns, in.Benchmark)
		return beta
	},
	types.TreynorRatio: func(in Inputs, set *types.MetricSet) float64 {
		return Treynor(in.Returns, in.RiskFree, set.Float(types.Beta))
	},
	types.UlcerIndex: func(in Inputs, _ *types.MetricSet) float64 {
		return UlcerIndex(in.Prices)
	},
	types.Skewness: func(in Inputs, _ *types.MetricSet) float64 {
		return Skewness(in.Returns)
	},
	types.Kurtosis: func(in Inputs, _ *types.MetricSet) float64 {
		return Kurtosis(in.Returns)
	},
	types.VaR95: func(in Inputs, _ *types.MetricSet) float64 {
		return ValueAtRisk(in.Returns).VaR95
	},
	types.VaR99: func(in Inputs, _ *types.MetricSet) float64 {
		return ValueAtRisk(in.Returns).VaR99
	},
	types.CVaR: func(in Inputs, _ *types.MetricSet) float64 {
		return ValueAtRisk(in.Returns).CVaR
	},
	types.DownsideDeviation: func(in Inputs, _ *types.MetricSet) float64 {
		return DownsideDeviation(in.Returns, in.RiskFree)
	},
	types.TrackingError: func(in Inputs, _ *types.MetricSet) float64 {
		return TrackingError(in.Returns, in.alignedBenchmark())
	},
	types.InformationRatio: func(in Inputs, set *types.MetricSet) float64 {
		return InformationRatio(in.Returns, in.alignedBenchmark(), set.Float(types.TrackingError))
	},
	types.UptrendCapture: func(in Inputs, _ *types.MetricSet) float64 {
		up, _ := CaptureRatios(in.Returns, in.alignedBenchmark())
		return up
	},
	types.DowntrendCapture: func(in Inputs, _ *types.MetricSet) float64 {
		_, down := CaptureRatios(in.Returns, in.alignedBenchmark())
		return down
	},
	types.SterlingRatio: func(in Inputs, set *types.MetricSet) float64 {
		return SterlingRatio(set.Float(types.AnnualizedReturn), in.Prices)
	},
	types.BurkeRatio: func(in Inputs, set *types.MetricSet) float64 {
		return BurkeRatio(set.Float(types.AnnualizedReturn), in.Prices)
	},
	types.MaxDrawdownDuration: func(in Inputs, _ *types.MetricSet) float64 {
		return float64(MaxDrawdownDuration(in.Prices))
	},
	types.PainIndex: func(in Inputs, _ *types.MetricSet) float64 {
		return PainIndex(in.Prices)
	},
	types.ModifiedSharpeRatio: func(_ Inputs, set *types.MetricSet) float64 {
		return ModifiedSharpe(set.Float(types.SharpeRatio), set.Float(types.Skewness), set.Float(types.Kurtosis))
	},
	types.CalmarRatio: func(_ Inputs, set *types.MetricSet) float64 {
		return Calmar(set.Float(types.AnnualizedReturn), set.Float(types.MaxDrawdown))
	},
	types.RiskAdjustedReturn: func(_ Inputs, set *types.MetricSet) float64 {
		return RiskAdjustedReturn(
			set.Float(types.TotalReturn),
			set.Float(types.Volatility),
			set.Float(types.MaxDrawdown),
			set.Float(types.DownsideDeviation),
		)
	},
}

func (in Inputs) alignedBenchmark() []float64 {
	return AlignBenchmark(in.Benchmark, len(in.Returns))
}

// Compute evaluates every kind in declaration order, so each formula sees
// the rounded values of the kinds it depends on.
func Compute(in Inputs) (types.MetricSet, error) {
	if len(in.Prices) > 0 {
		if err := CheckAligned(in.Returns, len(in.Prices)); err != nil {
			return types.MetricSet{}, err
		}
	}
	if in.Factor <= 0 {
		in.Factor = DefaultAnnualizationFactor
	}

	set := in.Seed
	for _, k := range types.MetricKinds() {
		eval, ok := registry[k]
		if !ok {
			set[k] = set[k].Round(Scale)
			continue
		}
		set[k] = ToDecimal(eval(in, &set), Scale)
	}
	return set, nil
}
