package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MetricKind enumerates every scalar measure carried by a MetricsReport.
// The declaration order is also the evaluation order: a kind may only
// depend on kinds declared before it.
type MetricKind int

const (
	// trade and return statistics
	TotalReturn MetricKind = iota
	AnnualizedReturn
	WinRate
	AverageProfit
	ProfitFactor
	MaximumLoss
	MaxDrawdown

	// return distribution
	SharpeRatio
	SortinoRatio
	Omega
	Volatility
	Alpha
	Beta
	TreynorRatio
	UlcerIndex
	Skewness
	Kurtosis
	VaR95
	VaR99
	CVaR
	DownsideDeviation

	// benchmark relative
	TrackingError
	InformationRatio
	UptrendCapture
	DowntrendCapture

	// price path
	SterlingRatio
	BurkeRatio
	MaxDrawdownDuration
	PainIndex

	// composites
	ModifiedSharpeRatio
	CalmarRatio
	RiskAdjustedReturn

	NumMetricKinds
)

var metricNames = [NumMetricKinds]string{
	TotalReturn:         "total_return",
	AnnualizedReturn:    "annualized_return",
	WinRate:             "win_rate",
	AverageProfit:       "average_profit",
	ProfitFactor:        "profit_factor",
	MaximumLoss:         "maximum_loss",
	MaxDrawdown:         "max_drawdown",
	SharpeRatio:         "sharpe_ratio",
	SortinoRatio:        "sortino_ratio",
	Omega:               "omega",
	Volatility:          "volatility",
	Alpha:               "alpha",
	Beta:                "beta",
	TreynorRatio:        "treynor_ratio",
	UlcerIndex:          "ulcer_index",
	Skewness:            "skewness",
	Kurtosis:            "kurtosis",
	VaR95:               "var95",
	VaR99:               "var99",
	CVaR:                "cvar",
	DownsideDeviation:   "downside_deviation",
	TrackingError:       "tracking_error",
	InformationRatio:    "information_ratio",
	UptrendCapture:      "uptrend_capture",
	DowntrendCapture:    "downtrend_capture",
	SterlingRatio:       "sterling_ratio",
	BurkeRatio:          "burke_ratio",
	MaxDrawdownDuration: "max_drawdown_duration",
	PainIndex:           "pain_index",
	ModifiedSharpeRatio: "modified_sharpe_ratio",
	CalmarRatio:         "calmar_ratio",
	RiskAdjustedReturn:  "risk_adjusted_return",
}

func (k MetricKind) String() string {
	if k < 0 || k >= NumMetricKinds {
		return fmt.Sprintf("MetricKind(%d)", int(k))
	}
	return metricNames[k]
}

// MetricKinds returns every kind in evaluation order.
func MetricKinds() []MetricKind {
	kinds := make([]MetricKind, NumMetricKinds)
	for i := range kinds {
		kinds[i] = MetricKind(i)
	}
	return kinds
}

// MetricSet holds one value per MetricKind. It is an array, so assigning
// or returning it copies every value.
type MetricSet [NumMetricKinds]decimal.Decimal

func (s MetricSet) Get(k MetricKind) decimal.Decimal {
	if k < 0 || k >= NumMetricKinds {
		return decimal.Zero
	}
	return s[k]
}

func (s MetricSet) Float(k MetricKind) float64 {
	return s.Get(k).InexactFloat64()
}

func (s MetricSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]decimal.Decimal, NumMetricKinds)
	for k := MetricKind(0); k < NumMetricKinds; k++ {
		out[k.String()] = s[k]
	}
	return json.Marshal(out)
}

func (s *MetricSet) UnmarshalJSON(data []byte) error {
	var in map[string]decimal.Decimal
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	for k := MetricKind(0); k < NumMetricKinds; k++ {
		s[k] = in[k.String()]
	}
	return nil
}
