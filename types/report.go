package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsReport is the result of evaluating one backtest. It is built once
// and handed out by value.
type MetricsReport struct {
	Success              bool   `json:"success"`
	ErrorMessage         string `json:"errorMessage,omitempty"`
	StrategyName         string `json:"strategyName"`
	ParameterDescription string `json:"parameterDescription"`

	Interval            Interval  `json:"interval"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	AnnualizationFactor int       `json:"annualizationFactor"`

	InitialAmount decimal.Decimal `json:"initialAmount"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
	TotalFee      decimal.Decimal `json:"totalFee"`

	NumberOfTrades     int `json:"numberOfTrades"`
	ProfitableTrades   int `json:"profitableTrades"`
	UnprofitableTrades int `json:"unprofitableTrades"`

	Metrics        MetricSet       `json:"metrics"`
	CompositeScore decimal.Decimal `json:"comprehensiveScore"`

	Trades []TradeRecord `json:"trades"`
}

func (r MetricsReport) Metric(k MetricKind) decimal.Decimal {
	return r.Metrics.Get(k)
}
