package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one closed price observation. Only Close takes part in the
// performance calculations; the other prices are carried for display.
type Bar struct {
	Ticker  string          `json:"ticker"`
	Open    decimal.Decimal `json:"open"`
	High    decimal.Decimal `json:"high"`
	Low     decimal.Decimal `json:"low"`
	Close   decimal.Decimal `json:"close"`
	Volume  decimal.Decimal `json:"volume"`
	EndTime time.Time       `json:"endTime"`
}

func NewBar(endTime time.Time, closePrice decimal.Decimal) Bar {
	return Bar{
		Open:    closePrice,
		High:    closePrice,
		Low:     closePrice,
		Close:   closePrice,
		EndTime: endTime,
	}
}

// Closes returns the close prices of bars as float64 values.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close.InexactFloat64()
	}
	return out
}
