package engine

import (
	"backtestreport/types"
	"time"

	"github.com/shopspring/decimal"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func barsEvery(step time.Duration, closes ...float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.NewBar(testStart.Add(step*time.Duration(i)), decimal.NewFromFloat(c))
	}
	return bars
}

func dailyBars(closes ...float64) []types.Bar {
	return barsEvery(24*time.Hour, closes...)
}

func flatCloses(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func long(entry, exit int) types.ClosedPosition {
	return types.ClosedPosition{EntryIndex: entry, ExitIndex: exit, IsLong: true}
}

func short(entry, exit int) types.ClosedPosition {
	return types.ClosedPosition{EntryIndex: entry, ExitIndex: exit}
}

func testConfig() *EvaluationConfig {
	return NewEvaluationConfig(dec("10000"), dec("0.001"), decimal.Zero, LogReturns)
}
