package engine

import (
	"backtestreport/types"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealizeTrades_SingleLong(t *testing.T) {
	trades := realizeTrades(dailyBars(100, 110), []types.ClosedPosition{long(0, 1)}, dec("10000"), dec("0.001"))
	require.Len(t, trades, 1)

	tr := trades[0]
	assert.Equal(t, 1, tr.Index)
	assert.Equal(t, types.SideTypeBuy, tr.Side)
	assert.True(t, tr.ProfitPct.Equal(dec("0.1")), "profit pct = %s", tr.ProfitPct)
	assert.True(t, tr.EntryAmount.Equal(dec("10000")))
	assert.True(t, tr.Fee.Equal(dec("20.989")), "fee = %s", tr.Fee)
	assert.True(t, tr.ExitAmount.Equal(dec("10978.011")), "exit amount = %s", tr.ExitAmount)
	assert.True(t, tr.Profit.Equal(dec("978.011")), "profit = %s", tr.Profit)
	assert.Equal(t, testStart, tr.EntryTime)
}

func TestRealizeTrades_ProfitPct(t *testing.T) {
	tests := []struct {
		name     string
		closes   []float64
		position types.ClosedPosition
		want     string
	}{
		{"long gain", []float64{100, 110}, long(0, 1), "0.1"},
		{"short same prices", []float64{100, 110}, short(0, 1), "-0.1"},
		{"short gain", []float64{100, 90}, short(0, 1), "0.1"},
		{"long loss", []float64{100, 90}, long(0, 1), "-0.1"},
		{"rounds half up", []float64{1, 1.00005}, long(0, 1), "0.0001"},
		{"rounds down", []float64{3, 4}, long(0, 1), "0.3333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trades := realizeTrades(dailyBars(tt.closes...), []types.ClosedPosition{tt.position}, dec("1000"), decimal.Zero)
			require.Len(t, trades, 1)
			assert.True(t, trades[0].ProfitPct.Equal(dec(tt.want)), "got %s, want %s", trades[0].ProfitPct, tt.want)
		})
	}
}

func TestRealizeTrades_Compounds(t *testing.T) {
	bars := dailyBars(100, 110, 105, 95, 100, 120, 90)
	positions := []types.ClosedPosition{long(0, 1), short(2, 3), long(4, 5), short(5, 6)}
	initial := dec("5000")

	trades := realizeTrades(bars, positions, initial, dec("0.002"))
	require.Len(t, trades, len(positions))

	total := decimal.Zero
	for k, tr := range trades {
		assert.Equal(t, k+1, tr.Index)
		total = total.Add(tr.Profit)
		if k > 0 {
			assert.True(t, tr.EntryAmount.Equal(trades[k-1].ExitAmount), "trade %d entry %s != previous exit %s", k, tr.EntryAmount, trades[k-1].ExitAmount)
		}
	}
	last := trades[len(trades)-1]
	assert.True(t, last.ExitAmount.Equal(initial.Add(total)))
}

func TestRealizeTrades_FallsBackToPositionPrices(t *testing.T) {
	p := types.ClosedPosition{
		EntryIndex: 5,
		ExitIndex:  6,
		EntryPrice: dec("50"),
		ExitPrice:  dec("55"),
		IsLong:     true,
	}
	trades := realizeTrades(nil, []types.ClosedPosition{p}, dec("100"), decimal.Zero)
	require.Len(t, trades, 1)
	assert.True(t, trades[0].ProfitPct.Equal(dec("0.1")))
	assert.True(t, trades[0].ExitAmount.Equal(dec("110")))
}
