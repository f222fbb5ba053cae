package engine

import (
	"backtestreport/types"

	"github.com/shopspring/decimal"
)

// excursionScale is the precision of the intermediate per-bar ratios.
const excursionScale = 8

// excursion is the worst adverse move seen while a trade was open, both as
// positive fractions.
type excursion struct {
	maxLoss     decimal.Decimal
	maxDrawdown decimal.Decimal
}

// analyzeDrawdowns walks the bars of each position from entry to exit
// inclusive. Longs measure loss against the entry close and drawdown
// against the running peak. Shorts measure loss as (close-exit)/entry and
// drawdown as the rise above the running trough.
func analyzeDrawdowns(bars []types.Bar, positions []types.ClosedPosition) []excursion {
	out := make([]excursion, len(positions))
	for i, p := range positions {
		out[i] = positionExcursion(bars, p)
	}
	return out
}

func positionExcursion(bars []types.Bar, p types.ClosedPosition) excursion {
	first := max(p.EntryIndex, 0)
	last := min(p.ExitIndex, len(bars)-1)
	if first > last {
		return excursion{}
	}

	entry := bars[first].Close
	exit := bars[last].Close
	if !entry.IsPositive() {
		return excursion{}
	}

	worstLoss := decimal.Zero
	worstDrawdown := decimal.Zero
	peak := entry
	trough := entry

	for i := first; i <= last; i++ {
		c := bars[i].Close
		if c.GreaterThan(peak) {
			peak = c
		}
		if c.LessThanOrEqual(trough) {
			trough = c
		}

		var loss, drawdown decimal.Decimal
		if p.IsLong {
			loss = c.Sub(entry).DivRound(entry, excursionScale)
			drawdown = c.Sub(peak).DivRound(peak, excursionScale)
		} else {
			loss = c.Sub(exit).DivRound(entry, excursionScale)
			if trough.IsPositive() {
				drawdown = trough.Sub(c).DivRound(trough, excursionScale)
			}
		}

		if loss.LessThan(worstLoss) {
			worstLoss = loss
		}
		if drawdown.LessThan(worstDrawdown) {
			worstDrawdown = drawdown
		}
	}

	return excursion{
		maxLoss:     worstLoss.Abs(),
		maxDrawdown: worstDrawdown.Abs(),
	}
}
