package engine

import (
	"backtestreport/types"
	"time"

	"github.com/shopspring/decimal"
)

// profitScale is the precision of a trade's profit percentage.
const profitScale = 4

// ledger compounds the whole running capital through every trade in turn.
type ledger struct {
	capital  decimal.Decimal
	feeRatio decimal.Decimal
	trades   []types.TradeRecord
}

func newLedger(initialCapital, feeRatio decimal.Decimal) *ledger {
	return &ledger{
		capital:  initialCapital,
		feeRatio: feeRatio,
	}
}

func (l *ledger) apply(bars []types.Bar, p types.ClosedPosition) types.TradeRecord {
	entryPrice := closeAt(bars, p.EntryIndex, p.EntryPrice)
	exitPrice := closeAt(bars, p.ExitIndex, p.ExitPrice)

	var pct decimal.Decimal
	if p.IsLong {
		pct = exitPrice.Sub(entryPrice).DivRound(entryPrice, profitScale)
	} else {
		pct = entryPrice.Sub(exitPrice).DivRound(entryPrice, profitScale)
	}

	entryFee := l.capital.Mul(l.feeRatio)
	deployed := l.capital.Sub(entryFee)
	exitGross := deployed.Add(deployed.Mul(pct))
	exitFee := exitGross.Mul(l.feeRatio)
	exitNet := exitGross.Sub(exitFee)

	record := types.TradeRecord{
		Index:       len(l.trades) + 1,
		Side:        p.Side(),
		EntryTime:   timeAt(bars, p.EntryIndex, p.EntryTime),
		ExitTime:    timeAt(bars, p.ExitIndex, p.ExitTime),
		EntryPrice:  entryPrice,
		ExitPrice:   exitPrice,
		EntryAmount: l.capital,
		ExitAmount:  exitNet,
		Profit:      exitNet.Sub(l.capital),
		ProfitPct:   pct,
		Fee:         entryFee.Add(exitFee),
	}
	l.trades = append(l.trades, record)
	l.capital = exitNet
	return record
}

// realizeTrades turns closed positions into trade records, in the order
// given, compounding the exit amount of each trade into the next.
func realizeTrades(bars []types.Bar, positions []types.ClosedPosition, initialCapital, feeRatio decimal.Decimal) []types.TradeRecord {
	l := newLedger(initialCapital, feeRatio)
	for _, p := range positions {
		l.apply(bars, p)
	}
	return l.trades
}

func closeAt(bars []types.Bar, i int, fallback decimal.Decimal) decimal.Decimal {
	if i >= 0 && i < len(bars) {
		return bars[i].Close
	}
	return fallback
}

func timeAt(bars []types.Bar, i int, fallback time.Time) time.Time {
	if i >= 0 && i < len(bars) {
		return bars[i].EndTime
	}
	return fallback
}
