package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosedPosition is one finished entry/exit holding produced by a strategy.
// Indices point into the bar sequence the position was traded on.
type ClosedPosition struct {
	EntryIndex int             `json:"entryIndex"`
	EntryTime  time.Time       `json:"entryTime"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitIndex  int             `json:"exitIndex"`
	ExitTime   time.Time       `json:"exitTime"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	IsLong     bool            `json:"isLong"`
}

func (p ClosedPosition) Side() Side {
	if p.IsLong {
		return SideTypeBuy
	}
	return SideTypeSell
}

// NewClosedPosition builds a position from bar indices, taking times and
// prices from the bars themselves.
func NewClosedPosition(bars []Bar, entryIndex, exitIndex int, isLong bool) ClosedPosition {
	p := ClosedPosition{
		EntryIndex: entryIndex,
		ExitIndex:  exitIndex,
		IsLong:     isLong,
	}
	if entryIndex >= 0 && entryIndex < len(bars) {
		p.EntryTime = bars[entryIndex].EndTime
		p.EntryPrice = bars[entryIndex].Close
	}
	if exitIndex >= 0 && exitIndex < len(bars) {
		p.ExitTime = bars[exitIndex].EndTime
		p.ExitPrice = bars[exitIndex].Close
	}
	return p
}
