package engine

import (
	"backtestreport/types"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type ReturnKind int

const (
	LogReturns ReturnKind = iota
	ArithmeticReturns
)

func (k ReturnKind) String() string {
	switch k {
	case LogReturns:
		return "log"
	case ArithmeticReturns:
		return "arithmetic"
	default:
		return fmt.Sprintf("ReturnKind(%d)", int(k))
	}
}

func ParseReturnKind(s string) (ReturnKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "log":
		return LogReturns, nil
	case "arithmetic", "simple":
		return ArithmeticReturns, nil
	default:
		return 0, fmt.Errorf("unknown return kind %q", s)
	}
}

// ReturnSeries is the per-bar mark-to-market return of the strategy. Entry
// i-1 is the return of bar i, so it always has one point fewer than the
// bars it was built from.
type ReturnSeries []float64

// BuildReturnSeries marks every bar as an entry, an exit or inside a
// position and returns the close-to-close return only for bars that were
// held from the previous close. Flat bars, entry bars and the bar after an
// exit return 0.
func BuildReturnSeries(bars []types.Bar, positions []types.ClosedPosition, kind ReturnKind) ReturnSeries {
	if len(bars) < 2 {
		return ReturnSeries{}
	}
	n := len(bars)
	inPosition := make([]bool, n)
	isEntry := make([]bool, n)
	isExit := make([]bool, n)

	for _, p := range positions {
		if p.EntryIndex >= 0 && p.EntryIndex < n {
			isEntry[p.EntryIndex] = true
		}
		if p.ExitIndex >= 0 && p.ExitIndex < n {
			isExit[p.ExitIndex] = true
		}
		for i := max(p.EntryIndex, 0); i <= p.ExitIndex && i < n; i++ {
			inPosition[i] = true
		}
	}

	series := make(ReturnSeries, n-1)
	for i := 1; i < n; i++ {
		switch {
		case isEntry[i], isExit[i-1], !inPosition[i]:
			continue
		}
		prev := bars[i-1].Close
		if !prev.IsPositive() {
			continue
		}
		series[i-1] = periodReturn(prev, bars[i].Close, kind)
	}
	return series
}

func periodReturn(prev, cur decimal.Decimal, kind ReturnKind) float64 {
	if kind == ArithmeticReturns {
		return cur.Sub(prev).DivRound(prev, 10).InexactFloat64()
	}
	r := math.Log(cur.InexactFloat64() / prev.InexactFloat64())
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
