package types

import (
	"time"
)

// Series is an ordered, fixed-interval bar sequence for one instrument.
type Series struct {
	Ticker   string   `json:"ticker"`
	Interval Interval `json:"interval"`
	Bars     []Bar    `json:"bars"`
}

func NewSeries(ticker string, interval Interval, bars []Bar) Series {
	return Series{
		Ticker:   ticker,
		Interval: interval,
		Bars:     bars,
	}
}

func (s Series) Len() int {
	return len(s.Bars)
}

// Start returns the end time of the first bar, or the zero time.
func (s Series) Start() time.Time {
	if len(s.Bars) == 0 {
		return time.Time{}
	}
	return s.Bars[0].EndTime
}

// End returns the end time of the last bar, or the zero time.
func (s Series) End() time.Time {
	if len(s.Bars) == 0 {
		return time.Time{}
	}
	return s.Bars[len(s.Bars)-1].EndTime
}
