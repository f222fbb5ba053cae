package metrics

import (
	"backtestreport/types"
	"math"
	"time"
)

// DefaultAnnualizationFactor is used when the interval cannot be resolved.
const DefaultAnnualizationFactor = 252

var annualizationTable = []struct {
	upTo   time.Duration
	factor int
}{
	{time.Minute, 525600},
	{time.Minute * 5, 105120},
	{time.Minute * 15, 35040},
	{time.Minute * 30, 17520},
	{time.Hour, 8760},
	{time.Hour * 4, 2190},
	{time.Hour * 6, 1460},
	{time.Hour * 12, 730},
	{time.Hour * 24, 365},
	{time.Hour * 24 * 7, 52},
}

// AnnualizationFactor maps a bar interval to the number of periods per year.
func AnnualizationFactor(interval types.Interval) int {
	d, err := interval.Duration()
	if err != nil {
		return DefaultAnnualizationFactor
	}
	for _, row := range annualizationTable {
		if d <= row.upTo {
			return row.factor
		}
	}
	return 12
}

// AnnualizedReturn compounds totalReturn to a yearly rate over the whole
// days between start and end. Windows of one day or less return
// totalReturn unchanged.
func AnnualizedReturn(totalReturn float64, start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	window := end.Sub(start)
	if window <= 24*time.Hour {
		return totalReturn
	}
	days := int(window.Hours() / 24)
	return finite(math.Pow(1+totalReturn, 365/float64(days)) - 1)
}
