// Package metrics implements the stateless performance and risk formulas
// used by the report engine. Every function returns a finite float64 and
// falls back to 0, or to Infinite when a ratio has a zero denominator and a
// positive numerator.
package metrics

import (
	"math"

	"github.com/shopspring/decimal"
)

// Infinite stands in for an unbounded ratio.
const Infinite = 999.9999

// Scale is the number of decimal places every ratio is reported with.
const Scale = 4

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// variance is the population variance.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}

func stdev(xs []float64) float64 {
	return math.Sqrt(variance(xs))
}

// centralMoment returns the k-th central moment of xs.
func centralMoment(xs []float64, k float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		sum += math.Pow(x-m, k)
	}
	return sum / float64(len(xs))
}

// ratio divides num by den, returning Infinite for a positive numerator
// over zero and 0 for anything else that is not a finite number.
func ratio(num, den float64) float64 {
	if den == 0 {
		if num > 0 {
			return Infinite
		}
		return 0
	}
	return finite(num / den)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// roundTo rounds half away from zero, matching decimal.Round.
func roundTo(f float64, places int32) float64 {
	return ToDecimal(f, places).InexactFloat64()
}

// ToDecimal converts f to a decimal rounded to places. NaN and infinities
// become zero because decimal.NewFromFloat panics on them.
func ToDecimal(f float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(finite(f)).Round(places)
}
