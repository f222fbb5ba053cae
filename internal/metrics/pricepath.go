package metrics

import (
	"math"
)

// drawdownPoints walks prices from the second bar on and returns the
// peak-to-current drawdown fraction of every bar that did not set a new
// peak.
func drawdownPoints(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	peak := prices[0]
	points := make([]float64, 0, len(prices)-1)
	for _, p := range prices[1:] {
		if p > peak {
			peak = p
			continue
		}
		if peak <= 0 {
			points = append(points, 0)
			continue
		}
		points = append(points, roundTo((peak-p)/peak, 8))
	}
	return points
}

// UlcerIndex is the root mean square of the percentage drawdown from the
// running peak, over every bar.
func UlcerIndex(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}
	peak := prices[0]
	var sum float64
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if peak <= 0 {
			continue
		}
		pct := (p - peak) / peak * 100
		sum += pct * pct
	}
	return finite(math.Sqrt(sum / float64(len(prices))))
}

// AverageDrawdown is the mean drawdown over every bar that sits at or below
// its running peak, rounded to Scale.
func AverageDrawdown(prices []float64) float64 {
	points := drawdownPoints(prices)
	if len(points) == 0 {
		return 0
	}
	return roundTo(mean(points), Scale)
}

// RootMeanSquareDrawdown is sqrt(mean(drawdown^2)) over the same bars as
// AverageDrawdown, rounded to Scale.
func RootMeanSquareDrawdown(prices []float64) float64 {
	points := drawdownPoints(prices)
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, d := range points {
		sum += d * d
	}
	return roundTo(math.Sqrt(sum/float64(len(points))), Scale)
}

// SterlingRatio is the annualized return over the average drawdown.
func SterlingRatio(annualizedReturn float64, prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	return ratio(annualizedReturn, AverageDrawdown(prices))
}

// BurkeRatio is the annualized return over the root mean square drawdown.
func BurkeRatio(annualizedReturn float64, prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	return ratio(annualizedReturn, RootMeanSquareDrawdown(prices))
}

// MaxDrawdownDuration is the longest run of consecutive bars spent below
// the prior peak. A bar that returns to the peak ends the run.
func MaxDrawdownDuration(prices []float64) int {
	if len(prices) < 2 {
		return 0
	}
	longest, current := 0, 0
	peak := prices[0]
	for _, p := range prices[1:] {
		if p >= peak {
			peak = p
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

// PainIndex is the mean drawdown fraction over all bars, counting bars at a
// new peak as zero.
func PainIndex(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}
	var total float64
	for _, d := range drawdownPoints(prices) {
		total += d
	}
	return finite(total / float64(len(prices)))
}
