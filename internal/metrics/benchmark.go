package metrics

import (
	"errors"
	"fmt"
	"math"
)

var ErrSeriesLength = errors.New("return series length mismatch")

// LogReturns converts prices to close-to-close log returns. A step with a
// non-positive price contributes 0 so the result stays index aligned.
func LogReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] <= 0 || prices[i] <= 0 {
			continue
		}
		out[i-1] = math.Log(prices[i] / prices[i-1])
	}
	return out
}

// AlignBenchmark pads benchmark returns with zeros, or truncates them, to n
// points.
func AlignBenchmark(benchmark []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, benchmark)
	return out
}

// CheckAligned reports ErrSeriesLength unless strategy carries exactly one
// return per bar step.
func CheckAligned(strategy []float64, barCount int) error {
	want := barCount - 1
	if want < 0 {
		want = 0
	}
	if len(strategy) != want {
		return fmt.Errorf("%w: got %d returns for %d bars", ErrSeriesLength, len(strategy), barCount)
	}
	return nil
}

// AlphaBeta regresses strategy returns on benchmark returns after
// truncating both to the shorter length. Empty inputs give alpha 0, beta 1.
func AlphaBeta(strategy, benchmark []float64) (alpha, beta float64) {
	n := len(strategy)
	if len(benchmark) < n {
		n = len(benchmark)
	}
	if n == 0 {
		return 0, 1
	}
	s := strategy[:n]
	b := benchmark[:n]
	ms, mb := mean(s), mean(b)

	var cov, varB float64
	for i := 0; i < n; i++ {
		ds := s[i] - ms
		db := b[i] - mb
		cov += ds * db
		varB += db * db
	}
	cov /= float64(n)
	varB /= float64(n)

	if varB != 0 {
		beta = finite(cov / varB)
	}
	alpha = finite(ms - beta*mb)
	return alpha, beta
}

func excess(strategy, benchmark []float64) ([]float64, bool) {
	if len(strategy) == 0 || len(strategy) != len(benchmark) {
		return nil, false
	}
	diff := make([]float64, len(strategy))
	for i := range strategy {
		diff[i] = strategy[i] - benchmark[i]
	}
	return diff, true
}

// TrackingError is the standard deviation of strategy minus benchmark.
func TrackingError(strategy, benchmark []float64) float64 {
	diff, ok := excess(strategy, benchmark)
	if !ok {
		return 0
	}
	return finite(stdev(diff))
}

// InformationRatio is the mean excess return over trackingError.
func InformationRatio(strategy, benchmark []float64, trackingError float64) float64 {
	if trackingError == 0 {
		return 0
	}
	diff, ok := excess(strategy, benchmark)
	if !ok {
		return 0
	}
	return finite(mean(diff) / trackingError)
}

// CaptureRatios returns how much of the benchmark's up and down moves the
// strategy captured.
func CaptureRatios(strategy, benchmark []float64) (up, down float64) {
	if len(strategy) != len(benchmark) {
		return 0, 0
	}
	var upS, upB, downS, downB float64
	for i := range strategy {
		switch b := benchmark[i]; {
		case b > 0:
			upS += strategy[i]
			upB += b
		case b < 0:
			downS += strategy[i]
			downB += b
		}
	}
	if upB != 0 {
		up = finite(upS / upB)
	}
	if downB != 0 {
		down = finite(downS / downB)
	}
	return up, down
}
