package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReturns(t *testing.T) {
	assert.Nil(t, LogReturns([]float64{100}))
	got := LogReturns([]float64{100, 110, 0, 121})
	require.Len(t, got, 3)
	assert.InDelta(t, math.Log(1.1), got[0], 1e-12)
	assert.Equal(t, 0.0, got[1])
	assert.Equal(t, 0.0, got[2])
}

func TestAlignBenchmark(t *testing.T) {
	assert.Equal(t, []float64{0.1, 0.2, 0, 0}, AlignBenchmark([]float64{0.1, 0.2}, 4))
	assert.Equal(t, []float64{0.1}, AlignBenchmark([]float64{0.1, 0.2}, 1))
	assert.Equal(t, []float64{0, 0, 0}, AlignBenchmark(nil, 3))
}

func TestCheckAligned(t *testing.T) {
	require.NoError(t, CheckAligned(make([]float64, 9), 10))
	require.NoError(t, CheckAligned(nil, 0))
	require.NoError(t, CheckAligned(nil, 1))
	assert.ErrorIs(t, CheckAligned(make([]float64, 8), 10), ErrSeriesLength)
}

func TestAlphaBeta(t *testing.T) {
	tests := []struct {
		name      string
		strategy  []float64
		benchmark []float64
		alpha     float64
		beta      float64
	}{
		{"no benchmark", []float64{0.01, 0.02}, nil, 0, 1},
		{"no strategy", nil, []float64{0.01}, 0, 1},
		{
			name:      "linear",
			strategy:  []float64{0.021, -0.039, 0.061, 0.001},
			benchmark: []float64{0.01, -0.02, 0.03, 0},
			alpha:     0.001,
			beta:      2,
		},
		{
			name:      "benchmark truncated",
			strategy:  []float64{0.021, -0.039, 0.061, 0.001},
			benchmark: []float64{0.01, -0.02, 0.03, 0, 0.5, -0.5},
			alpha:     0.001,
			beta:      2,
		},
		{
			name:      "flat benchmark",
			strategy:  []float64{0.01, 0.03},
			benchmark: []float64{0.02, 0.02},
			alpha:     0.02,
			beta:      0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alpha, beta := AlphaBeta(tt.strategy, tt.benchmark)
			assert.InDelta(t, tt.alpha, alpha, 1e-9)
			assert.InDelta(t, tt.beta, beta, 1e-9)
		})
	}
}

func TestTrackingErrorAndInformationRatio(t *testing.T) {
	s := []float64{0.01, 0.02, 0.03}
	assert.Equal(t, 0.0, TrackingError(s, s))
	assert.Equal(t, 0.0, InformationRatio(s, s, 0))
	assert.Equal(t, 0.0, TrackingError(s, []float64{0.01}))

	b := []float64{0, 0.02, 0.01}
	// excess 0.01, 0, 0.02: mean 0.01, population stdev 0.00816497
	te := TrackingError(s, b)
	assert.InDelta(t, 0.00816497, te, 1e-8)
	assert.InDelta(t, 0.01/te, InformationRatio(s, b, te), 1e-9)
}

func TestCaptureRatios(t *testing.T) {
	up, down := CaptureRatios(
		[]float64{0.02, -0.01, 0.04, -0.01},
		[]float64{0.01, -0.02, 0.02, -0.02},
	)
	assert.InDelta(t, 2.0, up, 1e-9)
	assert.InDelta(t, 0.5, down, 1e-9)

	up, down = CaptureRatios([]float64{0.01, 0.02}, []float64{0, 0})
	assert.Equal(t, 0.0, up)
	assert.Equal(t, 0.0, down)

	up, down = CaptureRatios([]float64{0.01, 0.02}, []float64{0.01})
	assert.Equal(t, 0.0, up)
	assert.Equal(t, 0.0, down)
}
