package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// peak 110, troughs at 99 and 104.5, new peak 121, then 110
var sawtooth = []float64{100, 110, 99, 104.5, 121, 110}

func TestDrawdownPoints(t *testing.T) {
	assert.Nil(t, drawdownPoints([]float64{100}))
	assert.Equal(t, []float64{0.1, 0.05, 0.09090909}, drawdownPoints(sawtooth))
	assert.Equal(t, []float64{0, 0}, drawdownPoints([]float64{5, 5, 5}))
}

func TestAverageDrawdowns(t *testing.T) {
	assert.Equal(t, 0.0803, AverageDrawdown(sawtooth))
	assert.Equal(t, 0.0832, RootMeanSquareDrawdown(sawtooth))
	assert.Equal(t, 0.0, AverageDrawdown([]float64{1, 2, 3}))
}

func TestSterlingBurke(t *testing.T) {
	assert.InDelta(t, 0.2/0.0803, SterlingRatio(0.2, sawtooth), 1e-9)
	assert.InDelta(t, 0.2/0.0832, BurkeRatio(0.2, sawtooth), 1e-9)

	rising := []float64{1, 2, 3, 4}
	assert.Equal(t, Infinite, SterlingRatio(0.2, rising))
	assert.Equal(t, Infinite, BurkeRatio(0.2, rising))
	assert.Equal(t, 0.0, SterlingRatio(-0.2, rising))
	assert.Equal(t, 0.0, BurkeRatio(0, rising))
	assert.Equal(t, 0.0, SterlingRatio(0.2, []float64{1}))
}

func TestUlcerIndex(t *testing.T) {
	assert.Equal(t, 0.0, UlcerIndex(nil))
	assert.Equal(t, 0.0, UlcerIndex([]float64{1, 2, 3}))
	assert.InDelta(t, 5.882809, UlcerIndex(sawtooth), 1e-5)
}

func TestMaxDrawdownDuration(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   int
	}{
		{"empty", nil, 0},
		{"rising", []float64{1, 2, 3}, 0},
		{"sawtooth", sawtooth, 2},
		{"recovery to equal peak ends the run", []float64{10, 9, 10, 9, 8, 7}, 3},
		{"never recovers", []float64{10, 9, 8, 7, 6}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxDrawdownDuration(tt.prices))
		})
	}
}

func TestPainIndex(t *testing.T) {
	assert.Equal(t, 0.0, PainIndex([]float64{100}))
	assert.Equal(t, 0.0, PainIndex([]float64{100, 100, 100}))
	assert.InDelta(t, 0.24090909/6, PainIndex(sawtooth), 1e-9)
}
