package metrics

import (
	"backtestreport/types"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnnualizationFactor(t *testing.T) {
	tests := []struct {
		interval types.Interval
		want     int
	}{
		{"1m", 525600},
		{"3m", 105120},
		{"5m", 105120},
		{"15m", 35040},
		{"30m", 17520},
		{"1h", 8760},
		{"1H", 8760},
		{"2H", 2190},
		{"4H", 2190},
		{"6H", 1460},
		{"12H", 730},
		{"1D", 365},
		{"1d", 365},
		{"3D", 52},
		{"1W", 52},
		{"1M", 12},
		{"bogus", DefaultAnnualizationFactor},
		{"", DefaultAnnualizationFactor},
	}
	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			assert.Equal(t, tt.want, AnnualizationFactor(tt.interval))
		})
	}
}

func TestAnnualizedReturn(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.5, AnnualizedReturn(0.5, start, start.Add(time.Hour*12)))
	assert.Equal(t, 0.5, AnnualizedReturn(0.5, start, start.Add(time.Hour*24)))
	assert.InDelta(t, math.Pow(1.01, 365)-1, AnnualizedReturn(0.01, start, start.Add(time.Hour*36)), 1e-9)
	assert.InDelta(t, math.Pow(1.01, 365)-1, AnnualizedReturn(0.01, start, start.Add(time.Hour*47)), 1e-9)
	assert.InDelta(t, 0.21, AnnualizedReturn(0.21, start, start.AddDate(0, 0, 365)), 1e-12)
	assert.InDelta(t, 0.1, AnnualizedReturn(0.21, start, start.AddDate(0, 0, 730)), 1e-12)
	assert.Equal(t, 0.0, AnnualizedReturn(0.5, start, start.Add(-time.Hour)))
	assert.Equal(t, 0.0, AnnualizedReturn(-2, start, start.AddDate(0, 0, 730)))
}
