package types

import (
	"errors"
	"testing"
	"time"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		label   string
		want    Interval
		wantDur time.Duration
		wantErr bool
	}{
		{"D", Day, 24 * time.Hour, false},
		{"1d", Day, 24 * time.Hour, false},
		{"60", Hour, time.Hour, false},
		{" 4h ", FourHours, 4 * time.Hour, false},
		{"10m", Interval("10m"), 10 * time.Minute, false},
		{"3D", Interval("3D"), 72 * time.Hour, false},
		{"1M", Month, 30 * 24 * time.Hour, false},
		{"", "", 0, true},
		{"x", "", 0, true},
		{"0d", "", 0, true},
		{"5y", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseInterval(tt.label)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownInterval) {
					t.Fatalf("ParseInterval(%q) error = %v, want ErrUnknownInterval", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInterval(%q) unexpected error = %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("ParseInterval(%q) = %q, want %q", tt.label, got, tt.want)
			}
			d, err := got.Duration()
			if err != nil || d != tt.wantDur {
				t.Errorf("Duration(%q) = %v, %v, want %v", got, d, err, tt.wantDur)
			}
		})
	}
}
