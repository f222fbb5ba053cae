package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrUnknownInterval = errors.New("unknown interval")

// Interval is a bar interval label such as "1m", "1H" or "1D".
type Interval string

const (
	OneMinute      Interval = "1m"
	ThreeMinutes   Interval = "3m"
	FiveMinutes    Interval = "5m"
	FifteenMinutes Interval = "15m"
	ThirtyMinutes  Interval = "30m"
	Hour           Interval = "1H"
	TwoHours       Interval = "2H"
	FourHours      Interval = "4H"
	SixHours       Interval = "6H"
	TwelveHours    Interval = "12H"
	Day            Interval = "1D"
	Week           Interval = "1W"
	Month          Interval = "1M"
)

var IntervalToTime = map[Interval]time.Duration{
	OneMinute:      time.Minute,
	ThreeMinutes:   time.Minute * 3,
	FiveMinutes:    time.Minute * 5,
	FifteenMinutes: time.Minute * 15,
	ThirtyMinutes:  time.Minute * 30,
	Hour:           time.Hour,
	TwoHours:       time.Hour * 2,
	FourHours:      time.Hour * 4,
	SixHours:       time.Hour * 6,
	TwelveHours:    time.Hour * 12,
	Day:            time.Hour * 24,
	Week:           time.Hour * 24 * 7,
	Month:          time.Hour * 24 * 30,
}

// ConvertInterval maps the datasource codes and common lowercase spellings
// onto the canonical labels.
var ConvertInterval = map[string]Interval{
	"1":   OneMinute,
	"3":   ThreeMinutes,
	"5":   FiveMinutes,
	"15":  FifteenMinutes,
	"30":  ThirtyMinutes,
	"60":  Hour,
	"120": TwoHours,
	"240": FourHours,
	"360": SixHours,
	"720": TwelveHours,
	"D":   Day,
	"W":   Week,
	"M":   Month,
	"1h":  Hour,
	"2h":  TwoHours,
	"4h":  FourHours,
	"6h":  SixHours,
	"12h": TwelveHours,
	"1d":  Day,
	"1w":  Week,
}

// ParseInterval normalizes a label. Labels that are not in ConvertInterval
// are returned as given once Duration accepts them.
func ParseInterval(label string) (Interval, error) {
	label = strings.TrimSpace(label)
	if iv, ok := ConvertInterval[label]; ok {
		return iv, nil
	}
	iv := Interval(label)
	if _, err := iv.Duration(); err != nil {
		return "", err
	}
	return iv, nil
}

// Duration resolves the label to a time span. "m" is minutes, "M" is a
// 30 day month; hours, days and weeks accept either case.
func (i Interval) Duration() (time.Duration, error) {
	if d, ok := IntervalToTime[i]; ok {
		return d, nil
	}
	s := string(i)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
	}
	var unit time.Duration
	switch s[len(s)-1] {
	case 'm':
		unit = time.Minute
	case 'h', 'H':
		unit = time.Hour
	case 'd', 'D':
		unit = time.Hour * 24
	case 'w', 'W':
		unit = time.Hour * 24 * 7
	case 'M':
		unit = time.Hour * 24 * 30
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
	}
	return unit * time.Duration(n), nil
}
