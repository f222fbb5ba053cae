package repository

import (
	"backtestreport/types"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/shopspring/decimal"
)

// BarRecord is the Parquet schema for closed bars.
type BarRecord struct {
	Ticker  string  `parquet:"ticker"`
	EndTime int64   `parquet:"end_time,timestamp(millisecond)"` // Unix ms
	Open    float64 `parquet:"open"`
	High    float64 `parquet:"high"`
	Low     float64 `parquet:"low"`
	Close   float64 `parquet:"close"`
	Volume  float64 `parquet:"volume"`
}

// ParquetBarStore keeps one Parquet file per ticker and interval at
//
//	<Dir>/<TICKER>/<interval>.parquet
type ParquetBarStore struct {
	Dir string
}

func NewParquetBarStore(dir string) *ParquetBarStore {
	return &ParquetBarStore{Dir: dir}
}

func (s *ParquetBarStore) path(ticker string, interval types.Interval) string {
	return filepath.Join(s.Dir, strings.ToUpper(ticker), string(interval)+".parquet")
}

// GetBars reads the bars of ticker that close within [start, end). A zero
// start or end leaves that side open.
func (s *ParquetBarStore) GetBars(_ context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	bars, err := ReadParquetBars(s.path(ticker, interval))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	bars = filterBars(bars, start, end)
	if len(bars) == 0 {
		return nil, ErrNoCandles
	}
	return bars, nil
}

// WriteBars merges bars into the ticker's file, replacing bars with the
// same end time.
func (s *ParquetBarStore) WriteBars(_ context.Context, ticker string, interval types.Interval, bars []types.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	path := s.path(ticker, interval)

	existing, err := parquet.ReadFile[BarRecord](path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	incoming := make([]BarRecord, len(bars))
	for i, b := range bars {
		incoming[i] = toBarRecord(ticker, b)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := parquet.WriteFile(path, mergeBarRecords(existing, incoming)); err != nil {
		return fmt.Errorf("writing bars for %s %s: %w", ticker, interval, err)
	}
	return nil
}

// ReadParquetBars reads every bar in a Parquet file, sorted by end time.
func ReadParquetBars(path string) ([]types.Bar, error) {
	records, err := parquet.ReadFile[BarRecord](path)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool { return records[i].EndTime < records[j].EndTime })

	bars := make([]types.Bar, len(records))
	for i, r := range records {
		bars[i] = types.Bar{
			Ticker:  r.Ticker,
			Open:    decimal.NewFromFloat(r.Open),
			High:    decimal.NewFromFloat(r.High),
			Low:     decimal.NewFromFloat(r.Low),
			Close:   decimal.NewFromFloat(r.Close),
			Volume:  decimal.NewFromFloat(r.Volume),
			EndTime: time.UnixMilli(r.EndTime).UTC(),
		}
	}
	return bars, nil
}

func toBarRecord(ticker string, b types.Bar) BarRecord {
	return BarRecord{
		Ticker:  ticker,
		EndTime: b.EndTime.UnixMilli(),
		Open:    b.Open.InexactFloat64(),
		High:    b.High.InexactFloat64(),
		Low:     b.Low.InexactFloat64(),
		Close:   b.Close.InexactFloat64(),
		Volume:  b.Volume.InexactFloat64(),
	}
}

// mergeBarRecords deduplicates by end time, preferring incoming records.
func mergeBarRecords(existing, incoming []BarRecord) []BarRecord {
	seen := make(map[int64]BarRecord, len(existing)+len(incoming))
	for _, r := range existing {
		seen[r.EndTime] = r
	}
	for _, r := range incoming {
		seen[r.EndTime] = r
	}

	merged := make([]BarRecord, 0, len(seen))
	for _, r := range seen {
		merged = append(merged, r)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].EndTime < merged[j].EndTime
	})
	return merged
}

func filterBars(bars []types.Bar, start, end time.Time) []types.Bar {
	out := bars[:0:0]
	for _, b := range bars {
		if !start.IsZero() && b.EndTime.Before(start) {
			continue
		}
		if !end.IsZero() && !b.EndTime.Before(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}
