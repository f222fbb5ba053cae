package repository

import (
	"backtestreport/types"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

var bucketToInterval = map[types.Interval]string{
	types.OneMinute:      "1 minute",
	types.ThreeMinutes:   "3 minutes",
	types.FiveMinutes:    "5 minutes",
	types.FifteenMinutes: "15 minutes",
	types.ThirtyMinutes:  "30 minutes",
	types.Hour:           "1 hour",
	types.TwoHours:       "2 hours",
	types.FourHours:      "4 hours",
	types.SixHours:       "6 hours",
	types.TwelveHours:    "12 hours",
	types.Day:            "1 day",
	types.Week:           "1 week",
}

// GetBars loads the bars of ticker that close within [start, end). A zero
// start or end leaves that side open.
func (db *Database) GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	asset, err := db.GetAssetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return db.GetAggregates(ctx, asset.Id, ticker, interval, start, end)
}

// GetAggregates returns closed bars for assetId. A bar's EndTime is the
// end of its bucket. A zero start or end leaves that side open.
func (db *Database) GetAggregates(ctx context.Context, assetId int, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	bucket, ok := bucketToInterval[interval]
	if !ok {
		return nil, fmt.Errorf("%s: %w", interval, ErrIntervalNotSupported)
	}
	args := aggregatesParams{
		TimeBucket: bucket,
		AssetID:    int32(assetId),
		Starttime:  optionalTime(start),
		Endtime:    optionalTime(end),
	}
	rows, err := db.candles.GetAggregates(ctx, args)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCandles
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoCandles
	}
	return convertBars(rows, types.IntervalToTime[interval], ticker), nil
}

func convertBars(rows []aggregateRow, length time.Duration, ticker string) []types.Bar {
	bars := make([]types.Bar, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, types.Bar{
			Ticker:  ticker,
			Open:    row.Open,
			High:    row.High,
			Low:     row.Low,
			Close:   row.Close,
			Volume:  row.Volume,
			EndTime: derefTime(row.Bucket).Add(length),
		})
	}
	return bars
}

// optionalTime binds a zero time as SQL NULL.
func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
