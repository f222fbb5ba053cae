package repository

import (
	"backtestreport/types"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type mockCandlesRepository struct {
	rows     []aggregateRow
	sqlError error
	got      aggregatesParams
}

func (m *mockCandlesRepository) GetAggregates(_ context.Context, arg aggregatesParams) ([]aggregateRow, error) {
	m.got = arg
	if m.sqlError != nil {
		return nil, m.sqlError
	}
	return m.rows, nil
}

func TestDatabase_GetAggregates(t *testing.T) {
	bucket := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	row := aggregateRow{
		Bucket: &bucket,
		Open:   decimal.NewFromInt(10),
		High:   decimal.NewFromInt(12),
		Low:    decimal.NewFromInt(9),
		Close:  decimal.NewFromInt(11),
		Volume: decimal.NewFromInt(1000),
	}
	start := bucket.Add(-24 * time.Hour)
	end := bucket.Add(24 * time.Hour)

	tests := []struct {
		name       string
		interval   types.Interval
		rows       []aggregateRow
		sqlErr     error
		wantErr    error
		wantBucket string
		wantLen    int
	}{
		{"should reject unsupported interval", types.Month, nil, nil, ErrIntervalNotSupported, "", 0},
		{"should map no rows", types.Day, nil, pgx.ErrNoRows, ErrNoCandles, "1 day", 0},
		{"should map empty result", types.Day, []aggregateRow{}, nil, ErrNoCandles, "1 day", 0},
		{"should convert rows", types.Day, []aggregateRow{row}, nil, nil, "1 day", 1},
		{"should use hour bucket", types.Hour, []aggregateRow{row}, nil, nil, "1 hour", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCandlesRepository{rows: tt.rows, sqlError: tt.sqlErr}
			db := &Database{candles: mock}

			got, err := db.GetAggregates(context.Background(), 7, "AAPL", tt.interval, start, end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("GetAggregates() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetAggregates() unexpected error = %v", err)
			}
			if mock.got.TimeBucket != tt.wantBucket {
				t.Errorf("GetAggregates() bucket = %q, want %q", mock.got.TimeBucket, tt.wantBucket)
			}
			if mock.got.AssetID != 7 {
				t.Errorf("GetAggregates() asset id = %d, want 7", mock.got.AssetID)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("GetAggregates() len = %d, want %d", len(got), tt.wantLen)
			}
			wantEnd := bucket.Add(types.IntervalToTime[tt.interval])
			if !got[0].EndTime.Equal(wantEnd) {
				t.Errorf("GetAggregates() end time = %v, want %v", got[0].EndTime, wantEnd)
			}
			if !got[0].Close.Equal(row.Close) || got[0].Ticker != "AAPL" {
				t.Errorf("GetAggregates() bar = %+v", got[0])
			}
		})
	}
}

func TestDatabase_GetBars(t *testing.T) {
	bucket := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	candles := &mockCandlesRepository{rows: []aggregateRow{{Bucket: &bucket, Close: decimal.NewFromInt(5)}}}

	t.Run("should fail when the asset is unknown", func(t *testing.T) {
		db := &Database{assets: mockAssetsRepository{sqlError: pgx.ErrNoRows}, candles: candles}
		_, err := db.GetBars(context.Background(), "NOPE", types.Day, bucket, bucket.Add(time.Hour))
		if !errors.Is(err, ErrAssetNotFound) {
			t.Errorf("GetBars() error = %v, want %v", err, ErrAssetNotFound)
		}
	})

	t.Run("should query by asset id", func(t *testing.T) {
		db := &Database{assets: mockAssetsRepository{}, candles: candles}
		got, err := db.GetBars(context.Background(), "AAPL", types.Day, bucket, bucket.Add(time.Hour))
		if err != nil {
			t.Fatalf("GetBars() unexpected error = %v", err)
		}
		if candles.got.AssetID != 1 {
			t.Errorf("GetBars() asset id = %d, want 1", candles.got.AssetID)
		}
		if len(got) != 1 {
			t.Errorf("GetBars() len = %d, want 1", len(got))
		}
	})
}

func TestDatabase_GetAggregatesOpenBounds(t *testing.T) {
	bucket := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	start := bucket.Add(-24 * time.Hour)

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantStart bool
		wantEnd   bool
	}{
		{"should leave end open", start, time.Time{}, true, false},
		{"should leave start open", time.Time{}, bucket, false, true},
		{"should leave both open", time.Time{}, time.Time{}, false, false},
		{"should bind both", start, bucket, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockCandlesRepository{rows: []aggregateRow{{Bucket: &bucket, Close: decimal.NewFromInt(5)}}}
			db := &Database{candles: mock}

			if _, err := db.GetAggregates(context.Background(), 7, "AAPL", types.Day, tt.start, tt.end); err != nil {
				t.Fatalf("GetAggregates() unexpected error = %v", err)
			}
			if (mock.got.Starttime != nil) != tt.wantStart {
				t.Errorf("GetAggregates() start bound = %v, want bound %v", mock.got.Starttime, tt.wantStart)
			}
			if (mock.got.Endtime != nil) != tt.wantEnd {
				t.Errorf("GetAggregates() end bound = %v, want bound %v", mock.got.Endtime, tt.wantEnd)
			}
			if tt.wantEnd && !mock.got.Endtime.Equal(tt.end) {
				t.Errorf("GetAggregates() end = %v, want %v", *mock.got.Endtime, tt.end)
			}
		})
	}
}
