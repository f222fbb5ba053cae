package cmd

import (
	"backtestreport/internal/config"
	"backtestreport/internal/engine"
	"backtestreport/internal/repository"
	"backtestreport/types"
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type barSource interface {
	GetBars(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Bar, error)
}

var (
	_ barSource = (*repository.Database)(nil)
	_ barSource = (*repository.ParquetBarStore)(nil)
	_ barSource = (*repository.CSVBarStore)(nil)
)

// openBarSource returns the configured bar source and a func releasing it.
func openBarSource(ctx context.Context, data config.Data) (barSource, func(), error) {
	switch data.Source {
	case config.SourcePostgres:
		db, err := repository.NewDatabase(ctx, data.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		return db, db.Close, nil
	case config.SourceParquet:
		return repository.NewParquetBarStore(data.BarsDir), func() {}, nil
	case config.SourceCSV:
		return repository.NewCSVBarStore(data.BarsDir), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown data source %q", config.ErrInvalidConfig, data.Source)
	}
}

func evaluationConfig(ev config.Evaluation) (*engine.EvaluationConfig, error) {
	kind, err := engine.ParseReturnKind(ev.ReturnKind)
	if err != nil {
		return nil, err
	}
	return engine.NewEvaluationConfig(
		decimal.NewFromFloat(ev.InitialCapital),
		decimal.NewFromFloat(ev.FeeRatio),
		decimal.NewFromFloat(ev.RiskFreeRate),
		kind,
	), nil
}

func dataFeed(data config.Data) (engine.DataFeed, error) {
	interval, err := types.ParseInterval(data.Interval)
	if err != nil {
		return engine.DataFeed{}, err
	}
	r, err := data.Range()
	if err != nil {
		return engine.DataFeed{}, err
	}
	if data.Ticker == "" {
		return engine.DataFeed{}, fmt.Errorf("%w: ticker is required", config.ErrInvalidConfig)
	}
	return engine.DataFeed{Ticker: data.Ticker, Interval: interval, Start: r.Start, End: r.End}, nil
}
