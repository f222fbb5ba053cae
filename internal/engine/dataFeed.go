package engine

import (
	"backtestreport/types"
	"context"
	"fmt"
	"time"
)

type DataFeed struct {
	Ticker   string
	Interval types.Interval
	Start    time.Time
	End      time.Time
}

func (df *DataFeed) GetData(ctx context.Context, src barSource) (types.Series, error) {
	bars, err := src.GetBars(ctx, df.Ticker, df.Interval, df.Start, df.End)
	if err != nil {
		return types.Series{}, fmt.Errorf("load %s %s bars: %w", df.Ticker, df.Interval, err)
	}
	return types.NewSeries(df.Ticker, df.Interval, bars), nil
}
