package engine

import (
	"backtestreport/types"
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchJobs() []Input {
	series := dailySeries(100, 110, 121, 100, 90, 99)
	return []Input{
		{StrategyName: "small", Series: series, Positions: []types.ClosedPosition{long(0, 1)}, Config: testConfig()},
		{StrategyName: "broken", Series: series, Positions: []types.ClosedPosition{long(3, 1)}, Config: testConfig()},
		{StrategyName: "big", Series: series, Positions: []types.ClosedPosition{long(0, 2), short(2, 4)}, Config: testConfig()},
		{StrategyName: "loser", Series: series, Positions: []types.ClosedPosition{long(2, 4)}, Config: testConfig()},
	}
}

func TestRunBatch(t *testing.T) {
	summary := RunBatch(context.Background(), batchJobs(), BatchOptions{Workers: 2, Progress: io.Discard})

	_, err := uuid.Parse(summary.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Successful)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 4)

	names := make([]string, len(summary.Results))
	for i, r := range summary.Results {
		names[i] = r.StrategyName
	}
	assert.Equal(t, []string{"big", "small", "loser", "broken"}, names)
	assert.False(t, summary.Results[3].Success)

	assert.Equal(t, "big", summary.BestStrategy)
	assert.True(t, summary.BestReturn.Equal(summary.Results[0].Metric(types.TotalReturn)))

	sum := summary.Results[0].Metric(types.TotalReturn).
		Add(summary.Results[1].Metric(types.TotalReturn)).
		Add(summary.Results[2].Metric(types.TotalReturn))
	assert.True(t, summary.AverageReturn.Equal(sum.DivRound(dec("3"), 4)), "avg = %s", summary.AverageReturn)
}

func TestRunBatch_Empty(t *testing.T) {
	summary := RunBatch(context.Background(), nil, BatchOptions{})
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Results)
	assert.True(t, summary.AverageReturn.IsZero())
	assert.Empty(t, summary.BestStrategy)
}

func TestRunJob_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	slow := func(in Input) types.MetricsReport {
		<-release
		return Evaluate(in)
	}

	r := runJob(context.Background(), Input{StrategyName: "slow"}, 10*time.Millisecond, slow)
	assert.False(t, r.Success)
	assert.Equal(t, "slow", r.StrategyName)
	assert.Contains(t, r.ErrorMessage, ErrJobTimeout.Error())
}

func TestRunJob_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	release := make(chan struct{})
	defer close(release)
	slow := func(in Input) types.MetricsReport {
		<-release
		return Evaluate(in)
	}

	r := runJob(ctx, Input{}, time.Minute, slow)
	assert.False(t, r.Success)
	assert.Contains(t, r.ErrorMessage, context.Canceled.Error())
}

func TestRunJob_Completes(t *testing.T) {
	in := batchJobs()[0]
	r := runJob(context.Background(), in, time.Minute, Evaluate)
	assert.True(t, r.Success, r.ErrorMessage)
}
