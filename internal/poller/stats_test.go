package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

type fakeStatsSource struct {
	summary      *model.SummaryStats
	recent       *model.RecentStats
	distribution []model.DistributionBucket

	summaryErr      error
	distributionErr error
	recentLimit     int
}

func (f *fakeStatsSource) GetSummary(ctx context.Context) (*model.SummaryStats, error) {
	return f.summary, f.summaryErr
}

func (f *fakeStatsSource) GetRecentStats(ctx context.Context, limit int) (*model.RecentStats, error) {
	f.recentLimit = limit
	return f.recent, nil
}

func (f *fakeStatsSource) GetDistribution(ctx context.Context) ([]model.DistributionBucket, error) {
	return f.distribution, f.distributionErr
}

func testStatsConfig() StatsConfig {
	cfg := DefaultStatsConfig()
	cfg.Interval = time.Hour
	cfg.Timeout = time.Second
	return cfg
}

func TestStatsSynchronizer_Success(t *testing.T) {
	source := &fakeStatsSource{
		summary:      &model.SummaryStats{TotalRounds: 10, AvgMultiplier: 2.4},
		recent:       &model.RecentStats{AvgMultiplier: 2.1, Under2xPct: 55},
		distribution: []model.DistributionBucket{{Range: "1.00-1.50x", Count: 4, Percentage: 40}},
	}
	s := NewStatsSynchronizer(testStatsConfig(), source, nil)

	var notified int
	s.Subscribe(StatsHandlerFunc(func(StatsSnapshot) { notified++ }))

	s.poll()

	snap := s.Snapshot()
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 10, snap.Summary.TotalRounds)
	require.NotNil(t, snap.Recent)
	assert.Equal(t, 55.0, snap.Recent.Under2xPct)
	assert.Len(t, snap.Distribution, 1)
	assert.True(t, snap.Connection.Connected)
	assert.Equal(t, LabelOnline, snap.Connection.StatusLabel)
	assert.NotNil(t, snap.Connection.LastUpdate)
	assert.Equal(t, 100, source.recentLimit)
	assert.Equal(t, 1, notified)
}

func TestStatsSynchronizer_NilSummaryTolerated(t *testing.T) {
	source := &fakeStatsSource{}
	s := NewStatsSynchronizer(testStatsConfig(), source, nil)

	s.poll()

	snap := s.Snapshot()
	assert.Nil(t, snap.Summary)
	assert.Nil(t, snap.Recent)
	assert.True(t, snap.Connection.Connected)
}

func TestStatsSynchronizer_FailureKeepsStats(t *testing.T) {
	source := &fakeStatsSource{summary: &model.SummaryStats{TotalRounds: 7}}
	s := NewStatsSynchronizer(testStatsConfig(), source, nil)
	s.poll()

	source.distributionErr = errors.New("503")
	s.poll()

	snap := s.Snapshot()
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 7, snap.Summary.TotalRounds)
	assert.False(t, snap.Connection.Connected)
	assert.Equal(t, LabelSignalLost, snap.Connection.StatusLabel)
}

func TestStatsSynchronizer_NoMutationAfterStop(t *testing.T) {
	source := &fakeStatsSource{summary: &model.SummaryStats{TotalRounds: 3}}
	s := NewStatsSynchronizer(testStatsConfig(), source, nil)

	require.NoError(t, s.Stop(context.Background()))
	s.poll()
	s.reconcile(s.generation, statsResult{summary: source.summary}, nil)

	snap := s.Snapshot()
	assert.Nil(t, snap.Summary)
	assert.Equal(t, LabelConnecting, snap.Connection.StatusLabel)
}

func TestStatsSynchronizer_StartStop(t *testing.T) {
	source := &fakeStatsSource{summary: &model.SummaryStats{TotalRounds: 1}}
	s := NewStatsSynchronizer(testStatsConfig(), source, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.Eventually(t, func() bool {
		return s.Snapshot().Connection.Connected
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop(ctx))
}
