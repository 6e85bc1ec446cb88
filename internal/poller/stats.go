package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/spacexy-tracker/internal/metrics"
	"github.com/rickgao/spacexy-tracker/internal/model"
)

const statsName = "stats"

// StatsSource provides aggregate statistics.
type StatsSource interface {
	GetSummary(ctx context.Context) (*model.SummaryStats, error)
	GetRecentStats(ctx context.Context, limit int) (*model.RecentStats, error)
	GetDistribution(ctx context.Context) ([]model.DistributionBucket, error)
}

// StatsConfig holds StatsSynchronizer configuration.
type StatsConfig struct {
	Interval    time.Duration // Poll interval (default: 15s)
	RecentLimit int           // Rounds covered by recent stats (default: 100)
	Timeout     time.Duration // Per-cycle timeout (default: 10s)
}

// DefaultStatsConfig returns sensible defaults.
func DefaultStatsConfig() StatsConfig {
	return StatsConfig{
		Interval:    15 * time.Second,
		RecentLimit: 100,
		Timeout:     10 * time.Second,
	}
}

// statsResult is the outcome of one fetch cycle.
type statsResult struct {
	summary      *model.SummaryStats
	recent       *model.RecentStats
	distribution []model.DistributionBucket
}

// StatsSynchronizer keeps the latest summary statistics.
type StatsSynchronizer struct {
	id     string
	cfg    StatsConfig
	source StatsSource
	logger *slog.Logger

	mu         sync.Mutex
	state      statsResult
	conn       model.ConnectionState
	generation uint64
	stopped    bool
	notes      notifier[StatsSnapshot]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStatsSynchronizer creates a new StatsSynchronizer.
func NewStatsSynchronizer(cfg StatsConfig, source StatsSource, logger *slog.Logger) *StatsSynchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &StatsSynchronizer{
		id:     id,
		cfg:    cfg,
		source: source,
		logger: logger.With("synchronizer", statsName, "synchronizer_id", id),
		conn:   model.ConnectionState{StatusLabel: LabelConnecting},
		ctx:    context.Background(),
	}
}

// ID returns the instance identifier used in logs.
func (s *StatsSynchronizer) ID() string {
	return s.id
}

// Subscribe registers a handler called after every state transition.
func (s *StatsSynchronizer) Subscribe(h StatsHandler) {
	s.notes.subscribe(h.HandleStats)
}

// Start begins the polling loop. The first poll runs immediately.
func (s *StatsSynchronizer) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("stats synchronizer started", "interval", s.cfg.Interval)

	return nil
}

// Stop cancels the loop and the in-flight requests.
func (s *StatsSynchronizer) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.notes.close()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("stats synchronizer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state.
func (s *StatsSynchronizer) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *StatsSynchronizer) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.poll()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.poll()
		}
	}
}

func (s *StatsSynchronizer) poll() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(s.ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result, err := s.fetch(ctx)
	metrics.PollDuration.WithLabelValues(statsName).Observe(time.Since(start).Seconds())

	s.reconcile(gen, result, err)
}

// fetch runs the three requests of one cycle. Any failure fails the cycle.
func (s *StatsSynchronizer) fetch(ctx context.Context) (statsResult, error) {
	var (
		res statsResult
		err error
	)

	if res.summary, err = s.source.GetSummary(ctx); err != nil {
		return res, fmt.Errorf("summary: %w", err)
	}
	if res.recent, err = s.source.GetRecentStats(ctx, s.cfg.RecentLimit); err != nil {
		return res, fmt.Errorf("recent stats: %w", err)
	}
	if res.distribution, err = s.source.GetDistribution(ctx); err != nil {
		return res, fmt.Errorf("distribution: %w", err)
	}

	return res, nil
}

func (s *StatsSynchronizer) reconcile(gen uint64, res statsResult, err error) {
	s.mu.Lock()
	if s.stopped || gen != s.generation {
		s.mu.Unlock()
		metrics.StaleDiscarded.WithLabelValues(statsName).Inc()
		return
	}

	if err != nil {
		s.conn.Connected = false
		s.conn.StatusLabel = LabelSignalLost
	} else {
		now := time.Now()
		s.state = res
		s.conn = model.ConnectionState{
			Connected:   true,
			StatusLabel: LabelOnline,
			LastUpdate:  &now,
		}
	}
	snap, seq := s.snapshotLocked(), s.notes.next()
	s.mu.Unlock()

	if err != nil {
		metrics.PollsTotal.WithLabelValues(statsName, metrics.ResultFailure).Inc()
		metrics.Connected.WithLabelValues(statsName).Set(0)
		s.logger.Warn("failed to poll stats", "err", err)
	} else {
		metrics.PollsTotal.WithLabelValues(statsName, metrics.ResultSuccess).Inc()
		metrics.Connected.WithLabelValues(statsName).Set(1)
		if res.summary == nil {
			s.logger.Debug("summary unavailable")
		}
	}

	s.notes.send(seq, snap)
}

func (s *StatsSynchronizer) snapshotLocked() StatsSnapshot {
	snap := StatsSnapshot{Connection: s.conn}
	snap.Connection.LastUpdate = copyTime(s.conn.LastUpdate)

	if s.state.summary != nil {
		summary := *s.state.summary
		snap.Summary = &summary
	}
	if s.state.recent != nil {
		recent := *s.state.recent
		snap.Recent = &recent
	}
	if s.state.distribution != nil {
		snap.Distribution = make([]model.DistributionBucket, len(s.state.distribution))
		copy(snap.Distribution, s.state.distribution)
	}
	return snap
}
