package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/spacexy-tracker/internal/metrics"
	"github.com/rickgao/spacexy-tracker/internal/model"
	"github.com/rickgao/spacexy-tracker/internal/zone"
)

const roundsName = "rounds"

// RoundSource provides pages of rounds, newest first.
type RoundSource interface {
	GetRounds(ctx context.Context, limit, offset int) (*model.RoundPage, error)
}

// RoundConfig holds RoundSynchronizer configuration.
type RoundConfig struct {
	Interval   time.Duration // Poll interval (default: 15s)
	PageSize   int           // Rounds per poll (default: 50)
	DecayDelay time.Duration // How long new rounds stay flagged (default: 2s)
	Timeout    time.Duration // Per-request timeout (default: 10s)
}

// DefaultRoundConfig returns sensible defaults.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Interval:   15 * time.Second,
		PageSize:   50,
		DecayDelay: 2 * time.Second,
		Timeout:    10 * time.Second,
	}
}

// RoundSynchronizer keeps a diffed view of the most recent rounds.
type RoundSynchronizer struct {
	id     string
	cfg    RoundConfig
	source RoundSource
	logger *slog.Logger

	mu         sync.Mutex
	rounds     []model.Round
	fetched    bool
	conn       model.ConnectionState
	generation uint64
	stopped    bool
	decay      *time.Timer
	decaySeq   uint64
	notes      notifier[RoundSnapshot]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRoundSynchronizer creates a new RoundSynchronizer.
func NewRoundSynchronizer(cfg RoundConfig, source RoundSource, logger *slog.Logger) *RoundSynchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &RoundSynchronizer{
		id:     id,
		cfg:    cfg,
		source: source,
		logger: logger.With("synchronizer", roundsName, "synchronizer_id", id),
		conn:   model.ConnectionState{StatusLabel: LabelConnecting},
		ctx:    context.Background(),
	}
}

// ID returns the instance identifier used in logs.
func (s *RoundSynchronizer) ID() string {
	return s.id
}

// Subscribe registers a handler called after every state transition.
func (s *RoundSynchronizer) Subscribe(h RoundHandler) {
	s.notes.subscribe(h.HandleRounds)
}

// Start begins the polling loop. The first poll runs immediately.
func (s *RoundSynchronizer) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("round synchronizer started",
		"interval", s.cfg.Interval,
		"page_size", s.cfg.PageSize,
	)

	return nil
}

// Stop cancels the loop, the in-flight request and any pending decay.
// No state changes and no handler calls happen after Stop returns.
func (s *RoundSynchronizer) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	if s.decay != nil {
		s.decay.Stop()
		s.decay = nil
	}
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
		s.logger.Info("round synchronizer stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state.
func (s *RoundSynchronizer) Snapshot() RoundSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Feed returns the current rounds classified against zones.
func (s *RoundSynchronizer) Feed(zones []model.Zone) []model.AnnotatedRound {
	return zone.Annotate(s.Snapshot().Rounds, zones)
}

// run is the main polling loop.
func (s *RoundSynchronizer) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	// Poll immediately on start.
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

// poll fetches one page and reconciles it into state.
func (s *RoundSynchronizer) poll() {
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
	page, err := s.source.GetRounds(ctx, s.cfg.PageSize, 0)
	metrics.PollDuration.WithLabelValues(roundsName).Observe(time.Since(start).Seconds())

	if err != nil {
		s.fail(gen, err)
		return
	}
	s.apply(gen, page.Items)
}

// apply reconciles a successful fetch. The first successful fetch flags
// nothing; later ones flag every round whose ID was absent before.
func (s *RoundSynchronizer) apply(gen uint64, items []model.Round) {
	s.mu.Lock()
	if !s.currentLocked(gen) {
		s.mu.Unlock()
		metrics.StaleDiscarded.WithLabelValues(roundsName).Inc()
		return
	}

	previous := make(map[string]struct{}, len(s.rounds))
	for _, r := range s.rounds {
		previous[r.RoundID] = struct{}{}
	}

	fresh := make([]model.Round, len(items))
	newCount := 0
	for i, r := range items {
		r.IsNew = false
		if s.fetched {
			if _, ok := previous[r.RoundID]; !ok {
				r.IsNew = true
				newCount++
			}
		}
		fresh[i] = r
	}

	now := time.Now()
	s.rounds = fresh
	s.fetched = true
	s.conn = model.ConnectionState{
		Connected:   true,
		StatusLabel: newRoundsLabel(newCount),
		LastUpdate:  &now,
	}

	s.decaySeq++
	if s.decay != nil {
		s.decay.Stop()
		s.decay = nil
	}
	if newCount > 0 {
		seq := s.decaySeq
		s.decay = time.AfterFunc(s.cfg.DecayDelay, func() { s.expire(seq) })
	}

	snap, seq := s.snapshotLocked(), s.notes.next()
	s.mu.Unlock()

	metrics.PollsTotal.WithLabelValues(roundsName, metrics.ResultSuccess).Inc()
	metrics.Connected.WithLabelValues(roundsName).Set(1)
	metrics.NewRoundsTotal.Add(float64(newCount))

	s.logger.Debug("rounds synchronized",
		"rounds", len(fresh),
		"new", newCount,
	)

	s.notes.send(seq, snap)
}

// fail records a failed fetch. The stored rounds are kept.
func (s *RoundSynchronizer) fail(gen uint64, err error) {
	s.mu.Lock()
	if !s.currentLocked(gen) {
		s.mu.Unlock()
		metrics.StaleDiscarded.WithLabelValues(roundsName).Inc()
		return
	}

	s.conn.Connected = false
	s.conn.StatusLabel = LabelSignalLost
	snap, seq := s.snapshotLocked(), s.notes.next()
	s.mu.Unlock()

	metrics.PollsTotal.WithLabelValues(roundsName, metrics.ResultFailure).Inc()
	metrics.Connected.WithLabelValues(roundsName).Set(0)

	s.logger.Warn("failed to poll rounds", "err", err)

	s.notes.send(seq, snap)
}

// expire clears the new flags once the decay delay has passed.
func (s *RoundSynchronizer) expire(seq uint64) {
	s.mu.Lock()
	if s.stopped || seq != s.decaySeq {
		s.mu.Unlock()
		return
	}

	for i := range s.rounds {
		s.rounds[i].IsNew = false
	}
	if s.conn.Connected {
		s.conn.StatusLabel = LabelOnline
	}
	s.decay = nil
	snap, seq := s.snapshotLocked(), s.notes.next()
	s.mu.Unlock()

	s.notes.send(seq, snap)
}

// currentLocked reports whether a response of generation gen may be applied.
func (s *RoundSynchronizer) currentLocked(gen uint64) bool {
	return !s.stopped && gen == s.generation
}

func (s *RoundSynchronizer) snapshotLocked() RoundSnapshot {
	rounds := make([]model.Round, len(s.rounds))
	copy(rounds, s.rounds)

	conn := s.conn
	conn.LastUpdate = copyTime(s.conn.LastUpdate)

	return RoundSnapshot{Rounds: rounds, Connection: conn}
}
