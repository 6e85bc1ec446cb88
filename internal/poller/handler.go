package poller

import (
	"fmt"
	"sync"
	"time"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

// Status labels shown next to the connection indicator.
const (
	LabelConnecting = "Connecting"
	LabelOnline     = "Online"
	LabelSignalLost = "Signal Lost"
)

// newRoundsLabel is the status label after a poll that found n new rounds.
func newRoundsLabel(n int) string {
	if n <= 0 {
		return LabelOnline
	}
	return fmt.Sprintf("+%d missions", n)
}

// RoundSnapshot is a point-in-time copy of a RoundSynchronizer's state.
type RoundSnapshot struct {
	Rounds     []model.Round         `json:"rounds"`
	Connection model.ConnectionState `json:"connection"`
}

// StatsSnapshot is a point-in-time copy of a StatsSynchronizer's state.
// Summary and Recent are nil until a valid body has been received.
type StatsSnapshot struct {
	Summary      *model.SummaryStats        `json:"summary"`
	Recent       *model.RecentStats         `json:"recent"`
	Distribution []model.DistributionBucket `json:"distribution"`
	Connection   model.ConnectionState      `json:"connection"`
}

// RoundHandler receives the round state after every transition.
type RoundHandler interface {
	HandleRounds(snapshot RoundSnapshot)
}

// RoundHandlerFunc is a function adapter for RoundHandler.
type RoundHandlerFunc func(RoundSnapshot)

func (f RoundHandlerFunc) HandleRounds(s RoundSnapshot) {
	f(s)
}

// StatsHandler receives the statistics state after every transition.
type StatsHandler interface {
	HandleStats(snapshot StatsSnapshot)
}

// StatsHandlerFunc is a function adapter for StatsHandler.
type StatsHandlerFunc func(StatsSnapshot)

func (f StatsHandlerFunc) HandleStats(s StatsSnapshot) {
	f(s)
}

// notifier delivers snapshots to handlers in the order their state was
// produced. Sequence numbers are issued under the owner's state lock, so a
// snapshot older than one already delivered is dropped. Handlers must not
// call Stop on the owning synchronizer.
type notifier[T any] struct {
	deliver sync.Mutex // held while handlers run

	mu        sync.Mutex
	issued    uint64
	delivered uint64
	closed    bool
	handlers  []func(T)
}

func (n *notifier[T]) subscribe(f func(T)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, f)
}

// next reserves a sequence number for a snapshot taken now.
func (n *notifier[T]) next() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.issued++
	return n.issued
}

func (n *notifier[T]) send(seq uint64, snap T) {
	n.deliver.Lock()
	defer n.deliver.Unlock()

	n.mu.Lock()
	if n.closed || seq <= n.delivered {
		n.mu.Unlock()
		return
	}
	n.delivered = seq
	handlers := make([]func(T), len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.Unlock()

	for _, h := range handlers {
		h(snap)
	}
}

// close stops further deliveries and waits for one in progress to finish.
func (n *notifier[T]) close() {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()

	n.deliver.Lock()
	n.deliver.Unlock()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
