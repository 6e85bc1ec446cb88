package poller

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_DropsOlderSnapshot(t *testing.T) {
	var n notifier[string]
	var got []string
	n.subscribe(func(s string) { got = append(got, s) })

	older := n.next()
	newer := n.next()

	// The newer state reaches the handler first, as when a decay callback
	// wins the race against the poll that armed it.
	n.send(newer, "decayed")
	n.send(older, "flagged")

	assert.Equal(t, []string{"decayed"}, got)
}

func TestNotifier_CloseWaitsForDelivery(t *testing.T) {
	var n notifier[int]
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	n.subscribe(func(int) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
	})

	go n.send(n.next(), 1)
	<-entered

	closed := make(chan struct{})
	go func() {
		n.close()
		close(closed)
	}()

	assert.Never(t, func() bool {
		select {
		case <-closed:
			return true
		default:
			return false
		}
	}, 30*time.Millisecond, 5*time.Millisecond, "close returned during delivery")

	close(release)
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("close did not return after delivery finished")
	}

	n.send(n.next(), 2)
	require.Equal(t, int32(1), calls.Load())
}
