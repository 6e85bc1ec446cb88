package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickgao/spacexy-tracker/internal/model"
	"github.com/rickgao/spacexy-tracker/internal/poller"
	"github.com/rickgao/spacexy-tracker/internal/zone"
)

func testClientConfig(url string) ClientConfig {
	cfg := DefaultClientConfig()
	cfg.URL = url
	return cfg
}

// scriptedServer upgrades one connection, writes frames, then waits for the
// client to hang up.
func scriptedServer(t *testing.T, frames ...string) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func runClient(t *testing.T, c *Client, h EventHandler) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- c.Run(ctx, h) }()
	t.Cleanup(cancel)
	return cancel, errCh
}

func TestClient_DecodesHubMessages(t *testing.T) {
	hub, url := newTestHub(t, DefaultHubConfig())
	hub.HandleRounds(roundsSnapshot())
	hub.HandleStats(poller.StatsSnapshot{
		Summary:    &model.SummaryStats{TotalRounds: 42},
		Connection: model.ConnectionState{Connected: true, StatusLabel: poller.LabelOnline},
	})

	c, err := Dial(context.Background(), testClientConfig(url), nil)
	require.NoError(t, err)

	rounds := make(chan RoundsData, 1)
	stats := make(chan poller.StatsSnapshot, 1)
	runClient(t, c, EventFuncs{
		Rounds: func(d RoundsData, at time.Time) {
			assert.False(t, at.IsZero())
			rounds <- d
		},
		Stats: func(s poller.StatsSnapshot, _ time.Time) { stats <- s },
	})

	select {
	case d := <-rounds:
		require.Len(t, d.Rounds, 2)
		assert.Equal(t, "r2", d.Rounds[0].RoundID)
		assert.True(t, d.Rounds[0].IsNew)
		assert.Equal(t, "Moon Shot", d.Rounds[0].Zone)
		assert.Equal(t, "+1 missions", d.Connection.StatusLabel)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for rounds")
	}

	select {
	case s := <-stats:
		require.NotNil(t, s.Summary)
		assert.Equal(t, 42, s.Summary.TotalRounds)
		assert.Equal(t, poller.LabelOnline, s.Connection.StatusLabel)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stats")
	}
}

func TestClient_SkipsMalformedMessages(t *testing.T) {
	url := scriptedServer(t,
		`not json`,
		`{"type":"rounds","data":"oops"}`,
		`{"type":"weather","data":{}}`,
		`{"type":"rounds","data":{"rounds":[{"round_id":"ok","crash_multiplier":2}],"connection":{"connected":true}}}`,
	)

	c, err := Dial(context.Background(), testClientConfig(url), nil)
	require.NoError(t, err)

	rounds := make(chan RoundsData, 4)
	runClient(t, c, EventFuncs{Rounds: func(d RoundsData, _ time.Time) { rounds <- d }})

	select {
	case d := <-rounds:
		require.Len(t, d.Rounds, 1)
		assert.Equal(t, "ok", d.Rounds[0].RoundID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for valid rounds message")
	}
	assert.Empty(t, rounds)
}

func TestClient_CancelStopsRun(t *testing.T) {
	_, url := newTestHub(t, DefaultHubConfig())

	c, err := Dial(context.Background(), testClientConfig(url), nil)
	require.NoError(t, err)

	cancel, errCh := runClient(t, c, EventFuncs{})
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	require.NoError(t, c.Close(), "Close after Run is a no-op")
}

func TestClient_ReportsServerClose(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	defer server.Close()

	c, err := Dial(context.Background(), testClientConfig("ws"+strings.TrimPrefix(server.URL, "http")), nil)
	require.NoError(t, err)
	defer c.Close()

	_, errCh := runClient(t, c, EventFuncs{})
	select {
	case err := <-errCh:
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrStaleConnection)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestClient_StaleConnection(t *testing.T) {
	url := scriptedServer(t)

	cfg := testClientConfig(url)
	cfg.StaleAfter = 50 * time.Millisecond
	c, err := Dial(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer c.Close()

	_, errCh := runClient(t, c, EventFuncs{})
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrStaleConnection)
	case <-time.After(2 * time.Second):
		t.Fatal("silent hub was not reported stale")
	}
}

func TestClient_DialFailure(t *testing.T) {
	hub := NewHub(DefaultHubConfig(), zone.DefaultZones(), nil)
	server := httptest.NewServer(hub)
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	server.Close()

	c, err := Dial(context.Background(), testClientConfig(url), nil)
	assert.Error(t, err)
	assert.Nil(t, c)
}
