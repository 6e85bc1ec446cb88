package feed

import (
	"encoding/json"
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

func newTestHub(t *testing.T, cfg HubConfig) (*Hub, string) {
	t.Helper()
	hub := NewHub(cfg, zone.DefaultZones(), nil)
	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func roundsSnapshot() poller.RoundSnapshot {
	return poller.RoundSnapshot{
		Rounds: []model.Round{
			{RoundID: "r2", CrashMultiplier: 12.5, IsNew: true},
			{RoundID: "r1", CrashMultiplier: 1.1},
		},
		Connection: model.ConnectionState{Connected: true, StatusLabel: "+1 missions"},
	}
}

func TestHub_BroadcastsRounds(t *testing.T) {
	hub, url := newTestHub(t, DefaultHubConfig())
	conn := dial(t, url)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.HandleRounds(roundsSnapshot())

	msg := readMessage(t, conn)
	assert.Equal(t, TypeRounds, msg.Type)

	var data RoundsData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.Len(t, data.Rounds, 2)
	assert.Equal(t, "r2", data.Rounds[0].RoundID)
	assert.True(t, data.Rounds[0].IsNew)
	assert.Equal(t, "Moon Shot", data.Rounds[0].Zone)
	assert.Equal(t, "Crash Zone", data.Rounds[1].Zone)
	assert.Equal(t, "+1 missions", data.Connection.StatusLabel)
}

func TestHub_BroadcastsStats(t *testing.T) {
	hub, url := newTestHub(t, DefaultHubConfig())
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.HandleStats(poller.StatsSnapshot{
		Summary:    &model.SummaryStats{TotalRounds: 42},
		Connection: model.ConnectionState{Connected: true, StatusLabel: poller.LabelOnline},
	})

	msg := readMessage(t, conn)
	assert.Equal(t, TypeStats, msg.Type)

	var data poller.StatsSnapshot
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.NotNil(t, data.Summary)
	assert.Equal(t, 42, data.Summary.TotalRounds)
}

func TestHub_ReplaysLatestOnConnect(t *testing.T) {
	hub, url := newTestHub(t, DefaultHubConfig())

	hub.HandleRounds(roundsSnapshot())
	hub.HandleStats(poller.StatsSnapshot{})

	conn := dial(t, url)

	assert.Equal(t, TypeRounds, readMessage(t, conn).Type)
	assert.Equal(t, TypeStats, readMessage(t, conn).Type)
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub(HubConfig{ClientBuffer: 1}, zone.DefaultZones(), nil)
	s := &subscriber{id: "slow", send: make(chan []byte, 1), done: make(chan struct{})}

	hub.enqueue(s, []byte("first"))
	hub.enqueue(s, []byte("second"))

	assert.Len(t, s.send, 1)
	assert.Equal(t, []byte("first"), <-s.send)
}

func TestHub_RemovesDisconnectedClients(t *testing.T) {
	hub, url := newTestHub(t, DefaultHubConfig())
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHub_CheckOrigin(t *testing.T) {
	hub := NewHub(HubConfig{AllowedOrigins: []string{"https://spacexy.example"}}, nil, nil)

	allowed := httptest.NewRequest(http.MethodGet, "/ws", nil)
	allowed.Header.Set("Origin", "https://spacexy.example")
	assert.True(t, hub.checkOrigin(allowed))

	denied := httptest.NewRequest(http.MethodGet, "/ws", nil)
	denied.Header.Set("Origin", "https://evil.example")
	assert.False(t, hub.checkOrigin(denied))

	open := NewHub(HubConfig{}, nil, nil)
	assert.True(t, open.checkOrigin(denied))
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub, url := newTestHub(t, DefaultHubConfig())
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "err = %v", err)
}
