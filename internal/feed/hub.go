package feed

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rickgao/spacexy-tracker/internal/metrics"
	"github.com/rickgao/spacexy-tracker/internal/model"
	"github.com/rickgao/spacexy-tracker/internal/poller"
	"github.com/rickgao/spacexy-tracker/internal/zone"
)

// Hub fans synchronizer snapshots out to WebSocket clients. It implements
// poller.RoundHandler and poller.StatsHandler.
type Hub struct {
	cfg      HubConfig
	zones    []model.Zone
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu         sync.RWMutex
	clients    map[*subscriber]struct{}
	lastRounds []byte
	lastStats  []byte
	closed     bool
}

// subscriber is one connected client.
type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.done) })
}

// NewHub creates a new Hub classifying rounds against zones.
func NewHub(cfg HubConfig, zones []model.Zone, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultHubConfig()
	if cfg.ClientBuffer <= 0 {
		cfg.ClientBuffer = defaults.ClientBuffer
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaults.PingInterval
	}

	h := &Hub{
		cfg:     cfg,
		zones:   zones,
		logger:  logger,
		clients: make(map[*subscriber]struct{}),
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 || slices.Contains(h.cfg.AllowedOrigins, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(h.cfg.AllowedOrigins, origin)
}

// HandleRounds broadcasts an annotated rounds snapshot.
func (h *Hub) HandleRounds(snap poller.RoundSnapshot) {
	data := RoundsData{
		Rounds:     zone.Annotate(snap.Rounds, h.zones),
		Connection: snap.Connection,
	}
	h.publish(TypeRounds, data)
}

// HandleStats broadcasts a statistics snapshot.
func (h *Hub) HandleStats(snap poller.StatsSnapshot) {
	h.publish(TypeStats, snap)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) publish(msgType string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("failed to encode feed message", "type", msgType, "err", err)
		return
	}
	msg, err := json.Marshal(Message{Type: msgType, Data: payload})
	if err != nil {
		h.logger.Error("failed to encode feed envelope", "type", msgType, "err", err)
		return
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	switch msgType {
	case TypeRounds:
		h.lastRounds = msg
	case TypeStats:
		h.lastStats = msg
	}
	clients := make([]*subscriber, 0, len(h.clients))
	for s := range h.clients {
		clients = append(clients, s)
	}
	h.mu.Unlock()

	for _, s := range clients {
		h.enqueue(s, msg)
	}
}

// enqueue never blocks: a full client buffer drops the message.
func (h *Hub) enqueue(s *subscriber, msg []byte) {
	select {
	case s.send <- msg:
	case <-s.done:
	default:
		metrics.FeedDropped.Inc()
		h.logger.Debug("client buffer full, dropping message", "client_id", s.id)
	}
}

// ServeHTTP upgrades the request and serves the feed until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	s := &subscriber{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, h.cfg.ClientBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[s] = struct{}{}
	replay := [][]byte{h.lastRounds, h.lastStats}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.FeedClients.Inc()
	h.logger.Info("feed client connected", "client_id", s.id, "remote", r.RemoteAddr, "clients", count)

	for _, msg := range replay {
		if msg != nil {
			h.enqueue(s, msg)
		}
	}

	go h.readLoop(s)
	h.writeLoop(s)

	h.remove(s)
	conn.Close()
	h.logger.Info("feed client disconnected", "client_id", s.id)
}

// readLoop discards client input and detects disconnects.
func (h *Hub) readLoop(s *subscriber) {
	defer s.close()
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(s *subscriber) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			s.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			return
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("feed write failed", "client_id", s.id, "err", err)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(h.cfg.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				return
			}
		}
	}
}

func (h *Hub) remove(s *subscriber) {
	s.close()

	h.mu.Lock()
	_, ok := h.clients[s]
	delete(h.clients, s)
	h.mu.Unlock()

	if ok {
		metrics.FeedClients.Dec()
	}
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*subscriber, 0, len(h.clients))
	for s := range h.clients {
		clients = append(clients, s)
	}
	h.mu.Unlock()

	for _, s := range clients {
		s.close()
	}
}
