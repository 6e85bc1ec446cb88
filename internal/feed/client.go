package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/spacexy-tracker/internal/poller"
	"github.com/rickgao/spacexy-tracker/internal/version"
)

// EventHandler receives decoded feed messages in arrival order.
type EventHandler interface {
	OnRounds(data RoundsData, receivedAt time.Time)
	OnStats(snap poller.StatsSnapshot, receivedAt time.Time)
}

// EventFuncs adapts plain functions to EventHandler. A nil field ignores
// that message type.
type EventFuncs struct {
	Rounds func(RoundsData, time.Time)
	Stats  func(poller.StatsSnapshot, time.Time)
}

func (f EventFuncs) OnRounds(data RoundsData, at time.Time) {
	if f.Rounds != nil {
		f.Rounds(data, at)
	}
}

func (f EventFuncs) OnStats(snap poller.StatsSnapshot, at time.Time) {
	if f.Stats != nil {
		f.Stats(snap, at)
	}
}

// Client is a read-only connection to a tracker's /ws feed.
type Client struct {
	cfg    ClientConfig
	logger *slog.Logger
	conn   *websocket.Conn

	mu     sync.Mutex
	closed bool
}

// Dial connects to the feed at cfg.URL.
func Dial(ctx context.Context, cfg ClientConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = DefaultClientConfig().HandshakeTimeout
	}

	header := http.Header{}
	header.Set("User-Agent", version.UserAgent())

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, cfg.URL, header)
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}

	c := &Client{cfg: cfg, logger: logger, conn: conn}

	// Every hub ping proves liveness and pushes the stale deadline forward.
	conn.SetPingHandler(func(data string) error {
		c.extendDeadline()
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	c.extendDeadline()

	logger.Debug("feed connected", "url", cfg.URL)
	return c, nil
}

// Run reads messages and dispatches them to h until the connection fails,
// goes stale, or ctx is cancelled. Cancellation returns nil.
func (c *Client) Run(ctx context.Context, h EventHandler) error {
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || c.isClosed() {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return fmt.Errorf("%w: %v", ErrStaleConnection, err)
			}
			return fmt.Errorf("read feed: %w", err)
		}
		c.extendDeadline()
		c.dispatch(data, time.Now(), h)
	}
}

// Close sends a close frame and releases the connection. Safe to call twice.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return c.conn.Close()
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) extendDeadline() {
	if c.cfg.StaleAfter > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.StaleAfter))
	}
}

// dispatch decodes one message. Malformed or unknown messages are logged
// and skipped so one bad frame never ends the stream.
func (c *Client) dispatch(data []byte, at time.Time, h EventHandler) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn("undecodable feed message", "error", err)
		return
	}

	switch msg.Type {
	case TypeRounds:
		var rounds RoundsData
		if err := json.Unmarshal(msg.Data, &rounds); err != nil {
			c.logger.Warn("invalid rounds payload", "error", err)
			return
		}
		h.OnRounds(rounds, at)
	case TypeStats:
		var snap poller.StatsSnapshot
		if err := json.Unmarshal(msg.Data, &snap); err != nil {
			c.logger.Warn("invalid stats payload", "error", err)
			return
		}
		h.OnStats(snap, at)
	default:
		c.logger.Debug("ignoring feed message", "type", msg.Type)
	}
}
