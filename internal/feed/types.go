package feed

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

// ErrStaleConnection is returned by Client.Run when the hub stops sending
// messages and pings for longer than ClientConfig.StaleAfter.
var ErrStaleConnection = errors.New("feed connection stale")

// Message types
const (
	TypeRounds = "rounds"
	TypeStats  = "stats"
)

// Message is the envelope of every feed message.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// RoundsData is the payload of a "rounds" message.
type RoundsData struct {
	Rounds     []model.AnnotatedRound `json:"rounds"`
	Connection model.ConnectionState  `json:"connection"`
}

// HubConfig configures the Hub.
type HubConfig struct {
	ClientBuffer   int           // Per-client message buffer (default: 16)
	WriteTimeout   time.Duration // Write deadline for sends
	PingInterval   time.Duration // Interval between server pings
	AllowedOrigins []string      // Origins allowed to connect; empty allows all
}

// DefaultHubConfig returns sensible defaults.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		ClientBuffer: 16,
		WriteTimeout: 5 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

// ClientConfig configures a feed Client.
type ClientConfig struct {
	URL              string        // Hub URL (e.g., ws://localhost:8080/ws)
	StaleAfter       time.Duration // Max silence (no message or ping) before Run fails; 0 disables
	HandshakeTimeout time.Duration
}

// DefaultClientConfig allows three missed hub pings before the feed is stale.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		StaleAfter:       3 * DefaultHubConfig().PingInterval,
		HandshakeTimeout: 10 * time.Second,
	}
}
