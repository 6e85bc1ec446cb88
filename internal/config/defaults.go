package config

import (
	"math"
	"time"

	"github.com/rickgao/spacexy-tracker/internal/model"
	"github.com/rickgao/spacexy-tracker/internal/zone"
)

// Default values for optional configuration fields.
const (
	DefaultInstanceID     = "spacexy-tracker"
	DefaultBaseURL        = "http://localhost:8009"
	DefaultAPITimeout     = 10 * time.Second
	DefaultRetryBackoff   = time.Second
	DefaultGameID         = "spacexy"
	DefaultRTP            = 97.0
	DefaultMaxMultiplier  = 10000.0
	DefaultMinBet         = 0.1
	DefaultMaxBet         = 100.0
	DefaultFeedInterval   = 15 * time.Second
	DefaultFeedPageSize   = 50
	DefaultDecayDelay     = 2 * time.Second
	DefaultStatsInterval  = 15 * time.Second
	DefaultRecentLimit    = 100
	DefaultCrashCacheSize = 16
	DefaultCrashCacheTTL  = time.Minute
	DefaultCrashPeriod    = model.Period24h
	DefaultServerPort     = 8080
	DefaultClientBuffer   = 16
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

func (c *TrackerConfig) applyDefaults() {
	if c.Instance.ID == "" {
		c.Instance.ID = DefaultInstanceID
	}

	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Game defaults
	if c.Game.ID == "" {
		c.Game.ID = DefaultGameID
	}
	if c.Game.RTP == 0 {
		c.Game.RTP = DefaultRTP
	}
	if c.Game.MaxMultiplier == 0 {
		c.Game.MaxMultiplier = DefaultMaxMultiplier
	}
	if c.Game.MinBet == 0 {
		c.Game.MinBet = DefaultMinBet
	}
	if c.Game.MaxBet == 0 {
		c.Game.MaxBet = DefaultMaxBet
	}

	// Synchronizer defaults
	if c.Feed.Interval == 0 {
		c.Feed.Interval = DefaultFeedInterval
	}
	if c.Feed.PageSize == 0 {
		c.Feed.PageSize = DefaultFeedPageSize
	}
	if c.Feed.DecayDelay == 0 {
		c.Feed.DecayDelay = DefaultDecayDelay
	}
	if c.Stats.Interval == 0 {
		c.Stats.Interval = DefaultStatsInterval
	}
	if c.Stats.RecentLimit == 0 {
		c.Stats.RecentLimit = DefaultRecentLimit
	}

	// Crash stats defaults
	if c.CrashStats.CacheSize == 0 {
		c.CrashStats.CacheSize = DefaultCrashCacheSize
	}
	if c.CrashStats.CacheTTL == 0 {
		c.CrashStats.CacheTTL = DefaultCrashCacheTTL
	}
	if c.CrashStats.DefaultPeriod == "" {
		c.CrashStats.DefaultPeriod = DefaultCrashPeriod
	}

	// Zones: an omitted max on the last zone means unbounded.
	if len(c.Zones) == 0 {
		c.Zones = zone.DefaultZones()
	} else if last := &c.Zones[len(c.Zones)-1]; last.MaxExclusive == 0 {
		last.MaxExclusive = math.Inf(1)
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.ClientBuffer == 0 {
		c.Server.ClientBuffer = DefaultClientBuffer
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
