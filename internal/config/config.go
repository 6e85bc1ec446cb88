package config

import (
	"time"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

// TrackerConfig is the root configuration for a tracker instance.
type TrackerConfig struct {
	Instance   InstanceConfig   `yaml:"instance"`
	API        APIConfig        `yaml:"api"`
	Game       GameConfig       `yaml:"game"`
	Feed       FeedConfig       `yaml:"feed"`
	Stats      StatsConfig      `yaml:"stats"`
	CrashStats CrashStatsConfig `yaml:"crash_stats"`
	Zones      []model.Zone     `yaml:"zones"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// InstanceConfig identifies this tracker.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds upstream API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"` // 0 = failures wait for the next tick
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// GameConfig holds the game constants used by the calculators.
type GameConfig struct {
	ID            string  `yaml:"id"`
	RTP           float64 `yaml:"rtp"` // percent
	MaxMultiplier float64 `yaml:"max_multiplier"`
	MinBet        float64 `yaml:"min_bet"`
	MaxBet        float64 `yaml:"max_bet"`
}

// FeedConfig holds rounds synchronizer settings.
type FeedConfig struct {
	Interval   time.Duration `yaml:"interval"`
	PageSize   int           `yaml:"page_size"`
	DecayDelay time.Duration `yaml:"decay_delay"`
}

// StatsConfig holds statistics synchronizer settings.
type StatsConfig struct {
	Interval    time.Duration `yaml:"interval"`
	RecentLimit int           `yaml:"recent_limit"`
}

// CrashStatsConfig holds pass-through crash statistics settings.
type CrashStatsConfig struct {
	CacheSize     int           `yaml:"cache_size"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
	DefaultPeriod model.Period  `yaml:"default_period"`
}

// ServerConfig holds the consumer-facing HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	ClientBuffer   int      `yaml:"client_buffer"` // per WebSocket client
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}
