package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rickgao/spacexy-tracker/internal/zone"
)

// Upstream API limits.
const (
	MaxRoundsPageSize = 500
	MaxRecentLimit    = 1000
)

// Validate checks that all required fields are set and values are valid.
func (c *TrackerConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if err := c.API.validate(); err != nil {
		return err
	}
	if err := c.Game.validate(); err != nil {
		return err
	}

	if c.Feed.Interval <= 0 {
		return errors.New("feed.interval must be > 0")
	}
	if c.Feed.PageSize < 1 || c.Feed.PageSize > MaxRoundsPageSize {
		return fmt.Errorf("feed.page_size must be between 1 and %d, got %d", MaxRoundsPageSize, c.Feed.PageSize)
	}
	if c.Feed.DecayDelay <= 0 {
		return errors.New("feed.decay_delay must be > 0")
	}

	if c.Stats.Interval <= 0 {
		return errors.New("stats.interval must be > 0")
	}
	if c.Stats.RecentLimit < 1 || c.Stats.RecentLimit > MaxRecentLimit {
		return fmt.Errorf("stats.recent_limit must be between 1 and %d, got %d", MaxRecentLimit, c.Stats.RecentLimit)
	}

	if c.CrashStats.CacheSize < 1 {
		return errors.New("crash_stats.cache_size must be >= 1")
	}
	if !c.CrashStats.DefaultPeriod.Valid() {
		return fmt.Errorf("crash_stats.default_period %q is not one of 1h, 6h, 24h, 7d, 30d", c.CrashStats.DefaultPeriod)
	}

	if err := zone.ValidateTable(c.Zones); err != nil {
		return fmt.Errorf("zones: %w", err)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ClientBuffer < 1 {
		return errors.New("server.client_buffer must be >= 1")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", c.Log.Format)
	}

	return nil
}

func (a *APIConfig) validate() error {
	if a.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(a.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute http(s) URL", a.BaseURL)
	}
	if a.Timeout <= 0 {
		return errors.New("api.timeout must be > 0")
	}
	if a.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	return nil
}

func (g *GameConfig) validate() error {
	if g.ID == "" {
		return errors.New("game.id is required")
	}
	if g.RTP <= 0 || g.RTP > 100 {
		return fmt.Errorf("game.rtp must be in (0, 100], got %g", g.RTP)
	}
	if g.MaxMultiplier <= 1 {
		return fmt.Errorf("game.max_multiplier must be > 1, got %g", g.MaxMultiplier)
	}
	if g.MinBet <= 0 {
		return fmt.Errorf("game.min_bet must be > 0, got %g", g.MinBet)
	}
	if g.MaxBet < g.MinBet {
		return fmt.Errorf("game.min_bet (%g) cannot exceed max_bet (%g)", g.MinBet, g.MaxBet)
	}
	return nil
}
