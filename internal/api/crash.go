package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/rickgao/spacexy-tracker/internal/metrics"
	"github.com/rickgao/spacexy-tracker/internal/model"
)

// ErrInvalidPeriod is returned for a period the API does not accept.
var ErrInvalidPeriod = errors.New("invalid period")

// GetCrashStats fetches crash statistics for a game over period. Results are
// served from the cache when one is configured.
func (c *Client) GetCrashStats(ctx context.Context, gameID string, period model.Period) (*model.CrashStats, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	key := gameID + "/" + string(period)
	if c.crashCache != nil {
		if stats, ok := c.crashCache.Get(key); ok {
			metrics.CrashStatsCache.WithLabelValues(metrics.ResultHit).Inc()
			return stats, nil
		}
		metrics.CrashStatsCache.WithLabelValues(metrics.ResultMiss).Inc()
	}

	query := url.Values{}
	query.Set("period", string(period))

	var stats model.CrashStats
	if err := c.get(ctx, "/api/v2/crash/"+url.PathEscape(gameID), query, &stats); err != nil {
		return nil, err
	}

	if c.crashCache != nil {
		c.crashCache.Add(key, &stats)
	}
	return &stats, nil
}
