package api

import (
	"context"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

const (
	pathSummary      = "/api/stats/summary"
	pathDistribution = "/api/distribution"
	pathHealth       = "/api/health"
)

// GetSummary fetches all-time summary statistics. A structurally invalid
// body yields nil stats and no error.
func (c *Client) GetSummary(ctx context.Context) (*model.SummaryStats, error) {
	var resp apiSummary
	if err := c.get(ctx, pathSummary, nil, &resp); err != nil {
		return nil, err
	}

	if !c.accept(pathSummary, &resp) {
		return nil, nil
	}
	return resp.ToModel(), nil
}

// GetDistribution fetches the multiplier distribution. Invalid buckets are
// dropped.
func (c *Client) GetDistribution(ctx context.Context) ([]model.DistributionBucket, error) {
	var resp []apiBucket
	if err := c.get(ctx, pathDistribution, nil, &resp); err != nil {
		return nil, err
	}

	buckets := make([]model.DistributionBucket, 0, len(resp))
	for i := range resp {
		if !c.accept(pathDistribution, &resp[i]) {
			continue
		}
		buckets = append(buckets, resp[i].ToModel())
	}
	return buckets, nil
}

// GetHealth fetches the upstream health report.
func (c *Client) GetHealth(ctx context.Context) (*model.Health, error) {
	var resp model.Health
	if err := c.get(ctx, pathHealth, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
