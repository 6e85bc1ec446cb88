package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

const (
	pathRounds      = "/api/rounds"
	pathRecentStats = "/api/stats/recent"
)

// GetRounds fetches one page of rounds, newest first. Items that fail
// validation are dropped; Total is passed through as reported.
func (c *Client) GetRounds(ctx context.Context, limit, offset int) (*model.RoundPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var resp roundsResponse
	if err := c.get(ctx, pathRounds, query, &resp); err != nil {
		return nil, err
	}

	page := &model.RoundPage{
		Items: make([]model.Round, 0, len(resp.Items)),
		Total: resp.Total,
	}
	for i := range resp.Items {
		if !c.accept(pathRounds, &resp.Items[i]) {
			continue
		}
		page.Items = append(page.Items, resp.Items[i].ToModel())
	}

	return page, nil
}

// GetRecentStats fetches statistics over the most recent limit rounds.
// A structurally invalid body yields nil stats and no error.
func (c *Client) GetRecentStats(ctx context.Context, limit int) (*model.RecentStats, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var resp apiRecent
	if err := c.get(ctx, pathRecentStats, query, &resp); err != nil {
		return nil, err
	}

	if !c.accept(pathRecentStats, &resp) {
		return nil, nil
	}
	return resp.ToModel(), nil
}
