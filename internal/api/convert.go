package api

import (
	"time"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

// timestampLayouts lists the formats created_at has been seen in. The API
// emits naive ISO 8601 timestamps, which are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO 8601 timestamp. Returns nil for empty or
// invalid input.
func ParseTimestamp(iso string) *time.Time {
	if iso == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			t = t.UTC()
			return &t
		}
	}

	return nil
}

// ToModel converts a validated apiRound to model.Round.
func (r *apiRound) ToModel() model.Round {
	return model.Round{
		RoundID:         r.RoundID,
		CrashMultiplier: *r.CrashMultiplier,
		Hash:            r.Hash,
		CreatedAt:       ParseTimestamp(r.CreatedAt),
	}
}

// ToModel converts a validated apiSummary to model.SummaryStats.
func (s *apiSummary) ToModel() *model.SummaryStats {
	return &model.SummaryStats{
		TotalRounds:      *s.TotalRounds,
		AvgMultiplier:    *s.AvgMultiplier,
		MedianMultiplier: *s.MedianMultiplier,
		MaxMultiplier:    *s.MaxMultiplier,
		MinMultiplier:    *s.MinMultiplier,
		Under2xCount:     *s.Under2xCount,
		Over10xCount:     *s.Over10xCount,
	}
}

// ToModel converts a validated apiRecent to model.RecentStats.
func (s *apiRecent) ToModel() *model.RecentStats {
	return &model.RecentStats{
		AvgMultiplier: *s.AvgMultiplier,
		Under2xPct:    *s.Under2xPct,
	}
}

// ToModel converts a validated apiBucket to model.DistributionBucket.
func (b *apiBucket) ToModel() model.DistributionBucket {
	return model.DistributionBucket{
		Range:      b.Range,
		Count:      *b.Count,
		Percentage: *b.Percentage,
	}
}
