package api

// Wire types mirror the JSON the stats API returns. Numeric fields are
// pointers so a missing key can be told apart from a zero value.

// roundsResponse from GET /api/rounds
type roundsResponse struct {
	Items []apiRound `json:"items"`
	Total int        `json:"total"`
}

// apiRound is one round as the API serializes it. Server-side
// coordinate_x/coordinate_y are ignored; coordinates are derived locally.
type apiRound struct {
	RoundID         string   `json:"round_id" validate:"required"`
	CrashMultiplier *float64 `json:"crash_multiplier" validate:"required,gte=1"`
	Hash            string   `json:"hash"`
	CreatedAt       string   `json:"created_at"`
}

// apiSummary from GET /api/stats/summary
type apiSummary struct {
	TotalRounds      *int     `json:"total_rounds" validate:"required,gte=0"`
	AvgMultiplier    *float64 `json:"avg_multiplier" validate:"required,gte=0"`
	MedianMultiplier *float64 `json:"median_multiplier" validate:"required,gte=0"`
	MaxMultiplier    *float64 `json:"max_multiplier" validate:"required,gte=0"`
	MinMultiplier    *float64 `json:"min_multiplier" validate:"required,gte=0"`
	Under2xCount     *int     `json:"under_2x_count" validate:"required,gte=0"`
	Over10xCount     *int     `json:"over_10x_count" validate:"required,gte=0"`
}

// apiRecent from GET /api/stats/recent
type apiRecent struct {
	AvgMultiplier *float64 `json:"avg_multiplier" validate:"required,gte=0"`
	Under2xPct    *float64 `json:"under_2x_pct" validate:"required,gte=0,lte=100"`
}

// apiBucket is one entry of GET /api/distribution
type apiBucket struct {
	Range      string   `json:"range" validate:"required"`
	Count      *int     `json:"count" validate:"required,gte=0"`
	Percentage *float64 `json:"percentage" validate:"required,gte=0,lte=100"`
}
