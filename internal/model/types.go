package model

import (
	"encoding/json"
	"math"
	"time"
)

// -----------------------------------------------------------------------------
// Round Types
// -----------------------------------------------------------------------------

// Round is one settled game outcome.
type Round struct {
	RoundID         string     `json:"round_id"`
	CrashMultiplier float64    `json:"crash_multiplier"`
	Hash            string     `json:"hash,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`

	// IsNew is a local annotation set while the round is inside its display
	// window after first observation. Never sent upstream.
	IsNew bool `json:"is_new"`
}

// ShortID returns the first n characters of the round ID for display.
func (r Round) ShortID(n int) string {
	if n <= 0 || len(r.RoundID) <= n {
		return r.RoundID
	}
	return r.RoundID[:n]
}

// RoundPage is one page of the rounds collection.
type RoundPage struct {
	Items []Round
	Total int
}

// Zone is a named half-open bucket [MinInclusive, MaxExclusive) over the
// multiplier domain. The last zone of a table has MaxExclusive = +Inf.
type Zone struct {
	Name         string  `json:"name" yaml:"name"`
	Icon         string  `json:"icon" yaml:"icon"`
	ColorKey     string  `json:"color_key" yaml:"color_key"`
	MinInclusive float64 `json:"min" yaml:"min"`
	MaxExclusive float64 `json:"-" yaml:"max"`
}

// Contains reports whether m falls inside the zone's interval.
func (z Zone) Contains(m float64) bool {
	return m >= z.MinInclusive && m < z.MaxExclusive
}

// Unbounded reports whether the zone has no upper limit.
func (z Zone) Unbounded() bool {
	return math.IsInf(z.MaxExclusive, 1)
}

// Coordinate is a decorative (x, y) pair derived from a multiplier.
type Coordinate struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// AnnotatedRound is a Round after classification.
type AnnotatedRound struct {
	Round
	Zone       string     `json:"zone"`
	ZoneIcon   string     `json:"zone_icon"`
	ZoneColor  string     `json:"zone_color"`
	Coordinate Coordinate `json:"coordinate"`
}

// ConnectionState tracks one synchronizer's view of the upstream API.
type ConnectionState struct {
	Connected   bool       `json:"connected"`
	StatusLabel string     `json:"status_label"`
	LastUpdate  *time.Time `json:"last_update"`
}

// -----------------------------------------------------------------------------
// Aggregate Types
// -----------------------------------------------------------------------------

// SummaryStats is the all-time aggregate from GET /api/stats/summary.
type SummaryStats struct {
	TotalRounds      int     `json:"total_rounds"`
	AvgMultiplier    float64 `json:"avg_multiplier"`
	MedianMultiplier float64 `json:"median_multiplier"`
	MaxMultiplier    float64 `json:"max_multiplier"`
	MinMultiplier    float64 `json:"min_multiplier"`
	Under2xCount     int     `json:"under_2x_count"`
	Over10xCount     int     `json:"over_10x_count"`
}

// RecentStats describes the most recent N rounds (GET /api/stats/recent).
type RecentStats struct {
	AvgMultiplier float64 `json:"avg_multiplier"`
	Under2xPct    float64 `json:"under_2x_pct"`
}

// DistributionBucket is one multiplier range of GET /api/distribution.
type DistributionBucket struct {
	Range      string  `json:"range"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Health is the upstream API health report.
type Health struct {
	Status         string `json:"status"`
	Game           string `json:"game"`
	Database       string `json:"database"`
	LastDataUpdate string `json:"last_data_update,omitempty"`
	Timestamp      string `json:"timestamp"`
}

// Healthy reports whether the upstream considers itself healthy.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}

// -----------------------------------------------------------------------------
// Calculator Types
// -----------------------------------------------------------------------------

// CalculatorInputs are user-supplied calculator parameters.
type CalculatorInputs struct {
	BetAmount        float64 `json:"bet" validate:"gt=0"`
	TargetMultiplier float64 `json:"target" validate:"gt=1"`
	Trials           int     `json:"trials" validate:"gte=1,lte=1000000"`
}

// Quote is the result of a calculator run.
type Quote struct {
	RTP              float64 `json:"rtp"`
	HouseEdge        float64 `json:"house_edge"`
	BetAmount        float64 `json:"bet"`
	TargetMultiplier float64 `json:"target"`
	Trials           int     `json:"trials"`
	WinProbability   float64 `json:"win_probability"`
	Payout           float64 `json:"payout"`
	ExpectedValue    float64 `json:"expected_value"`
	ExpectedWins     float64 `json:"expected_wins"`
	TotalWagered     float64 `json:"total_wagered"`
	ExpectedReturn   float64 `json:"expected_return"`
}

// CashoutTarget is one row of a cashout table.
type CashoutTarget struct {
	TargetMultiplier float64 `json:"target_multiplier"`
	WinRate          float64 `json:"win_rate"`
	ExpectedValue    float64 `json:"expected_value"`
	RiskRewardRatio  float64 `json:"risk_reward_ratio"`
	Recommended      bool    `json:"recommended"`
}

// WindowStats summarizes a window of observed multipliers.
type WindowStats struct {
	Count        int     `json:"count"`
	Average      float64 `json:"average"`
	Median       float64 `json:"median"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Under2xCount int     `json:"under_2x_count"`
	Over10xCount int     `json:"over_10x_count"`
	Under2xPct   float64 `json:"under_2x_pct"`
}

// AlertLevel grades a run of quick crashes.
type AlertLevel string

const (
	AlertLow      AlertLevel = "low"
	AlertMedium   AlertLevel = "medium"
	AlertHigh     AlertLevel = "high"
	AlertCritical AlertLevel = "critical"
)

// MarshalJSON encodes an unbounded upper limit as null, since JSON has no
// representation for +Inf.
func (z Zone) MarshalJSON() ([]byte, error) {
	type zoneJSON struct {
		Name     string   `json:"name"`
		Icon     string   `json:"icon"`
		ColorKey string   `json:"color_key"`
		Min      float64  `json:"min"`
		Max      *float64 `json:"max"`
	}
	out := zoneJSON{Name: z.Name, Icon: z.Icon, ColorKey: z.ColorKey, Min: z.MinInclusive}
	if !z.Unbounded() {
		upper := z.MaxExclusive
		out.Max = &upper
	}
	return json.Marshal(out)
}
