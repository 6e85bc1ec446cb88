package model

import "time"

// Period selects the look-back window for crash statistics.
type Period string

const (
	Period1h  Period = "1h"
	Period6h  Period = "6h"
	Period24h Period = "24h"
	Period7d  Period = "7d"
	Period30d Period = "30d"
)

// Valid reports whether p is one of the periods the API accepts.
func (p Period) Valid() bool {
	switch p {
	case Period1h, Period6h, Period24h, Period7d, Period30d:
		return true
	}
	return false
}

// CrashStats is the response of GET /api/v2/crash/{gameId}. It is passed
// through to consumers without further interpretation.
type CrashStats struct {
	Game            string           `json:"game"`
	Period          string           `json:"period"`
	GeneratedAt     time.Time        `json:"generated_at"`
	CrashAnalysis   CrashAnalysis    `json:"crash_analysis"`
	CurrentStreak   map[string]any   `json:"current_streak"`
	StreakHistory   map[string]any   `json:"streak_history"`
	QuickCrashAlert QuickCrashAlert  `json:"quick_crash_alert"`
	MoonTracker     MoonTracker      `json:"moon_tracker"`
	CashoutTargets  []CashoutTarget  `json:"cashout_targets"`
	BestHours       []map[string]any `json:"best_hours"`
	WorstHours      []map[string]any `json:"worst_hours"`
}

// CrashAnalysis holds crash-point rates over a period.
type CrashAnalysis struct {
	TotalRounds      int        `json:"total_rounds"`
	AverageCrash     float64    `json:"average_crash"`
	MedianCrash      float64    `json:"median_crash"`
	StdDeviation     float64    `json:"std_deviation"`
	InstantCrashRate float64    `json:"instant_crash_rate"`
	QuickCrashRate   float64    `json:"quick_crash_rate"`
	EarlyCrashRate   float64    `json:"early_crash_rate"`
	GoodRoundRate    float64    `json:"good_round_rate"`
	GreatRoundRate   float64    `json:"great_round_rate"`
	BigWinRate       float64    `json:"big_win_rate"`
	HugeWinRate      float64    `json:"huge_win_rate"`
	MegaWinRate      float64    `json:"mega_win_rate"`
	MoonRate         float64    `json:"moon_rate"`
	HighestCrash     float64    `json:"highest_crash"`
	LowestCrash      float64    `json:"lowest_crash"`
	LastMoon         *time.Time `json:"last_moon,omitempty"`
	RoundsSinceMoon  *int       `json:"rounds_since_moon,omitempty"`
}

// QuickCrashAlert counts recent sub-1.5x crashes.
type QuickCrashAlert struct {
	Last10QuickCrashes      int        `json:"last_10_quick_crashes"`
	Last20QuickCrashes      int        `json:"last_20_quick_crashes"`
	Last50QuickCrashes      int        `json:"last_50_quick_crashes"`
	AlertLevel              AlertLevel `json:"alert_level"`
	ConsecutiveQuickCrashes int        `json:"consecutive_quick_crashes"`
}

// MoonTracker tracks 1000x+ rounds.
type MoonTracker struct {
	TotalMoons                int        `json:"total_moons"`
	LastMoonValue             *float64   `json:"last_moon_value,omitempty"`
	LastMoonTime              *time.Time `json:"last_moon_time,omitempty"`
	RoundsSinceMoon           int        `json:"rounds_since_moon"`
	AverageRoundsBetweenMoons *float64   `json:"average_rounds_between_moons,omitempty"`
	MoonProbability           float64    `json:"moon_probability"`
}
