package calc

import (
	"slices"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

// Thresholds used by the window summaries.
const (
	QuickCrashThreshold = 1.5
	Under2xThreshold    = 2.0
	Over10xThreshold    = 10.0
)

// Multipliers extracts crash multipliers from rounds, preserving order.
func Multipliers(rounds []model.Round) []float64 {
	out := make([]float64, len(rounds))
	for i, r := range rounds {
		out[i] = r.CrashMultiplier
	}
	return out
}

// Summarize computes aggregate statistics over a window of multipliers.
func Summarize(multipliers []float64) model.WindowStats {
	n := len(multipliers)
	if n == 0 {
		return model.WindowStats{}
	}

	sorted := slices.Clone(multipliers)
	slices.Sort(sorted)

	var sum float64
	var under2x, over10x int
	for _, m := range multipliers {
		sum += m
		if m < Under2xThreshold {
			under2x++
		}
		if m >= Over10xThreshold {
			over10x++
		}
	}

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return model.WindowStats{
		Count:        n,
		Average:      roundTo(sum/float64(n), 4),
		Median:       roundTo(median, 4),
		Min:          sorted[0],
		Max:          sorted[n-1],
		Under2xCount: under2x,
		Over10xCount: over10x,
		Under2xPct:   roundTo(float64(under2x)*100/float64(n), 2),
	}
}

// QuickCrashAlert grades recent quick crashes. multipliers must be ordered
// most recent first.
func QuickCrashAlert(multipliers []float64) model.QuickCrashAlert {
	last10 := countBelow(head(multipliers, 10), QuickCrashThreshold)
	last20 := countBelow(head(multipliers, 20), QuickCrashThreshold)
	last50 := countBelow(head(multipliers, 50), QuickCrashThreshold)

	consecutive := 0
	for _, m := range multipliers {
		if m >= QuickCrashThreshold {
			break
		}
		consecutive++
	}

	level := model.AlertLow
	switch {
	case consecutive >= 5 || last10 >= 7:
		level = model.AlertCritical
	case consecutive >= 3 || last10 >= 5:
		level = model.AlertHigh
	case last10 >= 4 || last20 >= 10:
		level = model.AlertMedium
	}

	return model.QuickCrashAlert{
		Last10QuickCrashes:      last10,
		Last20QuickCrashes:      last20,
		Last50QuickCrashes:      last50,
		AlertLevel:              level,
		ConsecutiveQuickCrashes: consecutive,
	}
}

func head(s []float64, n int) []float64 {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func countBelow(s []float64, threshold float64) int {
	count := 0
	for _, m := range s {
		if m < threshold {
			count++
		}
	}
	return count
}
