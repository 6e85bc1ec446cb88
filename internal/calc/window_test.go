package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

func TestSummarize(t *testing.T) {
	t.Run("even count", func(t *testing.T) {
		s := Summarize([]float64{1.2, 3.0, 1.8, 15.0})

		assert.Equal(t, 4, s.Count)
		assert.Equal(t, 5.25, s.Average)
		assert.Equal(t, 2.4, s.Median)
		assert.Equal(t, 1.2, s.Min)
		assert.Equal(t, 15.0, s.Max)
		assert.Equal(t, 2, s.Under2xCount)
		assert.Equal(t, 1, s.Over10xCount)
		assert.Equal(t, 50.0, s.Under2xPct)
	})

	t.Run("odd count", func(t *testing.T) {
		s := Summarize([]float64{5, 1, 3})
		assert.Equal(t, 3.0, s.Median)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, model.WindowStats{}, Summarize(nil))
	})

	t.Run("input is not reordered", func(t *testing.T) {
		in := []float64{3, 1, 2}
		Summarize(in)
		assert.Equal(t, []float64{3, 1, 2}, in)
	})
}

func TestQuickCrashAlert(t *testing.T) {
	tests := []struct {
		name        string
		multipliers []float64
		level       model.AlertLevel
		consecutive int
		last10      int
	}{
		{
			name:        "five in a row is critical",
			multipliers: []float64{1.1, 1.2, 1.3, 1.4, 1.0, 2, 2, 2, 2, 2},
			level:       model.AlertCritical,
			consecutive: 5,
			last10:      5,
		},
		{
			name:        "three in a row is high",
			multipliers: []float64{1.1, 1.2, 1.3, 2, 2, 2, 2, 2, 2, 2},
			level:       model.AlertHigh,
			consecutive: 3,
			last10:      3,
		},
		{
			name:        "four in ten is medium",
			multipliers: []float64{2, 1.1, 2, 1.1, 2, 1.1, 2, 1.1, 2, 2},
			level:       model.AlertMedium,
			consecutive: 0,
			last10:      4,
		},
		{
			name:        "calm",
			multipliers: []float64{3, 3, 3, 1.2, 3},
			level:       model.AlertLow,
			consecutive: 0,
			last10:      1,
		},
		{
			name:  "empty",
			level: model.AlertLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := QuickCrashAlert(tt.multipliers)
			assert.Equal(t, tt.level, a.AlertLevel)
			assert.Equal(t, tt.consecutive, a.ConsecutiveQuickCrashes)
			assert.Equal(t, tt.last10, a.Last10QuickCrashes)
		})
	}
}

func TestMultipliers(t *testing.T) {
	rounds := []model.Round{{RoundID: "a", CrashMultiplier: 1.5}, {RoundID: "b", CrashMultiplier: 7}}
	assert.Equal(t, []float64{1.5, 7}, Multipliers(rounds))
}
