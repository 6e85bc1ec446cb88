package calc

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestWinProbability(t *testing.T) {
	tests := []struct {
		rtp, target, want float64
	}{
		{97, 2.0, 48.5},
		{97, 50, 1.94},
		{97, 1.0, 97},
		{97, 0.5, 100},
		{99, 10, 9.9},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("rtp=%g target=%g", tt.rtp, tt.target), func(t *testing.T) {
			assert.InDelta(t, tt.want, WinProbability(tt.rtp, tt.target), tolerance)
		})
	}
}

func TestWinProbability_FairGame(t *testing.T) {
	for _, m := range []float64{1, 1.01, 1.5, 2, 3.7, 10, 1000} {
		assert.InDelta(t, math.Min(100/m, 100), WinProbability(100, m), tolerance, "target %g", m)
	}
}

func TestWinProbability_ClampedAt100(t *testing.T) {
	for _, m := range []float64{0.1, 0.5, 0.99} {
		assert.Equal(t, 100.0, WinProbability(97, m))
	}
}

func TestWinProbability_DegenerateInput(t *testing.T) {
	assert.True(t, math.IsNaN(WinProbability(math.NaN(), 2)))
	// Division by zero saturates to +Inf and is then clamped.
	assert.Equal(t, 100.0, WinProbability(97, 0))
}

func TestExpectedValue(t *testing.T) {
	// 0.485*10*1 - 0.515*10
	assert.InDelta(t, -0.30, ExpectedValue(10, 2, 97), tolerance)
	assert.InDelta(t, 0, ExpectedValue(10, 2, 100), tolerance)
}

func TestExpectedValue_ZeroEdgeAtFullRTP(t *testing.T) {
	for _, bet := range []float64{0.1, 1, 10, 250, 1e6} {
		for _, m := range []float64{1, 1.01, 1.5, 2, 7.77, 100, 10000} {
			assert.InDelta(t, 0, ExpectedValue(bet, m, 100), 1e-6*bet, "bet=%g target=%g", bet, m)
		}
	}
}

func TestExpectedValue_NegativeBelowFullRTP(t *testing.T) {
	for _, m := range []float64{1.01, 2, 10, 100} {
		ev := ExpectedValue(10, m, 97)
		// Loss per bet equals the house edge share of the stake.
		assert.InDelta(t, -10*HouseEdge(97)/100, ev, 1e-9, "target %g", m)
	}
}

func TestHouseEdge(t *testing.T) {
	assert.Equal(t, 3.0, HouseEdge(97))
	assert.Equal(t, 0.0, HouseEdge(100))
}

func TestPercentConvention(t *testing.T) {
	// At target 1.0 the win probability equals the RTP, both in percent.
	rtp := 97.0
	assert.InDelta(t, rtp, WinProbability(rtp, 1), tolerance)
	assert.InDelta(t, 100, WinProbability(rtp, 1)+HouseEdge(rtp), tolerance)

	// A fraction would be < 1 here; a percent is not.
	assert.Greater(t, WinProbability(rtp, 2), 1.0)
	assert.Greater(t, HouseEdge(rtp), 1.0)
}

func TestBatchForms(t *testing.T) {
	ev := ExpectedValue(10, 2, 97)

	assert.Equal(t, 100*ev, ExpectedReturn(10, 2, 97, 100))
	assert.Equal(t, 0.0, ExpectedReturn(10, 2, 97, 0))
	assert.InDelta(t, 485, ExpectedWins(97, 2, 1000), tolerance)
	assert.Equal(t, 2500.0, ExpectedWagered(25, 100))

	// Linear: doubling trials doubles the result.
	assert.Equal(t, 2*ExpectedReturn(5, 3, 97, 40), ExpectedReturn(5, 3, 97, 80))
}

func TestPayout(t *testing.T) {
	assert.Equal(t, 25.0, Payout(10, 2.5))
}
