package calc

import "math"

// WinProbability is the chance, in percent, that a round reaches target:
// min((rtp/100)/target*100, 100).
func WinProbability(rtpPercent, target float64) float64 {
	return math.Min((rtpPercent/100)/target*100, 100)
}

// ExpectedValue is the probability-weighted profit of a single bet cashed
// out at target.
func ExpectedValue(bet, target, rtpPercent float64) float64 {
	p := WinProbability(rtpPercent, target) / 100
	return p*(bet*(target-1)) - (1-p)*bet
}

// HouseEdge is 100 - rtp, in percent.
func HouseEdge(rtpPercent float64) float64 {
	return 100 - rtpPercent
}

// Payout is the gross amount returned by a winning bet.
func Payout(bet, target float64) float64 {
	return bet * target
}

// ExpectedReturn is the expected profit over n independent bets.
func ExpectedReturn(bet, target, rtpPercent float64, n int) float64 {
	return float64(n) * ExpectedValue(bet, target, rtpPercent)
}

// ExpectedWins is the expected number of winning bets out of n.
func ExpectedWins(rtpPercent, target float64, n int) float64 {
	return float64(n) * WinProbability(rtpPercent, target) / 100
}

// ExpectedWagered is the total stake over n bets.
func ExpectedWagered(bet float64, n int) float64 {
	return float64(n) * bet
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
