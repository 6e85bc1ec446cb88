package calc

import "github.com/rickgao/spacexy-tracker/internal/model"

// DefaultCashoutTargets are the targets listed when none are requested.
var DefaultCashoutTargets = []float64{1.5, 2.0, 2.5, 3.0, 4.0, 5.0, 10.0, 20.0, 50.0}

// Recommendation thresholds for cashout tables. A target is recommended when
// its win rate is at least RecommendMinWinRate and its unit score
// p*target - (1-p) exceeds RecommendMinScore.
const (
	RecommendMinWinRate = 30.0
	RecommendMinScore   = 0.9
)

// Calculator binds the pure functions to one game's RTP.
type Calculator struct {
	rtp float64
}

// NewCalculator creates a Calculator for the given RTP percent.
func NewCalculator(rtpPercent float64) *Calculator {
	return &Calculator{rtp: rtpPercent}
}

// RTP returns the configured return-to-player percent.
func (c *Calculator) RTP() float64 {
	return c.rtp
}

// Quote runs every calculator for in.
func (c *Calculator) Quote(in model.CalculatorInputs) model.Quote {
	return model.Quote{
		RTP:              c.rtp,
		HouseEdge:        HouseEdge(c.rtp),
		BetAmount:        in.BetAmount,
		TargetMultiplier: in.TargetMultiplier,
		Trials:           in.Trials,
		WinProbability:   WinProbability(c.rtp, in.TargetMultiplier),
		Payout:           Payout(in.BetAmount, in.TargetMultiplier),
		ExpectedValue:    ExpectedValue(in.BetAmount, in.TargetMultiplier, c.rtp),
		ExpectedWins:     ExpectedWins(c.rtp, in.TargetMultiplier, in.Trials),
		TotalWagered:     ExpectedWagered(in.BetAmount, in.Trials),
		ExpectedReturn:   ExpectedReturn(in.BetAmount, in.TargetMultiplier, c.rtp, in.Trials),
	}
}

// CashoutTable returns the theoretical cashout table for targets, or for
// DefaultCashoutTargets when targets is empty.
func (c *Calculator) CashoutTable(targets []float64) []model.CashoutTarget {
	return CashoutTargets(c.rtp, targets)
}

// CashoutTargets computes win rate and per-unit EV for each target from the
// theoretical payout curve.
func CashoutTargets(rtpPercent float64, targets []float64) []model.CashoutTarget {
	if len(targets) == 0 {
		targets = DefaultCashoutTargets
	}
	out := make([]model.CashoutTarget, 0, len(targets))
	for _, target := range targets {
		out = append(out, cashoutRow(target, WinProbability(rtpPercent, target)))
	}
	return out
}

// EmpiricalCashout computes the same table from observed multipliers: the
// win rate for a target is the share of rounds that reached it.
func EmpiricalCashout(multipliers []float64, targets []float64) []model.CashoutTarget {
	if len(multipliers) == 0 {
		return []model.CashoutTarget{}
	}
	if len(targets) == 0 {
		targets = DefaultCashoutTargets
	}
	n := float64(len(multipliers))
	out := make([]model.CashoutTarget, 0, len(targets))
	for _, target := range targets {
		wins := 0
		for _, m := range multipliers {
			if m >= target {
				wins++
			}
		}
		out = append(out, cashoutRow(target, float64(wins)/n*100))
	}
	return out
}

func cashoutRow(target, winRate float64) model.CashoutTarget {
	p := winRate / 100
	ev := p*(target-1) - (1 - p)
	score := p*target - (1 - p)

	var riskReward float64
	if winRate > 0 {
		riskReward = target * p
	}

	return model.CashoutTarget{
		TargetMultiplier: target,
		WinRate:          roundTo(winRate, 2),
		ExpectedValue:    roundTo(ev, 4),
		RiskRewardRatio:  roundTo(riskReward, 4),
		Recommended:      winRate >= RecommendMinWinRate && score > RecommendMinScore,
	}
}
