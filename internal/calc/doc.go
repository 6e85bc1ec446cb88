// Package calc provides closed-form probability and expected-value
// calculators for a crash-style payout curve, plus summaries over a window
// of observed multipliers.
//
// All probabilities, RTP values and house edges are percentages in [0, 100].
// Inputs are not validated: a zero or negative target produces Inf/NaN per
// IEEE-754 and callers must guard before display.
package calc
