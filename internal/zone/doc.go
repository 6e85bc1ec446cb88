// Package zone classifies crash multipliers into named display zones and
// derives the decorative coordinate pair shown next to each round.
//
// A zone table is ordered ascending, contiguous, non-overlapping and
// exhaustive over [0, +Inf). Classification picks the first zone whose
// half-open interval contains the multiplier and falls back to the first
// zone otherwise (NaN, negative input, or a malformed table).
package zone
