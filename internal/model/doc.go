// Package model defines shared data types used across the Space XY tracker.
//
// Conventions:
//   - Multipliers: float64, >= 1.0 for settled rounds
//   - Probabilities, RTP and house edge: percent (0-100), never fractions
//   - Timestamps: time.Time, UTC
//   - IDs: opaque strings as issued by the upstream API
package model
