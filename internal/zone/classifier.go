package zone

import (
	"errors"
	"fmt"
	"math"

	"github.com/rickgao/spacexy-tracker/internal/model"
)

// ErrEmptyTable is returned by ValidateTable for a table with no zones.
var ErrEmptyTable = errors.New("zone table is empty")

// DefaultZones returns the five zones shipped by default. Each call returns a
// fresh slice.
func DefaultZones() []model.Zone {
	return []model.Zone{
		{Name: "Crash Zone", Icon: "💥", ColorKey: "red", MinInclusive: 0, MaxExclusive: 1.5},
		{Name: "Low Orbit", Icon: "🛰️", ColorKey: "orange", MinInclusive: 1.5, MaxExclusive: 2},
		{Name: "Orbit", Icon: "🪐", ColorKey: "blue", MinInclusive: 2, MaxExclusive: 5},
		{Name: "Deep Space", Icon: "🌌", ColorKey: "purple", MinInclusive: 5, MaxExclusive: 10},
		{Name: "Moon Shot", Icon: "🌕", ColorKey: "gold", MinInclusive: 10, MaxExclusive: math.Inf(1)},
	}
}

// Classify returns the zone containing multiplier, or the first zone when
// nothing matches. An empty table yields the zero Zone.
func Classify(multiplier float64, zones []model.Zone) model.Zone {
	if len(zones) == 0 {
		return model.Zone{}
	}
	for _, z := range zones {
		if z.Contains(multiplier) {
			return z
		}
	}
	return zones[0]
}

// Coordinate derives the display coordinate for multiplier:
// x = floor(m*10) mod 100, y = floor(m*7) mod 100, both zero padded to two
// characters. Non-finite or negative input maps to ("00", "00").
func Coordinate(multiplier float64) model.Coordinate {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) || multiplier < 0 {
		return model.Coordinate{X: "00", Y: "00"}
	}
	return model.Coordinate{
		X: twoDigits(multiplier * 10),
		Y: twoDigits(multiplier * 7),
	}
}

func twoDigits(v float64) string {
	if math.IsInf(v, 0) {
		return "00"
	}
	n := math.Mod(math.Floor(v), 100)
	return fmt.Sprintf("%02d", int(n))
}

// Annotate classifies every round, preserving order.
func Annotate(rounds []model.Round, zones []model.Zone) []model.AnnotatedRound {
	out := make([]model.AnnotatedRound, len(rounds))
	for i, r := range rounds {
		z := Classify(r.CrashMultiplier, zones)
		out[i] = model.AnnotatedRound{
			Round:      r,
			Zone:       z.Name,
			ZoneIcon:   z.Icon,
			ZoneColor:  z.ColorKey,
			Coordinate: Coordinate(r.CrashMultiplier),
		}
	}
	return out
}

// ValidateTable checks that zones are ordered, contiguous and exhaustive
// over [0, +Inf).
func ValidateTable(zones []model.Zone) error {
	if len(zones) == 0 {
		return ErrEmptyTable
	}
	if zones[0].MinInclusive != 0 {
		return fmt.Errorf("zone %q: first zone must start at 0, got %g", zones[0].Name, zones[0].MinInclusive)
	}
	for i, z := range zones {
		if z.Name == "" {
			return fmt.Errorf("zone %d: name is required", i)
		}
		if !(z.MinInclusive < z.MaxExclusive) {
			return fmt.Errorf("zone %q: min (%g) must be below max (%g)", z.Name, z.MinInclusive, z.MaxExclusive)
		}
		if i == len(zones)-1 {
			if !z.Unbounded() {
				return fmt.Errorf("zone %q: last zone must be unbounded, got max %g", z.Name, z.MaxExclusive)
			}
			continue
		}
		next := zones[i+1]
		if z.MaxExclusive != next.MinInclusive {
			return fmt.Errorf("zone %q: max (%g) must equal next zone %q min (%g)",
				z.Name, z.MaxExclusive, next.Name, next.MinInclusive)
		}
	}
	return nil
}
