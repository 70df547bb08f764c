// Package movement translates edge distance and movement category into tick
// counts, and interpolates position along an edge at fractional progress.
// Its contract was reconstructed from the call sites of a movement
// controller referenced, but not present, in the originating source: the
// category selection, duration calculation, and linear interpolation it
// performs there.
package movement

import "math"

// Type categorizes a movement for duration purposes. Runway traversal is
// fast; everything else taxis at a slower, uniform rate.
type Type string

const (
	TypeLanding  Type = "landing"
	TypeDeparting Type = "departing"
	TypeTaxi     Type = "taxi"
)

// TypeForState returns the movement category for an aircraft currently in
// the given state, passed as a plain string so this package stays free of
// a dependency on the aircraft package. The landing and departing states
// are the only ones that move fast (runway roll); every other state taxis.
func TypeForState(state string) Type {
	switch state {
	case "landing":
		return TypeLanding
	case "departing":
		return TypeDeparting
	default:
		return TypeTaxi
	}
}

// TypeForEdge returns the movement category for a hop across an edge: edge
// kind decides it outright, never state. A runway edge is always fast
// (landing or departing, matching whichever of those two states the
// aircraft is currently in); every other edge is always taxi-speed, even
// while the aircraft's state is "landing" or "departing" mid-rollout onto
// an exit. This matches the originating design's precedence in
// "_start_movement_to_node": edge_type == "runway" is checked first, and
// only a literal runway edge ever reaches the fast category — state alone
// never does. isRunway is passed as a plain bool (rather than this package
// importing airfield) so the dependency here stays one-directional.
func TypeForEdge(isRunway bool, state string) Type {
	if !isRunway {
		return TypeTaxi
	}
	return TypeForState(state)
}

// DurationTable maps a movement category to the number of ticks required
// to cover one unit of edge length. Values are implementation-chosen but
// held stable for the life of a run, as the originating design calls for.
type DurationTable struct {
	// TicksPerUnitTaxi is how many ticks it takes to cover one length unit
	// while taxiing.
	TicksPerUnitTaxi float64
	// TicksPerUnitRunway is how many ticks it takes to cover one length
	// unit while on the runway (landing or departing roll).
	TicksPerUnitRunway float64
}

// DefaultDurationTable is the duration mapping used absent configuration
// overrides: taxiing covers one length unit every two ticks, runway
// movement covers one length unit every half tick (i.e. four times as fast).
func DefaultDurationTable() DurationTable {
	return DurationTable{
		TicksPerUnitTaxi:   2.0,
		TicksPerUnitRunway: 0.5,
	}
}

// DurationTicks returns the number of ticks a movement of the given
// distance and category should take, rounded up and floored at one tick.
func (t DurationTable) DurationTicks(distance float64, movementType Type) int {
	rate := t.TicksPerUnitTaxi
	if movementType == TypeLanding || movementType == TypeDeparting {
		rate = t.TicksPerUnitRunway
	}
	ticks := int(math.Ceil(distance * rate))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// Interpolate returns the straight-line position at the given progress
// fraction (clamped to [0,1]) between two points.
func Interpolate(x0, y0, x1, y1, progress float64) (x, y float64) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return x0 + (x1-x0)*progress, y0 + (y1-y0)*progress
}
