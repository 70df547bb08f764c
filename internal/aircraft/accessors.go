package aircraft

import (
	"fmt"

	"github.com/avtools/airfieldsim/internal/segment"
)

// WaitTime returns the aircraft's wait counter. The counter is reset to
// zero each time the aircraft starts a new hop and nothing increments it,
// so it always reads zero; no behavior depends on it.
func (a *Aircraft) WaitTime() int { return a.waitTime }

// LandingTime returns ticks spent in the landing state so far.
func (a *Aircraft) LandingTime() int { return a.landingTime }

// StandTime returns ticks spent at the stand so far.
func (a *Aircraft) StandTime() int { return a.standTime }

// DepartureTime returns ticks spent in the departing state so far.
func (a *Aircraft) DepartureTime() int { return a.departureTime }

// BlockedEdges returns a snapshot of the edges this aircraft currently
// holds reservations on.
func (a *Aircraft) BlockedEdges() []segment.EdgeRef {
	out := make([]segment.EdgeRef, len(a.blockedEdges))
	copy(out, a.blockedEdges)
	return out
}

// HoldProgressLimit returns the current hold-progress ceiling, if any.
func (a *Aircraft) HoldProgressLimit() (limit float64, ok bool) {
	if a.holdProgressLimit == nil {
		return 0, false
	}
	return *a.holdProgressLimit, true
}

// IsMoving reports whether the aircraft is mid-interpolation between nodes.
func (a *Aircraft) IsMoving() bool { return a.isMoving }

func (a *Aircraft) String() string {
	return fmt.Sprintf("aircraft{id=%s type=%s state=%s node=%d target=%d}",
		a.id, a.typ, a.state, a.currentNode, a.targetNode)
}
