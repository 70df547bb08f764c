package aircraft

import (
	"fmt"

	"github.com/avtools/airfieldsim/internal/airfield"
	"github.com/avtools/airfieldsim/internal/movement"
	"github.com/avtools/airfieldsim/internal/segment"
)

// moveAlongPath is the core path-following dispatcher. While a movement is
// already underway it delegates to the interpolation update; otherwise it
// recomputes the path if necessary and starts the next hop. It returns a
// non-nil error only for an invariant violation (spec §7); an ordinary
// pathfinding failure holds the aircraft in place and is not an error.
func (a *Aircraft) moveAlongPath() error {
	if a.isMoving {
		return a.updateMovement()
	}

	if len(a.path) == 0 && a.currentNode != a.targetNode && a.currentNode != noNode && a.targetNode != noNode {
		a.path = a.shortestPath(a.currentNode, a.targetNode)
	}
	if len(a.path) == 0 {
		// Pathfinding failure, or already at the target: hold in place
		// and retry next tick.
		return nil
	}

	next := a.path[0]
	if err := a.startMovementTo(next); err != nil {
		return err
	}
	a.path = a.path[1:]
	a.waitTime = 0
	return nil
}

// startMovementTo begins an interpolated move from the current node to n.
// It is an invariant violation for n not to be adjacent to the current
// node: the path planner only ever emits adjacent hops, so this should be
// unreachable.
func (a *Aircraft) startMovementTo(n int) error {
	dist, ok := a.world.Graph().EdgeLength(a.currentNode, n)
	if !ok {
		return segment.NewInvariantError(a.world.Now(),
			fmt.Sprintf("aircraft %s: no edge between current node %d and target %d", a.id, a.currentNode, n))
	}
	edgeKind, _ := a.world.Graph().EdgeKind(a.currentNode, n)
	movType := movement.TypeForEdge(edgeKind == airfield.EdgeRunway, string(a.state))
	duration := a.world.Durations().DurationTicks(dist, movType)

	a.movementStart = a.world.Now()
	a.movementDuration = duration
	a.position.CurrentNode = a.currentNode
	a.position.TargetNode = n
	a.position.Progress = 0
	a.isMoving = true
	a.holdProgressLimit = nil
	return nil
}

// updateMovement applies the on-edge queue discipline and linear
// interpolation described by the core specification: a trailing aircraft
// on a shared edge may only advance to a progressively earlier fraction of
// that edge, based on its position in the edge's occupant queue.
func (a *Aircraft) updateMovement() error {
	target := a.position.TargetNode
	occupied, occupants := a.world.Segments().EdgeStatus(a.currentNode, target)
	capacity := a.edgeCapacity(a.currentNode, target)

	if occupied && capacity >= len(occupants) {
		a.pinEdgeReservation(a.currentNode, target)

		pos := indexOf(occupants, a.id)
		limit := 1 - 0.19*float64(pos)
		if limit < 0 {
			limit = 0
		}
		a.holdProgressLimit = &limit

		if a.position.Progress >= limit {
			return nil
		}
	}

	elapsed := a.world.Now() - a.movementStart
	progress := 0.0
	if a.movementDuration > 0 {
		progress = float64(elapsed) / float64(a.movementDuration)
	}
	progress = clamp01(progress)
	if a.holdProgressLimit != nil && progress > *a.holdProgressLimit {
		progress = *a.holdProgressLimit
	}
	a.position.Progress = progress

	x0, y0, _ := a.world.Graph().PositionOf(a.currentNode)
	x1, y1, _ := a.world.Graph().PositionOf(target)
	a.position.X, a.position.Y = movement.Interpolate(x0, y0, x1, y1, progress)

	if progress >= 1.0 {
		return a.finishMovement(target)
	}
	return nil
}

// finishMovement snaps the aircraft onto the node it was moving toward and
// clears the in-flight movement state. Node ownership transfers here: the
// aircraft releases whatever node it previously sat on and exclusively
// claims the one it has just reached, keeping node_reservations consistent
// with "current_node" at all times an aircraft is stationary. A node is
// exclusively owned (spec §8: "for all nodes, at most one owner"), so a
// failed RequestNode here — another aircraft already owns the target node
// the path planner just led us to — is an invariant violation, not an
// ordinary reservation failure to retry.
func (a *Aircraft) finishMovement(target int) error {
	segments := a.world.Segments()
	if a.currentNode != noNode {
		segments.ReleaseNode(a.currentNode, a.id)
	}
	if !segments.RequestNode(target, a.id) {
		return segment.NewInvariantError(a.world.Now(),
			fmt.Sprintf("aircraft %s: node %d already owned by another aircraft", a.id, target))
	}
	a.currentNode = target

	x, y, _ := a.world.Graph().PositionOf(target)
	a.position.X, a.position.Y = x, y
	a.position.CurrentNode = target
	a.position.TargetNode = noNode
	a.position.Progress = 0
	a.isMoving = false
	a.holdProgressLimit = nil
	return nil
}

func (a *Aircraft) edgeCapacity(u, v int) int {
	e, ok := a.world.Graph().Edge(u, v)
	if !ok {
		return 1
	}
	return e.Capacity
}

// pinEdgeReservation ensures the aircraft's only active edge reservation is
// the one it is currently moving along, releasing any stale reservations
// left over from a prior hop.
func (a *Aircraft) pinEdgeReservation(u, v int) {
	ref := segment.EdgeRef{From: u, To: v}
	if a.world.Segments().RequestEdge(u, v, a.id) {
		keep := make([]segment.EdgeRef, 0, 1)
		for _, e := range a.blockedEdges {
			if sameEdge(e, ref) {
				keep = append(keep, e)
				continue
			}
			a.world.Segments().ReleaseEdge(e.From, e.To, a.id)
		}
		keep = append(keep, ref)
		a.blockedEdges = dedupeEdges(keep)
	}
}

func (a *Aircraft) shortestPath(from, to int) []int {
	path := a.world.Graph().ShortestPath(from, to, a.world.PathCache())
	if len(path) > 1 {
		path = path[1:]
	}
	return path
}

func indexOf(ids []segment.AircraftID, id segment.AircraftID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}

func sameEdge(a, b segment.EdgeRef) bool {
	return (a.From == b.From && a.To == b.To) || (a.From == b.To && a.To == b.From)
}

func dedupeEdges(edges []segment.EdgeRef) []segment.EdgeRef {
	out := make([]segment.EdgeRef, 0, len(edges))
	for _, e := range edges {
		dup := false
		for _, kept := range out {
			if sameEdge(e, kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
