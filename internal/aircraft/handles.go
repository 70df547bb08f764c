package aircraft

import (
	"github.com/avtools/airfieldsim/internal/airfield"
	"github.com/avtools/airfieldsim/internal/segment"
)

// ChooseExit requests the taxiway_outbound macro-section; on grant it
// targets the granted edge's endpoint opposite the active runway
// threshold and computes a path there. Implements runway.Handle.
func (a *Aircraft) ChooseExit() bool {
	granted, edges := a.world.Segments().RequestSection(segment.SectionTaxiwayOutbound, a.id)
	if !granted {
		return false
	}
	threshold := a.world.Runway().ActiveThreshold()
	e := edges[0]
	far := farEndpoint(e, threshold)

	a.blockedEdges = edges
	a.targetNode = far
	a.path = a.shortestPath(threshold, far)
	return true
}

// StartLanding snaps the aircraft onto the active runway threshold and
// begins the landing operation. Implements runway.Handle.
func (a *Aircraft) StartLanding(activeThreshold int, edges []segment.EdgeRef) {
	a.currentNode = activeThreshold
	a.world.Segments().RequestNode(activeThreshold, a.id)
	x, y, _ := a.world.Graph().PositionOf(activeThreshold)
	a.position = Position{X: x, Y: y, CurrentNode: activeThreshold, TargetNode: noNode}
	a.isMoving = false
	a.state = StateLanding
	a.landingTime = 0
	a.isInQueue = false
	a.runwaySectionEdges = edges
}

// StartDeparture computes the path to the active runway threshold and
// begins the departure roll. Implements runway.Handle.
func (a *Aircraft) StartDeparture(activeThreshold int, edges []segment.EdgeRef) {
	a.targetNode = activeThreshold
	a.path = a.shortestPath(a.currentNode, activeThreshold)
	a.state = StateDeparting
	a.departureTime = 0
	a.runwaySectionEdges = edges
}

// ChooseStand picks a random free stand (one not currently occupied by
// another aircraft at_stand) and computes the path there.
func (a *Aircraft) ChooseStand() bool {
	stands := a.world.Graph().NodesOfKind(airfield.NodeStand)
	free := make([]int, 0, len(stands))
	for _, s := range stands {
		if !a.world.StandOccupied(s) {
			free = append(free, s)
		}
	}
	if len(free) == 0 {
		return false
	}
	pick := free[a.world.Rand().IntN(len(free))]
	a.targetNode = pick
	a.path = a.shortestPath(a.currentNode, pick)
	return true
}

// chooseRunwayEntry iterates runway-entry edges for the one incident to
// runwayEntryNode, reserves it, and computes a path to its far endpoint.
func (a *Aircraft) chooseRunwayEntry() (bool, []segment.EdgeRef) {
	for _, e := range a.world.Graph().EdgesOfKind(airfield.EdgeRunwayEntry) {
		if e.From != a.runwayEntryNode && e.To != a.runwayEntryNode {
			continue
		}
		if !a.world.Segments().RequestEdge(e.From, e.To, a.id) {
			continue
		}
		ref := segment.EdgeRef{From: e.From, To: e.To}
		far := farEndpoint(ref, a.runwayEntryNode)
		a.targetNode = far
		a.path = a.shortestPath(a.currentNode, far)
		return true, []segment.EdgeRef{ref}
	}
	return false, nil
}

func farEndpoint(e segment.EdgeRef, from int) int {
	if e.From == from {
		return e.To
	}
	if e.To == from {
		return e.From
	}
	return e.To
}
