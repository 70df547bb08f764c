// Package segment arbitrates access to the shared airfield resources:
// per-edge capacity-bounded reservations, per-node exclusive ownership, and
// named multi-edge macro-sections, plus the apron fairness queue that keeps
// macro-section grants from livelocking.
package segment

import (
	"fmt"

	"github.com/brunoga/deep"

	"github.com/avtools/airfieldsim/internal/airfield"
)

// InvariantError reports a spec contract violation detected at runtime —
// an unreachable condition (the error taxonomy's "invariant violation"
// class), distinct from an ordinary, expected reservation failure. It
// carries the tick it was detected on and diagnostic context so a halted
// run can be understood after the fact.
type InvariantError struct {
	Tick    int
	Context string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation at tick %d: %s", e.Tick, e.Context)
}

// NewInvariantError constructs an InvariantError for the given tick.
func NewInvariantError(tick int, context string) *InvariantError {
	return &InvariantError{Tick: tick, Context: context}
}

// AircraftID identifies a reservation holder. Defined here rather than in
// the aircraft package so this package, the lowest layer that needs an
// aircraft identity, has no dependency on it.
type AircraftID string

// EdgeRef names an edge by its stored endpoints, in the orientation the
// graph holds it in (not necessarily the caller's direction of travel).
type EdgeRef struct {
	From, To int
}

// Section names a macro-section: a set of edges reserved together as one
// all-or-nothing (or fairness-gated) unit.
type Section string

const (
	SectionRunway          Section = "runway"
	SectionTaxiwayInbound  Section = "taxiway_inbound"
	SectionTaxiwayOutbound Section = "taxiway_outbound"
	SectionAirportDeck     Section = "airport_deck"
)

// Manager owns the reservation tables. Spec §5's scheduling model is
// single-threaded and cooperative — the model drives every tick serially,
// so no mutex guards these maps, unlike the teacher's closest analogue
// (internal/simulation/runway_manager.go, world.go), which does use a
// sync.RWMutex for its own, genuinely concurrent, use case. Read
// accessors (EdgeStatus/NodeStatus/AirportDeckQueue) still return deep
// copies, so a caller retaining the result across a tick boundary never
// holds a live, mutable slice.
type Manager struct {
	graph *airfield.Graph

	edgeReservations map[airfield.EdgeKey][]AircraftID
	nodeReservations map[int]AircraftID
	airportDeckQueue []AircraftID
}

// NewManager returns a segment manager bound to the given graph.
func NewManager(graph *airfield.Graph) *Manager {
	return &Manager{
		graph:            graph,
		edgeReservations: make(map[airfield.EdgeKey][]AircraftID),
		nodeReservations: make(map[int]AircraftID),
	}
}

// RequestEdge grants a slot in the edge's reservation queue if the aircraft
// already holds one (idempotent) or the queue has spare capacity. No state
// changes on failure.
func (m *Manager) RequestEdge(u, v int, id AircraftID) bool {
	key := airfield.CanonicalEdgeKey(u, v)
	q := m.edgeReservations[key]
	for _, held := range q {
		if held == id {
			return true
		}
	}

	capacity := 1
	if e, ok := m.graph.Edge(u, v); ok {
		capacity = e.Capacity
	}
	if len(q) >= capacity {
		return false
	}
	m.edgeReservations[key] = append(q, id)
	return true
}

// ReleaseEdge removes the aircraft's slot on the edge, if held. A no-op
// when the aircraft does not hold it.
func (m *Manager) ReleaseEdge(u, v int, id AircraftID) {
	key := airfield.CanonicalEdgeKey(u, v)
	q := m.edgeReservations[key]
	for i, held := range q {
		if held == id {
			q = append(q[:i], q[i+1:]...)
			if len(q) == 0 {
				delete(m.edgeReservations, key)
			} else {
				m.edgeReservations[key] = q
			}
			return
		}
	}
}

// RequestNode grants exclusive ownership of a node if it is free or already
// owned by this aircraft.
func (m *Manager) RequestNode(n int, id AircraftID) bool {
	owner, occupied := m.nodeReservations[n]
	if !occupied || owner == id {
		m.nodeReservations[n] = id
		return true
	}
	return false
}

// ReleaseNode clears the node's ownership if the given aircraft holds it.
func (m *Manager) ReleaseNode(n int, id AircraftID) {
	if owner, ok := m.nodeReservations[n]; ok && owner == id {
		delete(m.nodeReservations, n)
	}
}

// EdgeStatus reports whether an edge has any holders and returns a
// snapshot of its occupant list (safe for the caller to retain; mutating
// it cannot affect internal state).
func (m *Manager) EdgeStatus(u, v int) (occupied bool, occupants []AircraftID) {
	q := m.edgeReservations[airfield.CanonicalEdgeKey(u, v)]
	occupants, _ = deep.Copy(q)
	return len(q) > 0, occupants
}

// NodeStatus reports whether a node is owned and, if so, by whom.
func (m *Manager) NodeStatus(n int) (occupied bool, owner AircraftID) {
	owner, occupied = m.nodeReservations[n]
	return occupied, owner
}

// AirportDeckQueue returns a snapshot of the apron fairness queue.
func (m *Manager) AirportDeckQueue() []AircraftID {
	out, _ := deep.Copy(m.airportDeckQueue)
	return out
}

// RemoveFromAirportDeckQueue dequeues the aircraft from wherever it sits in
// the apron fairness queue. A no-op if it is not present.
func (m *Manager) RemoveFromAirportDeckQueue(id AircraftID) {
	for i, held := range m.airportDeckQueue {
		if held == id {
			m.airportDeckQueue = append(m.airportDeckQueue[:i], m.airportDeckQueue[i+1:]...)
			return
		}
	}
}

// ReleaseEdges releases every edge in the list for the given aircraft. The
// caller (an aircraft finishing with a macro-section) remains responsible
// for calling this once the section is no longer needed.
func (m *Manager) ReleaseEdges(edges []EdgeRef, id AircraftID) {
	for _, e := range edges {
		m.ReleaseEdge(e.From, e.To, id)
	}
}

// RequestSection attempts to grant a named macro-section to an aircraft.
// See the per-section rules on the individual request* helpers below; the
// acquisition order within a section is always the graph's stable
// EdgesOfKind order, which is what keeps the fixed multi-resource lock
// order deadlock-free across callers.
func (m *Manager) RequestSection(section Section, id AircraftID) (granted bool, edges []EdgeRef) {
	switch section {
	case SectionRunway:
		return m.requestAllOrNothing(m.graph.EdgesOfKind(airfield.EdgeRunway), id)
	case SectionTaxiwayInbound:
		return m.requestFirstSuccess(m.graph.EdgesOfKind(airfield.EdgeRunwayEntry), id)
	case SectionTaxiwayOutbound:
		return m.requestFirstSuccess(m.graph.EdgesOfKind(airfield.EdgeRunwayExit), id)
	case SectionAirportDeck:
		return m.requestAirportDeck(id)
	default:
		return false, nil
	}
}

func (m *Manager) requestAllOrNothing(candidates []airfield.Edge, id AircraftID) (bool, []EdgeRef) {
	granted := make([]EdgeRef, 0, len(candidates))
	for _, e := range candidates {
		if m.RequestEdge(e.From, e.To, id) {
			granted = append(granted, EdgeRef{From: e.From, To: e.To})
			continue
		}
		m.ReleaseEdges(granted, id)
		return false, nil
	}
	return true, granted
}

func (m *Manager) requestFirstSuccess(candidates []airfield.Edge, id AircraftID) (bool, []EdgeRef) {
	for _, e := range candidates {
		if m.RequestEdge(e.From, e.To, id) {
			return true, []EdgeRef{{From: e.From, To: e.To}}
		}
	}
	return false, nil
}

func (m *Manager) requestAirportDeck(id AircraftID) (bool, []EdgeRef) {
	if !m.inAirportDeckQueue(id) {
		m.airportDeckQueue = append(m.airportDeckQueue, id)
	}
	if len(m.airportDeckQueue) == 0 || m.airportDeckQueue[0] != id {
		return false, nil
	}

	candidates := make([]airfield.Edge, 0)
	candidates = append(candidates, m.graph.EdgesOfKind(airfield.EdgeApronLink)...)
	candidates = append(candidates, m.graph.EdgesOfKind(airfield.EdgeStandLink)...)
	candidates = append(candidates, m.graph.EdgesOfKind(airfield.EdgeTaxiway)...)

	ok, granted := m.requestAllOrNothing(candidates, id)
	if !ok {
		// Aircraft stays enqueued at head to retry next tick; no rollback
		// of queue position, only of the partial edge grants.
		return false, nil
	}
	return true, granted
}

func (m *Manager) inAirportDeckQueue(id AircraftID) bool {
	for _, held := range m.airportDeckQueue {
		if held == id {
			return true
		}
	}
	return false
}

// Cleanup is a no-op placeholder for reservation bookkeeping that might, in
// a future revision, expire stale entries. The originating design carries
// the same no-op, so this preserves that shape rather than inventing
// behavior the spec does not ask for.
func (m *Manager) Cleanup() {}
