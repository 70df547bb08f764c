// Package aircraft implements the per-aircraft state machine: a ten
// state lifecycle from runway approach through taxi, stand service,
// pushback, and departure, driven one tick at a time.
package aircraft

import (
	"math/rand/v2"

	"github.com/avtools/airfieldsim/internal/airfield"
	"github.com/avtools/airfieldsim/internal/movement"
	"github.com/avtools/airfieldsim/internal/runway"
	"github.com/avtools/airfieldsim/internal/segment"
)

// State names a point in the aircraft lifecycle.
type State string

const (
	StateWaitingLanding   State = "waiting_landing"
	StateLanding          State = "landing"
	StateTaxiingToExit    State = "taxiing_to_exit"
	StateAtExit           State = "at_exit"
	StateTaxiingToStand   State = "taxiing_to_stand"
	StateAtStand          State = "at_stand"
	StatePushbackPending  State = "pushback_pending"
	StatePushback         State = "pushback"
	StateWaitingDeparture State = "waiting_departure"
	StateDeparting        State = "departing"
)

// Type is the aircraft's operation type: an arrival until it pushes back
// from its stand, a departure thereafter.
type Type string

const (
	TypeArrival   Type = "arrival"
	TypeDeparture Type = "departure"
)

// Default lifecycle timing constants, matching the originating design.
const (
	defaultMaxLandingTime   = 3
	defaultMaxStandTime     = 10
	defaultMaxDepartureTime = 3
	defaultMaxWaitTime      = 5
)

// noNode marks the absence of a current or target node (an airborne
// arrival has no current_node yet).
const noNode = -1

// Position is the aircraft's interpolated location.
type Position struct {
	X, Y        float64
	Progress    float64
	CurrentNode int
	TargetNode  int
}

// World is the subset of the simulation model an aircraft needs: the
// shared topology and arbiters, the active runway configuration, and the
// deterministic sources of time and randomness. Aircraft hold only this
// interface, never a concrete simulation type, so the dependency runs one
// way and cannot cycle back through the model.
type World interface {
	Graph() *airfield.Graph
	Segments() *segment.Manager
	Runway() *runway.Controller
	PathCache() *airfield.PathCache
	Durations() movement.DurationTable
	Now() int
	Rand() *rand.Rand
	StandOccupied(node int) bool
}

// Aircraft is one aircraft's complete lifecycle state.
type Aircraft struct {
	id   segment.AircraftID
	typ  Type
	state State

	currentNode int
	targetNode  int
	path        []int

	blockedEdges       []segment.EdgeRef
	runwaySectionEdges []segment.EdgeRef

	landingTime, maxLandingTime     int
	standTime, maxStandTime         int
	departureTime, maxDepartureTime int

	position Position

	isMoving         bool
	movementStart    int
	movementDuration int
	holdProgressLimit *float64

	priority        int
	waitTime        int
	maxWaitTime     int
	isInQueue       bool
	runwayEntryNode int

	world World
}

// NewArrival constructs an aircraft awaiting runway admission, airborne
// (no current node) until it lands.
func NewArrival(world World, id segment.AircraftID) *Aircraft {
	return &Aircraft{
		id:              id,
		typ:             TypeArrival,
		state:           StateWaitingLanding,
		currentNode:     noNode,
		targetNode:      noNode,
		maxLandingTime:  defaultMaxLandingTime,
		maxStandTime:    defaultMaxStandTime,
		maxDepartureTime: defaultMaxDepartureTime,
		maxWaitTime:     defaultMaxWaitTime,
		priority:        1,
		runwayEntryNode: noNode,
		world:           world,
	}
}

// ID returns the aircraft's reservation identity.
func (a *Aircraft) ID() segment.AircraftID { return a.id }

// IsArrival reports whether the aircraft is still in its arrival phase
// (false once it has pushed back and become a departure).
func (a *Aircraft) IsArrival() bool { return a.typ == TypeArrival }

// Type returns the aircraft's current operation type.
func (a *Aircraft) Type() Type { return a.typ }

// State returns the aircraft's current lifecycle state.
func (a *Aircraft) State() State { return a.state }

// CurrentNode returns the node the aircraft last finished moving to, or
// noNode while still airborne.
func (a *Aircraft) CurrentNode() int { return a.currentNode }

// TargetNode returns the node the aircraft is currently moving toward.
func (a *Aircraft) TargetNode() int { return a.targetNode }

// PathLen returns the number of nodes remaining in the aircraft's planned
// route, not counting its current position.
func (a *Aircraft) PathLen() int { return len(a.path) }

// Position returns the aircraft's interpolated (x, y).
func (a *Aircraft) Position() (x, y float64) { return a.position.X, a.position.Y }

// IsInAirportDeckQueue reports whether the aircraft is currently enqueued
// for the apron macro-section.
func (a *Aircraft) IsInAirportDeckQueue() bool {
	for _, id := range a.world.Segments().AirportDeckQueue() {
		if id == a.id {
			return true
		}
	}
	return false
}

// Color returns the categorical visualization tag for the aircraft's
// current state.
func (a *Aircraft) Color() string {
	switch a.state {
	case StateWaitingLanding:
		return "blue"
	case StateLanding:
		return "red"
	case StateTaxiingToStand:
		return "orange"
	case StateAtStand:
		return "green"
	case StateTaxiingToExit:
		return "yellow"
	case StateWaitingDeparture:
		return "purple"
	case StateDeparting:
		return "magenta"
	default:
		return "gray"
	}
}

// Step advances the aircraft by one tick according to its current state.
// Every reservation request within a state handler is failure-tolerant:
// on failure, the aircraft stays exactly where it is and retries next
// tick. The only terminal transition is removal, signaled by returning
// done = true after departing finishes. A non-nil err is an invariant
// violation (spec §7): the caller should halt the run rather than retry.
func (a *Aircraft) Step() (done bool, err error) {
	switch a.state {
	case StateWaitingLanding:
		err = a.stepWaitingLanding()
	case StateLanding:
		err = a.stepLanding()
	case StateTaxiingToExit:
		err = a.stepTaxiingToExit()
	case StateAtExit:
		err = a.stepAtExit()
	case StateTaxiingToStand:
		err = a.stepTaxiingToStand()
	case StateAtStand:
		err = a.stepAtStand()
	case StatePushbackPending:
		err = a.stepPushbackPending()
	case StatePushback:
		err = a.stepPushback()
	case StateWaitingDeparture:
		err = a.stepWaitingDeparture()
	case StateDeparting:
		return a.stepDeparting()
	}
	return false, err
}

func (a *Aircraft) stepWaitingLanding() error {
	if !a.isInQueue {
		a.world.Runway().AddToQueue(a.id)
		a.isInQueue = true
	}
	return nil
}

func (a *Aircraft) stepLanding() error {
	if err := a.moveAlongPath(); err != nil {
		return err
	}
	a.landingTime++
	if a.landingTime >= a.maxLandingTime {
		a.world.Segments().ReleaseEdges(a.runwaySectionEdges, a.id)
		a.runwaySectionEdges = nil
		a.world.Runway().FinishLanding()
		a.state = StateTaxiingToExit
	}
	return nil
}

func (a *Aircraft) stepTaxiingToExit() error {
	if err := a.moveAlongPath(); err != nil {
		return err
	}
	if a.currentNode == a.targetNode {
		a.state = StateAtExit
	}
	return nil
}

func (a *Aircraft) stepAtExit() error {
	granted, edges := a.world.Segments().RequestSection(segment.SectionAirportDeck, a.id)
	if !granted {
		return nil
	}
	if !a.ChooseStand() {
		a.world.Segments().ReleaseEdges(edges, a.id)
		return nil
	}
	a.world.Segments().ReleaseEdges(a.blockedEdges, a.id)
	a.blockedEdges = edges
	a.state = StateTaxiingToStand
	return nil
}

func (a *Aircraft) stepTaxiingToStand() error {
	if err := a.moveAlongPath(); err != nil {
		return err
	}
	if a.currentNode == a.targetNode {
		a.world.Segments().ReleaseEdges(a.blockedEdges, a.id)
		a.blockedEdges = nil
		a.world.Segments().RemoveFromAirportDeckQueue(a.id)
		a.state = StateAtStand
		a.standTime = 0
	}
	return nil
}

func (a *Aircraft) stepAtStand() error {
	a.standTime++
	if a.standTime >= a.maxStandTime {
		a.runwayEntryNode = a.world.Runway().EntryThreshold()
		a.state = StatePushbackPending
	}
	return nil
}

func (a *Aircraft) stepPushbackPending() error {
	deckGranted, deckEdges := a.world.Segments().RequestSection(segment.SectionAirportDeck, a.id)
	entryGranted, entryEdges := a.chooseRunwayEntry()

	if deckGranted && entryGranted {
		a.blockedEdges = append(append([]segment.EdgeRef{}, deckEdges...), entryEdges...)
		a.state = StatePushback
		a.typ = TypeDeparture
		return nil
	}

	if deckGranted {
		a.world.Segments().ReleaseEdges(deckEdges, a.id)
	}
	if entryGranted {
		a.world.Segments().ReleaseEdges(entryEdges, a.id)
	}
	return nil
}

func (a *Aircraft) stepPushback() error {
	if err := a.moveAlongPath(); err != nil {
		return err
	}
	if a.currentNode == a.targetNode {
		a.world.Segments().ReleaseEdges(a.blockedEdges, a.id)
		a.blockedEdges = nil
		a.world.Segments().RemoveFromAirportDeckQueue(a.id)
		a.state = StateWaitingDeparture
	}
	return nil
}

func (a *Aircraft) stepWaitingDeparture() error {
	if !a.isInQueue {
		a.world.Runway().AddToQueue(a.id)
		a.isInQueue = true
	}
	return nil
}

func (a *Aircraft) stepDeparting() (done bool, err error) {
	if err := a.moveAlongPath(); err != nil {
		return false, err
	}
	a.departureTime++
	if a.currentNode == a.targetNode {
		a.world.Segments().ReleaseEdges(a.runwaySectionEdges, a.id)
		a.runwaySectionEdges = nil
		a.world.Runway().FinishDeparture()
		a.world.Segments().ReleaseNode(a.currentNode, a.id)
		return true, nil
	}
	return false, nil
}
