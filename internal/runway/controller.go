// Package runway implements the single-server runway admission queue: at
// most one aircraft occupies the runway macro-section at a time, and the
// active threshold is selected by wind direction.
package runway

import (
	"errors"
	"fmt"

	"github.com/avtools/airfieldsim/internal/segment"
)

// ErrInvalidWindDirection is returned when a wind direction outside the
// supported set is supplied.
var ErrInvalidWindDirection = errors.New("runway: wind direction must be \"07\" or \"25\"")

// Reserved node ids for the two runway thresholds.
const (
	Threshold07 = 1
	Threshold25 = 2
)

// Operation names the activity currently occupying the runway.
type Operation string

const (
	OperationNone      Operation = ""
	OperationLanding   Operation = "landing"
	OperationDeparting Operation = "departing"
)

// Handle is the subset of aircraft behavior the runway controller needs to
// drive an admission. It is satisfied structurally by *aircraft.Aircraft;
// defining it here (rather than importing the aircraft package) keeps this
// package from depending on the layer above it.
type Handle interface {
	ID() segment.AircraftID
	IsArrival() bool
	ChooseExit() bool
	StartLanding(activeThreshold int, edges []segment.EdgeRef)
	StartDeparture(activeThreshold int, edges []segment.EdgeRef)
}

// Controller is the runway's single-server admission queue.
type Controller struct {
	segments *segment.Manager

	activeThreshold int
	entryThreshold  int
	windDirection   string

	queue            []segment.AircraftID
	isBusy           bool
	currentAircraft  segment.AircraftID
	currentOperation Operation
}

// NewController builds a runway controller for the given wind direction
// ("07" selects node 1 as active, "25" selects node 2).
func NewController(segments *segment.Manager, windDirection string) (*Controller, error) {
	var active, entry int
	switch windDirection {
	case "07":
		active, entry = Threshold07, Threshold25
	case "25":
		active, entry = Threshold25, Threshold07
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidWindDirection, windDirection)
	}
	return &Controller{
		segments:        segments,
		activeThreshold: active,
		entryThreshold:  entry,
		windDirection:   windDirection,
	}, nil
}

// ActiveThreshold returns the node id currently in use for landings and
// departure roll.
func (c *Controller) ActiveThreshold() int { return c.activeThreshold }

// EntryThreshold returns the opposite threshold node id, used to pick a
// matching runway-entry edge during pushback.
func (c *Controller) EntryThreshold() int { return c.entryThreshold }

// IsBusy reports whether an aircraft currently occupies the runway.
func (c *Controller) IsBusy() bool { return c.isBusy }

// CurrentAircraft returns the id of the aircraft occupying the runway, if
// any.
func (c *Controller) CurrentAircraft() segment.AircraftID { return c.currentAircraft }

// CurrentOperation returns the activity currently occupying the runway.
func (c *Controller) CurrentOperation() Operation { return c.currentOperation }

// QueueLength returns the number of aircraft waiting for runway admission.
func (c *Controller) QueueLength() int { return len(c.queue) }

// Queue returns a snapshot of the waiting aircraft ids, head first.
func (c *Controller) Queue() []segment.AircraftID {
	out := make([]segment.AircraftID, len(c.queue))
	copy(out, c.queue)
	return out
}

// AddToQueue appends the aircraft to the runway queue if it is not already
// present.
func (c *Controller) AddToQueue(id segment.AircraftID) {
	for _, held := range c.queue {
		if held == id {
			return
		}
	}
	c.queue = append(c.queue, id)
}

// Step admits at most one aircraft per tick: if the runway is free and the
// queue is non-empty, it attempts to grant the runway macro-section to the
// head of the queue. On success the head is popped and its movement is
// started; on failure the head stays in place to retry next tick. lookup
// resolves an aircraft id to its Handle for the duration of this call. The
// returned error is non-nil only for an invariant violation (spec §7);
// ordinary admission failures are reported by staying queued, not by error.
// tick is recorded on any such error for diagnostic context.
func (c *Controller) Step(tick int, lookup func(segment.AircraftID) (Handle, bool)) error {
	if c.isBusy {
		return nil
	}
	if len(c.queue) == 0 {
		return nil
	}

	headID := c.queue[0]
	head, ok := lookup(headID)
	if !ok {
		// The aircraft is gone; drop it from the queue and let the next
		// tick consider the new head.
		c.queue = c.queue[1:]
		return nil
	}

	granted, edges := c.segments.RequestSection(segment.SectionRunway, headID)
	if !granted {
		return nil
	}

	if head.IsArrival() {
		if !head.ChooseExit() {
			c.segments.ReleaseEdges(edges, headID)
			return nil
		}
		c.queue = c.queue[1:]
		c.isBusy = true
		c.currentAircraft = headID
		c.currentOperation = OperationLanding
		head.StartLanding(c.activeThreshold, edges)
		return nil
	}

	c.queue = c.queue[1:]
	c.isBusy = true
	c.currentAircraft = headID
	c.currentOperation = OperationDeparting
	head.StartDeparture(c.activeThreshold, edges)
	return nil
}

// FinishLanding clears the runway's busy state after a landing completes.
func (c *Controller) FinishLanding() {
	c.clear()
}

// FinishDeparture clears the runway's busy state after a departure
// completes.
func (c *Controller) FinishDeparture() {
	c.clear()
}

func (c *Controller) clear() {
	c.isBusy = false
	c.currentAircraft = ""
	c.currentOperation = OperationNone
}
