package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/brunoga/deep"
	"github.com/google/uuid"

	"github.com/avtools/airfieldsim/internal/aircraft"
	"github.com/avtools/airfieldsim/internal/airfield"
	"github.com/avtools/airfieldsim/internal/movement"
	"github.com/avtools/airfieldsim/internal/runway"
	"github.com/avtools/airfieldsim/internal/segment"
)

// AirfieldModel is the tick-driven orchestrator: it owns the graph, the
// reservation arbiters, and every live aircraft, and implements
// aircraft.World so aircraft steps see it as their back-reference to
// shared state without the model depending on the aircraft package's
// concrete type.
type AirfieldModel struct {
	graph     *airfield.Graph
	segments  *segment.Manager
	runwayCtl *runway.Controller
	pathCache *airfield.PathCache
	durations movement.DurationTable
	rng       *rand.Rand
	logger    *slog.Logger

	stepCount int
	now       int

	arrivalsRemaining int
	arrivalRate       float64

	aircraft map[segment.AircraftID]*aircraft.Aircraft
	order    []segment.AircraftID
}

// NewAirfieldModel constructs a model over a loaded graph, with the given
// wind direction, arrival budget, per-tick spawn probability, movement
// duration table, and deterministic seed.
func NewAirfieldModel(
	graph *airfield.Graph,
	windDirection string,
	numArrivingAirplanes int,
	arrivalRate float64,
	durations movement.DurationTable,
	pathCacheSize int,
	seed uint64,
	logger *slog.Logger,
) (*AirfieldModel, error) {
	segments := segment.NewManager(graph)
	runwayCtl, err := runway.NewController(segments, windDirection)
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AirfieldModel{
		graph:             graph,
		segments:          segments,
		runwayCtl:         runwayCtl,
		pathCache:         airfield.NewPathCache(pathCacheSize),
		durations:         durations,
		rng:               rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:            logger,
		arrivalsRemaining: numArrivingAirplanes,
		arrivalRate:       arrivalRate,
		aircraft:          make(map[segment.AircraftID]*aircraft.Aircraft),
	}, nil
}

// --- aircraft.World ---

func (m *AirfieldModel) Graph() *airfield.Graph           { return m.graph }
func (m *AirfieldModel) Segments() *segment.Manager       { return m.segments }
func (m *AirfieldModel) Runway() *runway.Controller       { return m.runwayCtl }
func (m *AirfieldModel) PathCache() *airfield.PathCache   { return m.pathCache }
func (m *AirfieldModel) Durations() movement.DurationTable { return m.durations }
func (m *AirfieldModel) Now() int                         { return m.now }
func (m *AirfieldModel) Rand() *rand.Rand                 { return m.rng }

// StandOccupied reports whether any live aircraft is currently parked
// (at_stand) on the given node.
func (m *AirfieldModel) StandOccupied(node int) bool {
	for _, id := range m.order {
		a, ok := m.aircraft[id]
		if !ok {
			continue
		}
		if a.State() == aircraft.StateAtStand && a.CurrentNode() == node {
			return true
		}
	}
	return false
}

// lookup resolves an aircraft id to its runway.Handle, satisfying the
// signature runway.Controller.Step expects.
func (m *AirfieldModel) lookup(id segment.AircraftID) (runway.Handle, bool) {
	a, ok := m.aircraft[id]
	return a, ok
}

// StepCount returns the number of ticks processed so far.
func (m *AirfieldModel) StepCount() int { return m.stepCount }

// AircraftCount returns the number of aircraft currently on the field.
func (m *AirfieldModel) AircraftCount() int { return len(m.order) }

// Step advances the model by exactly one tick: increment step_count,
// possibly spawn an arrival, run segment-manager cleanup, run the runway
// controller, then step every aircraft that was live at the start of the
// tick, removing any that finish. A non-nil return is an *segment.InvariantError
// (spec §7): the caller should halt the run rather than call Step again,
// since the model's internal state is no longer trustworthy.
func (m *AirfieldModel) Step() error {
	m.stepCount++
	m.now++

	m.maybeSpawnArrival()

	m.segments.Cleanup()
	if err := m.runwayCtl.Step(m.now, m.lookup); err != nil {
		return err
	}

	snapshot := make([]segment.AircraftID, len(m.order))
	copy(snapshot, m.order)

	for _, id := range snapshot {
		a, ok := m.aircraft[id]
		if !ok {
			continue
		}
		done, err := a.Step()
		if err != nil {
			return err
		}
		if done {
			m.remove(id)
		}
	}
	return nil
}

// Run steps the model until every aircraft has left the field and no
// arrivals remain to spawn, maxTicks elapses, or an invariant violation
// halts the run, whichever comes first.
func (m *AirfieldModel) Run(ctx context.Context, maxTicks int) (int, error) {
	for m.stepCount < maxTicks {
		select {
		case <-ctx.Done():
			return m.stepCount, ctx.Err()
		default:
		}

		if err := m.Step(); err != nil {
			m.logger.Error("run halted on invariant violation",
				slog.Int("ticks", m.stepCount),
				slog.String("error", err.Error()))
			return m.stepCount, err
		}
		if m.arrivalsRemaining == 0 && len(m.order) == 0 {
			break
		}
	}
	m.logger.Info("run complete",
		slog.Int("ticks", m.stepCount),
		slog.Int("aircraft_remaining", len(m.order)))
	return m.stepCount, nil
}

func (m *AirfieldModel) maybeSpawnArrival() {
	if m.arrivalsRemaining <= 0 {
		return
	}
	if m.rng.Float64() >= m.arrivalRate {
		return
	}
	m.arrivalsRemaining--

	id := segment.AircraftID(uuid.NewString())
	a := aircraft.NewArrival(m, id)
	m.aircraft[id] = a
	m.order = append(m.order, id)

	m.logger.Debug("arrival spawned", slog.String("aircraft_id", string(id)))
}

func (m *AirfieldModel) remove(id segment.AircraftID) {
	delete(m.aircraft, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.logger.Debug("aircraft departed", slog.String("aircraft_id", string(id)))
}

// Snapshot is the model observation surface: a deep-copied, read-only view
// safe for an external caller (a telemetry sink, a test assertion) to
// retain without risk of mutating live simulation state.
type Snapshot struct {
	StepCount int
	Aircraft  []AircraftSnapshot
	Runway    RunwaySnapshot
	Segments  SegmentSnapshot
}

// AircraftSnapshot is one aircraft's externally observable state.
type AircraftSnapshot struct {
	ID          segment.AircraftID
	Type        aircraft.Type
	State       aircraft.State
	X, Y        float64
	Color       string
	CurrentNode int
	TargetNode  int
	PathLen     int
}

// RunwaySnapshot mirrors the runway controller's observable fields.
type RunwaySnapshot struct {
	IsBusy          bool
	CurrentAircraft segment.AircraftID
	CurrentOp       runway.Operation
	Queue           []segment.AircraftID
}

// SegmentSnapshot mirrors the segment manager's fairness-queue state.
type SegmentSnapshot struct {
	AirportDeckQueue []segment.AircraftID
}

// Observe returns a deep copy of the model's current externally-visible
// state, per spec's read-only observation surface.
func (m *AirfieldModel) Observe() Snapshot {
	acSnaps := make([]AircraftSnapshot, 0, len(m.order))
	for _, id := range m.order {
		a, ok := m.aircraft[id]
		if !ok {
			continue
		}
		x, y := a.Position()
		acSnaps = append(acSnaps, AircraftSnapshot{
			ID:          a.ID(),
			Type:        a.Type(),
			State:       a.State(),
			X:           x,
			Y:           y,
			Color:       a.Color(),
			CurrentNode: a.CurrentNode(),
			TargetNode:  a.TargetNode(),
			PathLen:     a.PathLen(),
		})
	}

	snap := Snapshot{
		StepCount: m.stepCount,
		Aircraft:  acSnaps,
		Runway: RunwaySnapshot{
			IsBusy:          m.runwayCtl.IsBusy(),
			CurrentAircraft: m.runwayCtl.CurrentAircraft(),
			CurrentOp:       m.runwayCtl.CurrentOperation(),
			Queue:           m.runwayCtl.Queue(),
		},
		Segments: SegmentSnapshot{
			AirportDeckQueue: m.segments.AirportDeckQueue(),
		},
	}

	out, err := deep.Copy(snap)
	if err != nil {
		return snap
	}
	return out
}
