package aircraft

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avtools/airfieldsim/internal/airfield"
	"github.com/avtools/airfieldsim/internal/movement"
	"github.com/avtools/airfieldsim/internal/runway"
	"github.com/avtools/airfieldsim/internal/segment"
)

// testWorld is a minimal, single-aircraft-capable World for exercising the
// lifecycle without a full simulation model.
type testWorld struct {
	graph      *airfield.Graph
	segments   *segment.Manager
	runwayCtl  *runway.Controller
	cache      *airfield.PathCache
	durations  movement.DurationTable
	now        int
	rng        *rand.Rand
	standOwner map[int]segment.AircraftID
}

func newTestWorld(t *testing.T, wind string) *testWorld {
	t.Helper()
	g := airfield.NewGraph()
	g.AddNode(airfield.Node{ID: 1, Kind: airfield.NodeRunwayThreshold, X: 0, Y: 0})
	g.AddNode(airfield.Node{ID: 2, Kind: airfield.NodeRunwayThreshold, X: 100, Y: 0})
	g.AddNode(airfield.Node{ID: 3, Kind: airfield.NodeTaxiway, X: 10, Y: 5})
	g.AddNode(airfield.Node{ID: 4, Kind: airfield.NodeApron, X: 20, Y: 10})
	g.AddNode(airfield.Node{ID: 5, Kind: airfield.NodeStand, X: 25, Y: 15})

	require.NoError(t, g.AddEdge(1, 2, airfield.EdgeRunway, 100, 0, "main"))
	require.NoError(t, g.AddEdge(1, 3, airfield.EdgeRunwayExit, 10, 0, "exit alpha"))
	require.NoError(t, g.AddEdge(2, 3, airfield.EdgeRunwayEntry, 10, 0, "entry alpha"))
	require.NoError(t, g.AddEdge(3, 4, airfield.EdgeApronLink, 10, 0, ""))
	require.NoError(t, g.AddEdge(4, 5, airfield.EdgeStandLink, 5, 0, ""))

	mgr := segment.NewManager(g)
	ctl, err := runway.NewController(mgr, wind)
	require.NoError(t, err)

	return &testWorld{
		graph:      g,
		segments:   mgr,
		runwayCtl:  ctl,
		cache:      airfield.NewPathCache(64),
		durations:  movement.DefaultDurationTable(),
		rng:        rand.New(rand.NewPCG(1, 2)),
		standOwner: make(map[int]segment.AircraftID),
	}
}

func (w *testWorld) Graph() *airfield.Graph              { return w.graph }
func (w *testWorld) Segments() *segment.Manager           { return w.segments }
func (w *testWorld) Runway() *runway.Controller           { return w.runwayCtl }
func (w *testWorld) PathCache() *airfield.PathCache       { return w.cache }
func (w *testWorld) Durations() movement.DurationTable    { return w.durations }
func (w *testWorld) Now() int                             { return w.now }
func (w *testWorld) Rand() *rand.Rand                     { return w.rng }
func (w *testWorld) StandOccupied(node int) bool {
	_, ok := w.standOwner[node]
	return ok
}

// runUntil steps the runway controller and the aircraft together until
// pred is satisfied or the tick budget is exhausted.
func runUntil(t *testing.T, w *testWorld, ac *Aircraft, budget int, pred func() bool) {
	t.Helper()
	for i := 0; i < budget; i++ {
		w.now++
		require.NoError(t, w.runwayCtl.Step(w.now, func(id segment.AircraftID) (runway.Handle, bool) {
			if id == ac.ID() {
				return ac, true
			}
			return nil, false
		}))
		done, err := ac.Step()
		require.NoError(t, err)
		if done {
			return
		}
		if pred() {
			return
		}
	}
}

func TestSingleArrivalReachesStand(t *testing.T) {
	w := newTestWorld(t, "07")
	ac := NewArrival(w, "AC1")

	require.Equal(t, StateWaitingLanding, ac.State())

	runUntil(t, w, ac, 200, func() bool { return ac.State() == StateAtStand })

	require.Equal(t, StateAtStand, ac.State())
	require.Equal(t, 5, ac.CurrentNode())
	require.Empty(t, ac.BlockedEdges(), "an aircraft at its stand must hold no edge reservations")
}

func TestArrivalPromotedOnlyWhenRunwayFree(t *testing.T) {
	w := newTestWorld(t, "07")
	ac1 := NewArrival(w, "AC1")
	ac2 := NewArrival(w, "AC2")

	lookup := func(id segment.AircraftID) (runway.Handle, bool) {
		switch id {
		case ac1.ID():
			return ac1, true
		case ac2.ID():
			return ac2, true
		}
		return nil, false
	}

	_, err := ac1.Step()
	require.NoError(t, err)
	_, err = ac2.Step()
	require.NoError(t, err)
	require.Equal(t, 2, w.runwayCtl.QueueLength())

	w.now++
	require.NoError(t, w.runwayCtl.Step(w.now, lookup))

	require.Equal(t, StateLanding, ac1.State(), "first queued aircraft should be promoted")
	require.Equal(t, StateWaitingLanding, ac2.State(), "second aircraft must wait while runway is busy")
}

func TestSingleArrivalWindFlip(t *testing.T) {
	w := newTestWorld(t, "25")
	ac := NewArrival(w, "AC1")

	runUntil(t, w, ac, 10, func() bool { return ac.State() == StateLanding })

	require.Equal(t, StateLanding, ac.State())
	require.Equal(t, 2, ac.CurrentNode(), "wind 25 should land on threshold node 2")
}

func TestColorMapping(t *testing.T) {
	w := newTestWorld(t, "07")
	ac := NewArrival(w, "AC1")
	require.Equal(t, "blue", ac.Color())
}
