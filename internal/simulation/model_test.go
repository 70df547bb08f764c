package simulation

import (
	"context"
	"testing"

	"github.com/avtools/airfieldsim/internal/aircraft"
	"github.com/avtools/airfieldsim/internal/airfield"
	"github.com/avtools/airfieldsim/internal/movement"
)

func smallGraph(t *testing.T) *airfield.Graph {
	t.Helper()
	g := airfield.NewGraph()
	g.AddNode(airfield.Node{ID: 1, Kind: airfield.NodeRunwayThreshold, X: 0, Y: 0})
	g.AddNode(airfield.Node{ID: 2, Kind: airfield.NodeRunwayThreshold, X: 100, Y: 0})
	g.AddNode(airfield.Node{ID: 3, Kind: airfield.NodeTaxiway, X: 10, Y: 5})
	g.AddNode(airfield.Node{ID: 4, Kind: airfield.NodeApron, X: 20, Y: 10})
	g.AddNode(airfield.Node{ID: 5, Kind: airfield.NodeStand, X: 25, Y: 15})

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(g.AddEdge(1, 2, airfield.EdgeRunway, 100, 0, "main"))
	must(g.AddEdge(1, 3, airfield.EdgeRunwayExit, 10, 0, "exit alpha"))
	must(g.AddEdge(2, 3, airfield.EdgeRunwayEntry, 10, 0, "entry alpha"))
	must(g.AddEdge(3, 4, airfield.EdgeApronLink, 10, 0, ""))
	must(g.AddEdge(4, 5, airfield.EdgeStandLink, 5, 0, ""))
	return g
}

func TestRunSpawnsArrivalsAndDrainsField(t *testing.T) {
	g := smallGraph(t)
	m, err := NewAirfieldModel(g, "07", 2, 1.0, movement.DefaultDurationTable(), 64, 1, nil)
	if err != nil {
		t.Fatalf("NewAirfieldModel() error = %v", err)
	}

	ticks, err := m.Run(context.Background(), 500)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ticks == 0 {
		t.Fatal("expected at least one tick to run")
	}
	if m.AircraftCount() != 0 {
		t.Errorf("AircraftCount() = %d, want 0 (every arrival should depart and leave the field)", m.AircraftCount())
	}

	snap := m.Observe()
	if len(snap.Aircraft) != 0 {
		t.Errorf("Observe().Aircraft has %d entries, want 0", len(snap.Aircraft))
	}
	if snap.StepCount != ticks {
		t.Errorf("Observe().StepCount = %d, want %d", snap.StepCount, ticks)
	}
}

func TestStepSpawnsAtMostOneArrivalWithCertainRate(t *testing.T) {
	g := smallGraph(t)
	m, err := NewAirfieldModel(g, "07", 3, 1.0, movement.DefaultDurationTable(), 64, 1, nil)
	if err != nil {
		t.Fatalf("NewAirfieldModel() error = %v", err)
	}

	if err := m.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if m.AircraftCount() != 1 {
		t.Fatalf("AircraftCount() after one tick = %d, want 1", m.AircraftCount())
	}

	snap := m.Observe()
	if len(snap.Aircraft) != 1 {
		t.Fatalf("Observe().Aircraft has %d entries, want 1", len(snap.Aircraft))
	}
	if snap.Aircraft[0].State != aircraft.StateWaitingLanding {
		t.Errorf("spawned aircraft state = %s, want %s", snap.Aircraft[0].State, aircraft.StateWaitingLanding)
	}
}

func TestRunStopsOnceFieldIsEmpty(t *testing.T) {
	g := smallGraph(t)
	m, err := NewAirfieldModel(g, "07", 0, 0, movement.DefaultDurationTable(), 64, 1, nil)
	if err != nil {
		t.Fatalf("NewAirfieldModel() error = %v", err)
	}

	ticks, err := m.Run(context.Background(), 5)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1 (one tick runs, then the empty field stops the run)", ticks)
	}
}
