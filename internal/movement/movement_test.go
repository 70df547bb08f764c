package movement

import "testing"

func TestTypeForState(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  Type
	}{
		{"landing", "landing", TypeLanding},
		{"departing", "departing", TypeDeparting},
		{"taxiing_to_stand", "taxiing_to_stand", TypeTaxi},
		{"at_exit", "at_exit", TypeTaxi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeForState(tt.state)
			if got != tt.want {
				t.Errorf("TypeForState(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestTypeForEdgeOnRunwayUsesStateToPickFastCategory(t *testing.T) {
	if got := TypeForEdge(true, "landing"); got != TypeLanding {
		t.Errorf("TypeForEdge(true, landing) = %v, want %v", got, TypeLanding)
	}
	if got := TypeForEdge(true, "departing"); got != TypeDeparting {
		t.Errorf("TypeForEdge(true, departing) = %v, want %v", got, TypeDeparting)
	}
}

func TestTypeForEdgeOffRunwayIsAlwaysTaxiRegardlessOfState(t *testing.T) {
	// A non-runway edge is taxi-speed even while the aircraft's state is
	// still "landing" mid-rollout onto a runway exit, not yet having
	// transitioned to "taxiing_to_exit".
	if got := TypeForEdge(false, "landing"); got != TypeTaxi {
		t.Errorf("TypeForEdge(false, landing) = %v, want %v", got, TypeTaxi)
	}
	if got := TypeForEdge(false, "departing"); got != TypeTaxi {
		t.Errorf("TypeForEdge(false, departing) = %v, want %v", got, TypeTaxi)
	}
	if got := TypeForEdge(false, "taxiing_to_exit"); got != TypeTaxi {
		t.Errorf("TypeForEdge(false, taxiing_to_exit) = %v, want %v", got, TypeTaxi)
	}
}

func TestDurationTicksIsAtLeastOne(t *testing.T) {
	dt := DefaultDurationTable()
	if got := dt.DurationTicks(0, TypeTaxi); got < 1 {
		t.Errorf("DurationTicks(0, taxi) = %d, want >= 1", got)
	}
}

func TestDurationTicksRunwayFasterThanTaxi(t *testing.T) {
	dt := DefaultDurationTable()
	taxi := dt.DurationTicks(10, TypeTaxi)
	runway := dt.DurationTicks(10, TypeLanding)
	if runway >= taxi {
		t.Errorf("runway duration %d should be less than taxi duration %d for equal distance", runway, taxi)
	}
}

func TestInterpolate(t *testing.T) {
	x, y := Interpolate(0, 0, 10, 20, 0.5)
	if x != 5 || y != 10 {
		t.Errorf("Interpolate midpoint = (%v,%v), want (5,10)", x, y)
	}

	x, y = Interpolate(0, 0, 10, 20, -1)
	if x != 0 || y != 0 {
		t.Errorf("Interpolate clamps progress below 0: got (%v,%v)", x, y)
	}

	x, y = Interpolate(0, 0, 10, 20, 2)
	if x != 10 || y != 20 {
		t.Errorf("Interpolate clamps progress above 1: got (%v,%v)", x, y)
	}
}
