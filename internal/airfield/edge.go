package airfield

import "strings"

// EdgeKind classifies the role of an edge in the movement area.
type EdgeKind string

const (
	EdgeRunway      EdgeKind = "runway"
	EdgeRunwayEntry EdgeKind = "runway_entry"
	EdgeRunwayExit  EdgeKind = "runway_exit"
	EdgeTaxiway     EdgeKind = "taxiway"
	EdgeApronLink   EdgeKind = "apron_link"
	EdgeStandLink   EdgeKind = "stand_link"
)

// defaultCapacity derives this package's capacity for edges whose topology
// row left it unspecified: exclusive for runway edges, five-wide for the
// corridor edges linking the runway to the taxi network, exclusive
// elsewhere.
func defaultCapacity(kind EdgeKind) int {
	switch kind {
	case EdgeRunway:
		return 1
	case EdgeRunwayEntry, EdgeRunwayExit:
		return 5
	default:
		return 1
	}
}

// deriveHoldingAllowed implements the holding-allowed derivation rules:
// stand links always permit holding, the runway proper and its exit edges
// never do, runway entries do, and taxiway segments are holding-allowed
// unless their description marks them as one of the no-hold "taxiway b"
// segments.
func deriveHoldingAllowed(kind EdgeKind, description string) bool {
	switch kind {
	case EdgeStandLink:
		return true
	case EdgeRunway, EdgeRunwayExit:
		return false
	case EdgeRunwayEntry:
		return true
	}

	desc := strings.ToLower(description)
	if strings.Contains(desc, "taxiway b") {
		return false
	}
	return true
}

// Edge is stored once per undirected pair but carries a From/To orientation
// taken from the topology row it was loaded from; routing treats both
// directions as traversable, but operations that need a "far endpoint"
// relative to a node use this stored orientation.
type Edge struct {
	From, To       int
	Kind           EdgeKind
	Length         float64
	Capacity       int
	Description    string
	HoldingAllowed bool
}

// OtherEnd returns the endpoint of the edge that is not from, or From if
// from matches neither endpoint.
func (e Edge) OtherEnd(from int) int {
	if e.From == from {
		return e.To
	}
	return e.From
}

// EdgeKey is the canonical, orientation-agnostic identity of an edge used
// for reservation bookkeeping: reservations are per undirected edge, while
// movement itself is directional.
type EdgeKey struct {
	A, B int
}

// CanonicalEdgeKey returns the orientation-independent key for the edge
// between u and v.
func CanonicalEdgeKey(u, v int) EdgeKey {
	if u > v {
		u, v = v, u
	}
	return EdgeKey{A: u, B: v}
}
