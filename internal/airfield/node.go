// Package airfield models the physical layout of an airport's movement
// area: a typed node/edge graph with both an undirected attribute store and
// a directed routing view, plus shortest-path queries over that view.
package airfield

// NodeKind classifies a node's role in the movement area.
type NodeKind string

const (
	NodeRunwayThreshold NodeKind = "runway_thr"
	NodeTaxiway         NodeKind = "taxiway"
	NodeApron           NodeKind = "apron"
	NodeStand           NodeKind = "stand"
	NodeConnector       NodeKind = "connector"
)

// Node is a point in the movement area: an intersection, a runway
// threshold, a parking stand, or a connecting waypoint.
type Node struct {
	ID    int
	Kind  NodeKind
	Name  string
	X, Y  float64
	Notes string
}
