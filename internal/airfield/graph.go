package airfield

import "fmt"

// Graph is the airport movement-area topology. Nodes and edges are stored
// once, keyed by canonical identity; a directed adjacency index built
// alongside it supports routing in both directions over the same edges,
// mirroring a graph library's "undirected storage, directed routing view"
// split without requiring one.
type Graph struct {
	nodes map[int]Node
	edges map[EdgeKey]Edge
	adj   map[int][]neighborEdge
}

type neighborEdge struct {
	to     int
	length float64
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[int]Node),
		edges: make(map[EdgeKey]Edge),
		adj:   make(map[int][]neighborEdge),
	}
}

// AddNode registers a node. Re-adding the same id overwrites its attributes.
func (g *Graph) AddNode(n Node) {
	g.nodes[n.ID] = n
}

// AddEdge registers an edge between two known nodes. Capacity of zero means
// "unspecified in the topology row" and is replaced by the derived default
// for the edge's kind. Returns an error if either endpoint is unknown.
func (g *Graph) AddEdge(from, to int, kind EdgeKind, length float64, capacity int, description string) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("airfield: unknown edge endpoint %d", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("airfield: unknown edge endpoint %d", to)
	}
	if capacity <= 0 {
		capacity = defaultCapacity(kind)
	}

	e := Edge{
		From:           from,
		To:             to,
		Kind:           kind,
		Length:         length,
		Capacity:       capacity,
		Description:    description,
		HoldingAllowed: deriveHoldingAllowed(kind, description),
	}
	g.edges[CanonicalEdgeKey(from, to)] = e
	g.adj[from] = append(g.adj[from], neighborEdge{to: to, length: length})
	g.adj[to] = append(g.adj[to], neighborEdge{to: from, length: length})
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// PositionOf returns the coordinates of a node.
func (g *Graph) PositionOf(id int) (x, y float64, ok bool) {
	n, ok := g.nodes[id]
	if !ok {
		return 0, 0, false
	}
	return n.X, n.Y, true
}

// Edge returns the stored edge between u and v, in whichever orientation it
// was added, regardless of query order.
func (g *Graph) Edge(u, v int) (Edge, bool) {
	e, ok := g.edges[CanonicalEdgeKey(u, v)]
	return e, ok
}

// Neighbors returns the ids of nodes directly reachable from n.
func (g *Graph) Neighbors(n int) []int {
	adj := g.adj[n]
	out := make([]int, 0, len(adj))
	for _, ne := range adj {
		out = append(out, ne.to)
	}
	return out
}

// NodesOfKind returns every node id of the given kind, in ascending id
// order.
func (g *Graph) NodesOfKind(k NodeKind) []int {
	out := make([]int, 0)
	for id, n := range g.nodes {
		if n.Kind == k {
			out = append(out, id)
		}
	}
	sortInts(out)
	return out
}

// EdgesOfKind returns every edge of the given kind. Order is stable
// (ascending canonical key) so macro-section acquisition order is fixed
// across runs, as the fixed-order deadlock-avoidance design requires.
func (g *Graph) EdgesOfKind(k EdgeKind) []Edge {
	keys := make([]EdgeKey, 0)
	for key, e := range g.edges {
		if e.Kind == k {
			keys = append(keys, key)
		}
	}
	sortEdgeKeys(keys)

	out := make([]Edge, 0, len(keys))
	for _, key := range keys {
		out = append(out, g.edges[key])
	}
	return out
}

// EdgeKind returns the kind of the edge between u and v.
func (g *Graph) EdgeKind(u, v int) (EdgeKind, bool) {
	e, ok := g.Edge(u, v)
	if !ok {
		return "", false
	}
	return e.Kind, true
}

// EdgeLength returns the length attribute of the edge between u and v.
func (g *Graph) EdgeLength(u, v int) (float64, bool) {
	e, ok := g.Edge(u, v)
	if !ok {
		return 0, false
	}
	return e.Length, true
}

// HoldingAllowed reports whether an aircraft may hold partway along the
// edge between u and v.
func (g *Graph) HoldingAllowed(u, v int) (bool, bool) {
	e, ok := g.Edge(u, v)
	if !ok {
		return false, false
	}
	return e.HoldingAllowed, true
}

// Bounds returns the coordinate extent of every registered node.
func (g *Graph) Bounds() (minX, maxX, minY, maxY float64) {
	first := true
	for _, n := range g.nodes {
		if first {
			minX, maxX, minY, maxY = n.X, n.X, n.Y, n.Y
			first = false
			continue
		}
		minX = min(minX, n.X)
		maxX = max(maxX, n.X)
		minY = min(minY, n.Y)
		maxY = max(maxY, n.Y)
	}
	return
}

// NodeCount returns the number of registered nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of registered edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func sortEdgeKeys(s []EdgeKey) {
	less := func(a, b EdgeKey) bool {
		if a.A != b.A {
			return a.A < b.A
		}
		return a.B < b.B
	}
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && less(s[j], s[j-1]); j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
