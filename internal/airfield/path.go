package airfield

import (
	"container/heap"

	lru "github.com/hashicorp/golang-lru/v2"
)

// pathKey is the cache key for a memoized shortest path.
type pathKey struct {
	start, end int
}

// PathCache memoizes ShortestPath results. The topology is effectively
// static for the lifetime of a run, but stand/exit/entry selection
// recomputes shortest paths every tick for every aircraft in motion, so a
// bounded cache avoids re-running Dijkstra for the same pair repeatedly.
type PathCache struct {
	cache *lru.Cache[pathKey, []int]
}

// NewPathCache returns a cache holding up to size entries. A non-positive
// size is treated as 1, so the cache still holds the most recent entry.
func NewPathCache(size int) *PathCache {
	if size <= 0 {
		size = 1
	}
	c, _ := lru.New[pathKey, []int](size)
	return &PathCache{cache: c}
}

// ShortestPath returns the node sequence from start to end inclusive,
// weighted by edge length, admitting edges in either direction. Returns an
// empty slice if no path exists. When cache is non-nil, results are
// memoized across calls.
func (g *Graph) ShortestPath(start, end int, cache *PathCache) []int {
	if start == end {
		return []int{start}
	}
	if cache != nil {
		if hit, ok := cache.cache.Get(pathKey{start, end}); ok {
			out := make([]int, len(hit))
			copy(out, hit)
			return out
		}
	}

	path := g.dijkstra(start, end)

	if cache != nil {
		stored := make([]int, len(path))
		copy(stored, path)
		cache.cache.Add(pathKey{start, end}, stored)
	}
	return path
}

type pqItem struct {
	node int
	dist float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstra runs a standard shortest-path search over the graph's undirected
// adjacency, treating every edge as traversable in both directions.
func (g *Graph) dijkstra(start, end int) []int {
	if _, ok := g.nodes[start]; !ok {
		return nil
	}
	if _, ok := g.nodes[end]; !ok {
		return nil
	}

	const inf = 1<<63 - 1
	dist := make(map[int]float64, len(g.nodes))
	prev := make(map[int]int, len(g.nodes))
	visited := make(map[int]bool, len(g.nodes))
	for id := range g.nodes {
		dist[id] = float64(inf)
	}
	dist[start] = 0

	pq := &priorityQueue{{node: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == end {
			break
		}
		for _, ne := range g.adj[cur.node] {
			if visited[ne.to] {
				continue
			}
			alt := dist[cur.node] + ne.length
			if alt < dist[ne.to] {
				dist[ne.to] = alt
				prev[ne.to] = cur.node
				heap.Push(pq, pqItem{node: ne.to, dist: alt})
			}
		}
	}

	if !visited[end] {
		return nil
	}

	path := []int{end}
	for node := end; node != start; {
		p, ok := prev[node]
		if !ok {
			return nil
		}
		path = append(path, p)
		node = p
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
