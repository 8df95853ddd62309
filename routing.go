package osmgraph

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"
)

// Algorithm selects the routing core's search strategy (§4.7).
type Algorithm uint8

const (
	DijkstraVector Algorithm = iota
	DijkstraDict
	AStarVector
	AStarDict
)

func parseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "dijkstra_vector":
		return DijkstraVector, nil
	case "dijkstra_dict":
		return DijkstraDict, nil
	case "astar_vector":
		return AStarVector, nil
	case "astar_dict":
		return AStarDict, nil
	default:
		return 0, newUnknownOptionError("algorithm", s)
	}
}

// Heuristic estimates the remaining cost from a vertex to a goal.
// Identically-zero is the implicit heuristic Dijkstra variants use.
type Heuristic func(g *Graph, from, goal int) float64

// ZeroHeuristic makes A* degenerate into Dijkstra (§4.7).
func ZeroHeuristic(*Graph, int, int) float64 { return 0 }

// DistanceHeuristic is admissible for weight_type = distance (§4.7).
func DistanceHeuristic(g *Graph, from, goal int) float64 {
	return haversineKM(g.locationAt(from), g.locationAt(goal))
}

// TimeHeuristic is admissible for weight_type in {time, lane_efficiency}
// provided no way exceeds 100 km/h (§4.7's documented precondition).
func TimeHeuristic(g *Graph, from, goal int) float64 {
	return haversineKM(g.locationAt(from), g.locationAt(goal)) / 100.0
}

func parseHeuristic(s string) (Heuristic, error) {
	switch s {
	case "", "zero":
		return ZeroHeuristic, nil
	case "distance":
		return DistanceHeuristic, nil
	case "time":
		return TimeHeuristic, nil
	default:
		return nil, newUnknownOptionError("heuristic", s)
	}
}

// CostAdjustment returns an additional cost (possibly +Inf to prohibit
// the move) for moving from u to v given the parent chain built so far
// (§4.7). RestrictionCostAdjustment is the core's supplied
// implementation; callers may substitute their own.
type CostAdjustment func(g *Graph, u, v int, parents []int) float64

// RestrictionCostAdjustment implements §4.7's turn-restriction rule:
// when moving from u to v, for every sequence [v, u, p1, p2, ...] stored
// at key u, walk u's parent chain in lock-step; if it matches end to
// end, the move is prohibited.
func RestrictionCostAdjustment(g *Graph, u, v int, parents []int) float64 {
	sequences := g.indexedRestrictions[u]
	for _, seq := range sequences {
		if len(seq) < 2 || seq[0] != v || seq[1] != u {
			continue
		}
		if matchesParentChain(seq[2:], u, parents) {
			return math.Inf(1)
		}
	}
	return 0
}

func matchesParentChain(rest []int, start int, parents []int) bool {
	cur := start
	for _, want := range rest {
		cur = parentOf(parents, cur)
		if cur == -1 || cur != want {
			return false
		}
	}
	return true
}

func parentOf(parents []int, v int) int {
	if v < 0 || v >= len(parents) {
		return -1
	}
	return parents[v]
}

// heapItem is one entry of the routing core's binary min-heap, ordered
// by f-value (tentative distance + heuristic). The heap is lazy-delete
// only: stale entries for a vertex that was re-pushed with a smaller
// f-value are simply skipped when popped (§4.7's "already visited,
// skip"), matching the spec's explicit design note that decrease-key
// support is unneeded.
type heapItem struct {
	f      float64
	vertex int
	hops   int
}

type priorityQueue []heapItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].f < pq[j].f }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(heapItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// searchOptions bundles shortest_path's optional parameters (§4.7).
type searchOptions struct {
	costAdjustment CostAdjustment
	heuristic      Heuristic
	maxDistance    float64
}

// ShortestPath implements §4.7's `shortest_path` signature. algorithm
// selects Dijkstra vs A* and the Vector vs Dict storage strategy; for
// the Dict variants dists/parents/visited are allocated lazily per
// touched vertex instead of dense arrays sized |V|.
func ShortestPath(g *Graph, algorithm Algorithm, originID, destID NodeID, opts ...func(*searchOptions)) ([]NodeID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	originIdx, ok := g.vertexOf[originID]
	if !ok {
		return nil, errors.Errorf("osmgraph: origin %d not in graph", originID)
	}
	destIdx, ok := g.vertexOf[destID]
	if !ok {
		return nil, errors.Errorf("osmgraph: destination %d not in graph", destID)
	}

	so := &searchOptions{
		costAdjustment: RestrictionCostAdjustment,
		heuristic:      ZeroHeuristic,
		maxDistance:    math.Inf(1),
	}
	if algorithm == AStarVector || algorithm == AStarDict {
		so.heuristic = DistanceHeuristic
	}
	for _, o := range opts {
		o(so)
	}

	path := runSearch(g, algorithm, originIdx, destIdx, so)
	if path == nil {
		return nil, nil
	}
	return vertexPathToNodeIDs(g, path), nil
}

// searchState is the storage back-end for dists/parents/visited (§4.7).
// vectorState and dictState implement it over a dense array and a hash
// map respectively; runSearch's loop is identical either way.
type searchState interface {
	dist(v int) (float64, bool)
	setDist(v int, d float64)
	parent(v int) (int, bool)
	setParent(u, v int)
	visited(v int) bool
	setVisited(v int)
	parentSlice() []int
}

type vectorState struct {
	dists   []float64
	parents []int
	vis     []bool
	has     []bool
}

func newVectorState(n int) *vectorState {
	s := &vectorState{
		dists:   make([]float64, n),
		parents: make([]int, n),
		vis:     make([]bool, n),
		has:     make([]bool, n),
	}
	for i := range s.parents {
		s.parents[i] = -1
	}
	return s
}

func (s *vectorState) dist(v int) (float64, bool) { return s.dists[v], s.has[v] }
func (s *vectorState) setDist(v int, d float64)   { s.dists[v] = d; s.has[v] = true }
func (s *vectorState) parent(v int) (int, bool)   { p := s.parents[v]; return p, p != -1 }
func (s *vectorState) setParent(u, v int)         { s.parents[v] = u }
func (s *vectorState) visited(v int) bool         { return s.vis[v] }
func (s *vectorState) setVisited(v int)           { s.vis[v] = true }
func (s *vectorState) parentSlice() []int         { return s.parents }

type dictState struct {
	dists   map[int]float64
	parents map[int]int
	vis     map[int]bool
	slice   []int // lazily populated mirror of parents, sized |V|, for RestrictionCostAdjustment's chain walk
}

func newDictState(n int) *dictState {
	s := &dictState{
		dists:   make(map[int]float64),
		parents: make(map[int]int),
		vis:     make(map[int]bool),
		slice:   make([]int, n),
	}
	for i := range s.slice {
		s.slice[i] = -1
	}
	return s
}

func (s *dictState) dist(v int) (float64, bool) { d, ok := s.dists[v]; return d, ok }
func (s *dictState) setDist(v int, d float64)   { s.dists[v] = d }
func (s *dictState) parent(v int) (int, bool)   { p, ok := s.parents[v]; return p, ok }
func (s *dictState) setParent(u, v int)         { s.parents[v] = u; s.slice[v] = u }
func (s *dictState) visited(v int) bool         { return s.vis[v] }
func (s *dictState) setVisited(v int)           { s.vis[v] = true }
func (s *dictState) parentSlice() []int         { return s.slice }

// runSearch is §4.7's core loop, shared by all four Algorithm variants.
// The Vector/Dict distinction is the searchState implementation: dense
// arrays of size |V| versus hash maps allocating only touched vertices.
func runSearch(g *Graph, algorithm Algorithm, originIdx, destIdx int, so *searchOptions) []int {
	var state searchState
	switch algorithm {
	case DijkstraVector, AStarVector:
		state = newVectorState(len(g.nodeOf))
	default:
		state = newDictState(len(g.nodeOf))
	}

	state.setDist(originIdx, 0)
	pq := &priorityQueue{{f: 0, vertex: originIdx, hops: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(heapItem)
		u := item.vertex
		if state.visited(u) {
			continue
		}
		state.setVisited(u)
		if u == destIdx {
			break
		}
		uDist, _ := state.dist(u)
		if uDist > so.maxDistance {
			return nil
		}
		for _, e := range g.adjacency[u] {
			v := e.to
			if state.visited(v) {
				continue
			}
			adj := so.costAdjustment(g, u, v, state.parentSlice())
			if math.IsInf(adj, 1) {
				continue // prohibited move
			}
			alt := uDist + e.weight + adj
			if cur, ok := state.dist(v); !ok || alt < cur {
				state.setDist(v, alt)
				state.setParent(u, v)
				heap.Push(pq, heapItem{f: alt + so.heuristic(g, v, destIdx), vertex: v, hops: item.hops + 1})
			}
		}
	}

	if _, ok := state.parent(destIdx); !ok && originIdx != destIdx {
		return nil
	}
	return walkParents(state, originIdx, destIdx)
}

func walkParents(state searchState, origin, dest int) []int {
	path := []int{dest}
	cur := dest
	for cur != origin {
		p, ok := state.parent(cur)
		if !ok {
			return nil
		}
		path = append(path, p)
		cur = p
	}
	reverseInts(path)
	return path
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func vertexPathToNodeIDs(g *Graph, path []int) []NodeID {
	out := make([]NodeID, len(path))
	for i, idx := range path {
		out[i] = g.nodeOf[idx]
	}
	return out
}

// WithMaxDistance, WithCostAdjustment, WithHeuristic configure
// ShortestPath's optional parameters.
func WithMaxDistance(d float64) func(*searchOptions) {
	return func(so *searchOptions) { so.maxDistance = d }
}

func WithCostAdjustment(fn CostAdjustment) func(*searchOptions) {
	return func(so *searchOptions) { so.costAdjustment = fn }
}

func WithHeuristic(h Heuristic) func(*searchOptions) {
	return func(so *searchOptions) { so.heuristic = h }
}
