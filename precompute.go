package osmgraph

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// dijkstraState is the cached output of a goal-less Dijkstra run from
// one source vertex (§4.7: "set_dijkstra_state"), keyed by source
// vertex index on the owning Graph.
type dijkstraState struct {
	parents []int // -1 where unset
	dists   []float64
}

// SetDijkstraState runs Dijkstra without a goal from src and caches its
// parents vector, enabling O(path-length) extraction later (§4.7).
func SetDijkstraState(g *Graph, src NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	srcIdx, ok := g.vertexOf[src]
	if !ok {
		return errors.Errorf("osmgraph: source %d not in graph", src)
	}
	g.dijkstraStates[srcIdx] = runFullDijkstra(g, srcIdx)
	return nil
}

func runFullDijkstra(g *Graph, srcIdx int) *dijkstraState {
	n := len(g.nodeOf)
	dists := make([]float64, n)
	parents := make([]int, n)
	for i := range dists {
		dists[i] = math.Inf(1)
		parents[i] = -1
	}
	dists[srcIdx] = 0

	pq := &priorityQueue{{f: 0, vertex: srcIdx}}
	heap.Init(pq)
	visited := make([]bool, n)
	for pq.Len() > 0 {
		item := heap.Pop(pq).(heapItem)
		u := item.vertex
		if visited[u] {
			continue
		}
		visited[u] = true
		for _, e := range g.adjacency[u] {
			v := e.to
			if visited[v] {
				continue
			}
			adj := RestrictionCostAdjustment(g, u, v, parents)
			alt := dists[u] + e.weight + adj
			if alt < dists[v] {
				dists[v] = alt
				parents[v] = u
				heap.Push(pq, heapItem{f: alt, vertex: v})
			}
		}
	}
	return &dijkstraState{parents: parents, dists: dists}
}

// ShortestPathFromDijkstraState implements §4.7/§6: extracts a path
// from a previously cached state, failing with ErrUndefinedCachedState
// if origin lacks one (§7, §6: '"state not computed"').
func ShortestPathFromDijkstraState(g *Graph, origin, dest NodeID) ([]NodeID, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	originIdx, ok := g.vertexOf[origin]
	if !ok {
		return nil, errors.Errorf("osmgraph: origin %d not in graph", origin)
	}
	destIdx, ok := g.vertexOf[dest]
	if !ok {
		return nil, errors.Errorf("osmgraph: destination %d not in graph", dest)
	}
	state, ok := g.dijkstraStates[originIdx]
	if !ok {
		return nil, ErrUndefinedCachedState
	}
	if math.IsInf(state.dists[destIdx], 1) {
		return nil, nil
	}
	path := []int{destIdx}
	cur := destIdx
	for cur != originIdx {
		p := state.parents[cur]
		if p == -1 {
			return nil, nil
		}
		path = append(path, p)
		cur = p
	}
	reverseInts(path)
	return vertexPathToNodeIDs(g, path), nil
}

// PrecomputeDijkstraStates runs SetDijkstraState for every vertex (or,
// if sources is non-empty, only the given source node ids) using a
// worker pool (§5: "optional bulk precomputation of per-source
// Dijkstra states ... parallelized across source indices using a
// worker pool; each worker writes to a distinct slot"), grounded in
// the errgroup usage pattern of the Navigatorx reference repo
// (pkg/http/server.go there uses errgroup.Group for its own worker
// fan-out).
func PrecomputeDijkstraStates(g *Graph, workers int, sources ...NodeID) error {
	g.mu.Lock()
	indices := make([]int, 0, len(sources))
	if len(sources) == 0 {
		for i := range g.nodeOf {
			indices = append(indices, i)
		}
	} else {
		for _, s := range sources {
			idx, ok := g.vertexOf[s]
			if !ok {
				g.mu.Unlock()
				return errors.Errorf("osmgraph: source %d not in graph", s)
			}
			indices = append(indices, idx)
		}
	}
	results := make([]*dijkstraState, len(indices))
	g.mu.Unlock()

	g.mu.RLock()
	var eg errgroup.Group
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for slot, idx := range indices {
		slot, idx := slot, idx
		eg.Go(func() error {
			results[slot] = runFullDijkstra(g, idx)
			return nil
		})
	}
	err := eg.Wait()
	g.mu.RUnlock()
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for slot, idx := range indices {
		g.dijkstraStates[idx] = results[slot]
	}
	return nil
}
