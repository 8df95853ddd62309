package osmgraph

import "math"

// epsilon is the smallest positive finite float64, used to clip weights
// to strictly positive values: required by Dijkstra's optimality proof,
// and it distinguishes "no edge" from "zero-cost edge".
const epsilon = math.SmallestNonzeroFloat64

// computeWeights implements §4.3: for every directed edge (u,v), set
// its weight according to g.weightType, clipped to at least epsilon.
func computeWeights(g *Graph) {
	for u, edges := range g.adjacency {
		for i := range edges {
			v := edges[i].to
			edges[i].weight = edgeWeight(g, u, v, edges[i].wayID)
		}
	}
}

func edgeWeight(g *Graph, u, v int, wayID WayID) float64 {
	distKM := haversineKM(g.locationAt(u), g.locationAt(v))
	var w float64
	switch g.weightType {
	case WeightDistance:
		w = distKM
	case WeightTime:
		way := g.ways[wayID]
		w = distKM / float64(speedOrFallback(way))
	case WeightLaneEfficiency:
		way := g.ways[wayID]
		eta := g.cfg.laneEfficiencyFor(lanesOrFallback(way))
		w = distKM / (float64(speedOrFallback(way)) * eta)
	}
	return math.Max(w, epsilon)
}

func speedOrFallback(way *Way) int {
	if way == nil || way.MaxSpeed <= 0 {
		return 1
	}
	return way.MaxSpeed
}

func lanesOrFallback(way *Way) int {
	if way == nil || way.Lanes <= 0 {
		return 1
	}
	return way.Lanes
}

// weightsFromPath returns the per-edge weights along a vertex-index
// path (§4.7: "weights_from_path").
func weightsFromPath(g *Graph, path []int) []float64 {
	if len(path) < 2 {
		return nil
	}
	out := make([]float64, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		out = append(out, edgeWeightLookup(g, path[i], path[i+1]))
	}
	return out
}

func edgeWeightLookup(g *Graph, u, v int) float64 {
	if u < 0 || u >= len(g.adjacency) || v < 0 {
		return math.Inf(1)
	}
	for _, e := range g.adjacency[u] {
		if e.to == v {
			return e.weight
		}
	}
	return math.Inf(1)
}

// totalPathWeight sums weightsFromPath's result (§4.7).
func totalPathWeight(g *Graph, path []int) float64 {
	var total float64
	for _, w := range weightsFromPath(g, path) {
		total += w
	}
	return total
}

// WeightsFromPath implements §4.7's `weights_from_path`: the per-edge
// weights along a node-id path, in the unit g.weightType was built
// with. The path is typically one ShortestPath returned; any consecutive
// pair not joined by a retained edge contributes +Inf.
func WeightsFromPath(g *Graph, path []NodeID) []float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return weightsFromPath(g, nodeIDPathToVertices(g, path))
}

// TotalPathWeight implements §6's `total_path_weight`: the sum of
// WeightsFromPath's result.
func TotalPathWeight(g *Graph, path []NodeID) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return totalPathWeight(g, nodeIDPathToVertices(g, path))
}

func nodeIDPathToVertices(g *Graph, path []NodeID) []int {
	out := make([]int, len(path))
	for i, id := range path {
		if idx, ok := g.vertexOf[id]; ok {
			out[i] = idx
		} else {
			out[i] = -1
		}
	}
	return out
}
