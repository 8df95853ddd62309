package osmgraph

import "github.com/tidwall/rtree"

// rtreeIndex wraps tidwall/rtree over way bounding boxes (§4.6),
// grounded in how lintang-b-s-Navigatorx's pkg/spatialindex/rtree.go
// wires the same library for bounding-box queries over way geometry.
// Payload is the way id; box corners are 3-D Cartesian (x,y,z) so
// queries compose with the k-d tree's coordinate system.
type rtreeIndex struct {
	tr *rtree.RTreeG[WayID]
}

func buildRTree(g *Graph) *rtreeIndex {
	tr := &rtree.RTreeG[WayID]{}
	for id, w := range g.ways {
		min, max, ok := wayBoundingBox(g, w)
		if !ok {
			continue
		}
		tr.Insert(min, max, id)
	}
	return &rtreeIndex{tr: tr}
}

func wayBoundingBox(g *Graph, w *Way) (min, max [3]float64, ok bool) {
	first := true
	for _, n := range w.Nodes {
		node, found := g.nodes[n]
		if !found {
			continue
		}
		c := geoToCartesian(node.Location)
		if first {
			min = [3]float64{c.x, c.y, c.z}
			max = min
			first = false
			continue
		}
		min[0], max[0] = minf(min[0], c.x), maxf(max[0], c.x)
		min[1], max[1] = minf(min[1], c.y), maxf(max[1], c.y)
		min[2], max[2] = minf(min[2], c.z), maxf(max[2], c.z)
	}
	return min, max, !first
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// intersecting returns the way ids whose bounding box intersects the
// [min,max] cube (§4.6: "bounding-box intersection queries").
func (idx *rtreeIndex) intersecting(min, max [3]float64) []WayID {
	var out []WayID
	idx.tr.Search(min, max, func(_, _ [3]float64, wayID WayID) bool {
		out = append(out, wayID)
		return true
	})
	return out
}
