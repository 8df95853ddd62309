package osmgraph

import (
	"log/slog"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// buildOptions collects BuildGraph's parameters (§4.2, §6); populated by
// the functional options in parser.go.
type buildOptions struct {
	networkType               NetworkType
	weightType                WeightType
	graphType                 GraphType
	precomputeStates          bool
	largestConnectedComponent bool
	config                    *Config
	logger                    *slog.Logger
}

// BuildGraph implements §4.2's graph-builder procedure end to end: it
// filters and normalizes ways by network_type, keeps only nodes those
// ways reference, builds the directed edge set (§4.2 step 4), validates
// and indexes turn restrictions (§4.4), assigns the dense vertex index
// (§4.2 step 6), computes the weight matrix (§4.3), and builds the
// spatial indices (§4.6). When opts requests it, it also trims to the
// largest connected component (§4.5) and precomputes Dijkstra states.
func BuildGraph(raw *rawOSM, options ...func(*buildOptions)) (*Graph, error) {
	opts := &buildOptions{
		networkType: NetworkDrive,
		weightType:  WeightDistance,
		graphType:   GraphVector,
		config:      DefaultConfig,
		logger:      slog.Default(),
	}
	for _, o := range options {
		o(opts)
	}

	cfg := opts.config.snapshot()
	useRailway := requiresRailway(opts.networkType)

	retainedWays := make(map[WayID]*Way)
	nodeKeepSet := make(map[osm.NodeID]struct{})

	for _, w := range raw.ways {
		way, ok, err := normalizeWay(w, opts.networkType, useRailway, cfg)
		if err != nil {
			if errors.Is(err, ErrBadTag) {
				opts.logger.Warn("dropping way with bad tag", "way_id", w.ID, "error", err.Error())
				continue
			}
			return nil, err
		}
		if !ok {
			continue
		}
		retainedWays[way.ID] = way
		for _, n := range way.Nodes {
			nodeKeepSet[osm.NodeID(n)] = struct{}{}
		}
	}

	retainedNodes := make(map[NodeID]*Node, len(nodeKeepSet))
	for id := range nodeKeepSet {
		src, ok := raw.nodes[id]
		if !ok {
			return nil, errors.Wrapf(ErrDataQuality, "way references node %d not present in input", id)
		}
		retainedNodes[NodeID(id)] = buildNode(src)
	}
	if len(retainedNodes) != len(nodeKeepSet) {
		return nil, errors.Wrap(ErrDataQuality, "retained node count differs from referenced node count")
	}

	g := &Graph{
		networkType: opts.networkType,
		weightType:  opts.weightType,
		graphType:   opts.graphType,
		cfg:         cfg,
		nodes:       retainedNodes,
		ways:        retainedWays,
		edgeWay:     make(map[[2]int]WayID),

		dijkstraStates: make(map[int]*dijkstraState),
	}

	assignVertexIndex(g)
	buildAdjacency(g, retainedWays)

	restrictions, err := buildRestrictions(raw.relations, retainedWays, g.vertexOf)
	if err != nil {
		return nil, err
	}
	g.restrictions = restrictions
	g.indexedRestrictions = indexRestrictions(g, restrictions)

	computeWeights(g)
	g.kd = buildKDTree(g)
	g.rt = buildRTree(g)

	if opts.largestConnectedComponent {
		if err := Trim(g); err != nil {
			return nil, err
		}
	}
	if opts.precomputeStates {
		if err := PrecomputeDijkstraStates(g, 0); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// assignVertexIndex builds the dense vertex bijection in node-map
// iteration order (§4.2 step 6). Go's map iteration order is
// randomized per-process, so "iteration order" here is whatever order
// the runtime gives; §4.2 doesn't require a specific order, only that
// the mapping be a bijection, which holds regardless.
func assignVertexIndex(g *Graph) {
	g.nodeOf = make([]NodeID, 0, len(g.nodes))
	g.vertexOf = make(map[NodeID]int, len(g.nodes))
	for id := range g.nodes {
		g.vertexOf[id] = len(g.nodeOf)
		g.nodeOf = append(g.nodeOf, id)
	}
	g.adjacency = make([][]halfEdge, len(g.nodeOf))
}

// buildAdjacency implements §4.2 step 4: for each retained way and each
// consecutive node pair, emit the directed edge honoring reverseway,
// and the reverse direction too unless oneway. When two ways genuinely
// overlap the same directed edge, edge_to_way resolves deterministically
// to the smaller way id rather than whichever way Go's randomized map
// iteration happened to visit last.
func buildAdjacency(g *Graph, ways map[WayID]*Way) {
	for _, w := range ways {
		for i := 0; i+1 < len(w.Nodes); i++ {
			a, b := w.Nodes[i], w.Nodes[i+1]
			ua, ub := g.vertexOf[a], g.vertexOf[b]
			if w.ReverseWay {
				ua, ub = ub, ua
			}
			addHalfEdge(g, ua, ub, w.ID)
			if !w.Oneway {
				addHalfEdge(g, ub, ua, w.ID)
			}
		}
	}
}

func addHalfEdge(g *Graph, u, v int, wayID WayID) {
	g.adjacency[u] = append(g.adjacency[u], halfEdge{to: v, wayID: wayID})
	key := [2]int{u, v}
	if existing, ok := g.edgeWay[key]; !ok || wayID < existing {
		g.edgeWay[key] = wayID
	}
}

// normalizeWay implements §4.2 step 1 plus the §4.1 tag normalizer. It
// returns ok=false for ways that should be discarded (no highway/
// railway tag, excluded by network_type, fewer than 2 nodes).
func normalizeWay(w *osm.Way, nt NetworkType, useRailway bool, cfg configSnapshot) (*Way, bool, error) {
	tagMap := w.TagMap()
	highway := tagMap["highway"]
	railway := tagMap["railway"]

	if useRailway {
		if railway == "" {
			return nil, false, nil
		}
	} else if highway == "" {
		return nil, false, nil
	}

	flat := flattenStringTags(w.Tags)
	if excludedFrom(nt, flat) {
		return nil, false, nil
	}
	if !useRailway {
		if _, negligible := negligibleHighwayTags[highway]; negligible {
			return nil, false, nil
		}
	}

	if len(w.Nodes) < 2 {
		return nil, false, nil
	}

	highwayClass := highway
	if !isKnownHighwayClass(highwayClass) {
		highwayClass = "other"
	}

	maxspeed, err := normalizeMaxspeed(tagValue(tagMap, "maxspeed"), highwayClass, cfg)
	if err != nil {
		return nil, false, err
	}
	lanes, err := normalizeLanes(tagValue(tagMap, "lanes"), highwayClass, cfg)
	if err != nil {
		return nil, false, err
	}
	junction := tagMap["junction"]
	oneway, reverse, err := normalizeOneway(tagValue(tagMap, "oneway"), junction, highwayOnewayDefault(highwayClass))
	if err != nil {
		return nil, false, err
	}

	way := &Way{
		ID:         WayID(w.ID),
		Nodes:      wayNodeIDs(w.Nodes),
		Highway:    highway,
		Railway:    railway,
		MaxSpeed:   maxspeed,
		Lanes:      lanes,
		Oneway:     oneway,
		ReverseWay: reverse,
		junction:   junction,
		ExtraTags:  flat,
	}
	if useRailway {
		way.RailType = tagMap["railway"]
		way.Electrified = tagMap["electrified"]
		if g, ok := tagMap["gauge"]; ok && g != "" {
			if v, err := parseIntTag(g); err == nil {
				way.Gauge = &v
			}
		}
		way.Usage = tagMap["usage"]
		if way.Electrified == "" {
			way.Electrified = "unknown"
		}
		if way.Usage == "" {
			way.Usage = "unknown"
		}
	}
	way.Name = tagMap["name"]
	if useRailway && way.Name == "" {
		way.Name = "unknown"
	}

	return way, true, nil
}

func tagValue(tagMap map[string]string, key string) interface{} {
	v, ok := tagMap[key]
	if !ok || v == "" {
		return nil
	}
	return v
}

func flattenStringTags(tags osm.Tags) map[string]string {
	out := make(map[string]string, len(tags))
	for _, t := range tags {
		out[t.Key] = t.Value
	}
	return out
}

func wayNodeIDs(nodes osm.WayNodes) []NodeID {
	out := make([]NodeID, len(nodes))
	for i, n := range nodes {
		out[i] = NodeID(n.ID)
	}
	return out
}

func parseIntTag(s string) (int, error) {
	n, err := normalizeLanes(s, "other", configSnapshot{lanes: map[string]int{"other": 1}})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func buildNode(src *osm.Node) *Node {
	controlType := NotSignal
	if src.Tags.Find("highway") == "traffic_signals" {
		controlType = IsSignal
	}
	return &Node{
		ID:          NodeID(src.ID),
		Location:    GeoLocation{Lat: src.Lat, Lon: src.Lon},
		Tags:        tagsToMap(src.Tags),
		name:        src.Tags.Find("name"),
		controlType: controlType,
	}
}

func tagsToMap(tags osm.Tags) map[string]interface{} {
	out := make(map[string]interface{}, len(tags))
	for _, t := range tags {
		out[t.Key] = t.Value
	}
	return out
}
