package osmgraph

// WayID is the OSM way identifier.
type WayID int64

// Way is a typed OSM way (§3): an ordered sequence of node ids sharing a
// single tag set. Following the teacher's "dynamic tag typing" pattern
// (§9 Design Notes), the fields normalizeWay (§4.1) populates live as
// named fields rather than staying boxed in a generic map; everything
// else OSM attached to the way stays in ExtraTags, untyped.
type Way struct {
	ID    WayID
	Nodes []NodeID

	// Populated by normalizeWay for every retained way.
	Highway    string // set when this is a road way
	Railway    string // set when this is a rail way
	MaxSpeed   int    // km/h
	Lanes      int
	Oneway     bool
	ReverseWay bool

	// Rail-only fields (§3); default to "unknown" (string) / nil (Gauge)
	// when the source way carries no value.
	RailType    string
	Electrified string
	Gauge       *int
	Usage       string
	Name        string

	// Untyped passthrough for anything normalizeWay didn't claim.
	ExtraTags map[string]string

	junction string // raw `junction` tag, consulted by normalizeOneway
}

// IsHighway reports whether this way was classified as a road.
func (w *Way) IsHighway() bool {
	return w.Highway != ""
}

// IsRailway reports whether this way was classified as rail.
func (w *Way) IsRailway() bool {
	return w.Railway != ""
}

// SourceNode and TargetNode return the way's first and last node ids.
// Callers must not call these on a way with fewer than 2 nodes; the
// builder drops such ways before they reach anything else (§4.2).
func (w *Way) SourceNode() NodeID { return w.Nodes[0] }
func (w *Way) TargetNode() NodeID { return w.Nodes[len(w.Nodes)-1] }
