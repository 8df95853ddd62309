package osmgraph

// GeoLocation is a point on Earth in degrees. Altitude defaults to zero
// and is carried mainly so the k-d tree (§4.6) has a uniform 3-D Cartesian
// projection. Equality is field-exact (§3): it is used as a hash key
// wherever node deduplication matters.
type GeoLocation struct {
	Lat float64
	Lon float64
	Alt float64
}

// NodeID is the OSM node identifier (globally unique, 64-bit).
type NodeID int64

// ControlType marks whether a node is a plain vertex or carries traffic
// control (currently: traffic signals), mirroring the teacher's crossing
// bookkeeping; §4.8's endpoint predicate treats a signal-controlled node
// as an endpoint regardless of its degree (§12 supplemented feature).
type ControlType uint16

const (
	NotSignal = ControlType(iota + 1)
	IsSignal
)

func (c ControlType) String() string {
	return [...]string{"common", "signal"}[c-1]
}

// Node is a typed OSM node (§3). Tags is the untyped OSM tag dictionary;
// callers needing typed access go through the way-level normalized
// fields, since raw node tags carry no routing-relevant structure beyond
// the `highway=traffic_signals` control marker.
type Node struct {
	ID       NodeID
	Location GeoLocation
	Tags     map[string]interface{}

	name        string
	controlType ControlType
}
