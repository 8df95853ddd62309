package osmgraph

import "github.com/pkg/errors"

// Sentinel error kinds (§7). BadTag and BadRestriction are recovered
// locally during build (drop the way / drop the restriction)
// and therefore never escape the public API; they exist as values so
// internal call sites can log a consistent reason.
var (
	// ErrBadTag means a tag value had a type the normalizer can't coerce
	// (§4.1). Recovered locally: the caller never sees this directly.
	ErrBadTag = errors.New("osmgraph: bad tag value")

	// ErrBadRestriction means a relation failed the §4.4 validity check.
	// Recovered locally: the restriction is dropped and logged.
	ErrBadRestriction = errors.New("osmgraph: invalid turn restriction")

	// ErrDataQuality means invariant I1 was violated after build: a way
	// referenced a node that was not retained. Fatal; the input must be
	// fixed upstream.
	ErrDataQuality = errors.New("osmgraph: data quality violation")

	// ErrUnknownOption means an unrecognized network_type, weight_type,
	// algorithm, or heuristic name was requested.
	ErrUnknownOption = errors.New("osmgraph: unknown option")

	// ErrUndefinedCachedState means ShortestPathFromDijkstraState was
	// called for an origin without a cached Dijkstra state.
	ErrUndefinedCachedState = errors.New("osmgraph: dijkstra state not computed for origin")
)

// newUnknownOptionError wraps ErrUnknownOption with the offending kind/value
// so callers can report a useful message; errors.Is(err, ErrUnknownOption)
// still works because it's constructed with errors.Wrapf over the sentinel.
func newUnknownOptionError(kind, value string) error {
	return errors.Wrapf(ErrUnknownOption, "%s: %q", kind, value)
}
