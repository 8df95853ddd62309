package osmgraph

import "log/slog"

// LoadGraph reads an OSM file and builds a Graph from it in one step,
// matching §6's `build_graph(read_osm_file(filename), ...)` composition
// that cmd/osmgraph and other callers outside this package use.
func LoadGraph(filename string, logger *slog.Logger, options ...func(*buildOptions)) (*Graph, error) {
	if logger == nil {
		logger = slog.Default()
	}
	raw, err := readOSMFile(filename, logger)
	if err != nil {
		return nil, err
	}
	return BuildGraph(raw, options...)
}

// ParseNetworkType exposes parseNetworkType to callers outside this
// package, e.g. a CLI turning a -network flag into a NetworkType.
func ParseNetworkType(s string) (NetworkType, error) { return parseNetworkType(s) }

// ParseWeightType exposes parseWeightType to callers outside this
// package, e.g. a CLI turning a -weight flag into a WeightType.
func ParseWeightType(s string) (WeightType, error) { return parseWeightType(s) }

// ParseGraphType exposes parseGraphType to callers outside this package.
func ParseGraphType(s string) (GraphType, error) { return parseGraphType(s) }

// ParseAlgorithm exposes parseAlgorithm to callers outside this package,
// e.g. a CLI turning an -algorithm flag into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) { return parseAlgorithm(s) }
