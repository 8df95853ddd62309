package osmgraph

import "log/slog"

// WithNetworkType selects which ways BuildGraph retains (§4.2, §6).
func WithNetworkType(nt NetworkType) func(*buildOptions) {
	return func(o *buildOptions) { o.networkType = nt }
}

// WithWeightType selects the edge-cost formula (§4.3).
func WithWeightType(wt WeightType) func(*buildOptions) {
	return func(o *buildOptions) { o.weightType = wt }
}

// WithGraphType selects the Vector/Dict storage strategy the routing
// core and Dijkstra-state cache use (§4.7).
func WithGraphType(gt GraphType) func(*buildOptions) {
	return func(o *buildOptions) { o.graphType = gt }
}

// WithPrecomputeStates runs PrecomputeDijkstraStates for every vertex
// as part of BuildGraph, matching §6's `precompute_states` parameter.
func WithPrecomputeStates(enabled bool) func(*buildOptions) {
	return func(o *buildOptions) { o.precomputeStates = enabled }
}

// WithLargestConnectedComponentOnly runs Trim as part of BuildGraph,
// matching §6's `largest_connected_component_only` parameter.
func WithLargestConnectedComponentOnly(enabled bool) func(*buildOptions) {
	return func(o *buildOptions) { o.largestConnectedComponent = enabled }
}

// WithConfig overrides the process-wide DefaultConfig for this build
// (§6: "reading during a build captures the current value").
func WithConfig(cfg *Config) func(*buildOptions) {
	return func(o *buildOptions) { o.config = cfg }
}

// WithLogger overrides the slog.Logger BuildGraph reports progress to.
func WithLogger(logger *slog.Logger) func(*buildOptions) {
	return func(o *buildOptions) { o.logger = logger }
}
