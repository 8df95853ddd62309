package osmgraph

import "testing"

func TestBuildOptionsOverrideDefaults(t *testing.T) {
	opts := &buildOptions{
		networkType: NetworkDrive,
		weightType:  WeightDistance,
		graphType:   GraphVector,
		config:      DefaultConfig,
	}
	WithNetworkType(NetworkBike)(opts)
	WithWeightType(WeightTime)(opts)
	WithGraphType(GraphDict)(opts)
	WithPrecomputeStates(true)(opts)
	WithLargestConnectedComponentOnly(true)(opts)

	if opts.networkType != NetworkBike {
		t.Fatalf("expected network type bike, got %v", opts.networkType)
	}
	if opts.weightType != WeightTime {
		t.Fatalf("expected weight type time, got %v", opts.weightType)
	}
	if opts.graphType != GraphDict {
		t.Fatalf("expected graph type dict, got %v", opts.graphType)
	}
	if !opts.precomputeStates {
		t.Fatalf("expected precomputeStates true")
	}
	if !opts.largestConnectedComponent {
		t.Fatalf("expected largestConnectedComponent true")
	}
}

func TestParseNetworkTypeUnknown(t *testing.T) {
	if _, err := parseNetworkType("bogus"); err == nil {
		t.Fatalf("expected error for unknown network type")
	}
}

func TestParseWeightTypeKnown(t *testing.T) {
	wt, err := parseWeightType("lane_efficiency")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wt != WeightLaneEfficiency {
		t.Fatalf("expected WeightLaneEfficiency, got %v", wt)
	}
}
