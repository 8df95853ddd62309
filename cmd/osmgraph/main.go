package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-osmgraph/osmgraph"
)

var (
	osmFileName = flag.String("file", "my_graph.osm.pbf", "Filename of *.osm/*.osm.xml/*.osm.pbf file")
	networkType = flag.String("network", "drive", "Network type: drive/drive_service/walk/bike/all/all_private/none/rail/drive_mainroads")
	weightType  = flag.String("weight", "distance", "Weight type: distance/time/lane_efficiency")
	largestOnly = flag.Bool("largest-component", true, "Trim to the largest connected component")
	precompute  = flag.Bool("precompute", false, "Precompute Dijkstra states for every vertex")
	fromNode    = flag.Int64("from", 0, "Origin node id for a test shortest_path query")
	toNode      = flag.Int64("to", 0, "Destination node id for a test shortest_path query")
	geomFormat  = flag.String("geomf", "wkt", "Format of printed geometry: wkt/geojson")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	nt, err := osmgraph.ParseNetworkType(*networkType)
	if err != nil {
		logger.Error("parse network type", "error", err)
		os.Exit(1)
	}
	wt, err := osmgraph.ParseWeightType(*weightType)
	if err != nil {
		logger.Error("parse weight type", "error", err)
		os.Exit(1)
	}

	g, err := osmgraph.LoadGraph(*osmFileName, logger,
		osmgraph.WithNetworkType(nt),
		osmgraph.WithWeightType(wt),
		osmgraph.WithLargestConnectedComponentOnly(*largestOnly),
		osmgraph.WithPrecomputeStates(*precompute),
		osmgraph.WithLogger(logger),
	)
	if err != nil {
		logger.Error("build graph", "error", err)
		os.Exit(1)
	}
	logger.Info("graph built", "vertices", g.VertexCount())

	if *fromNode == 0 || *toNode == 0 {
		return
	}

	path, err := osmgraph.ShortestPath(g, osmgraph.DijkstraVector, osmgraph.NodeID(*fromNode), osmgraph.NodeID(*toNode))
	if err != nil {
		logger.Error("shortest path", "error", err)
		os.Exit(1)
	}
	if path == nil {
		fmt.Println("no path found")
		return
	}
	logger.Info("shortest path found", "hops", len(path)-1, "total_weight", osmgraph.TotalPathWeight(g, path))

	locs := make([]osmgraph.GeoLocation, len(path))
	for i, id := range path {
		node, _ := g.Node(id)
		locs[i] = node.Location
	}
	if *geomFormat == "geojson" {
		b, err := osmgraph.LinestringGeoJSON(locs)
		if err != nil {
			logger.Error("render geojson", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}
	fmt.Println(osmgraph.LinestringWKT(locs))
}
