package osmgraph

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

// osmScanner is the common surface of osmxml.Scanner and osmpbf.Scanner
// (ported from the teacher's OSMScanner, osm_raw.go), letting the three
// passes below share one file-extension dispatch.
type osmScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

func newScanner(ctx context.Context, filename string, f *os.File) (osmScanner, error) {
	switch ext := filepath.Ext(filename); ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, f), nil
	case ".pbf":
		return osmpbf.New(ctx, f, 4), nil
	default:
		return nil, fmt.Errorf("osmgraph: unhandled file extension %q for %q", ext, filename)
	}
}

// rawOSM is everything the raw-file reader extracts before network-type
// filtering and tag normalization run (§4.2 procedure operates on this).
type rawOSM struct {
	nodes     map[osm.NodeID]*osm.Node
	ways      []*osm.Way
	relations []*osm.Relation
}

// readOSMFile scans an .osm/.xml or .pbf file three times (ways, nodes,
// relations), matching the teacher's three-pass readOSM (osm_raw.go):
// the node pass only keeps nodes referenced by some way, and a single
// sequential scanner can't look ahead, so the file is reopened/seeked
// between passes instead of buffering every node up front.
func readOSMFile(filename string, logger *slog.Logger) (*rawOSM, error) {
	logger.Info("opening osm file", "path", filename)
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "osmgraph: open osm file")
	}
	defer file.Close()

	ctx := context.Background()

	ways, nodesSeen, err := scanWays(ctx, filename, file)
	if err != nil {
		return nil, errors.Wrap(err, "osmgraph: scan ways")
	}
	logger.Info("scanned ways", "count", len(ways))

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "osmgraph: seek before node scan")
	}
	nodes, err := scanNodes(ctx, filename, file, nodesSeen)
	if err != nil {
		return nil, errors.Wrap(err, "osmgraph: scan nodes")
	}
	logger.Info("scanned nodes", "count", len(nodes))

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "osmgraph: seek before relation scan")
	}
	relations, err := scanRelations(ctx, filename, file)
	if err != nil {
		return nil, errors.Wrap(err, "osmgraph: scan relations")
	}
	logger.Info("scanned relations", "count", len(relations))

	return &rawOSM{nodes: nodes, ways: ways, relations: relations}, nil
}

func scanWays(ctx context.Context, filename string, file *os.File) ([]*osm.Way, map[osm.NodeID]struct{}, error) {
	scanner, err := newScanner(ctx, filename, file)
	if err != nil {
		return nil, nil, err
	}
	defer scanner.Close()

	var ways []*osm.Way
	seen := make(map[osm.NodeID]struct{})
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		ways = append(ways, way)
		for _, n := range way.Nodes {
			seen[n.ID] = struct{}{}
		}
	}
	return ways, seen, scanner.Err()
}

func scanNodes(ctx context.Context, filename string, file *os.File, wanted map[osm.NodeID]struct{}) (map[osm.NodeID]*osm.Node, error) {
	scanner, err := newScanner(ctx, filename, file)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	nodes := make(map[osm.NodeID]*osm.Node, len(wanted))
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := wanted[node.ID]; ok {
			nodes[node.ID] = node
		}
	}
	return nodes, scanner.Err()
}

func scanRelations(ctx context.Context, filename string, file *os.File) ([]*osm.Relation, error) {
	scanner, err := newScanner(ctx, filename, file)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	var relations []*osm.Relation
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "relation" {
			continue
		}
		relation := obj.(*osm.Relation)
		if _, ok := relation.TagMap()["restriction"]; !ok {
			continue
		}
		relations = append(relations, relation)
	}
	return relations, scanner.Err()
}
