package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
	. "github.com/ttpr0/go-cityroute/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// osm street source
//*******************************************

// OSMSource reads walkable ways from an OSM pbf extract.
type OSMSource struct {
	File    string
	Decoder IOSMDecoder
}

func NewOSMSource(file string) *OSMSource {
	return &OSMSource{File: file, Decoder: &WalkingDecoder{}}
}

func (self *OSMSource) FetchStreets(ctx context.Context) (*graph.StreetGraph, error) {
	file, err := os.Open(self.File)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseStreetGraph(ctx, file, self.Decoder)
}

type _TempNode struct {
	Point geo.Coord
	Count int32
	Found bool
}

func OSMNodeID(id int64) graph.NodeID {
	return graph.NodeID("osm/" + strconv.FormatInt(id, 10))
}

// ParseStreetGraph makes three passes over the pbf data: ways to count node
// references, nodes to collect coordinates, ways again to split them into
// edges at every node shared by more than one way or at way ends.
func ParseStreetGraph(ctx context.Context, file io.ReadSeeker, decoder IOSMDecoder) (*graph.StreetGraph, error) {
	osm_nodes := NewDict[int64, _TempNode](1000)
	street := graph.NewStreetGraph()

	passes := []func(*osmpbf.Scanner) error{
		func(scanner *osmpbf.Scanner) error {
			return _InitWayHandler(scanner, decoder, osm_nodes)
		},
		func(scanner *osmpbf.Scanner) error {
			return _NodeHandler(scanner, osm_nodes, street)
		},
		func(scanner *osmpbf.Scanner) error {
			return _WayHandler(scanner, decoder, osm_nodes, street)
		},
	}
	for i, pass := range passes {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		scanner := osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1))
		err := pass(scanner)
		scanner.Close()
		if err != nil {
			return nil, fmt.Errorf("osm pass %d: %w", i+1, err)
		}
	}
	slog.Info("parsed osm street graph", "nodes", street.Nodes.Length(), "edges", street.Edges.Length())
	return street, nil
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, _TempNode]) error {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			for i := 0; i < l; i++ {
				ndref := nodes[i].FeatureID().Ref()
				node := osm_nodes[ndref]
				node.Count += 1
				osm_nodes[ndref] = node
			}
			// way ends always become graph nodes
			for _, ndref := range []int64{nodes[0].FeatureID().Ref(), nodes[l-1].FeatureID().Ref()} {
				node := osm_nodes[ndref]
				node.Count += 1
				osm_nodes[ndref] = node
			}
		default:
			continue
		}
	}
	return scanner.Err()
}

func _NodeHandler(scanner *osmpbf.Scanner, osm_nodes Dict[int64, _TempNode], street *graph.StreetGraph) error {
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := object.FeatureID().Ref()
			on, ok := osm_nodes[id]
			if !ok {
				continue
			}
			on.Point = geo.NewCoord(object.Lat, object.Lon)
			on.Found = true
			osm_nodes[id] = on
			if on.Count > 1 {
				street.AddNode(OSMNodeID(id), on.Point)
			}
		default:
			continue
		}
	}
	return scanner.Err()
}

func _WayHandler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, _TempNode], street *graph.StreetGraph) error {
	c := 0
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes.NodeIDs()
			l := len(nodes)
			if l < 2 {
				continue
			}
			c += 1
			if c%1000 == 0 {
				slog.Debug("processed ways", "count", c)
			}

			start := nodes[0].FeatureID().Ref()
			prev := osm_nodes[start]
			complete := prev.Found
			length := 0.0
			for i := 1; i < l; i++ {
				curr := nodes[i].FeatureID().Ref()
				on := osm_nodes[curr]
				complete = complete && on.Found
				if complete {
					length += geo.Distance(prev.Point, on.Point)
				}
				prev = on
				if on.Count > 1 {
					// segments running outside the extract are dropped
					if complete && curr != start {
						street.AddEdge(OSMNodeID(start), OSMNodeID(curr), length)
					}
					start = curr
					complete = on.Found
					length = 0
				}
			}
		default:
			continue
		}
	}
	return scanner.Err()
}
