package graph

import (
	"fmt"

	"github.com/ttpr0/go-cityroute/geo"
	. "github.com/ttpr0/go-cityroute/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// compose street and transit graph
//*******************************************

type ComposeOption func(*_ComposeOptions)

type _ComposeOptions struct {
	linker IStopLinker
}

// WithStopLinker replaces the default exact nearest intersection scan.
func WithStopLinker(linker IStopLinker) ComposeOption {
	return func(opts *_ComposeOptions) {
		opts.linker = linker
	}
}

// Compose merges the street and transit network into a CityGraph. Street
// nodes become intersections, transit stops keep their line. Every stop is
// linked to its nearest intersection by a bidirectional transfer edge. The
// inputs are not modified.
func Compose(street *StreetGraph, transit *TransitGraph, opts ...ComposeOption) (*CityGraph, error) {
	options := _ComposeOptions{linker: NewScanLinker()}
	for _, opt := range opts {
		opt(&options)
	}
	if street == nil || street.NodeCount() == 0 {
		return nil, fmt.Errorf("%w: street graph has no nodes", ErrEmptyInputGraph)
	}
	if transit == nil || transit.NodeCount() == 0 {
		return nil, fmt.Errorf("%w: transit graph has no stops", ErrEmptyInputGraph)
	}

	intersection_count := street.Nodes.Length()
	stop_count := transit.Stops.Length()
	nodes := NewList[Node](intersection_count + stop_count)
	edges := NewList[Edge](street.Edges.Length() + transit.Hops.Length() + stop_count)
	id_mapping := NewDict[NodeID, int32](intersection_count + stop_count)

	add_node := func(node Node) error {
		if id_mapping.ContainsKey(node.ID) {
			return fmt.Errorf("%w: %q", ErrConflictingNodeID, node.ID)
		}
		id_mapping[node.ID] = int32(nodes.Length())
		nodes.Add(node)
		return nil
	}
	lookup := func(id NodeID) (int32, error) {
		index, ok := id_mapping[id]
		if !ok {
			return -1, fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
		return index, nil
	}

	for _, n := range street.Nodes {
		if err := add_node(Node{ID: n.ID, Kind: INTERSECTION, Loc: n.Loc}); err != nil {
			return nil, err
		}
	}
	for _, s := range transit.Stops {
		if err := add_node(Node{ID: s.ID, Kind: STOP, Line: s.Line, Name: s.Name, Loc: s.Loc}); err != nil {
			return nil, err
		}
	}

	for _, e := range street.Edges {
		a, err := lookup(e.NodeA)
		if err != nil {
			return nil, err
		}
		b, err := lookup(e.NodeB)
		if err != nil {
			return nil, err
		}
		if nodes[a].Kind != INTERSECTION || nodes[b].Kind != INTERSECTION {
			return nil, fmt.Errorf("%w: street edge %q-%q leaves the street graph", ErrUnknownNode, e.NodeA, e.NodeB)
		}
		edges.Add(Edge{NodeA: a, NodeB: b, Length: e.Length, Mode: WALK})
	}
	for _, h := range transit.Hops {
		a, err := lookup(h.NodeA)
		if err != nil {
			return nil, err
		}
		b, err := lookup(h.NodeB)
		if err != nil {
			return nil, err
		}
		if nodes[a].Kind != STOP || nodes[b].Kind != STOP {
			return nil, fmt.Errorf("%w: hop %q-%q leaves the transit graph", ErrUnknownNode, h.NodeA, h.NodeB)
		}
		line := h.Line
		if line == "" {
			line = nodes[a].Line
		}
		edges.Add(Edge{NodeA: a, NodeB: b, Length: h.Length, Mode: BUS, Line: line})
	}

	// intersections occupy indices [0, intersection_count), stops follow
	intersections := Array[Node](nodes[:intersection_count])
	stops := Array[Node](nodes[intersection_count:])
	nearest := options.linker.Link(intersections, stops)
	for i, target := range nearest {
		stop := int32(intersection_count + i)
		length := geo.Distance(nodes[stop].Loc, nodes[target].Loc)
		edges.Add(Edge{NodeA: stop, NodeB: target, Length: length, Mode: TRANSFER})
	}

	slog.Debug("composed city graph",
		"intersections", intersection_count,
		"stops", stop_count,
		"edges", edges.Length(),
		"linker", options.linker.Name(),
	)
	return NewCityGraph(Array[Node](nodes), Array[Edge](edges))
}
