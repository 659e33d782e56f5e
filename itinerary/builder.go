package itinerary

import (
	"fmt"

	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
)

//*******************************************
// itinerary builder
//*******************************************

type _LegKey struct {
	mode graph.EdgeMode
	line string
}

func _KeyOf(edge graph.Edge) _LegKey {
	if edge.Mode == graph.BUS {
		return _LegKey{mode: edge.Mode, line: edge.Line}
	}
	return _LegKey{mode: edge.Mode}
}

// Build groups a node path into legs. Between two consecutive nodes the
// edge with the lowest travel time is used, ties to the lowest edge index.
func Build(g graph.IGraph, cost *comps.CostModel, path []graph.NodeID) (Itinerary, error) {
	if len(path) < 2 {
		return Itinerary{}, ErrEmptyPath
	}
	nodes, err := _ResolveNodes(g, path)
	if err != nil {
		return Itinerary{}, err
	}
	explorer := g.GetGraphExplorer()
	edges := make([]int32, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		best := int32(-1)
		best_time := 0.0
		explorer.ForAdjacentEdges(nodes[i], func(ref graph.EdgeRef) {
			if ref.OtherID != nodes[i+1] {
				return
			}
			t := cost.TimeSeconds(g.GetEdge(ref.EdgeID))
			if best == -1 || t < best_time || (t == best_time && ref.EdgeID < best) {
				best = ref.EdgeID
				best_time = t
			}
		})
		if best == -1 {
			return Itinerary{}, fmt.Errorf("%w: %q-%q", ErrNoEdge, path[i], path[i+1])
		}
		edges[i] = best
	}
	return _Segment(g, cost, nodes, edges), nil
}

// BuildWithEdges groups a path whose joining edges are already known, as
// returned by a shortest path search.
func BuildWithEdges(g graph.IGraph, cost *comps.CostModel, path []graph.NodeID, edges []int32) (Itinerary, error) {
	if len(path) < 2 {
		return Itinerary{}, ErrEmptyPath
	}
	if len(edges) != len(path)-1 {
		return Itinerary{}, fmt.Errorf("%w: %d nodes but %d edges", ErrNoEdge, len(path), len(edges))
	}
	nodes, err := _ResolveNodes(g, path)
	if err != nil {
		return Itinerary{}, err
	}
	for i, edge_id := range edges {
		if edge_id < 0 || int(edge_id) >= g.EdgeCount() {
			return Itinerary{}, fmt.Errorf("%w: edge %d out of range", ErrNoEdge, edge_id)
		}
		e := g.GetEdge(edge_id)
		a, b := nodes[i], nodes[i+1]
		if !((e.NodeA == a && e.NodeB == b) || (e.NodeA == b && e.NodeB == a)) {
			return Itinerary{}, fmt.Errorf("%w: edge %d does not join %q-%q", ErrNoEdge, edge_id, path[i], path[i+1])
		}
	}
	return _Segment(g, cost, nodes, edges), nil
}

func _ResolveNodes(g graph.IGraph, path []graph.NodeID) ([]int32, error) {
	nodes := make([]int32, len(path))
	for i, id := range path {
		index, ok := g.GetNodeIndex(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", graph.ErrUnknownNode, id)
		}
		nodes[i] = index
	}
	return nodes, nil
}

func _Segment(g graph.IGraph, cost *comps.CostModel, nodes []int32, edges []int32) Itinerary {
	legs := make([]Leg, 0, 4)
	var curr *Leg
	var curr_key _LegKey
	for i, edge_id := range edges {
		edge := g.GetEdge(edge_id)
		key := _KeyOf(edge)
		if curr == nil || key != curr_key {
			start := g.GetNode(nodes[i])
			legs = append(legs, Leg{
				Mode:   key.mode,
				Line:   key.line,
				Nodes:  []graph.NodeID{start.ID},
				Coords: []geo.Coord{start.Loc},
			})
			curr = &legs[len(legs)-1]
			curr_key = key
		}
		next := g.GetNode(nodes[i+1])
		t := cost.TimeSeconds(edge)
		curr.Nodes = append(curr.Nodes, next.ID)
		curr.Coords = append(curr.Coords, next.Loc)
		curr.Duration += t
		curr.Distance += edge.Length
	}
	// totals are the sums over legs, not over edges
	total_duration := 0.0
	total_distance := 0.0
	for _, leg := range legs {
		total_duration += leg.Duration
		total_distance += leg.Distance
	}
	return Itinerary{
		Legs:          legs,
		TotalDuration: total_duration,
		TotalDistance: total_distance,
	}
}
