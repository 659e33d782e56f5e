package routing

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
	"github.com/ttpr0/go-cityroute/itinerary"
)

var (
	ErrUnreachableCoordinate = errors.New("coordinate cannot be snapped to the graph")
	ErrNoPath                = errors.New("no path between source and destination")
)

//*******************************************
// route planner
//*******************************************

type PlannerOption func(*RoutePlanner)

// WithWeighting sets the search metric. Leg durations are always travel times.
func WithWeighting(weight comps.IWeighting) PlannerOption {
	return func(p *RoutePlanner) {
		p.weight = weight
	}
}

// WithIndex replaces the nearest node lookup used for snapping.
func WithIndex(index comps.IGraphIndex) PlannerOption {
	return func(p *RoutePlanner) {
		p.index = index
	}
}

// RoutePlanner holds no per-request state and can serve concurrent requests
// over the same graph.
type RoutePlanner struct {
	graph  graph.IGraph
	cost   *comps.CostModel
	weight comps.IWeighting
	index  comps.IGraphIndex
}

func NewRoutePlanner(g graph.IGraph, cost *comps.CostModel, opts ...PlannerOption) *RoutePlanner {
	p := &RoutePlanner{
		graph:  g,
		cost:   cost,
		weight: cost,
		index:  comps.NewGraphIndex(g),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (self *RoutePlanner) Graph() graph.IGraph {
	return self.graph
}

// Snap maps a coordinate to the nearest node, ties to the smallest node id.
func (self *RoutePlanner) Snap(c geo.Coord) (int32, error) {
	node, ok := self.index.GetClosestNode(c)
	if !ok {
		return -1, fmt.Errorf("%w: %v", ErrUnreachableCoordinate, c)
	}
	return node, nil
}

// FindPath snaps both coordinates and runs the shortest path search.
func (self *RoutePlanner) FindPath(src, dst geo.Coord) (Path, error) {
	start, err := self.Snap(src)
	if err != nil {
		return Path{}, err
	}
	end, err := self.Snap(dst)
	if err != nil {
		return Path{}, err
	}
	var alg IShortestPath = NewDijkstra(self.graph, self.weight, start, end)
	if !alg.CalcShortestPath() {
		return Path{}, fmt.Errorf("%w: %q to %q", ErrNoPath, self.graph.GetNode(start).ID, self.graph.GetNode(end).ID)
	}
	return alg.GetShortestPath(), nil
}

// Plan returns the itinerary between two coordinates. When both snap to the
// same node the itinerary has no legs and takes no time.
func (self *RoutePlanner) Plan(src, dst geo.Coord) (itinerary.Itinerary, error) {
	path, err := self.FindPath(src, dst)
	if err != nil {
		return itinerary.Itinerary{}, err
	}
	if path.Length() < 2 {
		return itinerary.Itinerary{Legs: []itinerary.Leg{}}, nil
	}
	return itinerary.BuildWithEdges(self.graph, self.cost, path.Nodes, path.Edges)
}

// Plan is a one-off shortcut for NewRoutePlanner(g, cost).Plan(src, dst).
func Plan(g graph.IGraph, cost *comps.CostModel, src, dst geo.Coord) (itinerary.Itinerary, error) {
	return NewRoutePlanner(g, cost).Plan(src, dst)
}
