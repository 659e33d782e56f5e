package routing

import (
	"math"
	"sort"

	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
	. "github.com/ttpr0/go-cityroute/util"
)

type PQItem struct {
	item int32
	dist float64
}

// CalcRangeDijkstra returns the weight from start to every node, +Inf for
// nodes further than max_range or not connected.
func CalcRangeDijkstra(g graph.IGraph, weight comps.IWeighting, start int32, max_range float64) Array[float64] {
	dists := NewArray[float64](g.NodeCount())
	for i := 0; i < dists.Length(); i++ {
		dists[i] = math.Inf(1)
	}
	heap := NewPriorityQueue[PQItem, float64](100)
	explorer := g.GetGraphExplorer()

	dists[start] = 0
	heap.Enqueue(PQItem{start, 0}, 0)
	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_dist := curr_item.dist
		if dists[curr_id] < curr_dist {
			continue
		}
		explorer.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			new_length := curr_dist + weight.GetEdgeWeight(g.GetEdge(ref.EdgeID))
			if new_length > max_range {
				return
			}
			if dists[other_id] > new_length {
				dists[other_id] = new_length
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
	return dists
}

// ConnectedComponents labels every node with the index of its component.
// Components are numbered in order of their smallest node index.
func ConnectedComponents(g graph.IGraph) Array[int32] {
	groups := NewArray[int32](g.NodeCount())
	for i := 0; i < groups.Length(); i++ {
		groups[i] = -1
	}
	explorer := g.GetGraphExplorer()
	stack := NewList[int32](100)
	var group int32 = 0
	for i := 0; i < g.NodeCount(); i++ {
		if groups[i] != -1 {
			continue
		}
		groups[i] = group
		stack = append(stack[:0], int32(i))
		for stack.Length() > 0 {
			curr_id := stack.Last()
			stack = stack[:stack.Length()-1]
			explorer.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
				if groups[ref.OtherID] == -1 {
					groups[ref.OtherID] = group
					stack.Add(ref.OtherID)
				}
			})
		}
		group += 1
	}
	return groups
}

//*******************************************
// reachable stops
//*******************************************

type ReachableStop struct {
	ID       graph.NodeID `json:"id"`
	Name     string       `json:"name"`
	Line     string       `json:"line"`
	Loc      geo.Coord    `json:"loc"`
	Duration float64      `json:"duration"`
}

// ReachableStops lists the stops within max_seconds of travel from src,
// closest first, ties by node id.
func (self *RoutePlanner) ReachableStops(src geo.Coord, max_seconds float64) ([]ReachableStop, error) {
	start, err := self.Snap(src)
	if err != nil {
		return nil, err
	}
	dists := CalcRangeDijkstra(self.graph, self.cost, start, max_seconds)
	stops := make([]ReachableStop, 0, 10)
	for i, dist := range dists {
		node := self.graph.GetNode(int32(i))
		if node.Kind != graph.STOP || math.IsInf(dist, 1) {
			continue
		}
		stops = append(stops, ReachableStop{
			ID:       node.ID,
			Name:     node.Name,
			Line:     node.Line,
			Loc:      node.Loc,
			Duration: dist,
		})
	}
	sort.Slice(stops, func(i, j int) bool {
		if stops[i].Duration != stops[j].Duration {
			return stops[i].Duration < stops[j].Duration
		}
		return stops[i].ID < stops[j].ID
	})
	return stops, nil
}
