package routing

import (
	"math"

	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/graph"
	. "github.com/ttpr0/go-cityroute/util"
	"golang.org/x/exp/slog"
)

type flag_d struct {
	path_length float64
	prev_edge   int32
	visited     bool
}

// Dijkstra is a one-to-one search over an undirected graph.
//
// Among equally short paths the result is the one found first in the natural
// relaxation order: nodes settle by (distance, enqueue order), incident edges
// are relaxed in edge insertion order and a label only improves on a strictly
// smaller distance. For a fixed graph build the result is deterministic, but
// it depends on the order edges were added and is not tied to node ids.
type Dijkstra struct {
	heap     PriorityQueue[int32, float64]
	start_id int32
	end_id   int32
	graph    graph.IGraph
	weight   comps.IWeighting
	flags    []flag_d
}

func NewDijkstra(g graph.IGraph, weight comps.IWeighting, start, end int32) *Dijkstra {
	d := Dijkstra{graph: g, weight: weight, start_id: start, end_id: end}

	flags := make([]flag_d, g.NodeCount())
	for i := 0; i < len(flags); i++ {
		flags[i].path_length = math.Inf(1)
		flags[i].prev_edge = -1
	}
	flags[start].path_length = 0
	d.flags = flags

	heap := NewPriorityQueue[int32, float64](100)
	heap.Enqueue(d.start_id, 0)
	d.heap = heap

	return &d
}

func (self *Dijkstra) CalcShortestPath() bool {
	explorer := self.graph.GetGraphExplorer()

	for {
		curr_id, ok := self.heap.Dequeue()
		if !ok {
			return false
		}
		if curr_id == self.end_id {
			return true
		}
		curr_flag := self.flags[curr_id]
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		self.flags[curr_id] = curr_flag
		explorer.ForAdjacentEdges(curr_id, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			other_flag := self.flags[other_id]
			if other_flag.visited {
				return
			}
			edge_weight := self.weight.GetEdgeWeight(self.graph.GetEdge(ref.EdgeID))
			new_length := curr_flag.path_length + edge_weight
			if other_flag.path_length > new_length {
				other_flag.prev_edge = ref.EdgeID
				other_flag.path_length = new_length
				self.heap.Enqueue(other_id, new_length)
			}
			self.flags[other_id] = other_flag
		})
	}
}

// GetShortestPath walks the predecessor edges back from the end node. Only
// valid after CalcShortestPath returned true.
func (self *Dijkstra) GetShortestPath() Path {
	explorer := self.graph.GetGraphExplorer()

	nodes := NewList[graph.NodeID](10)
	edges := NewList[int32](10)
	length := self.flags[self.end_id].path_length
	curr_id := self.end_id
	nodes.Add(self.graph.GetNode(curr_id).ID)
	for curr_id != self.start_id {
		edge_id := self.flags[curr_id].prev_edge
		edges.Add(edge_id)
		curr_id = explorer.GetOtherNode(graph.CreateEdgeRef(edge_id, -1), curr_id)
		nodes.Add(self.graph.GetNode(curr_id).ID)
	}
	nodes.Reverse()
	edges.Reverse()
	slog.Debug("shortest path found", "nodes", nodes.Length(), "weight", length)
	return Path{
		Nodes:  nodes,
		Edges:  edges,
		Weight: length,
	}
}
