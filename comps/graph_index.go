package comps

import (
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
)

// *******************************************
// graph index interface
// *******************************************

type IGraphIndex interface {
	GetClosestNode(point geo.Coord) (int32, bool)
}

//*******************************************
// graph index
//*******************************************

// BaseGraphIndex finds the node with the smallest haversine distance by
// scanning all nodes. Equal distances resolve to the smallest node id.
type BaseGraphIndex struct {
	graph graph.IGraph
}

func NewGraphIndex(g graph.IGraph) IGraphIndex {
	return &BaseGraphIndex{
		graph: g,
	}
}

func (self *BaseGraphIndex) GetClosestNode(point geo.Coord) (int32, bool) {
	best := int32(-1)
	var best_dist float64
	var best_id graph.NodeID
	for i := 0; i < self.graph.NodeCount(); i++ {
		node := self.graph.GetNode(int32(i))
		dist := geo.Distance(point, node.Loc)
		if best == -1 || dist < best_dist || (dist == best_dist && node.ID < best_id) {
			best = int32(i)
			best_dist = dist
			best_id = node.ID
		}
	}
	return best, best != -1
}
