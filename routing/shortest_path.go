package routing

import (
	"github.com/ttpr0/go-cityroute/graph"
)

type IShortestPath interface {
	CalcShortestPath() bool
	GetShortestPath() Path
}

// Path is a node sequence together with the edges joining consecutive nodes.
// len(Edges) == len(Nodes)-1 for every path returned by a search.
type Path struct {
	Nodes  []graph.NodeID
	Edges  []int32
	Weight float64
}

func (self Path) Length() int {
	return len(self.Nodes)
}
