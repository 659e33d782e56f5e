package graph

import (
	"github.com/ttpr0/go-cityroute/geo"
	. "github.com/ttpr0/go-cityroute/util"
)

//*******************************************
// street graph
//*******************************************

type StreetNode struct {
	ID  NodeID
	Loc geo.Coord
}

type StreetEdge struct {
	NodeA  NodeID
	NodeB  NodeID
	Length float64
}

// StreetGraph is the pedestrian network as delivered by a map source.
type StreetGraph struct {
	Nodes List[StreetNode]
	Edges List[StreetEdge]
}

func NewStreetGraph() *StreetGraph {
	return &StreetGraph{
		Nodes: NewList[StreetNode](100),
		Edges: NewList[StreetEdge](100),
	}
}

func (self *StreetGraph) AddNode(id NodeID, loc geo.Coord) {
	self.Nodes.Add(StreetNode{ID: id, Loc: loc})
}
func (self *StreetGraph) AddEdge(a, b NodeID, length float64) {
	self.Edges.Add(StreetEdge{NodeA: a, NodeB: b, Length: length})
}
func (self *StreetGraph) NodeCount() int {
	return self.Nodes.Length()
}

//*******************************************
// transit graph
//*******************************************

type Stop struct {
	ID   NodeID
	Loc  geo.Coord
	Line string
	// Name is a display name such as the stop address.
	Name string
}

// Hop joins two consecutive stops of a line. An empty Line means the line of
// stop NodeA.
type Hop struct {
	NodeA  NodeID
	NodeB  NodeID
	Length float64
	Line   string
}

// TransitGraph is the bus network as delivered by a transit source.
type TransitGraph struct {
	Stops List[Stop]
	Hops  List[Hop]
}

func NewTransitGraph() *TransitGraph {
	return &TransitGraph{
		Stops: NewList[Stop](100),
		Hops:  NewList[Hop](100),
	}
}

func (self *TransitGraph) AddStop(id NodeID, loc geo.Coord, line string) {
	self.Stops.Add(Stop{ID: id, Loc: loc, Line: line})
}
func (self *TransitGraph) AddHop(a, b NodeID, length float64) {
	self.Hops.Add(Hop{NodeA: a, NodeB: b, Length: length})
}
func (self *TransitGraph) NodeCount() int {
	return self.Stops.Length()
}
