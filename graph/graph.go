package graph

import (
	"errors"
	"fmt"
	"math"

	. "github.com/ttpr0/go-cityroute/util"
)

var (
	ErrConflictingNodeID = errors.New("conflicting node id")
	ErrEmptyInputGraph   = errors.New("empty input graph")
	ErrUnknownNode       = errors.New("edge references unknown node")
	ErrInvalidLength     = errors.New("edge length must be finite and non-negative")
	ErrInvalidMode       = errors.New("unknown edge mode")
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	GetNode(node int32) Node
	GetEdge(edge int32) Edge
	GetNodeIndex(id NodeID) (int32, bool)
}

type IGraphExplorer interface {
	// Iterates through the adjacency of a node calling the callback for every
	// incident edge in edge insertion order.
	ForAdjacentEdges(node int32, callback func(EdgeRef))
	GetOtherNode(edge EdgeRef, node int32) int32
}

//*******************************************
// city graph
//******************************************

var _ IGraph = &CityGraph{}

// CityGraph is the composed walk and bus network. It is never mutated after
// construction and may be shared between goroutines.
type CityGraph struct {
	nodes      Array[Node]
	edges      Array[Edge]
	topology   _Topology
	id_mapping Dict[NodeID, int32]
}

// NewCityGraph validates ids, edge endpoints, lengths and modes and builds
// the adjacency.
func NewCityGraph(nodes Array[Node], edges Array[Edge]) (*CityGraph, error) {
	id_mapping := NewDict[NodeID, int32](nodes.Length())
	for i, node := range nodes {
		if id_mapping.ContainsKey(node.ID) {
			return nil, fmt.Errorf("%w: %q", ErrConflictingNodeID, node.ID)
		}
		id_mapping[node.ID] = int32(i)
	}
	node_count := int32(nodes.Length())
	for i, edge := range edges {
		if edge.NodeA < 0 || edge.NodeA >= node_count || edge.NodeB < 0 || edge.NodeB >= node_count {
			return nil, fmt.Errorf("%w: edge %d (%d-%d)", ErrUnknownNode, i, edge.NodeA, edge.NodeB)
		}
		if !IsValidLength(edge.Length) {
			return nil, fmt.Errorf("%w: edge %d (%q-%q) has length %v", ErrInvalidLength, i, nodes[edge.NodeA].ID, nodes[edge.NodeB].ID, edge.Length)
		}
		if int(edge.Mode) >= len(EDGE_MODES) {
			return nil, fmt.Errorf("%w: edge %d has mode %d", ErrInvalidMode, i, edge.Mode)
		}
	}
	return &CityGraph{
		nodes:      nodes,
		edges:      edges,
		topology:   _BuildTopology(nodes.Length(), edges),
		id_mapping: id_mapping,
	}, nil
}

// IsValidLength reports whether l is usable as an edge length.
func IsValidLength(l float64) bool {
	return l >= 0 && !math.IsInf(l, 1)
}

func (self *CityGraph) GetGraphExplorer() IGraphExplorer {
	return &CityGraphExplorer{graph: self}
}
func (self *CityGraph) NodeCount() int {
	return self.nodes.Length()
}
func (self *CityGraph) EdgeCount() int {
	return self.edges.Length()
}
func (self *CityGraph) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *CityGraph) GetEdge(edge int32) Edge {
	return self.edges[edge]
}
func (self *CityGraph) GetNodeIndex(id NodeID) (int32, bool) {
	index, ok := self.id_mapping[id]
	return index, ok
}

// Nodes returns a copy of the node array in index order.
func (self *CityGraph) Nodes() Array[Node] {
	nodes := NewArray[Node](self.nodes.Length())
	copy(nodes, self.nodes)
	return nodes
}

// Edges returns a copy of the edge array in index order.
func (self *CityGraph) Edges() Array[Edge] {
	edges := NewArray[Edge](self.edges.Length())
	copy(edges, self.edges)
	return edges
}

// CountNodes returns the number of nodes of the given kind.
func (self *CityGraph) CountNodes(kind NodeKind) int {
	count := 0
	for _, node := range self.nodes {
		if node.Kind == kind {
			count += 1
		}
	}
	return count
}

// CountEdges returns the number of edges with the given mode.
func (self *CityGraph) CountEdges(mode EdgeMode) int {
	count := 0
	for _, edge := range self.edges {
		if edge.Mode == mode {
			count += 1
		}
	}
	return count
}

//*******************************************
// graph explorer
//******************************************

type CityGraphExplorer struct {
	graph *CityGraph
}

func (self *CityGraphExplorer) ForAdjacentEdges(node int32, callback func(EdgeRef)) {
	topology := &self.graph.topology
	start := topology.offsets[node]
	end := topology.offsets[node+1]
	for i := start; i < end; i++ {
		edge_id := topology.adjacency[i]
		edge := self.graph.edges[edge_id]
		other := edge.NodeB
		if other == node {
			other = edge.NodeA
		}
		callback(CreateEdgeRef(edge_id, other))
	}
}
func (self *CityGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	e := self.graph.edges[edge.EdgeID]
	if node == e.NodeA {
		return e.NodeB
	}
	if node == e.NodeB {
		return e.NodeA
	}
	return -1
}

//*******************************************
// topology
//******************************************

// _Topology is an adjacency array. The incident edges of node n are
// adjacency[offsets[n]:offsets[n+1]] in edge index order.
type _Topology struct {
	offsets   Array[int32]
	adjacency Array[int32]
}

func _BuildTopology(node_count int, edges Array[Edge]) _Topology {
	offsets := NewArray[int32](node_count + 1)
	for _, edge := range edges {
		offsets[edge.NodeA+1] += 1
		if edge.NodeB != edge.NodeA {
			offsets[edge.NodeB+1] += 1
		}
	}
	for i := 1; i <= node_count; i++ {
		offsets[i] += offsets[i-1]
	}
	fill := NewArray[int32](node_count)
	adjacency := NewArray[int32](int(offsets[node_count]))
	for i, edge := range edges {
		adjacency[offsets[edge.NodeA]+fill[edge.NodeA]] = int32(i)
		fill[edge.NodeA] += 1
		if edge.NodeB != edge.NodeA {
			adjacency[offsets[edge.NodeB]+fill[edge.NodeB]] = int32(i)
			fill[edge.NodeB] += 1
		}
	}
	return _Topology{
		offsets:   offsets,
		adjacency: adjacency,
	}
}
