package graph

import (
	"github.com/ttpr0/go-cityroute/geo"
)

//*******************************************
// graph structs
//*******************************************

// NodeID identifies a node across sources. Ties between nodes are broken by
// plain string order.
type NodeID string

type Node struct {
	ID   NodeID
	Kind NodeKind
	// Line and Name are set for STOP nodes only.
	Line string
	Name string
	Loc  geo.Coord
}

// Edge is undirected. NodeA and NodeB are node indices of the owning graph.
type Edge struct {
	NodeA  int32
	NodeB  int32
	Length float64
	Mode   EdgeMode
	// Line is set for BUS edges only.
	Line string
}

//*******************************************
// edgeref struct
//*******************************************

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}

func CreateEdgeRef(edge int32, other int32) EdgeRef {
	return EdgeRef{
		EdgeID:  edge,
		OtherID: other,
	}
}
