package parser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
)

//*******************************************
// node-link json street source
//*******************************************

type _NodeLinkNode struct {
	ID _FlexString `json:"id"`
	X  _FlexFloat  `json:"x"`
	Y  _FlexFloat  `json:"y"`
}

type _NodeLinkLink struct {
	Source _FlexString `json:"source"`
	Target _FlexString `json:"target"`
	Length *_FlexFloat `json:"length"`
}

type _NodeLinkGraph struct {
	Nodes []_NodeLinkNode `json:"nodes"`
	Links []_NodeLinkLink `json:"links"`
}

// NodeLinkSource reads a street graph in node-link json (nodes with id, x as
// longitude and y as latitude; links with source, target and optional length
// in meters). Links without a length get the straight line distance.
type NodeLinkSource struct {
	Location string
	Prefix   string
}

func NewNodeLinkSource(location string) *NodeLinkSource {
	return &NodeLinkSource{Location: location}
}

func (self *NodeLinkSource) FetchStreets(ctx context.Context) (*graph.StreetGraph, error) {
	data, err := _ReadSource(ctx, nil, self.Location)
	if err != nil {
		return nil, err
	}
	return ParseNodeLink(data, self.Prefix)
}

func ParseNodeLink(data []byte, prefix string) (*graph.StreetGraph, error) {
	var raw _NodeLinkGraph
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode node-link graph: %w", err)
	}
	street := graph.NewStreetGraph()
	locs := make(map[graph.NodeID]geo.Coord, len(raw.Nodes))
	for _, n := range raw.Nodes {
		id := graph.NodeID(prefix + string(n.ID))
		loc := geo.NewCoord(float64(n.Y), float64(n.X))
		locs[id] = loc
		street.AddNode(id, loc)
	}
	for _, l := range raw.Links {
		a := graph.NodeID(prefix + string(l.Source))
		b := graph.NodeID(prefix + string(l.Target))
		var length float64
		if l.Length != nil {
			length = float64(*l.Length)
		} else {
			loc_a, ok_a := locs[a]
			loc_b, ok_b := locs[b]
			if !ok_a || !ok_b {
				return nil, fmt.Errorf("%w: link %q-%q", graph.ErrUnknownNode, a, b)
			}
			length = geo.Distance(loc_a, loc_b)
		}
		if !graph.IsValidLength(length) {
			return nil, fmt.Errorf("%w: link %q-%q has length %v", graph.ErrInvalidLength, a, b, length)
		}
		street.AddEdge(a, b, length)
	}
	return street, nil
}
