package graph

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-cityroute/geo"
)

var origin = geo.NewCoord(41.3874, 2.1686)

// square street block with 100 m sides and one bus line across it
func buildSquare() (*StreetGraph, *TransitGraph) {
	street := NewStreetGraph()
	street.AddNode("A", origin)
	street.AddNode("B", origin.Offset(0, 100))
	street.AddNode("C", origin.Offset(100, 100))
	street.AddNode("D", origin.Offset(100, 0))
	street.AddEdge("A", "B", 100)
	street.AddEdge("B", "C", 100)
	street.AddEdge("C", "D", 100)
	street.AddEdge("D", "A", 100)

	transit := NewTransitGraph()
	transit.AddStop("S1", origin.Offset(-10, 0), "L1")
	transit.AddStop("S2", origin.Offset(110, 100), "L1")
	transit.AddHop("S1", "S2", 300)
	return street, transit
}

func transferCount(g *CityGraph, node int32) int {
	count := 0
	g.GetGraphExplorer().ForAdjacentEdges(node, func(ref EdgeRef) {
		if g.GetEdge(ref.EdgeID).Mode == TRANSFER {
			count += 1
		}
	})
	return count
}

func TestComposeSquare(t *testing.T) {
	street, transit := buildSquare()
	g, err := Compose(street, transit)
	require.NoError(t, err)

	assert.Equal(t, 6, g.NodeCount())
	assert.Equal(t, 4, g.CountNodes(INTERSECTION))
	assert.Equal(t, 2, g.CountNodes(STOP))
	assert.Equal(t, 4, g.CountEdges(WALK))
	assert.Equal(t, 1, g.CountEdges(BUS))
	assert.Equal(t, 2, g.CountEdges(TRANSFER))

	s1, ok := g.GetNodeIndex("S1")
	require.True(t, ok)
	assert.Equal(t, STOP, g.GetNode(s1).Kind)
	assert.Equal(t, "L1", g.GetNode(s1).Line)

	a, _ := g.GetNodeIndex("A")
	c, _ := g.GetNodeIndex("C")
	s2, _ := g.GetNodeIndex("S2")
	targets := map[int32]int32{}
	for _, e := range g.Edges() {
		if e.Mode == TRANSFER {
			targets[e.NodeA] = e.NodeB
			assert.InDelta(t, 10, e.Length, 0.5)
		}
		if e.Mode == BUS {
			assert.Equal(t, "L1", e.Line)
		}
	}
	assert.Equal(t, a, targets[s1])
	assert.Equal(t, c, targets[s2])
}

func TestComposeEveryStopHasTransfer(t *testing.T) {
	street := NewStreetGraph()
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			street.AddNode(NodeID(fmt.Sprintf("n%d_%d", i, j)), origin.Offset(float64(i)*80, float64(j)*80))
		}
	}
	transit := NewTransitGraph()
	for i := 0; i < 7; i++ {
		transit.AddStop(NodeID(fmt.Sprintf("s%d", i)), origin.Offset(float64(i)*53+7, float64(i)*41+3), "V1")
		if i > 0 {
			transit.AddHop(NodeID(fmt.Sprintf("s%d", i-1)), NodeID(fmt.Sprintf("s%d", i)), 70)
		}
	}

	g, err := Compose(street, transit)
	require.NoError(t, err)
	for i := 0; i < g.NodeCount(); i++ {
		node := g.GetNode(int32(i))
		if node.Kind == STOP {
			assert.GreaterOrEqual(t, transferCount(g, int32(i)), 1, "stop %s", node.ID)
		}
	}
}

func TestComposeTransferTieGoesToFirstIntersection(t *testing.T) {
	street := NewStreetGraph()
	// same position, so both are exactly as far from the stop
	street.AddNode("z", origin.Offset(0, 50))
	street.AddNode("a", origin.Offset(0, 50))
	transit := NewTransitGraph()
	transit.AddStop("s", origin, "L")

	for _, linker := range []IStopLinker{NewScanLinker(), NewQuadtreeLinker(4)} {
		t.Run(linker.Name(), func(t *testing.T) {
			g, err := Compose(street, transit, WithStopLinker(linker))
			require.NoError(t, err)
			edges := g.Edges()
			require.Len(t, edges, 1)
			assert.Equal(t, NodeID("z"), g.GetNode(edges[0].NodeB).ID)
		})
	}
}

func TestComposeErrors(t *testing.T) {
	street, transit := buildSquare()

	_, err := Compose(NewStreetGraph(), transit)
	assert.ErrorIs(t, err, ErrEmptyInputGraph)
	_, err = Compose(street, NewTransitGraph())
	assert.ErrorIs(t, err, ErrEmptyInputGraph)
	_, err = Compose(nil, transit)
	assert.ErrorIs(t, err, ErrEmptyInputGraph)

	clash := NewTransitGraph()
	clash.AddStop("A", origin, "L1")
	_, err = Compose(street, clash)
	assert.ErrorIs(t, err, ErrConflictingNodeID)

	dangling := NewTransitGraph()
	dangling.AddStop("S1", origin, "L1")
	dangling.AddHop("S1", "S9", 10)
	_, err = Compose(street, dangling)
	assert.ErrorIs(t, err, ErrUnknownNode)

	for _, length := range []float64{-500, math.NaN(), math.Inf(1)} {
		bad := NewStreetGraph()
		bad.AddNode("A", origin)
		bad.AddNode("B", origin.Offset(0, 100))
		bad.AddEdge("A", "B", length)
		_, err = Compose(bad, transit)
		assert.ErrorIs(t, err, ErrInvalidLength, "length %v", length)
	}

	negative_hop := NewTransitGraph()
	negative_hop.AddStop("S1", origin, "L1")
	negative_hop.AddStop("S2", origin.Offset(100, 100), "L1")
	negative_hop.AddHop("S1", "S2", -1)
	_, err = Compose(street, negative_hop)
	assert.ErrorIs(t, err, ErrInvalidLength)

	cross := NewTransitGraph()
	cross.AddStop("S1", origin, "L1")
	cross.AddHop("S1", "A", 10)
	_, err = Compose(street, cross)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestComposeDoesNotMutateInputs(t *testing.T) {
	street, transit := buildSquare()
	street_nodes := append(StreetGraph{}.Nodes, street.Nodes...)
	hops := append(TransitGraph{}.Hops, transit.Hops...)

	_, err := Compose(street, transit)
	require.NoError(t, err)
	assert.Equal(t, street_nodes, street.Nodes)
	assert.Equal(t, hops, transit.Hops)
}

func TestComposeIdempotent(t *testing.T) {
	street, transit := buildSquare()
	g1, err := Compose(street, transit)
	require.NoError(t, err)
	g2, err := Compose(street, transit)
	require.NoError(t, err)

	assert.ElementsMatch(t, g1.Nodes(), g2.Nodes())
	assert.ElementsMatch(t, g1.Edges(), g2.Edges())
}

func TestHopLineOverridesStopLine(t *testing.T) {
	street, _ := buildSquare()
	transit := NewTransitGraph()
	transit.AddStop("S1", origin, "L1")
	transit.AddStop("S2", origin.Offset(100, 0), "L1")
	transit.Hops.Add(Hop{NodeA: "S1", NodeB: "S2", Length: 100, Line: "L1b"})

	g, err := Compose(street, transit)
	require.NoError(t, err)
	for _, e := range g.Edges() {
		if e.Mode == BUS {
			assert.Equal(t, "L1b", e.Line)
		}
	}
}

func TestQuadtreeLinkerMatchesScan(t *testing.T) {
	intersections := make([]Node, 0, 100)
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			intersections = append(intersections, Node{
				ID:  NodeID(fmt.Sprintf("n%d", i*10+j)),
				Loc: origin.Offset(float64(i)*97, float64(j)*113),
			})
		}
	}
	stops := make([]Node, 0, 20)
	for i := 0; i < 20; i++ {
		stops = append(stops, Node{
			ID:   NodeID(fmt.Sprintf("s%d", i)),
			Kind: STOP,
			Loc:  origin.Offset(float64(i)*41+13, float64(i)*37+29),
		})
	}

	scan := NewScanLinker().Link(intersections, stops)
	quad := NewQuadtreeLinker(8).Link(intersections, stops)
	assert.Equal(t, scan, quad)
}

func TestExplorerAdjacencyOrder(t *testing.T) {
	street, transit := buildSquare()
	g, err := Compose(street, transit)
	require.NoError(t, err)

	a, _ := g.GetNodeIndex("A")
	explorer := g.GetGraphExplorer()
	others := []NodeID{}
	explorer.ForAdjacentEdges(a, func(ref EdgeRef) {
		assert.Equal(t, ref.OtherID, explorer.GetOtherNode(ref, a))
		others = append(others, g.GetNode(ref.OtherID).ID)
	})
	// edge insertion order: A-B, D-A, then the transfer from S1
	assert.Equal(t, []NodeID{"B", "D", "S1"}, others)
}

func TestNewCityGraphValidates(t *testing.T) {
	nodes := []Node{{ID: "a"}, {ID: "b"}}
	_, err := NewCityGraph(nodes, []Edge{{NodeA: 0, NodeB: 2}})
	assert.ErrorIs(t, err, ErrUnknownNode)

	_, err = NewCityGraph([]Node{{ID: "a"}, {ID: "a"}}, nil)
	assert.ErrorIs(t, err, ErrConflictingNodeID)

	_, err = NewCityGraph(nodes, []Edge{{NodeA: 0, NodeB: 1, Length: -5}})
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = NewCityGraph(nodes, []Edge{{NodeA: 0, NodeB: 1, Length: math.NaN()}})
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = NewCityGraph(nodes, []Edge{{NodeA: 0, NodeB: 1, Length: 5, Mode: EdgeMode(7)}})
	assert.ErrorIs(t, err, ErrInvalidMode)

	g, err := NewCityGraph(nodes, []Edge{{NodeA: 0, NodeB: 1, Length: 5}})
	require.NoError(t, err)
	_, ok := g.GetNodeIndex("c")
	assert.False(t, ok)
}
