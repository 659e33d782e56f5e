package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
)

var origin = geo.NewCoord(41.3874, 2.1686)

// buildSquare returns a 100 m street square A-B-C-D with stop S1 next to A
// and stop S2 next to C, joined by a 300 m bus hop. Walking A to C takes
// 144 s, the bus trip with both transfers about 68 s.
func buildSquare(t *testing.T) *graph.CityGraph {
	street := graph.NewStreetGraph()
	street.AddNode("A", origin)
	street.AddNode("B", origin.Offset(0, 100))
	street.AddNode("C", origin.Offset(100, 100))
	street.AddNode("D", origin.Offset(100, 0))
	street.AddEdge("A", "B", 100)
	street.AddEdge("B", "C", 100)
	street.AddEdge("C", "D", 100)
	street.AddEdge("D", "A", 100)
	street.AddNode("X", origin.Offset(5000, 5000))

	transit := graph.NewTransitGraph()
	transit.AddStop("S1", origin.Offset(-10, 0), "L1")
	transit.AddStop("S2", origin.Offset(110, 100), "L1")
	transit.AddHop("S1", "S2", 300)

	g, err := graph.Compose(street, transit)
	require.NoError(t, err)
	return g
}

func coordOf(t *testing.T, g *graph.CityGraph, id graph.NodeID) geo.Coord {
	index, ok := g.GetNodeIndex(id)
	require.True(t, ok)
	return g.GetNode(index).Loc
}

func TestPlanPrefersFasterBus(t *testing.T) {
	g := buildSquare(t)
	planner := NewRoutePlanner(g, comps.DefaultCostModel())

	path, err := planner.FindPath(coordOf(t, g, "A"), coordOf(t, g, "C"))
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeID{"A", "S1", "S2", "C"}, path.Nodes)
	assert.Len(t, path.Edges, 3)
	assert.InDelta(t, 68.4, path.Weight, 0.5)

	it, err := planner.Plan(coordOf(t, g, "A"), coordOf(t, g, "C"))
	require.NoError(t, err)
	require.Len(t, it.Legs, 3)
	assert.Equal(t, graph.TRANSFER, it.Legs[0].Mode)
	assert.Equal(t, graph.BUS, it.Legs[1].Mode)
	assert.Equal(t, "L1", it.Legs[1].Line)
	assert.Equal(t, graph.TRANSFER, it.Legs[2].Mode)
	assert.InDelta(t, path.Weight, it.TotalDuration, 1e-9)
	assert.Less(t, it.TotalDuration, 144.0)
	assert.Equal(t, path.Nodes, it.Path())
}

func TestPlanDistanceMetricWalks(t *testing.T) {
	g := buildSquare(t)
	planner := NewRoutePlanner(g, comps.DefaultCostModel(), WithWeighting(comps.NewDistanceWeighting()))

	it, err := planner.Plan(coordOf(t, g, "A"), coordOf(t, g, "C"))
	require.NoError(t, err)
	require.Len(t, it.Legs, 1)
	assert.Equal(t, graph.WALK, it.Legs[0].Mode)
	assert.InDelta(t, 200, it.TotalDistance, 1e-9)
	assert.InDelta(t, 144, it.TotalDuration, 1e-9)
}

func TestPlanTieFollowsRelaxationOrder(t *testing.T) {
	g := buildSquare(t)
	planner := NewRoutePlanner(g, comps.DefaultCostModel(), WithWeighting(comps.NewDistanceWeighting()))

	// A-B-C and A-D-C are both 200 m. B is relaxed first from A because
	// edge A-B was added before D-A, and C keeps its first label.
	for i := 0; i < 5; i++ {
		path, err := planner.FindPath(coordOf(t, g, "A"), coordOf(t, g, "C"))
		require.NoError(t, err)
		assert.Equal(t, []graph.NodeID{"A", "B", "C"}, path.Nodes)
	}
}

func TestPlanSameSnapNode(t *testing.T) {
	g := buildSquare(t)
	planner := NewRoutePlanner(g, comps.DefaultCostModel())

	a := coordOf(t, g, "A")
	it, err := planner.Plan(a.Offset(1, 0), a.Offset(0, 1))
	require.NoError(t, err)
	assert.Empty(t, it.Legs)
	assert.Zero(t, it.TotalDuration)
}

func TestPlanDisconnected(t *testing.T) {
	g := buildSquare(t)
	planner := NewRoutePlanner(g, comps.DefaultCostModel())

	_, err := planner.Plan(coordOf(t, g, "A"), coordOf(t, g, "X"))
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestPlanEmptyGraph(t *testing.T) {
	g, err := graph.NewCityGraph(nil, nil)
	require.NoError(t, err)

	_, err = Plan(g, comps.DefaultCostModel(), origin, origin)
	assert.ErrorIs(t, err, ErrUnreachableCoordinate)
}

func TestSnapTiesToSmallestID(t *testing.T) {
	g, err := graph.NewCityGraph([]graph.Node{
		{ID: "b", Loc: origin.Offset(0, 10)},
		{ID: "a", Loc: origin.Offset(0, 10)},
	}, nil)
	require.NoError(t, err)
	planner := NewRoutePlanner(g, comps.DefaultCostModel())

	node, err := planner.Snap(origin)
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID("a"), g.GetNode(node).ID)
}

func TestPlanDoesNotChangeGraph(t *testing.T) {
	g := buildSquare(t)
	nodes := g.Nodes()
	edges := g.Edges()
	planner := NewRoutePlanner(g, comps.DefaultCostModel())

	_, err := planner.Plan(coordOf(t, g, "A"), coordOf(t, g, "X"))
	require.ErrorIs(t, err, ErrNoPath)
	_, err = planner.Plan(coordOf(t, g, "B"), coordOf(t, g, "D"))
	require.NoError(t, err)
	assert.Equal(t, nodes, g.Nodes())
	assert.Equal(t, edges, g.Edges())
}
