package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/graph"
)

func lineGraph(t *testing.T, lengths ...float64) *graph.CityGraph {
	nodes := make([]graph.Node, len(lengths)+1)
	for i := range nodes {
		nodes[i] = graph.Node{ID: graph.NodeID(rune('a' + i)), Loc: origin.Offset(float64(i)*10, 0)}
	}
	edges := make([]graph.Edge, len(lengths))
	for i, l := range lengths {
		edges[i] = graph.Edge{NodeA: int32(i), NodeB: int32(i + 1), Length: l, Mode: graph.WALK}
	}
	g, err := graph.NewCityGraph(nodes, edges)
	require.NoError(t, err)
	return g
}

func TestDijkstraLine(t *testing.T) {
	g := lineGraph(t, 10, 20, 30)
	d := NewDijkstra(g, comps.NewDistanceWeighting(), 3, 0)
	require.True(t, d.CalcShortestPath())

	path := d.GetShortestPath()
	assert.Equal(t, []graph.NodeID{"d", "c", "b", "a"}, path.Nodes)
	assert.Equal(t, []int32{2, 1, 0}, path.Edges)
	assert.Equal(t, 60.0, path.Weight)
}

func TestDijkstraParallelEdges(t *testing.T) {
	nodes := []graph.Node{{ID: "a"}, {ID: "b"}}
	edges := []graph.Edge{
		{NodeA: 0, NodeB: 1, Length: 100, Mode: graph.WALK},
		{NodeA: 1, NodeB: 0, Length: 100, Mode: graph.BUS, Line: "V3"},
	}
	g, err := graph.NewCityGraph(nodes, edges)
	require.NoError(t, err)

	d := NewDijkstra(g, comps.DefaultCostModel(), 0, 1)
	require.True(t, d.CalcShortestPath())
	path := d.GetShortestPath()
	assert.Equal(t, []int32{1}, path.Edges)
	assert.InDelta(t, 18, path.Weight, 1e-9)
}

func TestDijkstraStartIsEnd(t *testing.T) {
	g := lineGraph(t, 10)
	d := NewDijkstra(g, comps.DefaultCostModel(), 1, 1)
	require.True(t, d.CalcShortestPath())
	path := d.GetShortestPath()
	assert.Equal(t, []graph.NodeID{"b"}, path.Nodes)
	assert.Empty(t, path.Edges)
	assert.Zero(t, path.Weight)
}
