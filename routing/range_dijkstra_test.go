package routing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/graph"
)

func TestCalcRangeDijkstra(t *testing.T) {
	g := buildSquare(t)
	start, _ := g.GetNodeIndex("A")
	dists := CalcRangeDijkstra(g, comps.DefaultCostModel(), start, 100)

	at := func(id graph.NodeID) float64 {
		index, ok := g.GetNodeIndex(id)
		require.True(t, ok)
		return dists[index]
	}
	assert.Equal(t, 0.0, at("A"))
	assert.InDelta(t, 72, at("B"), 1e-9)
	assert.InDelta(t, 7.2, at("S1"), 0.1)
	assert.InDelta(t, 61.2, at("S2"), 0.2)
	assert.InDelta(t, 68.4, at("C"), 0.5)
	assert.True(t, math.IsInf(at("X"), 1))
}

func TestConnectedComponents(t *testing.T) {
	g := buildSquare(t)
	groups := ConnectedComponents(g)

	x, _ := g.GetNodeIndex("X")
	for i := 0; i < g.NodeCount(); i++ {
		if int32(i) == x {
			assert.Equal(t, int32(1), groups[i])
		} else {
			assert.Equal(t, int32(0), groups[i])
		}
	}
}

func TestReachableStops(t *testing.T) {
	g := buildSquare(t)
	planner := NewRoutePlanner(g, comps.DefaultCostModel())

	stops, err := planner.ReachableStops(coordOf(t, g, "A"), 60)
	require.NoError(t, err)
	require.Len(t, stops, 1)
	assert.Equal(t, graph.NodeID("S1"), stops[0].ID)
	assert.Equal(t, "L1", stops[0].Line)

	stops, err = planner.ReachableStops(coordOf(t, g, "A"), 70)
	require.NoError(t, err)
	require.Len(t, stops, 2)
	assert.Equal(t, graph.NodeID("S2"), stops[1].ID)
	assert.Less(t, stops[0].Duration, stops[1].Duration)

	stops, err = planner.ReachableStops(coordOf(t, g, "X"), 3600)
	require.NoError(t, err)
	assert.Empty(t, stops)
}
