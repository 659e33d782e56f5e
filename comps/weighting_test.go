package comps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-cityroute/graph"
)

func TestCostModelDefaults(t *testing.T) {
	model := DefaultCostModel()

	tests := []struct {
		name string
		edge graph.Edge
		want float64
	}{
		{"walk 100m", graph.Edge{Length: 100, Mode: graph.WALK}, 72},
		{"bus 1km", graph.Edge{Length: 1000, Mode: graph.BUS}, 180},
		{"transfer 50m", graph.Edge{Length: 50, Mode: graph.TRANSFER}, 36},
		{"zero length", graph.Edge{Length: 0, Mode: graph.BUS}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, model.TimeSeconds(tt.edge), 1e-9)
			assert.Equal(t, model.TimeSeconds(tt.edge), model.GetEdgeWeight(tt.edge))
		})
	}
	assert.InDelta(t, 20, model.Speed(graph.BUS), 1e-9)
}

func TestCostModelInvalidSpeed(t *testing.T) {
	for _, speeds := range []SpeedTable{
		{graph.WALK: 0, graph.BUS: 20, graph.TRANSFER: 5},
		{graph.WALK: 5, graph.BUS: -1, graph.TRANSFER: 5},
		{graph.WALK: 5, graph.BUS: 20},
	} {
		_, err := NewCostModel(speeds)
		assert.ErrorIs(t, err, ErrInvalidSpeed)
	}
}

func TestCostModelMonotonic(t *testing.T) {
	model := DefaultCostModel()
	for _, mode := range graph.EDGE_MODES {
		prev := -1.0
		for length := 0.0; length <= 1000; length += 50 {
			curr := model.TimeSeconds(graph.Edge{Length: length, Mode: mode})
			assert.Greater(t, curr, prev, "mode %v length %v", mode, length)
			prev = curr
		}
	}

	edge := graph.Edge{Length: 500, Mode: graph.WALK}
	prev := model.TimeSeconds(edge)
	for kmh := 6.0; kmh <= 30; kmh += 3 {
		speeds := DefaultSpeeds()
		speeds[graph.WALK] = kmh
		faster, err := NewCostModel(speeds)
		require.NoError(t, err)
		curr := faster.TimeSeconds(edge)
		assert.Less(t, curr, prev)
		prev = curr
	}
}

func TestDistanceWeighting(t *testing.T) {
	w := NewDistanceWeighting()
	assert.Equal(t, 123.5, w.GetEdgeWeight(graph.Edge{Length: 123.5, Mode: graph.BUS}))
}
