package comps

import (
	"errors"
	"fmt"

	"github.com/ttpr0/go-cityroute/graph"
	. "github.com/ttpr0/go-cityroute/util"
)

var ErrInvalidSpeed = errors.New("invalid speed")

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetEdgeWeight(edge graph.Edge) float64
}

//*******************************************
// speed table
//*******************************************

// SpeedTable holds travel speeds in km/h per edge mode.
type SpeedTable = Dict[graph.EdgeMode, float64]

func DefaultSpeeds() SpeedTable {
	return SpeedTable{
		graph.WALK:     5,
		graph.BUS:      20,
		graph.TRANSFER: 5,
	}
}

//*******************************************
// travel time weighting
//*******************************************

// CostModel converts edge lengths in meters into travel times in seconds.
type CostModel struct {
	// meters per second, indexed by edge mode
	speeds [len(graph.EDGE_MODES)]float64
}

// NewCostModel requires a positive speed for every edge mode.
func NewCostModel(speeds SpeedTable) (*CostModel, error) {
	model := &CostModel{}
	for _, mode := range graph.EDGE_MODES {
		kmh, ok := speeds[mode]
		if !ok {
			return nil, fmt.Errorf("%w: no speed for mode %v", ErrInvalidSpeed, mode)
		}
		if !(kmh > 0) {
			return nil, fmt.Errorf("%w: %v km/h for mode %v", ErrInvalidSpeed, kmh, mode)
		}
		model.speeds[mode] = kmh * 1000 / 3600
	}
	return model, nil
}

// DefaultCostModel walks at 5 km/h and rides the bus at 20 km/h.
func DefaultCostModel() *CostModel {
	model, err := NewCostModel(DefaultSpeeds())
	if err != nil {
		panic(err)
	}
	return model
}

func (self *CostModel) TimeSeconds(edge graph.Edge) float64 {
	if edge.Length == 0 {
		return 0
	}
	return edge.Length / self.speeds[edge.Mode]
}

func (self *CostModel) GetEdgeWeight(edge graph.Edge) float64 {
	return self.TimeSeconds(edge)
}

// Speed returns the configured speed of a mode in km/h.
func (self *CostModel) Speed(mode graph.EdgeMode) float64 {
	return self.speeds[mode] * 3600 / 1000
}

//*******************************************
// distance weighting
//*******************************************

// DistanceWeighting weights edges by physical length, ignoring the mode.
type DistanceWeighting struct{}

func NewDistanceWeighting() *DistanceWeighting {
	return &DistanceWeighting{}
}

func (self *DistanceWeighting) GetEdgeWeight(edge graph.Edge) float64 {
	return edge.Length
}
