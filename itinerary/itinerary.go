package itinerary

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
)

var (
	ErrEmptyPath = errors.New("path has fewer than two nodes")
	ErrNoEdge    = errors.New("no edge between consecutive path nodes")
)

//*******************************************
// itinerary
//*******************************************

// Leg is a maximal run of path edges with the same mode and, for buses, the
// same line. Consecutive legs share their boundary node.
type Leg struct {
	Mode graph.EdgeMode `json:"mode"`
	// Line is empty unless Mode is BUS.
	Line     string         `json:"line,omitempty"`
	Nodes    []graph.NodeID `json:"nodes"`
	Coords   []geo.Coord    `json:"coords"`
	Duration float64        `json:"duration"`
	Distance float64        `json:"distance"`
}

func (self Leg) From() geo.Coord {
	return self.Coords[0]
}
func (self Leg) To() geo.Coord {
	return self.Coords[len(self.Coords)-1]
}
func (self Leg) FromNode() graph.NodeID {
	return self.Nodes[0]
}
func (self Leg) ToNode() graph.NodeID {
	return self.Nodes[len(self.Nodes)-1]
}

type Itinerary struct {
	Legs          []Leg   `json:"legs"`
	TotalDuration float64 `json:"total_duration"`
	TotalDistance float64 `json:"total_distance"`
}

// Path concatenates the node sequences of all legs, dropping the shared
// boundary nodes.
func (self Itinerary) Path() []graph.NodeID {
	path := make([]graph.NodeID, 0, 16)
	for i, leg := range self.Legs {
		if i == 0 {
			path = append(path, leg.Nodes...)
		} else {
			path = append(path, leg.Nodes[1:]...)
		}
	}
	return path
}

// Arrival returns departure plus the total duration.
func (self Itinerary) Arrival(departure time.Time) time.Time {
	return departure.Add(time.Duration(self.TotalDuration * float64(time.Second)))
}

// ArrivesBy reports whether leaving at departure gets there strictly before
// the deadline, together with the slack (negative when late).
func (self Itinerary) ArrivesBy(departure, deadline time.Time) (bool, time.Duration) {
	arrival := self.Arrival(departure)
	return arrival.Before(deadline), deadline.Sub(arrival)
}

// BusLegs returns the legs ridden on a bus in travel order.
func (self Itinerary) BusLegs() []Leg {
	legs := make([]Leg, 0, len(self.Legs))
	for _, leg := range self.Legs {
		if leg.Mode == graph.BUS {
			legs = append(legs, leg)
		}
	}
	return legs
}

// FormatHHMM renders a duration in seconds as hours and minutes, dropping
// partial minutes.
func FormatHHMM(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	minutes := int(seconds / 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
