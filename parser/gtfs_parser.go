package parser

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/jamespfennell/gtfs"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
	. "github.com/ttpr0/go-cityroute/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// gtfs transit source
//*******************************************

// GTFS route_type of buses.
const GTFS_ROUTE_TYPE_BUS = 3

// GTFSSource reads a static GTFS zip from a file or url.
type GTFSSource struct {
	Location string
	// RouteTypes restricts the routes used, empty means buses only.
	RouteTypes []int
	Client     *http.Client
}

func NewGTFSSource(location string) *GTFSSource {
	return &GTFSSource{Location: location}
}

func (self *GTFSSource) FetchTransit(ctx context.Context) (*graph.TransitGraph, error) {
	data, err := _ReadSource(ctx, self.Client, self.Location)
	if err != nil {
		return nil, err
	}
	return ParseGTFS(data, self.RouteTypes)
}

// GTFSStopID names the node of a stop on a route.
func GTFSStopID(stop_id string, line string) graph.NodeID {
	return graph.NodeID("gtfs/" + stop_id + "@" + line)
}

// ParseGTFS builds one node per (stop, route) and a hop for every pair of
// consecutive stop times of a trip. Repeated hops are kept once.
func ParseGTFS(data []byte, route_types []int) (*graph.TransitGraph, error) {
	static, err := gtfs.ParseStatic(data, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("parse gtfs: %w", err)
	}
	if len(route_types) == 0 {
		route_types = []int{GTFS_ROUTE_TYPE_BUS}
	}
	allowed := NewDict[int, bool](len(route_types))
	for _, typ := range route_types {
		allowed[typ] = true
	}

	transit := graph.NewTransitGraph()
	seen := NewDict[graph.NodeID, bool](1000)
	hops := NewDict[Tuple[graph.NodeID, graph.NodeID], bool](1000)
	skipped := 0
	for _, trip := range static.Trips {
		if trip.Route == nil || !allowed[int(trip.Route.Type)] {
			continue
		}
		line := trip.Route.ShortName
		if line == "" {
			line = trip.Route.Id
		}
		stop_times := trip.StopTimes
		sort.SliceStable(stop_times, func(i, j int) bool {
			return stop_times[i].StopSequence < stop_times[j].StopSequence
		})

		var prev Optional[graph.Stop]
		for _, st := range stop_times {
			s := st.Stop
			if s == nil || s.Latitude == nil || s.Longitude == nil {
				skipped += 1
				continue
			}
			stop := graph.Stop{
				ID:   GTFSStopID(s.Id, line),
				Loc:  geo.NewCoord(*s.Latitude, *s.Longitude),
				Line: line,
				Name: s.Name,
			}
			if !seen.ContainsKey(stop.ID) {
				seen[stop.ID] = true
				transit.Stops.Add(stop)
			}
			if prev.HasValue() && prev.Value.ID != stop.ID {
				key := MakeTuple(prev.Value.ID, stop.ID)
				if !hops.ContainsKey(key) {
					hops[key] = true
					transit.AddHop(prev.Value.ID, stop.ID, geo.Distance(prev.Value.Loc, stop.Loc))
				}
			}
			prev = Some(stop)
		}
	}
	if skipped > 0 {
		slog.Warn("skipped gtfs stop times without location", "count", skipped)
	}
	slog.Info("parsed gtfs transit graph", "stops", transit.Stops.Length(), "hops", transit.Hops.Length())
	return transit, nil
}
