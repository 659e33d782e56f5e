package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ttpr0/go-cityroute/billboard"
	"github.com/ttpr0/go-cityroute/graph"
	"github.com/ttpr0/go-cityroute/itinerary"
)

//**********************************************************
// trip summary
//**********************************************************

type LineChange struct {
	Line   string `json:"line"`
	Board  string `json:"board"`
	Alight string `json:"alight"`
}

type Trip struct {
	Projection  billboard.Projection `json:"projection"`
	Itinerary   itinerary.Itinerary  `json:"itinerary"`
	Departure   time.Time            `json:"departure"`
	Arrival     time.Time            `json:"arrival"`
	Duration    string               `json:"duration"`
	OnTime      bool                 `json:"on_time"`
	Slack       float64              `json:"slack"`
	LineChanges []LineChange         `json:"line_changes"`
}

func NewTrip(g graph.IGraph, projection billboard.Projection, itin itinerary.Itinerary, departure time.Time) Trip {
	on_time, slack := itin.ArrivesBy(departure, projection.Start)
	return Trip{
		Projection:  projection,
		Itinerary:   itin,
		Departure:   departure,
		Arrival:     itin.Arrival(departure),
		Duration:    itinerary.FormatHHMM(itin.TotalDuration),
		OnTime:      on_time,
		Slack:       slack.Seconds(),
		LineChanges: GetLineChanges(g, itin),
	}
}

// GetLineChanges lists one entry per bus leg.
func GetLineChanges(g graph.IGraph, itin itinerary.Itinerary) []LineChange {
	changes := make([]LineChange, 0, 4)
	for _, leg := range itin.BusLegs() {
		changes = append(changes, LineChange{
			Line:   leg.Line,
			Board:  StopName(g, leg.FromNode()),
			Alight: StopName(g, leg.ToNode()),
		})
	}
	return changes
}

// StopName falls back to the node id for unnamed nodes.
func StopName(g graph.IGraph, id graph.NodeID) string {
	index, ok := g.GetNodeIndex(id)
	if !ok {
		return string(id)
	}
	if name := g.GetNode(index).Name; name != "" {
		return name
	}
	return string(id)
}

func WriteTripSummary(w io.Writer, trip Trip) {
	p := trip.Projection
	fmt.Fprintf(w, "%s at %s (%s), %s %s\n", p.Film.Title, p.Cinema.Name, p.Cinema.Address, p.Start.Format("15:04"), p.Language)
	if len(trip.LineChanges) == 0 {
		fmt.Fprintln(w, "walk all the way")
	}
	for _, change := range trip.LineChanges {
		fmt.Fprintf(w, "take line %s at %s, get off at %s\n", change.Line, change.Board, change.Alight)
	}
	fmt.Fprintf(w, "travel time %s, arrival %s\n", trip.Duration, trip.Arrival.Format("15:04"))
	slack := time.Duration(trip.Slack * float64(time.Second))
	if trip.OnTime {
		fmt.Fprintf(w, "on time, %s to spare\n", itinerary.FormatHHMM(slack.Seconds()))
	} else {
		fmt.Fprintf(w, "late by %s\n", itinerary.FormatHHMM(-slack.Seconds()))
	}
}

// ParseDeparture accepts "15:04" on the day of now, or RFC 3339. Empty
// means now.
func ParseDeparture(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("15:04", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid departure %q", s)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
