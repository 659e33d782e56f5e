package main

import (
	"github.com/ttpr0/go-cityroute/billboard"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/itinerary"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

type RouteResponse struct {
	Src       geo.Coord           `json:"src"`
	Dst       geo.Coord           `json:"dst"`
	Duration  string              `json:"duration"`
	Itinerary itinerary.Itinerary `json:"itinerary"`
}

func NewRouteResponse(src, dst geo.Coord, itin itinerary.Itinerary) RouteResponse {
	return RouteResponse{
		Src:       src,
		Dst:       dst,
		Duration:  itinerary.FormatHHMM(itin.TotalDuration),
		Itinerary: itin,
	}
}

type FilmSearchResponse struct {
	By    string           `json:"by"`
	Query string           `json:"query"`
	Films []billboard.Film `json:"films"`
	// Projections is only set for title searches.
	Projections []billboard.Projection `json:"projections,omitempty"`
}
