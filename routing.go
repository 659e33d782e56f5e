package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/ttpr0/go-cityroute/billboard"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/geocode"
	"github.com/ttpr0/go-cityroute/itinerary"
	"github.com/ttpr0/go-cityroute/routing"
	"golang.org/x/exp/slog"
)

//**********************************************************
// router
//**********************************************************

func NewRouter(manager *RoutingManager) *httprouter.Router {
	app := httprouter.New()
	MapGet(app, "/v0/route", func(ctx context.Context, req RouteRequest) Result {
		return HandleRouteRequest(ctx, manager, req)
	})
	MapPost(app, "/v0/route", func(ctx context.Context, req RouteRequest) Result {
		return HandleRouteRequest(ctx, manager, req)
	})
	MapGet(app, "/v0/route/geojson", func(ctx context.Context, req RouteRequest) Result {
		return HandleRouteGeoJSONRequest(ctx, manager, req)
	})
	MapGet(app, "/v0/reach", func(ctx context.Context, req ReachRequest) Result {
		return HandleReachRequest(ctx, manager, req)
	})
	MapGet(app, "/v0/billboard/search", func(ctx context.Context, req FilmSearchRequest) Result {
		return HandleFilmSearchRequest(manager, req)
	})
	MapGet(app, "/v0/films/:title/trip", func(ctx context.Context, req TripRequest) Result {
		return HandleTripRequest(ctx, manager, req, time.Now())
	})
	return app
}

//**********************************************************
// handlers
//**********************************************************

func HandleRouteRequest(ctx context.Context, manager *RoutingManager, req RouteRequest) Result {
	src, dst, itin, res := _PlanRequest(ctx, manager, req)
	if res.status != http.StatusOK {
		return res
	}
	return OK(NewRouteResponse(src, dst, itin))
}

func HandleRouteGeoJSONRequest(ctx context.Context, manager *RoutingManager, req RouteRequest) Result {
	_, _, itin, res := _PlanRequest(ctx, manager, req)
	if res.status != http.StatusOK {
		return res
	}
	return OK(itin.ToGeoJSON())
}

func _PlanRequest(ctx context.Context, manager *RoutingManager, req RouteRequest) (geo.Coord, geo.Coord, itinerary.Itinerary, Result) {
	if req.Src == "" || req.Dst == "" {
		return geo.Coord{}, geo.Coord{}, itinerary.Itinerary{}, BadRequest("src and dst are required")
	}
	src, err := manager.Locate(ctx, req.Src)
	if err != nil {
		return geo.Coord{}, geo.Coord{}, itinerary.Itinerary{}, ErrorResult(err)
	}
	dst, err := manager.Locate(ctx, req.Dst)
	if err != nil {
		return geo.Coord{}, geo.Coord{}, itinerary.Itinerary{}, ErrorResult(err)
	}
	slog.Debug("planning route", "src", src.String(), "dst", dst.String())
	itin, err := manager.GetPlanner().Plan(src, dst)
	if err != nil {
		return geo.Coord{}, geo.Coord{}, itinerary.Itinerary{}, ErrorResult(err)
	}
	return src, dst, itin, OK("")
}

// HandleReachRequest lists the stops reachable within the given minutes.
func HandleReachRequest(ctx context.Context, manager *RoutingManager, req ReachRequest) Result {
	if req.Src == "" || req.Minutes <= 0 {
		return BadRequest("src and a positive minutes value are required")
	}
	src, err := manager.Locate(ctx, req.Src)
	if err != nil {
		return ErrorResult(err)
	}
	stops, err := manager.GetPlanner().ReachableStops(src, req.Minutes*60)
	if err != nil {
		return ErrorResult(err)
	}
	return OK(stops)
}

func HandleFilmSearchRequest(manager *RoutingManager, req FilmSearchRequest) Result {
	board, err := manager.GetBillboard()
	if err != nil {
		return ErrorResult(err)
	}
	if req.By == "" {
		req.By = string(billboard.BY_TITLE)
	}
	field, err := billboard.SearchFieldFromString(req.By)
	if err != nil {
		return BadRequest(err.Error())
	}
	resp := FilmSearchResponse{
		By:    string(field),
		Query: req.Query,
		Films: board.Search(field, req.Query),
	}
	if field == billboard.BY_TITLE {
		resp.Projections = board.SearchByTitle(req.Query)
	}
	return OK(resp)
}

func HandleTripRequest(ctx context.Context, manager *RoutingManager, req TripRequest, now time.Time) Result {
	if req.From == "" {
		return BadRequest("from is required")
	}
	departure, err := ParseDeparture(req.Departure, now)
	if err != nil {
		return BadRequest(err.Error())
	}
	trip, err := manager.PlanTrip(ctx, req.Title, req.From, departure)
	if err != nil {
		return ErrorResult(err)
	}
	return OK(trip)
}

// ErrorResult maps domain errors to http status codes.
func ErrorResult(err error) Result {
	switch {
	case errors.Is(err, geocode.ErrNotFound),
		errors.Is(err, routing.ErrUnreachableCoordinate):
		return BadRequest(err.Error())
	case errors.Is(err, routing.ErrNoPath),
		errors.Is(err, billboard.ErrNoProjection),
		errors.Is(err, ErrNoBillboard):
		return NotFound(err.Error())
	case errors.Is(err, geocode.ErrGeocodingFailed):
		return Status(err.Error(), http.StatusBadGateway)
	default:
		return Status(err.Error(), http.StatusInternalServerError)
	}
}
