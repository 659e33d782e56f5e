package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ttpr0/go-cityroute/billboard"
	"github.com/ttpr0/go-cityroute/cache"
	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/geocode"
	"github.com/ttpr0/go-cityroute/graph"
	"github.com/ttpr0/go-cityroute/itinerary"
	"github.com/ttpr0/go-cityroute/parser"
	"github.com/ttpr0/go-cityroute/routing"
	"golang.org/x/exp/slog"
)

var ErrNoBillboard = errors.New("no billboard loaded")

// NewRoutingManager loads both networks, composes (or restores) the city
// graph and sets up geocoding and the billboard.
func NewRoutingManager(ctx context.Context, config Config) (*RoutingManager, error) {
	cost, err := comps.NewCostModel(config.Speeds.Table())
	if err != nil {
		return nil, err
	}

	street_source := GetStreetSource(config.Sources.Street)
	transit_source := GetTransitSource(config.Sources.Transit)
	slog.Info("loading street network", "type", config.Sources.Street.Type.String(), "path", config.Sources.Street.Path)
	street, err := street_source.FetchStreets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load street network: %w", err)
	}
	slog.Info("loading transit network", "type", config.Sources.Transit.Type.String())
	transit, err := transit_source.FetchTransit(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transit network: %w", err)
	}

	linker := GetStopLinker(config.Composer)
	var graph_cache cache.IGraphCache = cache.NoCache{}
	if config.Cache.Enabled {
		file_cache := cache.NewFileCache(config.Cache.Dir)
		defer func() {
			// graphs of older sources are never read again
			if err := file_cache.Prune(cache.Fingerprint(street, transit, linker.Name())); err != nil {
				slog.Warn("failed to prune graph cache", "err", err)
			}
		}()
		graph_cache = file_cache
	}
	g, err := cache.LoadOrCompose(graph_cache, street, transit, linker)
	if err != nil {
		return nil, err
	}
	slog.Info("city graph ready",
		"nodes", g.NodeCount(),
		"stops", g.CountNodes(graph.STOP),
		"bus-edges", g.CountEdges(graph.BUS),
	)
	if count := CountComponents(g); count > 1 {
		slog.Warn("city graph is not connected, some routes will fail", "components", count)
	}

	var board *billboard.Billboard
	if config.Schedule.File != "" {
		board, err = billboard.NewFileSource(config.Schedule.File).FetchBillboard(ctx)
		if err != nil {
			return nil, fmt.Errorf("load billboard: %w", err)
		}
	}

	return &RoutingManager{
		config:    config,
		planner:   NewPlanner(g, cost, config.Routing.Metric),
		geocoder:  GetGeocoder(config.Geocoder),
		billboard: board,
	}, nil
}

type RoutingManager struct {
	config    Config
	planner   *routing.RoutePlanner
	geocoder  geocode.IGeocoder
	billboard *billboard.Billboard
}

func (self *RoutingManager) GetPlanner() *routing.RoutePlanner {
	return self.planner
}

func (self *RoutingManager) GetBillboard() (*billboard.Billboard, error) {
	if self.billboard == nil {
		return nil, ErrNoBillboard
	}
	return self.billboard, nil
}

// Locate geocodes a place, retrying transport failures until ctx is done.
func (self *RoutingManager) Locate(ctx context.Context, place string) (geo.Coord, error) {
	retries := self.config.Geocoder.Retries
	if retries < 1 {
		retries = 1
	}
	var err error
	for i := 0; i < retries; i++ {
		if ctx_err := ctx.Err(); ctx_err != nil {
			return geo.Coord{}, ctx_err
		}
		var c geo.Coord
		c, err = self.geocoder.Resolve(ctx, place)
		if err == nil || errors.Is(err, geocode.ErrNotFound) {
			return c, err
		}
		slog.Warn("geocoding failed, retrying", "place", place, "attempt", i+1, "err", err)
	}
	return geo.Coord{}, err
}

// PlanRoute resolves both places and plans between them.
func (self *RoutingManager) PlanRoute(ctx context.Context, src, dst string) (itinerary.Itinerary, error) {
	from, err := self.Locate(ctx, src)
	if err != nil {
		return itinerary.Itinerary{}, err
	}
	to, err := self.Locate(ctx, dst)
	if err != nil {
		return itinerary.Itinerary{}, err
	}
	return self.planner.Plan(from, to)
}

// PlanTrip plans from a place to the earliest projection of a film that
// starts at or after departure.
func (self *RoutingManager) PlanTrip(ctx context.Context, title, from string, departure time.Time) (Trip, error) {
	board, err := self.GetBillboard()
	if err != nil {
		return Trip{}, err
	}
	projection, err := board.EarliestProjection(title, departure)
	if err != nil {
		return Trip{}, err
	}
	origin, err := self.Locate(ctx, from)
	if err != nil {
		return Trip{}, err
	}
	itin, err := self.planner.Plan(origin, projection.Cinema.Loc)
	if err != nil {
		return Trip{}, err
	}
	return NewTrip(self.planner.Graph(), projection, itin, departure), nil
}

// CountComponents returns the number of connected components of g.
func CountComponents(g graph.IGraph) int {
	var count int32 = 0
	for _, group := range routing.ConnectedComponents(g) {
		if group+1 > count {
			count = group + 1
		}
	}
	return int(count)
}

//**********************************************************
// component factories
//**********************************************************

func GetStreetSource(options StreetSourceOptions) parser.IMapDataSource {
	switch options.Type {
	case OSM:
		return parser.NewOSMSource(options.Path)
	default:
		return parser.NewNodeLinkSource(options.Path)
	}
}

func GetTransitSource(options TransitSourceOptions) parser.ITransitDataSource {
	switch options.Type {
	case GTFS:
		source := parser.NewGTFSSource(options.Path)
		source.RouteTypes = options.RouteTypes
		return source
	default:
		return parser.NewAMBSource(options.Path, options.Municipality)
	}
}

func GetStopLinker(options ComposerOptions) graph.IStopLinker {
	switch options.Linker {
	case QUADTREE_LINKER:
		return graph.NewQuadtreeLinker(options.Candidates)
	default:
		return graph.NewScanLinker()
	}
}

// GetGeocoder always accepts literal "lat,lon" input first.
func GetGeocoder(options GeocoderOptions) geocode.IGeocoder {
	chain := geocode.Chain{geocode.LiteralGeocoder{}}
	if options.Type == NOMINATIM {
		nominatim := geocode.NewNominatim(options.URL, options.UserAgent, options.Timeout)
		nominatim.Suffix = options.Suffix
		chain = append(chain, nominatim)
	}
	return geocode.NewCached(chain, options.CacheSize, 0)
}

func NewPlanner(g graph.IGraph, cost *comps.CostModel, metric MetricType) *routing.RoutePlanner {
	if metric == SHORTEST {
		return routing.NewRoutePlanner(g, cost, routing.WithWeighting(comps.NewDistanceWeighting()))
	}
	return routing.NewRoutePlanner(g, cost)
}
