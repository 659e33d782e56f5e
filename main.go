package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ttpr0/go-cityroute/billboard"
	"github.com/ttpr0/go-cityroute/graph"
	"github.com/ttpr0/go-cityroute/itinerary"
	. "github.com/ttpr0/go-cityroute/util"
	"golang.org/x/exp/slog"
)

const USAGE = `usage: cityroute [-config file] <command> [flags]

commands:
  serve                       start the http api
  plan  -from A -to B         plan a walk and bus route
  films -by field -q query    search the billboard, with -from plan a trip
                              to the earliest matching projection
`

func main() {
	config_file := flag.String("config", "./config.yaml", "path to the yaml config")
	flag.Usage = func() { fmt.Fprint(os.Stderr, USAGE) }
	flag.Parse()

	config, err := ReadConfig(*config_file)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		config = DefaultConfig()
	}
	SetupLogging(os.Stderr, config.LogLevel)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	ctx := context.Background()
	switch args[0] {
	case "serve":
		err = RunServe(ctx, config)
	case "plan":
		err = RunPlan(ctx, config, args[1:], os.Stdout)
	case "films":
		err = RunFilms(ctx, config, args[1:], os.Stdout)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func RunServe(ctx context.Context, config Config) error {
	manager, err := NewRoutingManager(ctx, config)
	if err != nil {
		return err
	}
	addr := ":" + strconv.Itoa(config.Server.Port)
	slog.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, NewRouter(manager))
}

func RunPlan(ctx context.Context, config Config, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("plan", flag.ContinueOnError)
	from := flags.String("from", "", "origin address or lat,lon")
	to := flags.String("to", "", "destination address or lat,lon")
	geojson_file := flags.String("geojson", "", "also write the legs as geojson to this file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return errors.New("plan needs -from and -to")
	}
	manager, err := NewRoutingManager(ctx, config)
	if err != nil {
		return err
	}
	itin, err := manager.PlanRoute(ctx, *from, *to)
	if err != nil {
		return err
	}
	WriteItinerary(out, manager.GetPlanner().Graph(), itin)
	if *geojson_file != "" {
		return WriteJSONToFile(itin.ToGeoJSON(), *geojson_file)
	}
	return nil
}

func RunFilms(ctx context.Context, config Config, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("films", flag.ContinueOnError)
	by := flags.String("by", "title", "title, genre, director or actor")
	query := flags.String("q", "", "search text")
	from := flags.String("from", "", "plan a trip from this address to the first match")
	departure := flags.String("departure", "", "departure as 15:04, default now")
	if err := flags.Parse(args); err != nil {
		return err
	}
	field, err := billboard.SearchFieldFromString(*by)
	if err != nil {
		return err
	}
	leave, err := ParseDeparture(*departure, time.Now())
	if err != nil {
		return err
	}

	board, err := billboard.NewFileSource(config.Schedule.File).FetchBillboard(ctx)
	if err != nil {
		return err
	}
	films := board.Search(field, *query)
	if len(films) == 0 {
		fmt.Fprintln(out, "no films found")
		return nil
	}
	for _, f := range films {
		fmt.Fprintf(out, "%s (%s, %s)\n", f.Title, f.Genre, f.Director)
		for _, p := range board.Projections {
			if p.Film.Title == f.Title {
				fmt.Fprintf(out, "  %s %s %s\n", p.Start.Format("15:04"), p.Cinema.Name, p.Language)
			}
		}
	}
	if *from == "" {
		return nil
	}

	manager, err := NewRoutingManager(ctx, config)
	if err != nil {
		return err
	}
	trip, err := manager.PlanTrip(ctx, films[0].Title, *from, leave)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	WriteItinerary(out, manager.GetPlanner().Graph(), trip.Itinerary)
	WriteTripSummary(out, trip)
	return nil
}

func WriteItinerary(w io.Writer, g graph.IGraph, itin itinerary.Itinerary) {
	for i, leg := range itin.Legs {
		mode := leg.Mode.String()
		if leg.Mode == graph.BUS {
			mode += " " + leg.Line
		}
		fmt.Fprintf(w, "%d. %s from %s to %s, %s, %.0f m\n", i+1, mode,
			StopName(g, leg.FromNode()), StopName(g, leg.ToNode()),
			itinerary.FormatHHMM(leg.Duration), leg.Distance)
	}
	fmt.Fprintf(w, "total %s, %.0f m\n", itinerary.FormatHHMM(itin.TotalDuration), itin.TotalDistance)
}
