package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
	. "github.com/ttpr0/go-cityroute/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// amb open data transit source
//*******************************************

const AMB_OPEN_DATA_URL = "https://www.ambmobilitat.cat/OpenData/ObtenirDadesAMB.json"

type _AMBStop struct {
	Code         _FlexString `json:"CodAMB"`
	Address      string      `json:"Adreca"`
	Municipality string      `json:"Municipi"`
	Lat          _FlexFloat  `json:"UTM_X"`
	Lon          _FlexFloat  `json:"UTM_Y"`
}

type _AMBLine struct {
	Name      string `json:"Nom"`
	Transport string `json:"MitjaTransport"`
	Stops     struct {
		Stop []_AMBStop `json:"Parada"`
	} `json:"Parades"`
}

type _AMBData struct {
	Result struct {
		Lines struct {
			Line []_AMBLine `json:"Linia"`
		} `json:"Linies"`
	} `json:"ObtenirDadesAMBResult"`
}

// AMBSource reads the AMB bus network dump. Despite their names the UTM_X
// and UTM_Y fields hold latitude and longitude.
type AMBSource struct {
	Location string
	// Municipality keeps only stops in this municipality, empty keeps all.
	Municipality string
	Client       *http.Client
}

func NewAMBSource(location string, municipality string) *AMBSource {
	if location == "" {
		location = AMB_OPEN_DATA_URL
	}
	return &AMBSource{Location: location, Municipality: municipality}
}

func (self *AMBSource) FetchTransit(ctx context.Context) (*graph.TransitGraph, error) {
	data, err := _ReadSource(ctx, self.Client, self.Location)
	if err != nil {
		return nil, err
	}
	return ParseAMB(data, self.Municipality)
}

// AMBStopID names the node of a stop on a line. Stops served by several
// lines get one node per line.
func AMBStopID(code string, line string) graph.NodeID {
	return graph.NodeID("amb/" + code + "@" + line)
}

// ParseAMB builds one node per (stop, line) and a hop between consecutive
// kept stops of every bus line.
func ParseAMB(data []byte, municipality string) (*graph.TransitGraph, error) {
	var raw _AMBData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode amb data: %w", err)
	}
	transit := graph.NewTransitGraph()
	seen := NewDict[graph.NodeID, bool](1000)
	hops := NewDict[Tuple[graph.NodeID, graph.NodeID], bool](1000)
	for _, line := range raw.Result.Lines.Line {
		if line.Transport != "Bus" {
			continue
		}
		var prev Optional[graph.Stop]
		for _, s := range line.Stops.Stop {
			if municipality != "" && s.Municipality != municipality {
				continue
			}
			stop := graph.Stop{
				ID:   AMBStopID(string(s.Code), line.Name),
				Loc:  geo.NewCoord(float64(s.Lat), float64(s.Lon)),
				Line: line.Name,
				Name: s.Address,
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
	slog.Info("parsed amb transit graph", "stops", transit.Stops.Length(), "hops", transit.Hops.Length())
	return transit, nil
}
