package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/ttpr0/go-cityroute/graph"
)

//*******************************************
// data source interfaces
//*******************************************

// IMapDataSource delivers the pedestrian street network.
type IMapDataSource interface {
	FetchStreets(ctx context.Context) (*graph.StreetGraph, error)
}

// ITransitDataSource delivers bus stops and the hops between them.
type ITransitDataSource interface {
	FetchTransit(ctx context.Context) (*graph.TransitGraph, error)
}

//*******************************************
// shared helpers
//*******************************************

// _ReadSource reads a local file or, for http(s) urls, the response body.
func _ReadSource(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		return os.ReadFile(location)
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", location, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// _FlexString accepts json strings and numbers.
type _FlexString string

func (self *_FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*self = _FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*self = _FlexString(n.String())
	return nil
}

// _FlexFloat accepts json numbers and numeric strings.
type _FlexFloat float64

func (self *_FlexFloat) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*self = _FlexFloat(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number, got %s", string(data))
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return err
	}
	*self = _FlexFloat(f)
	return nil
}
