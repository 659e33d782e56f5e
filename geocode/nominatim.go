package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ttpr0/go-cityroute/geo"
	"golang.org/x/exp/slog"
)

const NOMINATIM_URL = "https://nominatim.openstreetmap.org/search"

//*******************************************
// nominatim
//*******************************************

// Nominatim queries an OSM Nominatim search endpoint.
type Nominatim struct {
	BaseURL   string
	UserAgent string
	// Suffix is appended to every query, e.g. ", Barcelona".
	Suffix string
	Client *http.Client
}

func NewNominatim(base_url string, user_agent string, timeout time.Duration) *Nominatim {
	if base_url == "" {
		base_url = NOMINATIM_URL
	}
	return &Nominatim{
		BaseURL:   base_url,
		UserAgent: user_agent,
		Client:    &http.Client{Timeout: timeout},
	}
}

type _NominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (self *Nominatim) Resolve(ctx context.Context, address string) (geo.Coord, error) {
	query := url.Values{}
	query.Set("q", address+self.Suffix)
	query.Set("format", "json")
	query.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, self.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return geo.Coord{}, fmt.Errorf("%w: %v", ErrGeocodingFailed, err)
	}
	if self.UserAgent != "" {
		req.Header.Set("User-Agent", self.UserAgent)
	}

	start := time.Now()
	resp, err := self.Client.Do(req)
	if err != nil {
		return geo.Coord{}, fmt.Errorf("%w: %v", ErrGeocodingFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return geo.Coord{}, fmt.Errorf("%w: status %d", ErrGeocodingFailed, resp.StatusCode)
	}
	var results []_NominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Coord{}, fmt.Errorf("%w: decode response: %v", ErrGeocodingFailed, err)
	}
	slog.Debug("nominatim request", "address", address, "results", len(results), "elapsed", time.Since(start))
	if len(results) == 0 {
		return geo.Coord{}, fmt.Errorf("%w: %q", ErrNotFound, address)
	}
	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Coord{}, fmt.Errorf("%w: bad latitude %q", ErrGeocodingFailed, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Coord{}, fmt.Errorf("%w: bad longitude %q", ErrGeocodingFailed, results[0].Lon)
	}
	return geo.NewCoord(lat, lon), nil
}
