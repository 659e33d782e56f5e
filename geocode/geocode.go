package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ttpr0/go-cityroute/geo"
)

var (
	ErrNotFound        = errors.New("address not found")
	ErrGeocodingFailed = errors.New("geocoding failed")
)

// IGeocoder resolves free text addresses to coordinates.
type IGeocoder interface {
	Resolve(ctx context.Context, address string) (geo.Coord, error)
}

//*******************************************
// literal coordinates
//*******************************************

// LiteralGeocoder accepts "lat,lon" input only.
type LiteralGeocoder struct{}

func (self LiteralGeocoder) Resolve(ctx context.Context, address string) (geo.Coord, error) {
	c, err := geo.ParseCoord(address)
	if err != nil {
		return geo.Coord{}, fmt.Errorf("%w: %q", ErrNotFound, address)
	}
	return c, nil
}

//*******************************************
// chain
//*******************************************

// Chain tries the geocoders in order and returns the first match. A
// transport failure stops the chain, ErrNotFound moves on.
type Chain []IGeocoder

func (self Chain) Resolve(ctx context.Context, address string) (geo.Coord, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return geo.Coord{}, fmt.Errorf("%w: empty address", ErrNotFound)
	}
	for _, g := range self {
		c, err := g.Resolve(ctx, address)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return geo.Coord{}, err
		}
	}
	return geo.Coord{}, fmt.Errorf("%w: %q", ErrNotFound, address)
}
