package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

var ErrInvalidCoord = errors.New("invalid coordinate")

//*******************************************
// coordinate
//*******************************************

// Coord is a WGS84 position. Equality is exact.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoord(lat, lon float64) Coord {
	return Coord{Lat: lat, Lon: lon}
}

// Point converts to orb's lon/lat order.
func (self Coord) Point() orb.Point {
	return orb.Point{self.Lon, self.Lat}
}

func FromPoint(p orb.Point) Coord {
	return Coord{Lat: p.Lat(), Lon: p.Lon()}
}

func (self Coord) IsValid() bool {
	return self.Lat >= -90 && self.Lat <= 90 && self.Lon >= -180 && self.Lon <= 180
}

func (self Coord) String() string {
	return strconv.FormatFloat(self.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(self.Lon, 'f', -1, 64)
}

// Distance returns the great-circle distance in meters.
func Distance(a, b Coord) float64 {
	return orbgeo.DistanceHaversine(a.Point(), b.Point())
}

// ParseCoord parses "lat,lon".
func ParseCoord(s string) (Coord, error) {
	tokens := strings.Split(s, ",")
	if len(tokens) != 2 {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(tokens[0]), 64)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(tokens[1]), 64)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q", ErrInvalidCoord, s)
	}
	c := Coord{Lat: lat, Lon: lon}
	if !c.IsValid() {
		return Coord{}, fmt.Errorf("%w: %q out of range", ErrInvalidCoord, s)
	}
	return c, nil
}

// Offset moves the coordinate by the given meters north and east using a
// local equirectangular approximation.
func (self Coord) Offset(north, east float64) Coord {
	lat := self.Lat + north/111320.0
	lon := self.Lon + east/(111320.0*cosDeg(self.Lat))
	return Coord{Lat: lat, Lon: lon}
}
