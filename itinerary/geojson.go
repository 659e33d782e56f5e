package itinerary

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ToGeoJSON returns one LineString feature per leg.
func (self Itinerary) ToGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, leg := range self.Legs {
		line := make(orb.LineString, len(leg.Coords))
		for j, c := range leg.Coords {
			line[j] = c.Point()
		}
		f := geojson.NewFeature(line)
		f.Properties["index"] = i
		f.Properties["mode"] = leg.Mode.String()
		if leg.Line != "" {
			f.Properties["line"] = leg.Line
		}
		f.Properties["duration"] = leg.Duration
		f.Properties["distance"] = leg.Distance
		fc.Append(f)
	}
	return fc
}
