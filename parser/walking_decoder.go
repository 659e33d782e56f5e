package parser

import (
	. "github.com/ttpr0/go-cityroute/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
}

type WalkingDecoder struct {
}

var walking_types = Dict[string, bool]{"primary": true, "primary_link": true, "secondary": true, "secondary_link": true,
	"tertiary": true, "tertiary_link": true, "residential": true, "living_street": true, "service": true, "track": true,
	"unclassified": true, "road": true, "pedestrian": true, "footway": true, "path": true, "steps": true}

func (self *WalkingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !walking_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	switch tags.Get("foot") {
	case "yes", "designated", "permissive":
		return true
	case "no", "private":
		return false
	}
	switch tags.Get("access") {
	case "no", "private":
		return false
	}
	return true
}
