package graph

import (
	"encoding/json"
	"errors"
)

//*******************************************
// enums
//*******************************************

type NodeKind byte

const (
	INTERSECTION NodeKind = 0
	STOP         NodeKind = 1
)

func (self NodeKind) String() string {
	switch self {
	case INTERSECTION:
		return "intersection"
	case STOP:
		return "stop"
	default:
		panic("unknown node kind")
	}
}
func (self NodeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *NodeKind) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	kind, err := NodeKindFromString(typ)
	*self = kind
	return err
}

func NodeKindFromString(s string) (NodeKind, error) {
	switch s {
	case "intersection":
		return INTERSECTION, nil
	case "stop":
		return STOP, nil
	default:
		return INTERSECTION, errors.New("unknown node kind")
	}
}

type EdgeMode byte

const (
	WALK     EdgeMode = 0
	BUS      EdgeMode = 1
	TRANSFER EdgeMode = 2
)

// EDGE_MODES lists all modes in declaration order.
var EDGE_MODES = [...]EdgeMode{WALK, BUS, TRANSFER}

func (self EdgeMode) String() string {
	switch self {
	case WALK:
		return "walk"
	case BUS:
		return "bus"
	case TRANSFER:
		return "transfer"
	default:
		panic("unknown edge mode")
	}
}
func (self EdgeMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *EdgeMode) UnmarshalJSON(data []byte) error {
	var typ string
	if err := json.Unmarshal(data, &typ); err != nil {
		return err
	}
	mode, err := EdgeModeFromString(typ)
	*self = mode
	return err
}
func (self EdgeMode) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}
func (self *EdgeMode) UnmarshalText(data []byte) error {
	mode, err := EdgeModeFromString(string(data))
	*self = mode
	return err
}

func EdgeModeFromString(s string) (EdgeMode, error) {
	switch s {
	case "walk":
		return WALK, nil
	case "bus":
		return BUS, nil
	case "transfer":
		return TRANSFER, nil
	default:
		return WALK, errors.New("unknown edge mode")
	}
}
