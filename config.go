package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/graph"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

//**********************************************************
// config
//**********************************************************

// ReadConfig reads a yaml config on top of DefaultConfig and validates it.
func ReadConfig(file string) (Config, error) {
	slog.Info("reading config file", "file", file)
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

type Config struct {
	Sources  SourceOptions   `yaml:"sources"`
	Speeds   SpeedOptions    `yaml:"speeds"`
	Composer ComposerOptions `yaml:"composer"`
	Routing  struct {
		Metric MetricType `yaml:"metric"`
	} `yaml:"routing"`
	Cache struct {
		Enabled bool   `yaml:"enabled"`
		Dir     string `yaml:"dir"`
	} `yaml:"cache"`
	Geocoder GeocoderOptions `yaml:"geocoder"`
	Schedule struct {
		File string `yaml:"file"`
	} `yaml:"schedule"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	LogLevel string `yaml:"log-level"`
}

func DefaultConfig() Config {
	config := Config{}
	config.Sources.Street = StreetSourceOptions{Type: NODELINK, Path: "./data/streets.json"}
	config.Sources.Transit = TransitSourceOptions{Type: AMB, Path: "", Municipality: "Barcelona"}
	config.Speeds = SpeedOptions{Walk: 5, Bus: 20, Transfer: 5}
	config.Composer = ComposerOptions{Linker: SCAN_LINKER, Candidates: 8}
	config.Routing.Metric = FASTEST
	config.Cache.Enabled = true
	config.Cache.Dir = "./graphs"
	config.Geocoder = GeocoderOptions{
		Type:      NOMINATIM,
		UserAgent: "go-cityroute",
		Suffix:    ", Barcelona",
		CacheSize: 1000,
		Timeout:   10 * time.Second,
		Retries:   3,
	}
	config.Schedule.File = "./data/billboard.json"
	config.Server.Port = 5002
	config.LogLevel = "info"
	return config
}

func (self Config) Validate() error {
	if self.Sources.Street.Path == "" {
		return fmt.Errorf("%w: sources.street.path is empty", ErrInvalidConfig)
	}
	if self.Sources.Transit.Type == GTFS && self.Sources.Transit.Path == "" {
		return fmt.Errorf("%w: sources.transit.path is required for gtfs", ErrInvalidConfig)
	}
	if _, err := comps.NewCostModel(self.Speeds.Table()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if self.Composer.Linker == QUADTREE_LINKER && self.Composer.Candidates < 1 {
		return fmt.Errorf("%w: composer.candidates must be positive", ErrInvalidConfig)
	}
	if self.Cache.Enabled && self.Cache.Dir == "" {
		return fmt.Errorf("%w: cache.dir is empty", ErrInvalidConfig)
	}
	if self.Geocoder.Retries < 1 {
		return fmt.Errorf("%w: geocoder.retries must be positive", ErrInvalidConfig)
	}
	if self.Server.Port < 1 || self.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, self.Server.Port)
	}
	if _, err := LogLevelFromString(self.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

type SourceOptions struct {
	Street  StreetSourceOptions  `yaml:"street"`
	Transit TransitSourceOptions `yaml:"transit"`
}

type StreetSourceOptions struct {
	Type StreetSourceType `yaml:"type"`
	Path string           `yaml:"path"`
}

type TransitSourceOptions struct {
	Type TransitSourceType `yaml:"type"`
	// Path is a file or url, empty means the AMB open data endpoint.
	Path         string `yaml:"path"`
	Municipality string `yaml:"municipality"`
	RouteTypes   []int  `yaml:"route-types"`
}

// SpeedOptions are in km/h.
type SpeedOptions struct {
	Walk     float64 `yaml:"walk"`
	Bus      float64 `yaml:"bus"`
	Transfer float64 `yaml:"transfer"`
}

func (self SpeedOptions) Table() comps.SpeedTable {
	return comps.SpeedTable{
		graph.WALK:     self.Walk,
		graph.BUS:      self.Bus,
		graph.TRANSFER: self.Transfer,
	}
}

type ComposerOptions struct {
	Linker     LinkerType `yaml:"linker"`
	Candidates int        `yaml:"candidates"`
}

type GeocoderOptions struct {
	Type      GeocoderType  `yaml:"type"`
	URL       string        `yaml:"url"`
	UserAgent string        `yaml:"user-agent"`
	Suffix    string        `yaml:"suffix"`
	CacheSize int           `yaml:"cache-size"`
	Timeout   time.Duration `yaml:"timeout"`
	Retries   int           `yaml:"retries"`
}

//**********************************************************
// enums
//**********************************************************

type MetricType byte

const (
	FASTEST  MetricType = 0
	SHORTEST MetricType = 1
)

func (self MetricType) String() string {
	switch self {
	case FASTEST:
		return "fastest"
	case SHORTEST:
		return "shortest"
	default:
		panic("unknown metric type")
	}
}
func (self MetricType) MarshalJSON() ([]byte, error) {
	return json.Marshal(self.String())
}
func (self *MetricType) UnmarshalJSON(data []byte) error {
	var typ string
	err := json.Unmarshal(data, &typ)
	if err != nil {
		return err
	}
	*self, err = MetricTypeFromString(typ)
	return err
}
func (self MetricType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *MetricType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := MetricTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func MetricTypeFromString(s string) (MetricType, error) {
	switch s {
	case "fastest":
		return FASTEST, nil
	case "shortest":
		return SHORTEST, nil
	default:
		return FASTEST, errors.New("unknown metric type")
	}
}

type StreetSourceType byte

const (
	NODELINK StreetSourceType = 0
	OSM      StreetSourceType = 1
)

func (self StreetSourceType) String() string {
	switch self {
	case NODELINK:
		return "nodelink"
	case OSM:
		return "osm"
	default:
		panic("unknown street source type")
	}
}
func (self StreetSourceType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *StreetSourceType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := StreetSourceTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func StreetSourceTypeFromString(s string) (StreetSourceType, error) {
	switch s {
	case "nodelink":
		return NODELINK, nil
	case "osm":
		return OSM, nil
	default:
		return NODELINK, errors.New("unknown street source type")
	}
}

type TransitSourceType byte

const (
	AMB  TransitSourceType = 0
	GTFS TransitSourceType = 1
)

func (self TransitSourceType) String() string {
	switch self {
	case AMB:
		return "amb"
	case GTFS:
		return "gtfs"
	default:
		panic("unknown transit source type")
	}
}
func (self TransitSourceType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *TransitSourceType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := TransitSourceTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func TransitSourceTypeFromString(s string) (TransitSourceType, error) {
	switch s {
	case "amb":
		return AMB, nil
	case "gtfs":
		return GTFS, nil
	default:
		return AMB, errors.New("unknown transit source type")
	}
}

type LinkerType byte

const (
	SCAN_LINKER     LinkerType = 0
	QUADTREE_LINKER LinkerType = 1
)

func (self LinkerType) String() string {
	switch self {
	case SCAN_LINKER:
		return "scan"
	case QUADTREE_LINKER:
		return "quadtree"
	default:
		panic("unknown linker type")
	}
}
func (self LinkerType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *LinkerType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := LinkerTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func LinkerTypeFromString(s string) (LinkerType, error) {
	switch s {
	case "scan":
		return SCAN_LINKER, nil
	case "quadtree":
		return QUADTREE_LINKER, nil
	default:
		return SCAN_LINKER, errors.New("unknown linker type")
	}
}

type GeocoderType byte

const (
	NOMINATIM GeocoderType = 0
	LITERAL   GeocoderType = 1
)

func (self GeocoderType) String() string {
	switch self {
	case NOMINATIM:
		return "nominatim"
	case LITERAL:
		return "literal"
	default:
		panic("unknown geocoder type")
	}
}
func (self GeocoderType) MarshalYAML() (any, error) {
	return self.String(), nil
}
func (self *GeocoderType) UnmarshalYAML(value *yaml.Node) error {
	typ, err := GeocoderTypeFromString(value.Value)
	if err != nil {
		return err
	}
	*self = typ
	return nil
}

func GeocoderTypeFromString(s string) (GeocoderType, error) {
	switch s {
	case "nominatim":
		return NOMINATIM, nil
	case "literal":
		return LITERAL, nil
	default:
		return NOMINATIM, errors.New("unknown geocoder type")
	}
}
