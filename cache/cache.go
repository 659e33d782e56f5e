package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"hash"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/ttpr0/go-cityroute/comps"
	"github.com/ttpr0/go-cityroute/graph"
	"golang.org/x/exp/slog"
)

// FORMAT_VERSION changes whenever the composed graph layout or the
// composition rules change, invalidating all stored graphs.
const FORMAT_VERSION = 1

//*******************************************
// graph cache interface
//*******************************************

type IGraphCache interface {
	// Load returns false without error on a cache miss.
	Load(key string) (*graph.CityGraph, bool, error)
	Save(key string, g *graph.CityGraph) error
}

//*******************************************
// fingerprint
//*******************************************

// Fingerprint hashes both source graphs in order, together with the stop
// linker and FORMAT_VERSION. Any change to the sources yields a new key.
func Fingerprint(street *graph.StreetGraph, transit *graph.TransitGraph, linker string) string {
	h := sha256.New()
	_WriteInt(h, FORMAT_VERSION)
	_WriteString(h, linker)

	_WriteInt(h, int64(street.Nodes.Length()))
	for _, n := range street.Nodes {
		_WriteString(h, string(n.ID))
		_WriteFloat(h, n.Loc.Lat)
		_WriteFloat(h, n.Loc.Lon)
	}
	_WriteInt(h, int64(street.Edges.Length()))
	for _, e := range street.Edges {
		_WriteString(h, string(e.NodeA))
		_WriteString(h, string(e.NodeB))
		_WriteFloat(h, e.Length)
	}
	_WriteInt(h, int64(transit.Stops.Length()))
	for _, s := range transit.Stops {
		_WriteString(h, string(s.ID))
		_WriteFloat(h, s.Loc.Lat)
		_WriteFloat(h, s.Loc.Lon)
		_WriteString(h, s.Line)
		_WriteString(h, s.Name)
	}
	_WriteInt(h, int64(transit.Hops.Length()))
	for _, hop := range transit.Hops {
		_WriteString(h, string(hop.NodeA))
		_WriteString(h, string(hop.NodeB))
		_WriteFloat(h, hop.Length)
		_WriteString(h, hop.Line)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func _WriteInt(h hash.Hash, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}
func _WriteFloat(h hash.Hash, v float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	h.Write(buf[:])
}

// strings are length prefixed so that field boundaries cannot shift
func _WriteString(h hash.Hash, s string) {
	_WriteInt(h, int64(len(s)))
	h.Write([]byte(s))
}

//*******************************************
// file cache
//*******************************************

// FileCache keeps one gob file per key in a directory.
type FileCache struct {
	dir string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{dir: dir}
}

func (self *FileCache) Path(key string) string {
	return filepath.Join(self.dir, key+".gob")
}

func (self *FileCache) Load(key string) (*graph.CityGraph, bool, error) {
	file := self.Path(key)
	g, err := comps.LoadCityGraph(file)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("graph cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	slog.Debug("graph cache hit", "key", key, "file", file)
	return g, true, nil
}

func (self *FileCache) Save(key string, g *graph.CityGraph) error {
	return comps.StoreCityGraph(g, self.Path(key))
}

// Prune removes every stored graph except the one under keep.
func (self *FileCache) Prune(keep string) error {
	files, err := filepath.Glob(filepath.Join(self.dir, "*.gob"))
	if err != nil {
		return err
	}
	for _, file := range files {
		if file == self.Path(keep) {
			continue
		}
		if err := os.Remove(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

//*******************************************
// no cache
//*******************************************

// NoCache never hits and drops every save.
type NoCache struct{}

func (self NoCache) Load(key string) (*graph.CityGraph, bool, error) {
	return nil, false, nil
}
func (self NoCache) Save(key string, g *graph.CityGraph) error {
	return nil
}

//*******************************************
// load or build
//*******************************************

// LoadOrCompose returns the cached graph for the sources or composes and
// stores a new one. A failing save is logged and does not fail the build.
func LoadOrCompose(c IGraphCache, street *graph.StreetGraph, transit *graph.TransitGraph, linker graph.IStopLinker) (*graph.CityGraph, error) {
	key := Fingerprint(street, transit, linker.Name())
	g, ok, err := c.Load(key)
	if err != nil {
		slog.Warn("failed to load cached graph, rebuilding", "key", key, "err", err)
	}
	if ok {
		return g, nil
	}
	g, err = graph.Compose(street, transit, graph.WithStopLinker(linker))
	if err != nil {
		return nil, err
	}
	if err := c.Save(key, g); err != nil {
		slog.Warn("failed to store graph", "key", key, "err", err)
	}
	return g, nil
}
