package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-cityroute/geo"
	"github.com/ttpr0/go-cityroute/graph"
)

var origin = geo.NewCoord(41.3874, 2.1686)

func sources() (*graph.StreetGraph, *graph.TransitGraph) {
	street := graph.NewStreetGraph()
	street.AddNode("a", origin)
	street.AddNode("b", origin.Offset(0, 100))
	street.AddEdge("a", "b", 100)
	transit := graph.NewTransitGraph()
	transit.AddStop("s1", origin.Offset(5, 0), "V1")
	transit.AddStop("s2", origin.Offset(5, 100), "V1")
	transit.AddHop("s1", "s2", 100)
	return street, transit
}

func TestFingerprint(t *testing.T) {
	street, transit := sources()
	key := Fingerprint(street, transit, "scan")
	assert.Len(t, key, 64)
	assert.Equal(t, key, Fingerprint(street, transit, "scan"))
	assert.NotEqual(t, key, Fingerprint(street, transit, "quadtree"))

	transit.Stops[1].Line = "V2"
	assert.NotEqual(t, key, Fingerprint(street, transit, "scan"))

	street2, transit2 := sources()
	street2.Edges[0].Length = 101
	assert.NotEqual(t, key, Fingerprint(street2, transit2, "scan"))

	// moving bytes between adjacent ids must change the key
	s3, t3 := sources()
	s3.Nodes[0].ID = "ab"
	s3.Nodes[1].ID = ""
	s4, t4 := sources()
	s4.Nodes[0].ID = "a"
	s4.Nodes[1].ID = "b"
	assert.NotEqual(t, Fingerprint(s3, t3, "scan"), Fingerprint(s4, t4, "scan"))
}

func TestFileCacheMissThenHit(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir)
	street, transit := sources()

	g, ok, err := c.Load("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, g)

	built, err := LoadOrCompose(c, street, transit, graph.NewScanLinker())
	require.NoError(t, err)
	key := Fingerprint(street, transit, "scan")
	_, err = os.Stat(filepath.Join(dir, key+".gob"))
	require.NoError(t, err)

	loaded, ok, err := c.Load(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, built.Nodes(), loaded.Nodes())
	assert.Equal(t, built.Edges(), loaded.Edges())
}

func TestFileCacheChangedSourcesRebuild(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir)
	street, transit := sources()
	_, err := LoadOrCompose(c, street, transit, graph.NewScanLinker())
	require.NoError(t, err)

	street.AddNode("c", origin.Offset(0, 200))
	street.AddEdge("b", "c", 100)
	g, err := LoadOrCompose(c, street, transit, graph.NewScanLinker())
	require.NoError(t, err)
	assert.Equal(t, 5, g.NodeCount())

	files, err := filepath.Glob(filepath.Join(dir, "*.gob"))
	require.NoError(t, err)
	assert.Len(t, files, 2)

	require.NoError(t, c.Prune(Fingerprint(street, transit, "scan")))
	files, err = filepath.Glob(filepath.Join(dir, "*.gob"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileCacheCorruptFile(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir)
	require.NoError(t, os.WriteFile(c.Path("bad"), []byte("garbage"), 0o644))

	_, ok, err := c.Load("bad")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestLoadOrComposeErrors(t *testing.T) {
	street, _ := sources()
	_, err := LoadOrCompose(NoCache{}, street, graph.NewTransitGraph(), graph.NewScanLinker())
	assert.ErrorIs(t, err, graph.ErrEmptyInputGraph)
}
