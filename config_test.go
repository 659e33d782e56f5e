package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/go-cityroute/graph"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestReadConfig(t *testing.T) {
	file := writeConfig(t, `
sources:
  street:
    type: osm
    path: ./data/barcelona.pbf
  transit:
    type: gtfs
    path: ./data/gtfs.zip
    route-types: [3, 11]
speeds:
  bus: 18
composer:
  linker: quadtree
  candidates: 4
routing:
  metric: shortest
geocoder:
  type: literal
  timeout: 2s
server:
  port: 8080
log-level: debug
`)
	config, err := ReadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, OSM, config.Sources.Street.Type)
	assert.Equal(t, GTFS, config.Sources.Transit.Type)
	assert.Equal(t, []int{3, 11}, config.Sources.Transit.RouteTypes)
	assert.Equal(t, QUADTREE_LINKER, config.Composer.Linker)
	assert.Equal(t, 4, config.Composer.Candidates)
	assert.Equal(t, SHORTEST, config.Routing.Metric)
	assert.Equal(t, LITERAL, config.Geocoder.Type)
	assert.Equal(t, 2*time.Second, config.Geocoder.Timeout)
	assert.Equal(t, 8080, config.Server.Port)
	// unset values keep their defaults
	assert.Equal(t, 5.0, config.Speeds.Walk)
	assert.Equal(t, 18.0, config.Speeds.Bus)
	assert.True(t, config.Cache.Enabled)
	assert.Equal(t, 3, config.Geocoder.Retries)

	table := config.Speeds.Table()
	assert.Equal(t, 18.0, table[graph.BUS])
	assert.Equal(t, 5.0, table[graph.TRANSFER])
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown linker", "composer:\n  linker: kdtree\n"},
		{"unknown metric", "routing:\n  metric: scenic\n"},
		{"zero speed", "speeds:\n  walk: 0\n"},
		{"negative speed", "speeds:\n  bus: -3\n"},
		{"gtfs without path", "sources:\n  transit:\n    type: gtfs\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad log level", "log-level: verbose\n"},
		{"no candidates", "composer:\n  linker: quadtree\n  candidates: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnumYAMLRoundTrip(t *testing.T) {
	config := DefaultConfig()
	config.Composer.Linker = QUADTREE_LINKER
	config.Sources.Transit.Type = GTFS
	config.Sources.Transit.RouteTypes = []int{3}
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	assert.Contains(t, string(data), "linker: quadtree")
	assert.Contains(t, string(data), "type: gtfs")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, config, decoded)
}
