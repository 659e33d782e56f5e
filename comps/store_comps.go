package comps

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ttpr0/go-cityroute/graph"
	. "github.com/ttpr0/go-cityroute/util"
)

//*******************************************
// graph io
//*******************************************

type _CityGraphData struct {
	Nodes Array[graph.Node]
	Edges Array[graph.Edge]
}

// StoreCityGraph writes the graph as gob to file, replacing it atomically.
func StoreCityGraph(g *graph.CityGraph, file string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(file), filepath.Base(file)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	writer := bufio.NewWriter(tmp)
	data := _CityGraphData{Nodes: g.Nodes(), Edges: g.Edges()}
	if err := gob.NewEncoder(writer).Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("encode city graph: %w", err)
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), file)
}

// LoadCityGraph reads a graph written by StoreCityGraph and revalidates it.
func LoadCityGraph(file string) (*graph.CityGraph, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data _CityGraphData
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode city graph %s: %w", file, err)
	}
	return graph.NewCityGraph(data.Nodes, data.Edges)
}
