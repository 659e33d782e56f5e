package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
	"github.com/ttpr0/go-cityroute/geo"
	. "github.com/ttpr0/go-cityroute/util"
)

//*******************************************
// stop linker
//*******************************************

// IStopLinker picks the intersection every stop is linked to.
type IStopLinker interface {
	Name() string
	// Link returns for every stop the index into intersections of the
	// nearest one by haversine distance, ties to the lower index.
	Link(intersections Array[Node], stops Array[Node]) Array[int32]
}

//*******************************************
// exhaustive scan
//*******************************************

// ScanLinker compares every stop with every intersection.
type ScanLinker struct{}

func NewScanLinker() *ScanLinker {
	return &ScanLinker{}
}

func (self *ScanLinker) Name() string {
	return "scan"
}

func (self *ScanLinker) Link(intersections Array[Node], stops Array[Node]) Array[int32] {
	nearest := NewArray[int32](stops.Length())
	for i, stop := range stops {
		best := int32(-1)
		best_dist := 0.0
		for j, node := range intersections {
			dist := geo.Distance(stop.Loc, node.Loc)
			if best == -1 || dist < best_dist {
				best = int32(j)
				best_dist = dist
			}
		}
		nearest[i] = best
	}
	return nearest
}

//*******************************************
// quadtree
//*******************************************

type _IndexedPoint struct {
	point orb.Point
	index int32
}

func (self _IndexedPoint) Point() orb.Point {
	return self.point
}

// QuadtreeLinker queries the k nearest intersections in lon/lat space and
// ranks them by haversine distance. It matches ScanLinker whenever the
// haversine nearest intersection is among the k planar candidates, which
// holds for city-sized extents and a small k.
type QuadtreeLinker struct {
	candidates int
}

func NewQuadtreeLinker(candidates int) *QuadtreeLinker {
	if candidates < 1 {
		candidates = 8
	}
	return &QuadtreeLinker{candidates: candidates}
}

func (self *QuadtreeLinker) Name() string {
	return "quadtree"
}

func (self *QuadtreeLinker) Link(intersections Array[Node], stops Array[Node]) Array[int32] {
	nearest := NewArray[int32](stops.Length())
	if intersections.Length() == 0 {
		for i := range nearest {
			nearest[i] = -1
		}
		return nearest
	}

	points := make(orb.MultiPoint, intersections.Length())
	for i, node := range intersections {
		points[i] = node.Loc.Point()
	}
	tree := quadtree.New(points.Bound().Pad(1e-6))
	for i, p := range points {
		// cannot fail, the bound covers every point
		tree.Add(_IndexedPoint{point: p, index: int32(i)})
	}

	buf := make([]orb.Pointer, 0, self.candidates)
	for i, stop := range stops {
		buf = tree.KNearest(buf[:0], stop.Loc.Point(), self.candidates)
		best := int32(-1)
		best_dist := 0.0
		for _, c := range buf {
			index := c.(_IndexedPoint).index
			dist := geo.Distance(stop.Loc, intersections[index].Loc)
			if best == -1 || dist < best_dist || (dist == best_dist && index < best) {
				best = index
				best_dist = dist
			}
		}
		nearest[i] = best
	}
	return nearest
}
