package spatial

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/tidwall/rtree"

	"road_graph/pkg/geo"
)

// ErrEmptyIndex is returned by Nearest on an index without nodes.
var ErrEmptyIndex = errors.New("spatial index is empty")

// nearestCandidates is how many nodes Nearest ranks by great-circle distance.
// The tree orders by planar degree distance, which drifts from meters away
// from the equator, so the first hit alone is not always the closest.
const nearestCandidates = 32

// Hit is a node found by a query.
type Hit struct {
	Node uint32  // dense id
	Dist float64 // meters from the query point
}

// Index is an R-tree over node coordinates keyed by dense id.
type Index struct {
	tr     rtree.RTreeG[uint32]
	coords []geo.Coord
}

// New indexes coords; the position in the slice is the dense id.
func New(coords []geo.Coord) *Index {
	idx := &Index{coords: coords}
	for i, c := range coords {
		p := [2]float64{c.Lon, c.Lat}
		idx.tr.Insert(p, p, uint32(i))
	}
	return idx
}

// Len returns the number of indexed nodes.
func (idx *Index) Len() int {
	return idx.tr.Len()
}

// Nearest returns the node closest to (lat, lon).
func (idx *Index) Nearest(lat, lon float64) (Hit, error) {
	if idx.tr.Len() == 0 {
		return Hit{}, ErrEmptyIndex
	}
	q := geo.Coord{Lat: lat, Lon: lon}
	target := [2]float64{lon, lat}

	best := Hit{Dist: -1}
	seen := 0
	idx.tr.Nearby(
		rtree.BoxDist[float64, uint32](target, target, nil),
		func(_, _ [2]float64, node uint32, _ float64) bool {
			d := geo.Distance(q, idx.coords[node])
			if best.Dist < 0 || d < best.Dist || (d == best.Dist && node < best.Node) {
				best = Hit{Node: node, Dist: d}
			}
			seen++
			return seen < nearestCandidates
		},
	)
	return best, nil
}

// Within returns the dense ids of nodes inside b, ascending.
func (idx *Index) Within(b orb.Bound) []uint32 {
	var ids []uint32
	idx.tr.Search(
		[2]float64{b.Min.Lon(), b.Min.Lat()},
		[2]float64{b.Max.Lon(), b.Max.Lat()},
		func(_, _ [2]float64, node uint32) bool {
			ids = append(ids, node)
			return true
		},
	)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
