package export

import (
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"road_graph/pkg/graph"
	"road_graph/pkg/spatial"
)

// ErrNoCoords is returned when a graph was loaded without its node file.
var ErrNoCoords = errors.New("graph has no node coordinates")

// Options selects what goes into a FeatureCollection.
type Options struct {
	Bound     *orb.Bound // nil exports everything
	SkipNodes bool
	SkipEdges bool
}

// FeatureCollection renders nodes as Points and directed edges as two-point
// LineStrings. With a bound, only nodes inside it and edges with both
// endpoints inside it are kept.
func FeatureCollection(g *graph.Graph, opts Options) (*geojson.FeatureCollection, error) {
	if !g.HasCoords() {
		return nil, ErrNoCoords
	}

	keep := make([]bool, g.NumNodes)
	if opts.Bound == nil {
		for u := range keep {
			keep[u] = true
		}
	} else {
		for _, u := range spatial.New(g.Coords()).Within(*opts.Bound) {
			keep[u] = true
		}
	}

	fc := geojson.NewFeatureCollection()
	if !opts.SkipNodes {
		for u := uint32(0); u < g.NumNodes; u++ {
			if !keep[u] {
				continue
			}
			f := geojson.NewPointFeature([]float64{g.NodeLon[u], g.NodeLat[u]})
			f.SetProperty("id", u)
			fc.AddFeature(f)
		}
	}
	if !opts.SkipEdges {
		for u := uint32(0); u < g.NumNodes; u++ {
			if !keep[u] {
				continue
			}
			start, end := g.EdgesFrom(u)
			for e := start; e < end; e++ {
				v := g.Head[e]
				if !keep[v] {
					continue
				}
				f := geojson.NewLineStringFeature([][]float64{
					{g.NodeLon[u], g.NodeLat[u]},
					{g.NodeLon[v], g.NodeLat[v]},
				})
				f.SetProperty("from", u)
				f.SetProperty("to", v)
				f.SetProperty("length_m", g.Weight[e])
				fc.AddFeature(f)
			}
		}
	}
	return fc, nil
}

// Write encodes fc to w.
func Write(w io.Writer, fc *geojson.FeatureCollection) error {
	b, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshal geojson")
	}
	_, err = w.Write(b)
	return err
}

// WriteFile writes fc to path, replacing any previous file only on success.
func WriteFile(path string, fc *geojson.FeatureCollection) error {
	return graph.WriteFile(path, func(w io.Writer) error {
		return Write(w, fc)
	})
}
