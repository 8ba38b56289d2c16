package graph

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Stats summarizes the shape of a written graph.
type Stats struct {
	NumNodes        uint32
	NumEdges        uint32
	NodesInEdges    uint64            // distinct ids appearing as an edge endpoint
	Sparsity        float64           // 1 - M / (N*(N-1)); 1 when N < 2
	OutDegree       map[uint32]uint32 // out-degree -> number of nodes, degree >= 1
	ZeroOutDegree   uint32
	MultiEdges      uint32 // edges repeating an earlier (from, to) pair
	SelfLoops       uint32
	TotalLength     uint64 // meters
	Components      int
	LargestCompSize uint32
}

// Sparsity is the fraction of possible directed edges that are absent.
func Sparsity(numNodes, numEdges uint64) float64 {
	if numNodes < 2 {
		return 1
	}
	return 1 - float64(numEdges)/(float64(numNodes)*float64(numNodes-1))
}

// Analyze computes Stats for g.
func Analyze(g *Graph) Stats {
	s := Stats{
		NumNodes:  g.NumNodes,
		NumEdges:  g.NumEdges,
		Sparsity:  Sparsity(uint64(g.NumNodes), uint64(g.NumEdges)),
		OutDegree: make(map[uint32]uint32),
	}

	endpoints := roaring.New()
	heads := make(map[uint32]struct{})
	for u := uint32(0); u < g.NumNodes; u++ {
		start, end := g.EdgesFrom(u)
		deg := end - start
		if deg == 0 {
			s.ZeroOutDegree++
			continue
		}
		s.OutDegree[deg]++
		endpoints.Add(u)

		clear(heads)
		for e := start; e < end; e++ {
			v := g.Head[e]
			endpoints.Add(v)
			s.TotalLength += uint64(g.Weight[e])
			if v == u {
				s.SelfLoops++
			}
			if _, dup := heads[v]; dup {
				s.MultiEdges++
				continue
			}
			heads[v] = struct{}{}
		}
	}
	s.NodesInEdges = endpoints.GetCardinality()

	sizes := ComponentSizes(g)
	s.Components = len(sizes)
	if len(sizes) > 0 {
		s.LargestCompSize = sizes[0]
	}
	return s
}

// Degrees returns the out-degrees present in the distribution, ascending.
func (s Stats) Degrees() []uint32 {
	degs := make([]uint32, 0, len(s.OutDegree))
	for d := range s.OutDegree {
		degs = append(degs, d)
	}
	sort.Slice(degs, func(i, j int) bool { return degs[i] < degs[j] })
	return degs
}
