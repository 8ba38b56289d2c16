package graph

import (
	"github.com/pkg/errors"

	"road_graph/pkg/geo"
)

// Graph represents a directed graph in CSR (Compressed Sparse Row) format.
// It is only built by read-only tools that load a written graph.
type Graph struct {
	NumNodes uint32
	NumEdges uint32
	FirstOut []uint32  // len: NumNodes + 1; FirstOut[i]..FirstOut[i+1] are edges from node i
	Head     []uint32  // len: NumEdges; target node for each edge
	Weight   []uint32  // len: NumEdges; length in meters
	NodeLat  []float64 // len: NumNodes, or 0 when no node file was loaded
	NodeLon  []float64 // len: NumNodes, or 0 when no node file was loaded
}

// EdgesFrom returns the range of edge indices for edges originating from node u.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.FirstOut[u], g.FirstOut[u+1]
}

// HasCoords reports whether node coordinates are present.
func (g *Graph) HasCoords() bool {
	return uint32(len(g.NodeLat)) == g.NumNodes && g.NumNodes > 0
}

// Coord returns the position of node u.
func (g *Graph) Coord(u uint32) geo.Coord {
	return geo.Coord{Lat: g.NodeLat[u], Lon: g.NodeLon[u]}
}

// Coords returns node positions indexed by dense id, or nil without coords.
func (g *Graph) Coords() []geo.Coord {
	if !g.HasCoords() {
		return nil
	}
	out := make([]geo.Coord, g.NumNodes)
	for u := range out {
		out[u] = geo.Coord{Lat: g.NodeLat[u], Lon: g.NodeLon[u]}
	}
	return out
}

// Build creates a CSR graph from an edge list. Edges of the same source keep
// their file order, so multi-edges survive unchanged. coords may be nil.
func Build(el *EdgeList, coords []geo.Coord) (*Graph, error) {
	numNodes := el.NumNodes
	numEdges := uint32(len(el.Edges))
	if coords != nil && uint32(len(coords)) != numNodes {
		return nil, errors.Errorf("node file has %d nodes, edge file header says %d", len(coords), numNodes)
	}

	firstOut := make([]uint32, numNodes+1)
	head := make([]uint32, numEdges)
	weight := make([]uint32, numEdges)

	// Count edges per node.
	for _, e := range el.Edges {
		firstOut[e.From+1]++
	}
	// Prefix sum.
	for i := uint32(1); i <= numNodes; i++ {
		firstOut[i] += firstOut[i-1]
	}

	// Place edges into CSR order.
	pos := make([]uint32, numNodes)
	copy(pos, firstOut[:numNodes])
	for _, e := range el.Edges {
		idx := pos[e.From]
		head[idx] = e.To
		weight[idx] = e.Length
		pos[e.From]++
	}

	g := &Graph{
		NumNodes: numNodes,
		NumEdges: numEdges,
		FirstOut: firstOut,
		Head:     head,
		Weight:   weight,
	}
	if coords != nil {
		g.NodeLat = make([]float64, numNodes)
		g.NodeLon = make([]float64, numNodes)
		for i, c := range coords {
			g.NodeLat[i] = c.Lat
			g.NodeLon[i] = c.Lon
		}
	}
	return g, nil
}

// FromFiles loads a written graph. nodesPath may be empty.
func FromFiles(edgesPath, nodesPath string) (*Graph, error) {
	el, err := ReadEdgeFile(edgesPath)
	if err != nil {
		return nil, err
	}
	var coords []geo.Coord
	if nodesPath != "" {
		if coords, err = ReadNodeFile(nodesPath); err != nil {
			return nil, err
		}
	}
	return Build(el, coords)
}
