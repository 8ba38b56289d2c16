package graph

import (
	"github.com/paulmach/osm"

	"road_graph/pkg/geo"
	osmparser "road_graph/pkg/osm"
)

// NodeTable maps original node ids to coordinates.
//
// Two rules govern it:
//   - value: the coordinate stored for an id is the last one written;
//   - order: ids are enumerated in the order they were first written.
//
// The dense reindexing depends on the second rule.
type NodeTable struct {
	coords map[osm.NodeID]geo.Coord
	order  []osm.NodeID
}

// NewNodeTable returns an empty table sized for n nodes.
func NewNodeTable(n int) *NodeTable {
	return &NodeTable{
		coords: make(map[osm.NodeID]geo.Coord, n),
		order:  make([]osm.NodeID, 0, n),
	}
}

// Set inserts or overwrites the coordinate of id.
func (t *NodeTable) Set(id osm.NodeID, c geo.Coord) {
	if _, ok := t.coords[id]; !ok {
		t.order = append(t.order, id)
	}
	t.coords[id] = c
}

// Lookup returns the coordinate of id.
func (t *NodeTable) Lookup(id osm.NodeID) (geo.Coord, bool) {
	c, ok := t.coords[id]
	return c, ok
}

// Len is the number of distinct ids.
func (t *NodeTable) Len() int {
	return len(t.order)
}

// Order returns the ids in first-seen order. The slice must not be modified.
func (t *NodeTable) Order() []osm.NodeID {
	return t.order
}

// Merge combines result sets in the order given. Coordinates of later sets
// override earlier ones; ways are concatenated without deduplication.
func Merge(sets []*osmparser.ResultSet) (*NodeTable, []osmparser.Way) {
	var numNodes, numWays int
	for _, rs := range sets {
		numNodes += len(rs.Nodes)
		numWays += len(rs.Ways)
	}

	table := NewNodeTable(numNodes)
	ways := make([]osmparser.Way, 0, numWays)
	for _, rs := range sets {
		for _, n := range rs.Nodes {
			table.Set(n.ID, n.Coord())
		}
		ways = append(ways, rs.Ways...)
	}
	return table, ways
}
