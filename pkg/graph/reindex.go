package graph

import "github.com/paulmach/osm"

// DenseMap is a bijection between original node ids and [0, N).
type DenseMap struct {
	dense    map[osm.NodeID]uint32
	original []osm.NodeID
}

// Reindex assigns consecutive ids from 0 in the order given. A repeated id
// keeps its first assignment, so the result is always contiguous.
func Reindex(order []osm.NodeID) *DenseMap {
	m := &DenseMap{
		dense:    make(map[osm.NodeID]uint32, len(order)),
		original: make([]osm.NodeID, 0, len(order)),
	}
	for _, id := range order {
		if _, ok := m.dense[id]; ok {
			continue
		}
		m.dense[id] = uint32(len(m.original))
		m.original = append(m.original, id)
	}
	return m
}

// Dense returns the dense id of an original id.
func (m *DenseMap) Dense(id osm.NodeID) (uint32, bool) {
	d, ok := m.dense[id]
	return d, ok
}

// Original returns the original id behind a dense id.
func (m *DenseMap) Original(d uint32) osm.NodeID {
	return m.original[d]
}

// Len is N.
func (m *DenseMap) Len() int {
	return len(m.original)
}
