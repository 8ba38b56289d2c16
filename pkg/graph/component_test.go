package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, numNodes uint32, edges ...Edge) *Graph {
	t.Helper()
	g, err := Build(&EdgeList{NumNodes: numNodes, Edges: edges}, nil)
	require.NoError(t, err)
	return g
}

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(5)

	for i := range uint32(5) {
		assert.Equal(t, i, uf.Find(i), "initially separate")
	}

	assert.True(t, uf.Union(0, 1))
	assert.Equal(t, uf.Find(0), uf.Find(1))

	uf.Union(2, 3)
	assert.Equal(t, uf.Find(2), uf.Find(3))
	assert.NotEqual(t, uf.Find(0), uf.Find(2))

	uf.Union(1, 3)
	assert.Equal(t, uf.Find(0), uf.Find(3))
	assert.Equal(t, uint32(4), uf.Size(2))
	assert.False(t, uf.Union(0, 2), "already joined")
}

func TestComponentSizes(t *testing.T) {
	// Component 1: 0 <-> 1 <-> 2 (3 nodes)
	// Component 2: 3 <-> 4 (2 nodes)
	g := buildGraph(t, 5,
		Edge{From: 0, To: 1, Length: 100},
		Edge{From: 1, To: 0, Length: 100},
		Edge{From: 1, To: 2, Length: 200},
		Edge{From: 2, To: 1, Length: 200},
		Edge{From: 3, To: 4, Length: 300},
		Edge{From: 4, To: 3, Length: 300},
	)

	assert.Equal(t, []uint32{3, 2}, ComponentSizes(g))
}

func TestComponentSizesIsolatedNodes(t *testing.T) {
	// Node 2 and 3 have no edges; one-way edge still joins 0 and 1.
	g := buildGraph(t, 4, Edge{From: 0, To: 1, Length: 5})
	assert.Equal(t, []uint32{2, 1, 1}, ComponentSizes(g))
}

func TestComponentsEmptyGraph(t *testing.T) {
	g := buildGraph(t, 0)
	assert.Nil(t, ComponentSizes(g))
}
