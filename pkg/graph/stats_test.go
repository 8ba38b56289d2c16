package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparsity(t *testing.T) {
	assert.Equal(t, 1.0, Sparsity(0, 0))
	assert.Equal(t, 1.0, Sparsity(1, 0))
	assert.Equal(t, 0.0, Sparsity(2, 2))
	assert.InDelta(t, 1-4.0/12.0, Sparsity(4, 4), 1e-12)
}

func TestAnalyzeScenario(t *testing.T) {
	table, ways := Merge(scenarioSets())
	raw, err := Expand(table, ways)
	require.NoError(t, err)
	edges, err := Rewrite(raw, Reindex(table.Order()))
	require.NoError(t, err)

	g := buildGraph(t, uint32(table.Len()), edges...)
	s := Analyze(g)

	assert.Equal(t, uint32(4), s.NumNodes)
	assert.Equal(t, uint32(4), s.NumEdges)
	assert.Equal(t, uint64(4), s.NodesInEdges)
	assert.InDelta(t, 1-4.0/12.0, s.Sparsity, 1e-12)
	assert.Equal(t, map[uint32]uint32{1: 4}, s.OutDegree)
	assert.Equal(t, uint32(0), s.ZeroOutDegree)
	assert.Equal(t, uint32(0), s.MultiEdges)
	assert.Equal(t, uint64(4*111), s.TotalLength)
	assert.Equal(t, 1, s.Components)
	assert.Equal(t, uint32(4), s.LargestCompSize)
}

func TestAnalyzeMultiEdgesAndIsolated(t *testing.T) {
	g := buildGraph(t, 5,
		Edge{From: 0, To: 1, Length: 10},
		Edge{From: 0, To: 1, Length: 11},
		Edge{From: 0, To: 2, Length: 12},
		Edge{From: 2, To: 2, Length: 0},
		Edge{From: 1, To: 0, Length: 10},
	)
	s := Analyze(g)

	assert.Equal(t, uint32(1), s.MultiEdges)
	assert.Equal(t, uint32(1), s.SelfLoops)
	assert.Equal(t, map[uint32]uint32{3: 1, 1: 2}, s.OutDegree)
	assert.Equal(t, []uint32{1, 3}, s.Degrees())
	assert.Equal(t, uint32(2), s.ZeroOutDegree)
	assert.Equal(t, uint64(3), s.NodesInEdges, "nodes 3 and 4 never appear")
	assert.Equal(t, 3, s.Components)
	assert.Equal(t, uint32(3), s.LargestCompSize)
}
