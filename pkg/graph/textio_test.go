package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road_graph/pkg/geo"
)

func writeScenario(t *testing.T, dir string) Paths {
	t.Helper()
	table, ways := Merge(scenarioSets())
	edges, err := Expand(table, ways)
	require.NoError(t, err)

	paths := Paths{
		Edges: filepath.Join(dir, "input_edges", "graph_edges.txt"),
		Nodes: filepath.Join(dir, "map_data", "graph_nodes.txt"),
	}
	require.NoError(t, WritePair(paths, table, Reindex(table.Order()), edges))
	return paths
}

func TestWritePairScenario(t *testing.T) {
	paths := writeScenario(t, t.TempDir())

	edgeBytes, err := os.ReadFile(paths.Edges)
	require.NoError(t, err)
	assert.Equal(t, "4 4\n0 1 111\n1 2 111\n2 3 111\n3 2 111\n", string(edgeBytes))

	nodeBytes, err := os.ReadFile(paths.Nodes)
	require.NoError(t, err)
	assert.Equal(t, "0 0 0\n1 0 0.001\n2 0 0.002\n3 0 0.003\n", string(nodeBytes))

	// Header count matches the literal number of edge lines.
	lines := strings.Split(strings.TrimSuffix(string(edgeBytes), "\n"), "\n")
	assert.Len(t, lines[1:], 4)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(paths.Edges), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files cleaned up")
}

func TestWritePairDeterministic(t *testing.T) {
	a := writeScenario(t, t.TempDir())
	b := writeScenario(t, t.TempDir())

	for _, pair := range [][2]string{{a.Edges, b.Edges}, {a.Nodes, b.Nodes}} {
		x, err := os.ReadFile(pair[0])
		require.NoError(t, err)
		y, err := os.ReadFile(pair[1])
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}
}

func TestWritePairMergeOverride(t *testing.T) {
	sets := scenarioSets()
	sets[1].Nodes[0].Lat = 0.5 // later set moves C

	table, ways := Merge(sets)
	edges, err := Expand(table, ways)
	require.NoError(t, err)

	dir := t.TempDir()
	paths := Paths{Edges: filepath.Join(dir, "e.txt"), Nodes: filepath.Join(dir, "n.txt")}
	require.NoError(t, WritePair(paths, table, Reindex(table.Order()), edges))

	coords, err := ReadNodeFile(paths.Nodes)
	require.NoError(t, err)
	assert.Equal(t, geo.Coord{Lat: 0.5, Lon: 0.002}, coords[2])
}

func TestWritePairUnmappedNodeWritesNothing(t *testing.T) {
	table, ways := Merge(scenarioSets())
	edges, err := Expand(table, ways)
	require.NoError(t, err)

	// A dense map missing D cannot rewrite the C<->D edges.
	dense := Reindex([]osm.NodeID{idA, idB, idC})

	dir := t.TempDir()
	paths := Paths{Edges: filepath.Join(dir, "e.txt"), Nodes: filepath.Join(dir, "n.txt")}
	err = WritePair(paths, table, dense, edges)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnmappedNode))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWritePairUnwritableTarget(t *testing.T) {
	table, ways := Merge(scenarioSets())
	edges, err := Expand(table, ways)
	require.NoError(t, err)

	dir := t.TempDir()
	// The node target is an existing directory, so its rename fails.
	nodesPath := filepath.Join(dir, "nodes")
	require.NoError(t, os.MkdirAll(filepath.Join(nodesPath, "occupied"), 0o755))

	paths := Paths{Edges: filepath.Join(dir, "edges.txt"), Nodes: nodesPath}
	err = WritePair(paths, table, Reindex(table.Order()), edges)
	require.Error(t, err)
	assert.Contains(t, err.Error(), nodesPath)

	_, statErr := os.Stat(paths.Edges)
	assert.True(t, os.IsNotExist(statErr), "edge file must not survive alone")
	_, statErr = os.Stat(nodesPath + ".tmp")
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadEdgesRoundTrip(t *testing.T) {
	paths := writeScenario(t, t.TempDir())

	el, err := ReadEdgeFile(paths.Edges)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), el.NumNodes)
	assert.Equal(t, []Edge{
		{From: 0, To: 1, Length: 111},
		{From: 1, To: 2, Length: 111},
		{From: 2, To: 3, Length: 111},
		{From: 3, To: 2, Length: 111},
	}, el.Edges)

	coords, err := ReadNodeFile(paths.Nodes)
	require.NoError(t, err)
	assert.Equal(t, []geo.Coord{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}, {Lat: 0, Lon: 0.002}, {Lat: 0, Lon: 0.003}}, coords)
}

func TestReadEdgesInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty", "", "missing header"},
		{"bad header", "4\n", "line 1"},
		{"too few lines", "2 2\n0 1 5\n", "announces 2 edges, found 1"},
		{"too many lines", "2 1\n0 1 5\n1 0 5\n", "announces 1 edges, found 2"},
		{"endpoint out of range", "2 1\n0 2 5\n", "line 2"},
		{"negative length", "2 1\n0 1 -5\n", "line 2"},
		{"short line", "2 1\n0 1\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEdges(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadNodesAnyOrder(t *testing.T) {
	coords, err := ReadNodes(strings.NewReader("1 51.5 5.5\n0 -1.25 179.75\n"))
	require.NoError(t, err)
	assert.Equal(t, []geo.Coord{{Lat: -1.25, Lon: 179.75}, {Lat: 51.5, Lon: 5.5}}, coords)
}

func TestReadNodesInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"gap", "0 1 1\n2 1 1\n", "node id 1 missing"},
		{"duplicate", "0 1 1\n0 2 2\n", "duplicate node id 0"},
		{"bad float", "0 north 1\n", "line 1"},
		{"fields", "0 1\n", "want 3 fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadNodes(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadEdgeFileMissing(t *testing.T) {
	_, err := ReadEdgeFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.txt")
}
