package graph

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road_graph/pkg/geo"
	osmparser "road_graph/pkg/osm"
)

func TestMergeScenarioOrder(t *testing.T) {
	table, ways := Merge(scenarioSets())

	assert.Equal(t, []osm.NodeID{idA, idB, idC, idD}, table.Order())
	assert.Equal(t, 4, table.Len())
	require.Len(t, ways, 2)
	assert.Equal(t, osm.WayID(1), ways[0].ID)
	assert.Equal(t, osm.WayID(2), ways[1].ID)
}

func TestMergeLastValueFirstOrder(t *testing.T) {
	sets := []*osmparser.ResultSet{
		{Nodes: []osmparser.Node{{ID: 3, Lat: 1, Lon: 1}, {ID: 1, Lat: 2, Lon: 2}}},
		{Nodes: []osmparser.Node{{ID: 2, Lat: 5, Lon: 5}, {ID: 3, Lat: 9, Lon: 9}}},
	}
	table, _ := Merge(sets)

	// Value comes from the last set that carried the id ...
	c, ok := table.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, geo.Coord{Lat: 9, Lon: 9}, c)

	// ... but the id keeps the position it was first seen at.
	assert.Equal(t, []osm.NodeID{3, 1, 2}, table.Order())
}

func TestMergeKeepsDuplicateWays(t *testing.T) {
	w := osmparser.NewWay(7, []osm.NodeID{1, 2}, nil)
	sets := []*osmparser.ResultSet{
		{Nodes: []osmparser.Node{{ID: 1}, {ID: 2, Lon: 0.001}}, Ways: []osmparser.Way{w}},
		{Nodes: []osmparser.Node{{ID: 1}}, Ways: []osmparser.Way{w}},
	}
	table, ways := Merge(sets)
	assert.Len(t, ways, 2)

	edges, err := Expand(table, ways)
	require.NoError(t, err)
	assert.Len(t, edges, 4, "each copy expands independently")
}

func TestMergeEmpty(t *testing.T) {
	table, ways := Merge(nil)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, ways)
	_, ok := table.Lookup(1)
	assert.False(t, ok)
}
