package graph

import (
	"github.com/paulmach/osm"

	osmparser "road_graph/pkg/osm"
)

// Node ids of the four-node scenario: a oneway way A->B->C and a
// bidirectional way C-D along the equator, split over two result sets.
const (
	idA osm.NodeID = 9_000_000_001
	idB osm.NodeID = 17
	idC osm.NodeID = 4_242_424_242
	idD osm.NodeID = 5
)

func scenarioSets() []*osmparser.ResultSet {
	oneway := osm.Tags{{Key: "highway", Value: "primary"}, {Key: "oneway", Value: "yes"}}
	twoway := osm.Tags{{Key: "highway", Value: "secondary"}}
	return []*osmparser.ResultSet{
		{
			Name: "primary",
			Nodes: []osmparser.Node{
				{ID: idA, Lat: 0, Lon: 0},
				{ID: idB, Lat: 0, Lon: 0.001},
				{ID: idC, Lat: 0, Lon: 0.002},
			},
			Ways: []osmparser.Way{osmparser.NewWay(1, []osm.NodeID{idA, idB, idC}, oneway)},
		},
		{
			Name: "secondary",
			Nodes: []osmparser.Node{
				{ID: idC, Lat: 0, Lon: 0.002},
				{ID: idD, Lat: 0, Lon: 0.003},
			},
			Ways: []osmparser.Way{osmparser.NewWay(2, []osm.NodeID{idC, idD}, twoway)},
		},
	}
}
