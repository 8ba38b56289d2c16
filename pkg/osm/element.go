package osm

import (
	"fmt"

	"github.com/paulmach/osm"

	"road_graph/pkg/geo"
)

// Direction tells which way a road may be traversed.
type Direction uint8

const (
	// Bidirectional ways yield an edge in each direction per point pair.
	Bidirectional Direction = iota
	// Forward ways may only be traversed in stored point order.
	Forward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Bidirectional:
		return "bidirectional"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// DirectionFromTags derives the traversal direction of a way.
// Only oneway=yes marks a way one-directional; every other value,
// including absence, is bidirectional.
func DirectionFromTags(tags osm.Tags) Direction {
	if tags.Find("oneway") == "yes" {
		return Forward
	}
	return Bidirectional
}

// Node is a surveyed point with its coordinate.
type Node struct {
	ID  osm.NodeID
	Lat float64
	Lon float64
}

// Coord returns the node position.
func (n Node) Coord() geo.Coord {
	return geo.Coord{Lat: n.Lat, Lon: n.Lon}
}

// Way is an ordered list of node references plus its tags.
type Way struct {
	ID        osm.WayID
	Nodes     []osm.NodeID
	Tags      osm.Tags
	Direction Direction
}

// NewWay copies the node list and derives the direction from tags.
func NewWay(id osm.WayID, nodes []osm.NodeID, tags osm.Tags) Way {
	ids := make([]osm.NodeID, len(nodes))
	copy(ids, nodes)
	return Way{
		ID:        id,
		Nodes:     ids,
		Tags:      tags,
		Direction: DirectionFromTags(tags),
	}
}

// ResultSet is one materialized query result: nodes and ways in the order
// the source delivered them.
type ResultSet struct {
	Name  string
	Nodes []Node
	Ways  []Way
}
