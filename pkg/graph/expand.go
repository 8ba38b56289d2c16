package graph

import (
	"fmt"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"

	"road_graph/pkg/geo"
	osmparser "road_graph/pkg/osm"
)

// ErrMissingNode matches every MissingNodeError via errors.Is.
var ErrMissingNode = errors.New("node missing from merged node table")

// MissingNodeError reports a way that references a node without coordinates.
type MissingNodeError struct {
	Way  osm.WayID
	Node osm.NodeID
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("way %d references node %d: %v", e.Way, e.Node, ErrMissingNode)
}

// Is makes errors.Is(err, ErrMissingNode) hold.
func (e *MissingNodeError) Is(target error) bool {
	return target == ErrMissingNode
}

// RawEdge is a directed edge between original node ids.
type RawEdge struct {
	FromNodeID osm.NodeID
	ToNodeID   osm.NodeID
	Length     uint32 // meters
}

// Expand turns ways into directed edges. For each consecutive point pair it
// emits the forward edge and, when the way is bidirectional, the reverse edge
// with the same length right after it. Ways with fewer than two points yield
// nothing. A point missing from the table aborts the expansion.
func Expand(table *NodeTable, ways []osmparser.Way) ([]RawEdge, error) {
	var numEdges int
	for _, w := range ways {
		if len(w.Nodes) < 2 {
			continue
		}
		pairs := len(w.Nodes) - 1
		if w.Direction == osmparser.Bidirectional {
			pairs *= 2
		}
		numEdges += pairs
	}

	edges := make([]RawEdge, 0, numEdges)
	for _, w := range ways {
		if len(w.Nodes) < 2 {
			continue
		}

		prev, ok := table.Lookup(w.Nodes[0])
		if !ok {
			return nil, &MissingNodeError{Way: w.ID, Node: w.Nodes[0]}
		}
		for i := 1; i < len(w.Nodes); i++ {
			fromID, toID := w.Nodes[i-1], w.Nodes[i]
			cur, ok := table.Lookup(toID)
			if !ok {
				return nil, &MissingNodeError{Way: w.ID, Node: toID}
			}

			length := geo.LengthMeters(prev, cur)
			edges = append(edges, RawEdge{FromNodeID: fromID, ToNodeID: toID, Length: length})
			if w.Direction == osmparser.Bidirectional {
				edges = append(edges, RawEdge{FromNodeID: toID, ToNodeID: fromID, Length: length})
			}
			prev = cur
		}
	}
	return edges, nil
}

// Degenerate counts ways too short to produce an edge.
func Degenerate(ways []osmparser.Way) int {
	var n int
	for _, w := range ways {
		if len(w.Nodes) < 2 {
			n++
		}
	}
	return n
}
