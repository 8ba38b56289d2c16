package osm

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// overpassResponse mirrors the JSON document returned by the Overpass API
// for `[out:json]` queries.
type overpassResponse struct {
	Version   float64           `json:"version"`
	Generator string            `json:"generator"`
	Elements  []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   *float64          `json:"lat,omitempty"`
	Lon   *float64          `json:"lon,omitempty"`
	Nodes []int64           `json:"nodes,omitempty"`
	Tags  map[string]string `json:"tags,omitempty"`
}

// decodeOverpass reads an Overpass JSON document into a result set.
func decodeOverpass(r io.Reader, rs *ResultSet) error {
	var resp overpassResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return errors.Wrap(err, "decode overpass json")
	}

	for _, el := range resp.Elements {
		switch el.Type {
		case "node":
			if el.Lat == nil || el.Lon == nil {
				return errors.Wrapf(ErrMissingCoordinate, "node %d", el.ID)
			}
			n := Node{ID: osm.NodeID(el.ID), Lat: *el.Lat, Lon: *el.Lon}
			if err := checkCoord(n); err != nil {
				return err
			}
			rs.Nodes = append(rs.Nodes, n)
		case "way":
			ids := make([]osm.NodeID, len(el.Nodes))
			for i, ref := range el.Nodes {
				ids[i] = osm.NodeID(ref)
			}
			rs.Ways = append(rs.Ways, NewWay(osm.WayID(el.ID), ids, tagsFromMap(el.Tags)))
		default:
			// relations, areas and counts carry nothing the graph needs
		}
	}
	return nil
}

// tagsFromMap converts a JSON tag object into key-sorted osm.Tags.
func tagsFromMap(m map[string]string) osm.Tags {
	if len(m) == 0 {
		return nil
	}
	tags := make(osm.Tags, 0, len(m))
	for k, v := range m {
		tags = append(tags, osm.Tag{Key: k, Value: v})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Key < tags[j].Key })
	return tags
}
