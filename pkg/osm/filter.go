package osm

import "github.com/paulmach/osm"

// HighwayFilter keeps ways whose highway tag is one of the listed classes.
// A nil or empty filter keeps everything.
type HighwayFilter map[string]bool

// NewHighwayFilter builds a filter from road classes such as "primary".
func NewHighwayFilter(classes []string) HighwayFilter {
	if len(classes) == 0 {
		return nil
	}
	f := make(HighwayFilter, len(classes))
	for _, c := range classes {
		f[c] = true
	}
	return f
}

// Keep reports whether a way with the given tags passes the filter.
func (f HighwayFilter) Keep(tags osm.Tags) bool {
	if len(f) == 0 {
		return true
	}
	return f[tags.Find("highway")]
}

// Restrict drops ways rejected by the filter and every node that no
// remaining way references. Surviving elements keep their order.
func (f HighwayFilter) Restrict(rs *ResultSet) {
	if len(f) == 0 {
		return
	}

	ways := rs.Ways[:0]
	referenced := make(map[osm.NodeID]struct{})
	for _, w := range rs.Ways {
		if !f.Keep(w.Tags) {
			continue
		}
		ways = append(ways, w)
		for _, id := range w.Nodes {
			referenced[id] = struct{}{}
		}
	}
	rs.Ways = ways

	nodes := rs.Nodes[:0]
	for _, n := range rs.Nodes {
		if _, ok := referenced[n.ID]; ok {
			nodes = append(nodes, n)
		}
	}
	rs.Nodes = nodes
}
