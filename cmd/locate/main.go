package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"road_graph/pkg/graph"
	"road_graph/pkg/logging"
	"road_graph/pkg/spatial"
)

func main() {
	edges := flag.String("edges", "", "Edge file")
	nodes := flag.String("nodes", "", "Node file")
	lat := flag.Float64("lat", math.NaN(), "Query latitude for a nearest-node lookup")
	lon := flag.Float64("lon", math.NaN(), "Query longitude for a nearest-node lookup")
	bbox := flag.String("bbox", "", "List nodes inside minLat,minLon,maxLat,maxLon")
	maxDist := flag.Float64("max-dist", 0, "Reject a nearest node farther than this many meters (0 = no limit)")
	flag.Parse()

	nearest := !math.IsNaN(*lat) && !math.IsNaN(*lon)
	if *edges == "" || *nodes == "" || (!nearest && *bbox == "") {
		fmt.Fprintln(os.Stderr, "Usage: locate -edges edges.txt -nodes nodes.txt (-lat 51.44 -lon 5.48 | -bbox minLat,minLon,maxLat,maxLon)")
		os.Exit(1)
	}

	logger, err := logging.New("info", "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	g, err := graph.FromFiles(*edges, *nodes)
	if err != nil {
		logger.Fatal("load graph", zap.Error(err))
	}
	idx := spatial.New(g.Coords())
	logger.Info("indexed nodes", zap.Int("nodes", idx.Len()))

	if nearest {
		hit, err := idx.Nearest(*lat, *lon)
		if err != nil {
			logger.Fatal("nearest node", zap.Error(err))
		}
		if *maxDist > 0 && hit.Dist > *maxDist {
			logger.Fatal("no node within range",
				zap.Float64("max_dist_m", *maxDist),
				zap.Float64("closest_m", hit.Dist))
		}
		c := g.Coord(hit.Node)
		start, end := g.EdgesFrom(hit.Node)
		fmt.Printf("node %d at %v %v, %.1f m away, out-degree %d\n", hit.Node, c.Lat, c.Lon, hit.Dist, end-start)
	}

	if *bbox != "" {
		b, err := spatial.ParseBound(*bbox)
		if err != nil {
			logger.Fatal("parse bbox", zap.Error(err))
		}
		ids := idx.Within(b)
		for _, u := range ids {
			c := g.Coord(u)
			fmt.Printf("%d %v %v\n", u, c.Lat, c.Lon)
		}
		logger.Info("nodes in bbox", zap.Int("count", len(ids)))
	}
}
