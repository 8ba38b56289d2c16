package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"road_graph/pkg/export"
	"road_graph/pkg/graph"
	"road_graph/pkg/logging"
	"road_graph/pkg/spatial"
)

func main() {
	edges := flag.String("edges", "", "Edge file")
	nodes := flag.String("nodes", "", "Node file")
	output := flag.String("output", "graph.geojson", "Output GeoJSON path")
	bbox := flag.String("bbox", "", "Only export inside minLat,minLon,maxLat,maxLon")
	noNodes := flag.Bool("no-nodes", false, "Omit node Points")
	noEdges := flag.Bool("no-edges", false, "Omit edge LineStrings")
	flag.Parse()

	if *edges == "" || *nodes == "" {
		fmt.Fprintln(os.Stderr, "Usage: geojson -edges edges.txt -nodes nodes.txt [-output graph.geojson] [-bbox minLat,minLon,maxLat,maxLon]")
		os.Exit(1)
	}

	logger, err := logging.New("info", "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := export.Options{SkipNodes: *noNodes, SkipEdges: *noEdges}
	if *bbox != "" {
		var b orb.Bound
		if b, err = spatial.ParseBound(*bbox); err != nil {
			logger.Fatal("parse bbox", zap.Error(err))
		}
		opts.Bound = &b
	}

	g, err := graph.FromFiles(*edges, *nodes)
	if err != nil {
		logger.Fatal("load graph", zap.Error(err))
	}
	fc, err := export.FeatureCollection(g, opts)
	if err != nil {
		logger.Fatal("build features", zap.Error(err))
	}
	if err := export.WriteFile(*output, fc); err != nil {
		logger.Fatal("write geojson", zap.Error(err))
	}
	logger.Info("wrote geojson", zap.String("path", *output), zap.Int("features", len(fc.Features)))
}
