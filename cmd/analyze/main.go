package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"road_graph/pkg/graph"
	"road_graph/pkg/logging"
)

func main() {
	edges := flag.String("edges", "", "Edge file")
	nodes := flag.String("nodes", "", "Node file (optional)")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if *edges == "" {
		fmt.Fprintln(os.Stderr, "Usage: analyze -edges edges.txt [-nodes nodes.txt]")
		os.Exit(1)
	}

	logger, err := logging.New(*logLevel, "console")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	g, err := graph.FromFiles(*edges, *nodes)
	if err != nil {
		logger.Fatal("load graph", zap.Error(err))
	}
	s := graph.Analyze(g)

	fmt.Printf("nodes          %d\n", s.NumNodes)
	fmt.Printf("edges          %d\n", s.NumEdges)
	fmt.Printf("nodes in edges %d\n", s.NodesInEdges)
	fmt.Printf("sparsity       %.6g\n", s.Sparsity)
	fmt.Printf("multi-edges    %d\n", s.MultiEdges)
	fmt.Printf("self-loops     %d\n", s.SelfLoops)
	fmt.Printf("total length   %d m\n", s.TotalLength)
	fmt.Printf("components     %d (largest %d)\n", s.Components, s.LargestCompSize)
	fmt.Println("out-degree histogram:")
	fmt.Printf("  %6d: %d\n", 0, s.ZeroOutDegree)
	for _, d := range s.Degrees() {
		fmt.Printf("  %6d: %d\n", d, s.OutDegree[d])
	}
}
