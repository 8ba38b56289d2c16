package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"road_graph/pkg/config"
	"road_graph/pkg/graph"
	"road_graph/pkg/logging"
	"road_graph/pkg/pipeline"
)

type inputs []string

func (i *inputs) String() string     { return strings.Join(*i, ",") }
func (i *inputs) Set(v string) error { *i = append(*i, v); return nil }

func main() {
	var in inputs
	configPath := flag.String("config", "", "YAML config file")
	flag.Var(&in, "input", "Result set file (.json, .osm, .osm.pbf, optionally .gz/.zst); repeat in merge order, primary first")
	edges := flag.String("edges", "", "Edge file output path (overrides config)")
	nodes := flag.String("nodes", "", "Node file output path (overrides config)")
	workers := flag.Int("workers", 0, "Concurrent source loads (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	for _, path := range in {
		cfg.Sources = append(cfg.Sources, config.Source{Path: path})
	}
	if *edges != "" {
		cfg.Output.Edges = *edges
	}
	if *nodes != "" {
		cfg.Output.Nodes = *nodes
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\nUsage: generate -config graph.yaml | -input primary.json [-input secondary.json ...] -edges edges.txt -nodes nodes.txt\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	sources, err := cfg.LoaderSources()
	if err != nil {
		logger.Fatal("invalid sources", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := pipeline.Run(ctx, pipeline.Options{
		Sources: sources,
		Output:  graph.Paths{Edges: cfg.Output.Edges, Nodes: cfg.Output.Nodes},
		Workers: cfg.Workers,
	}, logger)
	if err != nil {
		logger.Fatal("graph generation failed", zap.Error(err))
	}

	logger.Info("done",
		zap.Int("nodes", res.Nodes),
		zap.Int("edges", res.Edges),
		zap.Float64("sparsity", graph.Sparsity(uint64(res.Nodes), uint64(res.Edges))),
		zap.Duration("elapsed", res.Elapsed))
}
