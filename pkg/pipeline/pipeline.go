package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"road_graph/pkg/graph"
	osmparser "road_graph/pkg/osm"
)

// Options configures one generation run.
type Options struct {
	Sources []osmparser.Source // merge order; the first is the primary set
	Output  graph.Paths
	Workers int // concurrent source loads; <1 means one at a time
}

// Result summarizes a completed run.
type Result struct {
	Sources    int
	Nodes      int
	Ways       int
	Degenerate int
	Edges      int
	Elapsed    time.Duration
}

// Run loads every source, merges them, expands ways into edges, assigns
// dense ids and writes the edge and node files. Nothing is written unless
// every stage succeeds.
func Run(ctx context.Context, opts Options, logger *zap.Logger) (*Result, error) {
	if len(opts.Sources) == 0 {
		return nil, errors.New("pipeline: no sources")
	}
	start := time.Now()

	sets, err := LoadAll(ctx, opts.Sources, opts.Workers, logger)
	if err != nil {
		return nil, err
	}

	stage := time.Now()
	table, ways := graph.Merge(sets)
	logger.Info("merged result sets",
		zap.Int("sources", len(sets)),
		zap.Int("nodes", table.Len()),
		zap.Int("ways", len(ways)),
		zap.Duration("elapsed", time.Since(stage)))

	stage = time.Now()
	edges, err := graph.Expand(table, ways)
	if err != nil {
		return nil, errors.Wrap(err, "expand ways")
	}
	degenerate := graph.Degenerate(ways)
	if degenerate > 0 {
		logger.Debug("ways with fewer than two nodes", zap.Int("count", degenerate))
	}
	logger.Info("expanded ways",
		zap.Int("edges", len(edges)),
		zap.Duration("elapsed", time.Since(stage)))

	stage = time.Now()
	dense := graph.Reindex(table.Order())
	logger.Info("assigned dense ids",
		zap.Int("nodes", dense.Len()),
		zap.Duration("elapsed", time.Since(stage)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stage = time.Now()
	if err := graph.WritePair(opts.Output, table, dense, edges); err != nil {
		return nil, errors.Wrap(err, "write graph")
	}
	logger.Info("wrote graph",
		zap.String("edges", opts.Output.Edges),
		zap.String("nodes", opts.Output.Nodes),
		zap.Duration("elapsed", time.Since(stage)))

	return &Result{
		Sources:    len(sets),
		Nodes:      dense.Len(),
		Ways:       len(ways),
		Degenerate: degenerate,
		Edges:      len(edges),
		Elapsed:    time.Since(start),
	}, nil
}

// LoadAll loads sources concurrently. The returned slice is in source order
// regardless of which load finishes first.
func LoadAll(ctx context.Context, sources []osmparser.Source, workers int, logger *zap.Logger) ([]*osmparser.ResultSet, error) {
	if workers < 1 {
		workers = 1
	}
	sets := make([]*osmparser.ResultSet, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			start := time.Now()
			rs, err := osmparser.Load(gctx, src)
			if err != nil {
				return errors.Wrapf(err, "source %d", i+1)
			}
			sets[i] = rs
			logger.Info("loaded result set",
				zap.String("name", rs.Name),
				zap.String("path", src.Path),
				zap.Int("nodes", len(rs.Nodes)),
				zap.Int("ways", len(rs.Ways)),
				zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}
