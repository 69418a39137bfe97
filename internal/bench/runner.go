package bench

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"gridnav/internal/config"
	"gridnav/internal/ctxlog"
	"gridnav/pkg/gridnav"
)

// Runner executes measured searches against one engine. Coordinates come
// from a seeded RNG so a run is reproducible from its seed.
type Runner struct {
	engine   *gridnav.Engine
	rng      *rand.Rand
	metrics  *Metrics
	analysis *Analysis
}

// NewRunner wires an engine to its measurement sinks. metrics may be nil.
func NewRunner(engine *gridnav.Engine, seed int64, metrics *Metrics, mapName string) *Runner {
	return &Runner{
		engine:   engine,
		rng:      rand.New(rand.NewSource(seed)),
		metrics:  metrics,
		analysis: NewAnalysis(mapName),
	}
}

// Analysis returns the accumulated measurements.
func (r *Runner) Analysis() *Analysis { return r.analysis }

// RandomTraversable draws a uniformly random traversable cell by
// rejection sampling.
func (r *Runner) RandomTraversable() (x, y int) {
	for {
		x = r.rng.Intn(r.engine.Width())
		y = r.rng.Intn(r.engine.Height())
		if r.engine.Traversable(x, y) {
			return x, y
		}
	}
}

// RunOnce measures a single search between fixed endpoints.
func (r *Runner) RunOnce(ctx context.Context, startX, startY, targetX, targetY int) RunData {
	began := time.Now()
	result := r.engine.FindPath(startX, startY, targetX, targetY)
	data := RunData{
		ManhattanDistance: abs(targetX-startX) + abs(targetY-startY),
		PathLength:        result.Length,
		NodesAllocated:    result.NodesAllocated,
		Duration:          time.Since(began),
	}

	r.analysis.Add(data)
	if r.metrics != nil {
		r.metrics.Observe(data)
	}
	ctxlog.FromContext(ctx).Debug("search finished",
		"map", r.analysis.MapName(),
		"start_x", startX, "start_y", startY,
		"target_x", targetX, "target_y", targetY,
		"manhattan", data.ManhattanDistance,
		"length", data.PathLength,
		"nodes", data.NodesAllocated,
		"wall", data.Duration)
	return data
}

// RunN measures n searches between random traversable endpoints.
func (r *Runner) RunN(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		startX, startY := r.RandomTraversable()
		targetX, targetY := r.RandomTraversable()
		r.RunOnce(ctx, startX, startY, targetX, targetY)
	}
}

// Run executes the configured benchmark: either the single pinned search
// or cfg.Runs random searches on every configured map. Summaries go to w.
func Run(ctx context.Context, cfg *config.Config, metrics *Metrics, w io.Writer) error {
	logger := ctxlog.FromContext(ctx)

	engineConfig := &gridnav.Config{
		Algorithm:  gridnav.AlgorithmAStar,
		BufferSize: cfg.BufferSize,
	}

	if cfg.Single != nil {
		engine, err := gridnav.LoadEngine(ctx, cfg.Single.Map, engineConfig)
		if err != nil {
			return err
		}
		runner := NewRunner(engine, cfg.Seed, metrics, cfg.Single.Map)
		data := runner.RunOnce(ctx,
			cfg.Single.StartX, cfg.Single.StartY,
			cfg.Single.TargetX, cfg.Single.TargetY)
		fmt.Fprintf(w, "%s: length=%d nodes=%d wall=%s\n",
			cfg.Single.Map, data.PathLength, data.NodesAllocated, data.Duration)
		return nil
	}

	for _, mapPath := range cfg.Maps {
		engine, err := gridnav.LoadEngine(ctx, mapPath, engineConfig)
		if err != nil {
			return err
		}
		logger.Info("benchmarking map",
			"map", mapPath,
			"width", engine.Width(), "height", engine.Height(),
			"runs", cfg.Runs)

		runner := NewRunner(engine, cfg.Seed, metrics, mapPath)
		runner.RunN(ctx, cfg.Runs)
		if err := runner.Analysis().WriteTable(w); err != nil {
			return fmt.Errorf("write summary for %s: %w", mapPath, err)
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
