// Package gridnav is the public surface of the grid pathfinding library.
// The flat FindPath functions mirror the classic buffer-based calling
// convention; Engine offers a configurable object-style API on top of the
// same drivers.
package gridnav

import (
	"context"

	"gridnav/internal/core"
	"gridnav/internal/grid"
	"gridnav/internal/pathfinding"
)

// NoPath is returned when no path exists between start and target, or when
// the shortest path is longer than the output buffer.
const NoPath = core.NoPath

// Algorithm selects the search driver an Engine uses.
type Algorithm int

const (
	// AlgorithmAStar is heuristic search with the Manhattan tie-break
	// bias. The default.
	AlgorithmAStar Algorithm = iota
	// AlgorithmUniformCost is plain Dijkstra expansion by path cost.
	AlgorithmUniformCost
)

// Config holds configuration for an Engine.
type Config struct {
	Algorithm Algorithm
	// BufferSize caps the length of paths the engine can return.
	BufferSize int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Algorithm:  AlgorithmAStar,
		BufferSize: 10000,
	}
}

// Result is the outcome of one Engine search.
type Result struct {
	// Path holds the visited cell ids in walking order, excluding the
	// start and including the target. Empty when Length is 0 or the
	// search failed.
	Path []int
	// Length is the number of moves, or NoPath.
	Length int
	// NodesAllocated counts the search nodes expansion created.
	NodesAllocated int
	Found          bool
}

// Engine runs searches over one loaded grid. It reuses a single output
// buffer across calls and is therefore not safe for concurrent use; run
// concurrent searches on separate Engines.
type Engine struct {
	grid   *grid.Grid
	config *Config
	buffer []int
}

// NewEngine wraps width*height map bytes (row-major, zero blocked, any
// other value traversable). The bytes are borrowed read-only.
func NewEngine(width, height int, mapBytes []byte, config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		grid:   grid.New(width, height, mapBytes),
		config: config,
		buffer: make([]int, config.BufferSize),
	}
}

// LoadEngine builds an Engine from a .map file.
func LoadEngine(ctx context.Context, path string, config *Config) (*Engine, error) {
	g, err := grid.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		grid:   g,
		config: config,
		buffer: make([]int, config.BufferSize),
	}, nil
}

// Width returns the grid's extent in x direction.
func (e *Engine) Width() int { return e.grid.Width() }

// Height returns the grid's extent in y direction.
func (e *Engine) Height() int { return e.grid.Height() }

// Traversable reports whether the cell at (x, y) can be entered.
func (e *Engine) Traversable(x, y int) bool { return e.grid.Traversable(x, y) }

// Index returns the linear cell id for (x, y).
func (e *Engine) Index(x, y int) int { return e.grid.Index(x, y) }

// FindPath runs one search with the configured algorithm. A fresh driver
// is constructed per call, so consecutive searches are fully independent.
func (e *Engine) FindPath(startX, startY, targetX, targetY int) Result {
	finder := e.newFinder()
	length := finder.FindPath(startX, startY, targetX, targetY)

	result := Result{
		Length:         length,
		NodesAllocated: finder.NodesAllocated(),
		Found:          length != NoPath,
	}
	if result.Found && length > 0 {
		result.Path = append([]int(nil), e.buffer[:length]...)
	}
	return result
}

func (e *Engine) newFinder() core.Pathfinder {
	switch e.config.Algorithm {
	case AlgorithmUniformCost:
		return pathfinding.NewUniformCost(e.grid, e.buffer)
	default:
		return pathfinding.NewAStar(e.grid, e.buffer)
	}
}
