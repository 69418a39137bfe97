// Package grid models the rectangular game map a search runs on: linear
// cell addressing, passable-neighbour enumeration and the distance
// heuristic that steers the A* driver.
package grid

import (
	"strconv"
	"strings"

	"gridnav/internal/container"
	"gridnav/internal/core"
)

// terrainBlocked is the single impassable byte value. Every other value is
// treated as traversable, matching the loader's default-to-traversable
// behavior for unknown glyphs.
const terrainBlocked = 0x00

// neighbourCap bounds the neighbour scratch buffer; a cell has at most
// four cardinal neighbours.
const neighbourCap = 4

// Grid is an immutable view of the caller's map bytes in row-major order.
// The byte slice is borrowed, never copied or written. A Grid additionally
// carries the heuristic target for the current search and a small scratch
// buffer for neighbour enumeration, so one Grid serves exactly one search
// at a time.
type Grid struct {
	width  int
	height int
	cells  []byte

	// heuristic target, set once per search
	targetX      int
	targetY      int
	maxManhattan float64

	neighbours *container.Stack[int]
}

// New wraps width*height map bytes. The slice is borrowed read-only.
func New(width, height int, cells []byte) *Grid {
	return &Grid{
		width:      width,
		height:     height,
		cells:      cells,
		neighbours: container.NewStack[int](neighbourCap),
	}
}

// Width returns the grid's extent in x direction.
func (g *Grid) Width() int { return g.width }

// Height returns the grid's extent in y direction.
func (g *Grid) Height() int { return g.height }

// Index returns the linear cell id for (x, y).
func (g *Grid) Index(x, y int) int { return x + y*g.width }

// Coords is the exact inverse of Index.
func (g *Grid) Coords(id int) (x, y int) { return id % g.width, id / g.width }

// Traversable reports whether the cell at (x, y) can be entered.
func (g *Grid) Traversable(x, y int) bool {
	return g.cells[g.Index(x, y)] != terrainBlocked
}

// SetTarget fixes the heuristic's goal cell for the coming search and
// derives the largest Manhattan distance the grid admits, which feeds the
// tie-break bias.
func (g *Grid) SetTarget(x, y int) {
	g.targetX = x
	g.targetY = y
	g.maxManhattan = float64(g.width + g.height - 2)
}

// DistanceToTarget returns the plain Manhattan distance from cell id to
// the heuristic target. This is the exact lower bound on the remaining
// path cost in unit steps.
func (g *Grid) DistanceToTarget(id int) int {
	x, y := g.Coords(id)
	dx, dy := x-g.targetX, y-g.targetY
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Heuristic estimates the remaining cost from cell id to the target as
// M * (1 + 1/Mmax) with M the Manhattan distance and Mmax the grid's
// maximum Manhattan distance. Since M <= Mmax the estimate stays within
// one unit step of M, so the search still finds shortest paths while the
// bias ranks equal-f cells by closeness to the goal.
func (g *Grid) Heuristic(id int) float64 {
	manhattan := float64(g.DistanceToTarget(id))
	if g.maxManhattan <= 0 {
		// 1x1 grid; the search terminates at the seed pop and never
		// asks, but keep the function total
		return manhattan
	}
	return manhattan + manhattan/g.maxManhattan
}

// Neighbours enumerates the passable cardinal neighbours of n into the
// grid's scratch buffer and returns it for draining. Offsets are probed in
// fixed order: east, west, south, north. A neighbour is dropped when it
// would wrap a row edge, leave the grid, hit blocked terrain, or step back
// onto n's predecessor.
func (g *Grid) Neighbours(n *core.SearchNode) *container.Stack[int] {
	prev := -1
	if n.Predecessor != nil {
		prev = n.Predecessor.ID
	}
	id := n.ID
	x, y := g.Coords(id)

	if x+1 < g.width && g.cells[id+1] != terrainBlocked && id+1 != prev {
		g.neighbours.Push(id + 1)
	}
	if x-1 >= 0 && g.cells[id-1] != terrainBlocked && id-1 != prev {
		g.neighbours.Push(id - 1)
	}
	if y+1 < g.height && g.cells[id+g.width] != terrainBlocked && id+g.width != prev {
		g.neighbours.Push(id + g.width)
	}
	if y-1 >= 0 && g.cells[id-g.width] != terrainBlocked && id-g.width != prev {
		g.neighbours.Push(id - g.width)
	}
	return g.neighbours
}

// String renders the grid one row per line, one digit per cell.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			b.WriteString(strconv.Itoa(int(g.cells[g.Index(x, y)])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
