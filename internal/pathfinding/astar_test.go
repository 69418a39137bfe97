package pathfinding

import (
	"testing"

	"gridnav/internal/core"
	"gridnav/internal/grid"
)

func findPath(t *testing.T, cells []byte, width, height int,
	startX, startY, targetX, targetY int, capacity int) (int, []int) {
	t.Helper()
	out := make([]int, capacity)
	g := grid.New(width, height, cells)
	finder := NewAStar(g, out)
	length := finder.FindPath(startX, startY, targetX, targetY)
	return length, out
}

func TestAStarSimplePath(t *testing.T) {
	cells := []byte{
		1, 1, 1, 1,
		0, 1, 0, 1,
		0, 1, 1, 1,
	}

	length, out := findPath(t, cells, 4, 3, 0, 0, 1, 2, 12)
	if length != 3 {
		t.Fatalf("Expected path length 3, got %d", length)
	}

	want := []int{1, 5, 9}
	for i, id := range want {
		if out[i] != id {
			t.Fatalf("Buffer mismatch at %d: got %v, want %v", i, out[:3], want)
		}
	}
}

func TestAStarNoPath(t *testing.T) {
	cells := []byte{
		0, 0, 1,
		0, 1, 1,
		1, 0, 1,
	}

	length, _ := findPath(t, cells, 3, 3, 2, 0, 0, 2, 7)
	if length != core.NoPath {
		t.Fatalf("Expected no path, got %d", length)
	}
}

func TestAStarExactBufferFit(t *testing.T) {
	cells := []byte{1, 1, 1, 1, 1}

	// a path of length 4 fits a capacity of exactly 4
	length, out := findPath(t, cells, 5, 1, 0, 0, 4, 0, 4)
	if length != 4 {
		t.Fatalf("Expected path length 4, got %d", length)
	}
	want := []int{1, 2, 3, 4}
	for i, id := range want {
		if out[i] != id {
			t.Fatalf("Buffer mismatch: got %v, want %v", out, want)
		}
	}
}

func TestAStarBufferTooShort(t *testing.T) {
	cells := []byte{1, 1, 1, 1, 1}

	length, _ := findPath(t, cells, 5, 1, 0, 0, 4, 0, 3)
	if length != core.NoPath {
		t.Fatalf("Expected no path for undersized buffer, got %d", length)
	}
}

func TestAStarOpenGrid(t *testing.T) {
	cells := []byte{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}

	length, out := findPath(t, cells, 3, 3, 0, 0, 2, 2, 10)
	if length != 4 {
		t.Fatalf("Expected path length 4, got %d", length)
	}
	validatePath(t, cells, 3, 3, 0, 0, 2, 2, out[:length])
}

func TestAStarStartEqualsTarget(t *testing.T) {
	cells := []byte{1, 1, 1, 1}

	out := make([]int, 0)
	g := grid.New(2, 2, cells)
	finder := NewAStar(g, out)
	length := finder.FindPath(0, 0, 0, 0)
	if length != 0 {
		t.Fatalf("Expected length 0 for start == target, got %d", length)
	}
}

func TestAStarStartEqualsTargetWritesNothing(t *testing.T) {
	cells := []byte{1, 1, 1, 1}

	out := []int{-7, -7, -7, -7}
	g := grid.New(2, 2, cells)
	finder := NewAStar(g, out)
	if length := finder.FindPath(1, 1, 1, 1); length != 0 {
		t.Fatalf("Expected length 0, got %d", length)
	}
	for i, v := range out {
		if v != -7 {
			t.Fatalf("Buffer slot %d was written: %d", i, v)
		}
	}
}

func TestAStarZeroCapacity(t *testing.T) {
	cells := []byte{1, 1}

	length, _ := findPath(t, cells, 2, 1, 0, 0, 1, 0, 0)
	if length != core.NoPath {
		t.Fatalf("Expected no path with zero capacity, got %d", length)
	}
}

func TestAStarSingleCellGrid(t *testing.T) {
	length, _ := findPath(t, []byte{1}, 1, 1, 0, 0, 0, 0, 4)
	if length != 0 {
		t.Fatalf("Expected length 0 on 1x1 grid, got %d", length)
	}
}

func TestAStarLenientTerrainBytes(t *testing.T) {
	// bytes other than 0 and 1 count as traversable
	cells := []byte{1, 2, 255}

	length, out := findPath(t, cells, 3, 1, 0, 0, 2, 0, 4)
	if length != 2 {
		t.Fatalf("Expected path length 2 over lenient terrain, got %d", length)
	}
	if out[0] != 1 || out[1] != 2 {
		t.Fatalf("Unexpected path: %v", out[:2])
	}
}

func TestAStarDeterministicLength(t *testing.T) {
	cells := []byte{
		1, 1, 1, 1, 1,
		1, 0, 0, 0, 1,
		1, 1, 1, 0, 1,
		0, 0, 1, 0, 1,
		1, 1, 1, 1, 1,
	}

	first, _ := findPath(t, cells, 5, 5, 0, 0, 4, 4, 25)
	second, _ := findPath(t, cells, 5, 5, 0, 0, 4, 4, 25)
	if first != second {
		t.Fatalf("Search not deterministic: %d vs %d", first, second)
	}
	if first != 8 {
		t.Fatalf("Expected path length 8, got %d", first)
	}
}

func TestAStarDetourAroundWall(t *testing.T) {
	cells := []byte{
		1, 1, 1, 1, 1,
		1, 1, 0, 1, 1,
		1, 1, 0, 1, 1,
		1, 1, 0, 1, 1,
		1, 1, 1, 1, 1,
	}

	length, out := findPath(t, cells, 5, 5, 1, 2, 3, 2, 25)
	if length != 6 {
		t.Fatalf("Expected detour of length 6, got %d", length)
	}
	validatePath(t, cells, 5, 5, 1, 2, 3, 2, out[:length])
}

func TestAStarNodesAllocated(t *testing.T) {
	cells := []byte{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}

	out := make([]int, 10)
	g := grid.New(3, 3, cells)
	finder := NewAStar(g, out)
	length := finder.FindPath(0, 0, 2, 2)
	if length != 4 {
		t.Fatalf("Expected path length 4, got %d", length)
	}

	nodes := finder.NodesAllocated()
	// at least the path cells minus the start, at most every other cell
	if nodes < 4 || nodes > 8 {
		t.Fatalf("Implausible node count: %d", nodes)
	}
}

func TestAStarTeardown(t *testing.T) {
	cells := []byte{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}

	scenarios := []struct {
		name                           string
		startX, startY, targetX, targetY int
	}{
		{"found", 0, 0, 2, 2},
		{"trivial", 1, 1, 1, 1},
	}
	for _, sc := range scenarios {
		out := make([]int, 10)
		g := grid.New(3, 3, cells)
		finder := NewAStar(g, out)
		finder.FindPath(sc.startX, sc.startY, sc.targetX, sc.targetY)

		if !finder.open.IsEmpty() {
			t.Fatalf("%s: open heap not torn down", sc.name)
		}
		if finder.closed.Len() != 0 {
			t.Fatalf("%s: closed map not torn down", sc.name)
		}
	}

	// the no-path case tears down as well
	walled := []byte{1, 0, 1}
	out := make([]int, 4)
	g := grid.New(3, 1, walled)
	finder := NewAStar(g, out)
	if length := finder.FindPath(0, 0, 2, 0); length != core.NoPath {
		t.Fatalf("Expected no path through wall, got %d", length)
	}
	if !finder.open.IsEmpty() || finder.closed.Len() != 0 {
		t.Fatalf("no-path exit skipped teardown")
	}
}

// validatePath checks the output buffer contract: the last entry is the
// target, every entry is traversable, and consecutive entries (and the
// start with the first entry) are cardinal neighbours.
func validatePath(t *testing.T, cells []byte, width, height int,
	startX, startY, targetX, targetY int, path []int) {
	t.Helper()
	if len(path) == 0 {
		t.Fatalf("Empty path")
	}
	if got, want := path[len(path)-1], targetX+targetY*width; got != want {
		t.Fatalf("Path ends at %d, want target %d", got, want)
	}
	prev := startX + startY*width
	for i, id := range path {
		if id < 0 || id >= width*height {
			t.Fatalf("Path entry %d out of range: %d", i, id)
		}
		if cells[id] == 0 {
			t.Fatalf("Path entry %d crosses blocked cell %d", i, id)
		}
		if manhattanID(prev, id, width) != 1 {
			t.Fatalf("Path entries %d and %d are not adjacent", prev, id)
		}
		prev = id
	}
}

func manhattanID(a, b, width int) int {
	ax, ay := a%width, a/width
	bx, by := b%width, b/width
	dx, dy := ax-bx, ay-by
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
