package gridnav

import (
	"gridnav/internal/grid"
	"gridnav/internal/pathfinding"
)

// FindPath computes a shortest path between two cells on a rectangular
// grid. mapBytes holds width*height cells in row-major order, zero for
// blocked terrain and any other value for traversable terrain. On success
// the visited cell ids, excluding the start and including the target, are
// written to out and the number of moves is returned; len(out) is the
// buffer capacity. It returns NoPath when no path exists or the shortest
// path is longer than the buffer.
//
// The caller guarantees valid in-range coordinates and traversable start
// and target cells. Each call runs on its own state, so concurrent calls
// over the same map bytes are independent as long as nothing mutates the
// bytes.
func FindPath(startX, startY, targetX, targetY int, mapBytes []byte, width, height int, out []int) int {
	g := grid.New(width, height, mapBytes)
	finder := pathfinding.NewAStar(g, out)
	return finder.FindPath(startX, startY, targetX, targetY)
}

// FindPathWithStats behaves exactly like FindPath and additionally returns
// how many search nodes the run allocated. The counter is observational
// only; the primary return value is identical to FindPath's.
func FindPathWithStats(startX, startY, targetX, targetY int, mapBytes []byte, width, height int, out []int) (int, int) {
	g := grid.New(width, height, mapBytes)
	finder := pathfinding.NewAStar(g, out)
	length := finder.FindPath(startX, startY, targetX, targetY)
	return length, finder.NodesAllocated()
}
