package core

// NoPath is the sentinel returned when no path exists between start and
// target, or when the shortest path cannot fit the caller's buffer.
const NoPath = -1

// SearchNode is one record per cell visited by a search. A node lives in
// exactly one place at a time: the open heap while it awaits expansion, or
// the closed map afterwards. While open its F may still drop when a cheaper
// route is found; once closed it is never mutated again.
type SearchNode struct {
	// ID is the cell's linear index, x + y*width.
	ID int
	// G is the exact path cost from the start, one unit per step.
	G int
	// F is the heap key, G plus the heuristic estimate to the target.
	F float64
	// Predecessor is the node through which this one was first reached,
	// nil for the start. The chain always points back toward the start,
	// so the links form a DAG and backtracking terminates.
	Predecessor *SearchNode
}

// Pathfinder is implemented by the search drivers. FindPath returns the
// length of a shortest path, writing the visited cell indices (excluding
// the start, including the target) into the driver's output buffer, or
// NoPath.
type Pathfinder interface {
	FindPath(startX, startY, targetX, targetY int) int
	NodesAllocated() int
}
