// Package pathfinding contains the search drivers that operate on a grid:
// an A* driver with a Manhattan heuristic and a uniform-cost variant.
package pathfinding

import (
	"gridnav/internal/container"
	"gridnav/internal/core"
	"gridnav/internal/grid"
)

// openRank is the open heap's starting rank. Removals contract the heap one
// rank at a time once occupancy falls low, so a search whose open set stays
// small settles at the heap's rank floor.
const openRank = 4

// AStar drives a single heuristic search over a grid. The open set is a
// binary min-heap keyed by f, the closed set a red-black tree keyed by
// cell id. Both containers hold references into the same node set; a node
// is in exactly one of them at any time. An AStar is single-use: construct
// one per FindPath call.
type AStar struct {
	grid   *grid.Grid
	open   *container.Heap[float64, *core.SearchNode]
	closed *container.RBTree[int, *core.SearchNode]

	// out is the caller's buffer, borrowed for the duration of the call.
	// Its length doubles as the admissible path-length bound.
	out []int

	nodesAllocated int
}

// NewAStar creates a pathfinder for one search on g, writing the result
// into out.
func NewAStar(g *grid.Grid, out []int) *AStar {
	return &AStar{
		grid:   g,
		open:   container.NewHeap[float64, *core.SearchNode](openRank),
		closed: container.NewRBTree[int, *core.SearchNode](),
		out:    out,
	}
}

// NodesAllocated returns how many SearchNodes expansion created. Purely
// observational; it never influences the search result.
func (a *AStar) NodesAllocated() int { return a.nodesAllocated }

// FindPath runs the search from (startX, startY) to (targetX, targetY) and
// returns the shortest path length, or core.NoPath when no path exists or
// the path cannot fit the output buffer. On success the visited cell ids,
// excluding the start and including the target, are written to the buffer
// in walking order.
func (a *AStar) FindPath(startX, startY, targetX, targetY int) int {
	defer a.teardown()

	start := &core.SearchNode{ID: a.grid.Index(startX, startY)}
	targetID := a.grid.Index(targetX, targetY)
	a.grid.SetTarget(targetX, targetY)

	// The start's heuristic is irrelevant, it is popped first regardless.
	a.open.Insert(0, start)

	for !a.open.IsEmpty() {
		item, err := a.open.PopMin()
		if err != nil {
			break
		}
		current := item.Value
		a.closed.Insert(current.ID, current)
		if current.ID == targetID {
			return a.backtrack(current)
		}
		a.expand(current)
	}
	return core.NoPath
}

// expand generates the passable neighbours of current and relaxes them
// against the open set.
func (a *AStar) expand(current *core.SearchNode) {
	neighbours := a.grid.Neighbours(current)
	for !neighbours.IsEmpty() {
		id := neighbours.Pop()

		if _, visited := a.closed.Find(id); visited {
			continue
		}
		cost := current.G + 1

		idx, inOpen := a.open.Find(func(n *core.SearchNode) bool { return n.ID == id })
		var openNode *core.SearchNode
		if inOpen {
			item, _ := a.open.At(idx)
			openNode = item.Value
			if openNode.G <= cost {
				continue
			}
		}

		if cost+a.grid.DistanceToTarget(id) > len(a.out) {
			// g plus the plain Manhattan distance lower-bounds the final
			// path length through this cell (unit edges), so the cell
			// can never contribute to a path that fits the buffer. The
			// biased f is unusable here, its tie-break term would prune
			// exact-fit paths.
			continue
		}
		f := a.grid.Heuristic(id) + float64(cost)

		if inOpen {
			openNode.G = cost
			openNode.F = f
			openNode.Predecessor = current
			a.open.ChangeKey(idx, f)
			continue
		}

		a.nodesAllocated++
		a.open.Insert(f, &core.SearchNode{
			ID:          id,
			G:           cost,
			F:           f,
			Predecessor: current,
		})
	}
}

// backtrack walks the predecessor chain from the target and writes each
// cell id at buffer index g-1, producing start-adjacent to target order.
// The start itself, recognizable by its nil predecessor, is excluded.
func (a *AStar) backtrack(target *core.SearchNode) int {
	for current := target; current.Predecessor != nil; current = current.Predecessor {
		a.out[current.G-1] = current.ID
	}
	return target.G
}

// teardown releases every node still referenced from either container. It
// runs deferred so all exit paths, including panics unwinding through the
// search, pass through the single destruction point.
func (a *AStar) teardown() {
	a.closed.Clear()
	a.open.Reset()
}
