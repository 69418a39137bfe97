package pathfinding

import (
	"gridnav/internal/container"
	"gridnav/internal/core"
	"gridnav/internal/grid"
)

// UniformCost is the heuristic-free sibling of AStar, a uniform-cost
// (Dijkstra) search keyed by path cost alone. It expands strictly by
// distance from the start, so it visits more cells than A* but serves as
// an oracle for it and handles callers that want no goal bias. Single-use
// per search, same buffer contract as AStar.
type UniformCost struct {
	grid   *grid.Grid
	open   *container.Heap[int, *core.SearchNode]
	closed *container.RBTree[int, *core.SearchNode]

	out []int

	nodesAllocated int
}

// NewUniformCost creates a uniform-cost pathfinder for one search on g,
// writing the result into out.
func NewUniformCost(g *grid.Grid, out []int) *UniformCost {
	return &UniformCost{
		grid:   g,
		open:   container.NewHeap[int, *core.SearchNode](openRank),
		closed: container.NewRBTree[int, *core.SearchNode](),
		out:    out,
	}
}

// NodesAllocated returns how many SearchNodes expansion created.
func (u *UniformCost) NodesAllocated() int { return u.nodesAllocated }

// FindPath runs the search and returns the shortest path length, or
// core.NoPath. Output buffer semantics match AStar.FindPath.
func (u *UniformCost) FindPath(startX, startY, targetX, targetY int) int {
	defer u.teardown()

	start := &core.SearchNode{ID: u.grid.Index(startX, startY)}
	targetID := u.grid.Index(targetX, targetY)

	u.open.Insert(0, start)

	for !u.open.IsEmpty() {
		item, err := u.open.PopMin()
		if err != nil {
			break
		}
		current := item.Value
		u.closed.Insert(current.ID, current)
		if current.ID == targetID {
			return u.backtrack(current)
		}
		u.expand(current)
	}
	return core.NoPath
}

func (u *UniformCost) expand(current *core.SearchNode) {
	neighbours := u.grid.Neighbours(current)
	for !neighbours.IsEmpty() {
		id := neighbours.Pop()

		if _, visited := u.closed.Find(id); visited {
			continue
		}
		cost := current.G + 1

		idx, inOpen := u.open.Find(func(n *core.SearchNode) bool { return n.ID == id })
		var openNode *core.SearchNode
		if inOpen {
			item, _ := u.open.At(idx)
			openNode = item.Value
			if openNode.G <= cost {
				continue
			}
		}

		// with unit edges the path cost itself bounds the final length
		if cost > len(u.out) {
			continue
		}

		if inOpen {
			openNode.G = cost
			openNode.F = float64(cost)
			openNode.Predecessor = current
			u.open.ChangeKey(idx, cost)
			continue
		}

		u.nodesAllocated++
		u.open.Insert(cost, &core.SearchNode{
			ID:          id,
			G:           cost,
			F:           float64(cost),
			Predecessor: current,
		})
	}
}

func (u *UniformCost) backtrack(target *core.SearchNode) int {
	for current := target; current.Predecessor != nil; current = current.Predecessor {
		u.out[current.G-1] = current.ID
	}
	return target.G
}

func (u *UniformCost) teardown() {
	u.closed.Clear()
	u.open.Reset()
}
