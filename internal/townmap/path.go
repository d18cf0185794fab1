package townmap

import (
	"github.com/bridgefall/server/internal/grid"
)

// eight-directional steps, matching the Chebyshev movement model
var stepDirs = [8][2]int32{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// NextStep returns the first tile on a shortest path from→to. When the goal
// tile itself is blocked or occupied (a depot, say), any tile adjacent to it
// counts as arrival — attackers close to arm's length, not on top.
func (m *Map) NextStep(from, to grid.Point) (grid.Point, bool) {
	if from == to {
		return from, false
	}

	goal := func(p grid.Point) bool {
		if p == to {
			return true
		}
		return !m.Passable(to) && p.Dist(to) <= 1
	}
	if goal(from) {
		return from, false
	}

	type node struct {
		pos   grid.Point
		first grid.Point // first step taken from `from`
	}

	visited := map[grid.Point]struct{}{from: {}}
	queue := make([]node, 0, 64)

	for _, d := range stepDirs {
		n := from.Offset(d[0], d[1])
		if goal(n) && (m.Passable(n) || n == to) {
			return n, true
		}
		if m.Passable(n) {
			visited[n] = struct{}{}
			queue = append(queue, node{pos: n, first: n})
		}
	}

	expanded := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		expanded++
		if expanded > pathSearchLimit {
			break
		}
		for _, d := range stepDirs {
			n := cur.pos.Offset(d[0], d[1])
			if _, seen := visited[n]; seen {
				continue
			}
			if goal(n) {
				return cur.first, true
			}
			if !m.Passable(n) {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, node{pos: n, first: cur.first})
		}
	}
	return grid.Point{}, false
}
