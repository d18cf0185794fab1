package grid

// Point is an integer grid coordinate. All placement, spawning and noise
// checks address the world through Points.
type Point struct {
	X int32
	Y int32
}

// Dist returns the Chebyshev distance between two points, matching the
// range checks used everywhere in the simulation (diagonal steps cost 1).
func (p Point) Dist(o Point) int32 {
	dx := p.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}

// InRadius reports whether p lies within radius of center (inclusive).
func (p Point) InRadius(center Point, radius int32) bool {
	return p.Dist(center) <= radius
}

// Offset returns p shifted by (dx, dy).
func (p Point) Offset(dx, dy int32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Adjacent reports whether o is within one tile of p (including diagonals).
// A point is not adjacent to itself.
func (p Point) Adjacent(o Point) bool {
	if p == o {
		return false
	}
	return p.Dist(o) <= 1
}
