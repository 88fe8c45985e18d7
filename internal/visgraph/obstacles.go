package visgraph

import (
	"github.com/paulmach/orb"

	"github.com/MaastrichtU-BISS/wayfinder/internal/geometry"
)

// Wall is an obstacle segment blocking line of sight.
type Wall struct {
	A, B orb.Point
}

// Segment returns the wall as a geometry segment.
func (w Wall) Segment() geometry.Segment {
	return geometry.Segment{A: w.A, B: w.B}
}

// Obstacles is an append-only, ordered collection of walls.
type Obstacles struct {
	walls []Wall
}

// Add appends a wall between a and b.
func (o *Obstacles) Add(a, b orb.Point) {
	o.walls = append(o.walls, Wall{A: a, B: b})
}

// Walls returns the stored walls in insertion order.
func (o *Obstacles) Walls() []Wall {
	return o.walls
}

// Len returns the number of stored walls.
func (o *Obstacles) Len() int {
	return len(o.walls)
}

// Obstructed checks whether the segment a-b crosses any stored wall.
// Walls whose bounding box misses the segment's are skipped without the
// orientation test.
func (o *Obstacles) Obstructed(a, b orb.Point) bool {
	sight := geometry.Segment{A: a, B: b}
	bound := sight.Bound()
	for _, w := range o.walls {
		seg := w.Segment()
		if !bound.Intersects(seg.Bound()) {
			continue
		}
		if sight.Intersects(seg) {
			return true
		}
	}
	return false
}
