// Package geometry holds the planar predicates used to decide line of sight
// between waypoints: orientation of point triples and segment intersection.
//
// All predicates use exact floating point comparison. Collinearity is detected
// with == 0 on the cross product, so points that are collinear only up to
// rounding error are classified as turning one way or the other.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Orientation is the turn direction of an ordered point triple.
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

func (o Orientation) String() string {
	switch o {
	case Collinear:
		return "collinear"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	}
	return "unknown"
}

// Orient returns the orientation of the ordered triplet (p, q, r) from the sign
// of the cross product of (q-p) and (r-q).
func Orient(p, q, r orb.Point) Orientation {
	val := (q.Y()-p.Y())*(r.X()-q.X()) - (q.X()-p.X())*(r.Y()-q.Y())

	if val == 0 {
		return Collinear
	}
	if val > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// OnSegment checks if q lies inside the bounding box of segment pr.
// Only meaningful when p, q and r are already known to be collinear.
func OnSegment(p, q, r orb.Point) bool {
	return q.X() <= math.Max(p.X(), r.X()) && q.X() >= math.Min(p.X(), r.X()) &&
		q.Y() <= math.Max(p.Y(), r.Y()) && q.Y() >= math.Min(p.Y(), r.Y())
}

// SegmentsIntersect checks if segment p1q1 and segment p2q2 intersect.
// Touching endpoints and overlapping collinear segments count as intersecting.
func SegmentsIntersect(p1, q1, p2, q2 orb.Point) bool {
	o1 := Orient(p1, q1, p2)
	o2 := Orient(p1, q1, q2)
	o3 := Orient(p2, q2, p1)
	o4 := Orient(p2, q2, q1)

	// General case
	if o1 != o2 && o3 != o4 {
		return true
	}

	// p2 lies on p1q1
	if o1 == Collinear && OnSegment(p1, p2, q1) {
		return true
	}
	// q2 lies on p1q1
	if o2 == Collinear && OnSegment(p1, q2, q1) {
		return true
	}
	// p1 lies on p2q2
	if o3 == Collinear && OnSegment(p2, p1, q2) {
		return true
	}
	// q1 lies on p2q2
	if o4 == Collinear && OnSegment(p2, q1, q2) {
		return true
	}

	return false
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Segment is a line segment between two points.
type Segment struct {
	A, B orb.Point
}

// Intersects reports whether s and other share at least one point.
func (s Segment) Intersects(other Segment) bool {
	return SegmentsIntersect(s.A, s.B, other.A, other.B)
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return Distance(s.A, s.B)
}

// Bound returns the axis-aligned bounding box of the segment.
func (s Segment) Bound() orb.Bound {
	return orb.MultiPoint{s.A, s.B}.Bound()
}
