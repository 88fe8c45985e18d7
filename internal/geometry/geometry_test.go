package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestOrient(t *testing.T) {
	tests := []struct {
		name    string
		p, q, r orb.Point
		want    Orientation
	}{
		{"collinear", orb.Point{0, 0}, orb.Point{5, 0}, orb.Point{10, 0}, Collinear},
		{"collinear reversed", orb.Point{10, 0}, orb.Point{5, 0}, orb.Point{0, 0}, Collinear},
		{"clockwise", orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, -5}, Clockwise},
		{"counter-clockwise", orb.Point{0, 0}, orb.Point{10, 0}, orb.Point{5, 5}, CounterClockwise},
		{"repeated point", orb.Point{1, 1}, orb.Point{1, 1}, orb.Point{3, 7}, Collinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Orient(tt.p, tt.q, tt.r))
		})
	}
}

func TestOrientationString(t *testing.T) {
	assert.Equal(t, "collinear", Collinear.String())
	assert.Equal(t, "clockwise", Clockwise.String())
	assert.Equal(t, "counter-clockwise", CounterClockwise.String())
	assert.Equal(t, "unknown", Orientation(9).String())
}

func TestOnSegment(t *testing.T) {
	assert.True(t, OnSegment(orb.Point{0, 0}, orb.Point{5, 0}, orb.Point{10, 0}))
	assert.True(t, OnSegment(orb.Point{0, 0}, orb.Point{0, 0}, orb.Point{10, 0}), "endpoint is on segment")
	assert.False(t, OnSegment(orb.Point{0, 0}, orb.Point{11, 0}, orb.Point{10, 0}))
	assert.False(t, OnSegment(orb.Point{0, 0}, orb.Point{-1, 0}, orb.Point{10, 0}))
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, q1, p2, q2 orb.Point
		want           bool
	}{
		{
			name: "proper crossing",
			p1:   orb.Point{0, 0}, q1: orb.Point{10, 0},
			p2: orb.Point{5, -5}, q2: orb.Point{5, 5},
			want: true,
		},
		{
			name: "parallel apart",
			p1:   orb.Point{0, 0}, q1: orb.Point{10, 0},
			p2: orb.Point{0, 1}, q2: orb.Point{10, 1},
			want: false,
		},
		{
			name: "shared endpoint",
			p1:   orb.Point{0, 0}, q1: orb.Point{10, 0},
			p2: orb.Point{10, 0}, q2: orb.Point{10, 10},
			want: true,
		},
		{
			name: "touching in the middle",
			p1:   orb.Point{0, 0}, q1: orb.Point{10, 0},
			p2: orb.Point{5, 0}, q2: orb.Point{5, 10},
			want: true,
		},
		{
			name: "collinear overlapping",
			p1:   orb.Point{0, 0}, q1: orb.Point{10, 0},
			p2: orb.Point{5, 0}, q2: orb.Point{15, 0},
			want: true,
		},
		{
			name: "collinear disjoint",
			p1:   orb.Point{0, 0}, q1: orb.Point{4, 0},
			p2: orb.Point{5, 0}, q2: orb.Point{15, 0},
			want: false,
		},
		{
			name: "stops short of wall",
			p1:   orb.Point{0, 0}, q1: orb.Point{4, 0},
			p2: orb.Point{5, -5}, q2: orb.Point{5, 5},
			want: false,
		},
		{
			name: "line through would cross but segments do not",
			p1:   orb.Point{0, 0}, q1: orb.Point{10, 10},
			p2: orb.Point{20, 0}, q2: orb.Point{12, 8},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentsIntersect(tt.p1, tt.q1, tt.p2, tt.q2))
			// argument order must not change the answer
			assert.Equal(t, tt.want, SegmentsIntersect(tt.p2, tt.q2, tt.p1, tt.q1))
			assert.Equal(t, tt.want, SegmentsIntersect(tt.q1, tt.p1, tt.q2, tt.p2))
		})
	}
}

func TestSegment(t *testing.T) {
	s := Segment{A: orb.Point{0, 0}, B: orb.Point{3, 4}}
	assert.Equal(t, 5.0, s.Length())
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{3, 4}}, s.Bound())
	assert.True(t, s.Intersects(Segment{A: orb.Point{0, 4}, B: orb.Point{3, 0}}))
	assert.False(t, s.Intersects(Segment{A: orb.Point{10, 10}, B: orb.Point{20, 10}}))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 10.0, Distance(orb.Point{0, 0}, orb.Point{10, 0}))
	assert.Equal(t, 0.0, Distance(orb.Point{2, 2}, orb.Point{2, 2}))
}
