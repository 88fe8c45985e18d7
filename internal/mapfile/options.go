package mapfile

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// Option configures a load.
type Option func(*options)

type options struct {
	simplify float64
}

// WithSimplify reduces GeoJSON lines and rings with Douglas-Peucker before
// they become walls. Vertices closer than epsilon to the simplified outline
// are dropped. Zero disables simplification.
func WithSimplify(epsilon float64) Option {
	return func(o *options) { o.simplify = epsilon }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) line(ls orb.LineString) orb.LineString {
	if o.simplify <= 0 || len(ls) < 3 {
		return ls
	}
	return simplify.DouglasPeucker(o.simplify).Simplify(ls.Clone()).(orb.LineString)
}

// ring keeps the input when simplification would leave fewer than three corners.
func (o options) ring(r orb.Ring) orb.Ring {
	if o.simplify <= 0 || len(r) < 4 {
		return r
	}
	s := simplify.DouglasPeucker(o.simplify).Simplify(r.Clone()).(orb.Ring)
	if len(s) < 4 {
		return r
	}
	return s
}
