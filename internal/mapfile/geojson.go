package mapfile

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// LoadGeoJSON reads a floor plan from a GeoJSON FeatureCollection.
//
// LineString and MultiLineString features become walls between consecutive
// vertices; Polygon and MultiPolygon rings become closed loops of walls.
// Point features become nodes, labelled by their "label" or "name" property.
// A "role" property of "start" or "end" designates the endpoints.
//
// Every wall is registered before the first node, whatever the feature order.
func LoadGeoJSON(data []byte, b Builder, logger *log.Logger, opts ...Option) (Result, error) {
	o := newOptions(opts)
	if logger == nil {
		logger = log.New(io.Discard)
	}
	res := newResult()

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var rings []orb.Ring
	var points []*geojson.Feature

	// Pass 1: walls
	for _, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.Point:
			points = append(points, f)
		case orb.MultiPoint:
			points = append(points, f)
		case orb.LineString:
			res.Walls += addLine(b, o.line(g))
		case orb.MultiLineString:
			for _, ls := range g {
				res.Walls += addLine(b, o.line(ls))
			}
		case orb.Polygon:
			for _, ring := range g {
				res.Walls += addRing(b, o.ring(ring))
				rings = append(rings, ring)
			}
		case orb.MultiPolygon:
			for _, poly := range g {
				for _, ring := range poly {
					res.Walls += addRing(b, o.ring(ring))
					rings = append(rings, ring)
				}
			}
		case nil:
			res.Skipped++
		default:
			logger.Warn("unsupported geometry", "type", f.Geometry.GeoJSONType())
			res.Unknown++
		}
	}

	// Pass 2: nodes
	for _, f := range points {
		label := stringProp(f.Properties, "label")
		if label == "" {
			label = stringProp(f.Properties, "name")
		}
		role := stringProp(f.Properties, "role")

		var pts []orb.Point
		switch g := f.Geometry.(type) {
		case orb.Point:
			pts = []orb.Point{g}
		case orb.MultiPoint:
			pts = g
		}

		for _, p := range pts {
			for _, ring := range rings {
				if planar.RingContains(ring, p) {
					logger.Warn("node inside obstacle polygon", "pos", p, "label", label)
					break
				}
			}

			id := b.AddNode(p, label)
			res.Nodes++
			switch role {
			case "start":
				res.Start = id
			case "end":
				res.End = id
			}
		}
	}

	logger.Debug("geojson map loaded", "features", len(fc.Features),
		"walls", res.Walls, "nodes", res.Nodes)
	return res, nil
}

func addLine(b Builder, ls orb.LineString) int {
	n := 0
	for i := 1; i < len(ls); i++ {
		b.AddWall(ls[i-1], ls[i])
		n++
	}
	return n
}

func addRing(b Builder, ring orb.Ring) int {
	n := addLine(b, orb.LineString(ring))
	if len(ring) > 2 && !ring.Closed() {
		b.AddWall(ring[len(ring)-1], ring[0])
		n++
	}
	return n
}

func stringProp(props geojson.Properties, key string) string {
	if s, ok := props[key].(string); ok {
		return s
	}
	return ""
}

// visgraph.Graph is the usual Builder.
var _ Builder = (*visgraph.Graph)(nil)
