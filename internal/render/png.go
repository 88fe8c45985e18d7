// Package render draws floor plans, visibility graphs and routes.
//
// DrawPNG produces a raster snapshot in the style of the interactive map view:
// walls, waypoints, the start (red) and end (green) markers, the route as a
// thick blue line and the search metrics in the top-left corner. ToDOT and
// RenderSVG export the graph topology through Graphviz.
package render

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"

	"github.com/MaastrichtU-BISS/wayfinder/internal/search"
	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// Scene is what gets drawn.
type Scene struct {
	Graph *visgraph.Graph

	// Session supplies endpoints and the route. May be nil.
	Session *search.Session

	// Unit and UnitScale format the reported path length.
	Unit      string
	UnitScale float64
}

// PNGOptions controls raster output.
type PNGOptions struct {
	Width, Height int

	// Scale multiplies map coordinates into pixels.
	Scale float64

	// Debug draws anonymous nodes and all visibility edges, and colours walls red.
	Debug bool
}

const (
	nodeRadius     = 5
	endpointRadius = 8
	pathThickness  = 7
)

// DrawPNG renders sc as a PNG image into w.
func DrawPNG(w io.Writer, sc Scene, opts PNGOptions) error {
	if sc.Graph == nil {
		return fmt.Errorf("render: nil graph")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("render: invalid size %dx%d", opts.Width, opts.Height)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.Scale(scale, scale)

	drawWalls(dc, sc.Graph, opts.Debug)

	var path []visgraph.NodeID
	if sc.Session != nil {
		path = sc.Session.Path()
	}
	if path == nil && opts.Debug {
		drawEdges(dc, sc.Graph)
	}

	drawNodes(dc, sc.Graph, opts.Debug)
	drawPath(dc, sc.Graph, path)
	if sc.Session != nil {
		drawEndpoints(dc, sc.Graph, sc.Session)
	}

	dc.Identity()
	if path != nil {
		drawMetrics(dc, sc)
	} else if opts.Debug {
		dc.SetRGB(1, 1, 0)
		dc.DrawString("DEBUG UI", float64(opts.Width)-140, 24)
	}

	return dc.EncodePNG(w)
}

func drawWalls(dc *gg.Context, g *visgraph.Graph, debug bool) {
	if debug {
		dc.SetRGB(1, 0, 0)
	} else {
		dc.SetRGB(0.6, 0.6, 0.6)
	}
	dc.SetLineWidth(1)
	for _, w := range g.Walls() {
		dc.DrawLine(w.A.X(), w.A.Y(), w.B.X(), w.B.Y())
		dc.Stroke()
	}
}

func drawEdges(dc *gg.Context, g *visgraph.Graph) {
	dc.SetRGB(1, 1, 0)
	dc.SetLineWidth(1)
	for _, e := range g.Edges() {
		a, b := g.Node(e.From).Pos, g.Node(e.To).Pos
		dc.DrawLine(a.X(), a.Y(), b.X(), b.Y())
		dc.Stroke()
	}
}

func drawNodes(dc *gg.Context, g *visgraph.Graph, debug bool) {
	dc.SetRGB(1, 1, 1)
	for _, n := range g.Nodes() {
		if !n.Labeled() && !debug {
			continue
		}
		dc.DrawCircle(n.Pos.X(), n.Pos.Y(), nodeRadius)
		dc.Fill()
	}
}

func drawPath(dc *gg.Context, g *visgraph.Graph, path []visgraph.NodeID) {
	if len(path) < 2 {
		return
	}
	dc.SetRGB(0, 0, 1)
	dc.SetLineWidth(pathThickness)
	first := g.Node(path[0]).Pos
	dc.MoveTo(first.X(), first.Y())
	for _, id := range path[1:] {
		p := g.Node(id).Pos
		dc.LineTo(p.X(), p.Y())
	}
	dc.Stroke()
}

func drawEndpoints(dc *gg.Context, g *visgraph.Graph, s *search.Session) {
	if id := s.Start(); id != visgraph.None {
		p := g.Node(id).Pos
		dc.SetRGB(1, 0, 0)
		dc.DrawCircle(p.X(), p.Y(), endpointRadius)
		dc.Fill()
	}
	if id := s.End(); id != visgraph.None {
		p := g.Node(id).Pos
		dc.SetRGB(0, 1, 0)
		dc.DrawCircle(p.X(), p.Y(), endpointRadius)
		dc.Fill()
	}
}

func drawMetrics(dc *gg.Context, sc Scene) {
	found, length := Metrics(sc)
	dc.SetRGB(1, 1, 1)
	dc.DrawString(found, 8, 20)
	dc.DrawString(length, 8, 40)
}

// Metrics formats the search time and scaled path length of sc's session.
func Metrics(sc Scene) (found, length string) {
	if sc.Session == nil {
		return "", ""
	}
	scale := sc.UnitScale
	if scale <= 0 {
		scale = 1
	}
	ms := float64(sc.Session.Elapsed().Microseconds()) / 1000
	found = fmt.Sprintf("Path Found In: %.3f ms", ms)
	length = fmt.Sprintf("Path Length: %.1f %s", sc.Session.PathLength()*scale, sc.Unit)
	return found, length
}
