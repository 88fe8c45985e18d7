package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// ToDOT converts the visibility graph to an undirected Graphviz graph.
// Node positions are pinned so neato keeps the floor plan layout; y is
// flipped because map coordinates grow downwards. Edges on path are drawn
// bold and blue.
func ToDOT(g *visgraph.Graph, path []visgraph.NodeID) string {
	onPath := make(map[[2]visgraph.NodeID]bool)
	for i := 1; i < len(path); i++ {
		onPath[edgeKey(path[i-1], path[i])] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.2];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%q", nodeLabel(n)),
			fmt.Sprintf("pos=\"%g,%g!\"", n.Pos.X(), -n.Pos.Y()),
		}
		if !n.Labeled() {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{fmt.Sprintf("label=\"%.1f\"", e.Cost)}
		if onPath[edgeKey(e.From, e.To)] {
			attrs = append(attrs, "color=blue", "penwidth=3")
		}
		fmt.Fprintf(&buf, "  n%d -- n%d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n visgraph.Node) string {
	if n.Labeled() {
		return n.Label
	}
	return fmt.Sprintf("%d", n.ID)
}

func edgeKey(a, b visgraph.NodeID) [2]visgraph.NodeID {
	if a > b {
		a, b = b, a
	}
	return [2]visgraph.NodeID{a, b}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
