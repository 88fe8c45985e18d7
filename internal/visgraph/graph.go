// Package visgraph builds a visibility graph over a floor plan.
//
// Walls are registered first; every node added afterwards is linked to each
// earlier node it can see, meaning the segment between them crosses no wall.
// Edges are decided once, when the later of the two nodes is inserted. Adding
// a wall after nodes exist does not retract edges that were already created.
//
// Nodes live in an arena and are addressed by NodeID, their insertion index.
// A node is never moved or removed, so a NodeID stays valid for the lifetime
// of the graph.
package visgraph

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/MaastrichtU-BISS/wayfinder/internal/geometry"
)

// NodeID is the stable arena index of a node.
type NodeID int

// None marks the absence of a node.
const None NodeID = -1

// Anonymous is the label of an unnamed node.
const Anonymous = ""

// Node is a waypoint in the visibility graph.
type Node struct {
	ID    NodeID
	Pos   orb.Point
	Label string

	neighbors []NodeID
}

// Labeled reports whether the node carries a human-readable label.
func (n Node) Labeled() bool {
	return n.Label != Anonymous
}

// Edge is an undirected visibility edge, From < To.
type Edge struct {
	From, To NodeID
	Cost     float64
}

// Graph is a visibility graph plus the obstacles it was built against.
type Graph struct {
	obstacles *Obstacles
	nodes     []Node
	labels    *labelIndex
	logger    *log.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		obstacles: &Obstacles{},
		labels:    newLabelIndex(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddWall registers an obstacle segment. Walls only affect nodes added later.
func (g *Graph) AddWall(a, b orb.Point) {
	if len(g.nodes) > 0 {
		g.logger.Warn("wall added after nodes; existing edges are kept",
			"a", a, "b", b, "nodes", len(g.nodes))
	}
	g.obstacles.Add(a, b)
}

// IsObstructed checks whether any wall crosses the segment a-b.
func (g *Graph) IsObstructed(a, b orb.Point) bool {
	return g.obstacles.Obstructed(a, b)
}

// AddNode inserts a waypoint and links it to every earlier node it can see.
// It returns the ID of the new node.
func (g *Graph) AddNode(p orb.Point, label string) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Pos: p, Label: label})

	linked := 0
	for i := range g.nodes[:id] {
		other := &g.nodes[i]
		if g.IsObstructed(p, other.Pos) {
			continue
		}
		other.neighbors = append(other.neighbors, id)
		g.nodes[id].neighbors = append(g.nodes[id].neighbors, other.ID)
		linked++
	}

	if label != Anonymous {
		g.labels.insert(id, p)
	}

	g.logger.Debug("node added", "id", id, "label", label, "pos", p, "edges", linked)
	return id
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Has reports whether id addresses a node of g.
func (g *Graph) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns the node with the given ID. It panics if id is out of range.
func (g *Graph) Node(id NodeID) Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order. The slice must not be modified.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Neighbors returns the IDs of the nodes visible from id, in link order.
// The slice must not be modified.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	return g.nodes[id].neighbors
}

// HasEdge reports whether a and b are linked.
func (g *Graph) HasEdge(a, b NodeID) bool {
	if !g.Has(a) || !g.Has(b) {
		return false
	}
	for _, n := range g.nodes[a].neighbors {
		if n == b {
			return true
		}
	}
	return false
}

// Edges returns every undirected edge once, lower ID first.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, m := range n.neighbors {
			if n.ID < m {
				seg := geometry.Segment{A: n.Pos, B: g.nodes[m].Pos}
				edges = append(edges, Edge{From: n.ID, To: m, Cost: seg.Length()})
			}
		}
	}
	return edges
}

// Walls returns the obstacle segments in insertion order.
func (g *Graph) Walls() []Wall {
	return g.obstacles.Walls()
}

// Distance returns the straight-line distance between two nodes.
func (g *Graph) Distance(a, b NodeID) float64 {
	return geometry.Distance(g.nodes[a].Pos, g.nodes[b].Pos)
}

// Lookup returns the first node carrying label.
func (g *Graph) Lookup(label string) (NodeID, bool) {
	if label == Anonymous {
		return None, false
	}
	for _, n := range g.nodes {
		if n.Label == label {
			return n.ID, true
		}
	}
	return None, false
}

// NearestLabeled returns the labelled node closest to p, provided it lies
// within radius. Anonymous nodes are never returned.
func (g *Graph) NearestLabeled(p orb.Point, radius float64) (NodeID, bool) {
	id, ok := g.labels.nearest(p)
	if !ok {
		return None, false
	}
	if geometry.Distance(p, g.nodes[id].Pos) > radius {
		return None, false
	}
	return id, true
}
