// Package search finds routes on a visibility graph.
//
// A Session owns all per-run state: the cost, heuristic estimate, visited flag
// and predecessor of every node, plus the frontier. Runs overwrite that state
// in place; Reset puts it back to its initial sentinels. Changing the start or
// end node resets the session implicitly.
//
// Three algorithms are available:
//
//   - Greedy orders its frontier by straight-line distance to the end node
//     only and stops as soon as the end node is discovered. It finds a path,
//     not necessarily the shortest one.
//   - Dijkstra scans every unvisited node for the lowest cost on each step and
//     visits the whole graph. Its path is the shortest one.
//   - AStar orders by cost plus heuristic and stops when the end node is
//     expanded. Also optimal, as the Euclidean heuristic never overestimates.
//
// A Session is not safe for concurrent use.
package search

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// Sentinels for per-node search fields.
const (
	// Unreached is the cost of a node no path has reached yet.
	Unreached = math.MaxFloat64

	// Unestimated is the heuristic of a node that has not been estimated.
	Unestimated = -1.0
)

// Sentinel errors returned by Session.
var (
	ErrNoStart          = errors.New("search: start node not set")
	ErrNoEnd            = errors.New("search: end node not set")
	ErrNodeNotFound     = errors.New("search: node not in graph")
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")
)

// Algorithm selects the search strategy of a run.
type Algorithm int

const (
	Greedy Algorithm = iota
	Dijkstra
	AStar
)

func (a Algorithm) String() string {
	switch a {
	case Greedy:
		return "heuristic"
	case Dijkstra:
		return "uniform_cost"
	case AStar:
		return "astar"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm maps an algorithm name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "heuristic", "greedy", "best_first":
		return Greedy, nil
	case "uniform_cost", "dijkstra":
		return Dijkstra, nil
	case "astar", "a*":
		return AStar, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Status is the lifecycle state of a session.
type Status int

const (
	Idle Status = iota
	Running
	PathFound
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case PathFound:
		return "path_found"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Session holds the mutable state of route searches on one graph.
type Session struct {
	graph  *visgraph.Graph
	logger *log.Logger

	start, end visgraph.NodeID
	status     Status

	cost      []float64
	heuristic []float64
	visited   []bool
	pred      []visgraph.NodeID
	frontier  *frontier

	expanded int
	elapsed  time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used to report runs.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession returns an idle session on g with no endpoints designated.
func NewSession(g *visgraph.Graph, opts ...Option) *Session {
	s := &Session{
		graph:    g,
		logger:   log.New(io.Discard),
		start:    visgraph.None,
		end:      visgraph.None,
		frontier: newFrontier(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset clears every per-node search field and empties the frontier.
// The scratch slices are resized to the current graph size, so nodes added
// since the last run are covered.
func (s *Session) Reset() {
	n := s.graph.Len()
	s.cost = resize(s.cost, n)
	s.heuristic = resize(s.heuristic, n)
	s.visited = resize(s.visited, n)
	s.pred = resize(s.pred, n)

	for i := 0; i < n; i++ {
		s.visited[i] = false
		s.cost[i] = Unreached
		s.heuristic[i] = Unestimated
		s.pred[i] = visgraph.None
	}

	s.frontier.Clear()
	s.status = Idle
	s.expanded = 0
}

func resize[T any](xs []T, n int) []T {
	if cap(xs) >= n {
		return xs[:n]
	}
	return make([]T, n)
}

// SetStart designates the start node and resets the session.
func (s *Session) SetStart(id visgraph.NodeID) error {
	if !s.graph.Has(id) {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	s.Reset()
	s.start = id
	return nil
}

// SetEnd designates the end node and resets the session.
func (s *Session) SetEnd(id visgraph.NodeID) error {
	if !s.graph.Has(id) {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	s.Reset()
	s.end = id
	return nil
}

// Run searches for a route from the start node to the end node.
//
// A missing endpoint or unknown algorithm leaves the session untouched and
// returns an error. Otherwise the outcome is reported through Status: when no
// route exists the status is Exhausted and the end node has no predecessor.
func (s *Session) Run(alg Algorithm) error {
	if s.start == visgraph.None {
		return ErrNoStart
	}
	if s.end == visgraph.None {
		return ErrNoEnd
	}

	var run func()
	switch alg {
	case Greedy:
		run = s.greedy
	case Dijkstra:
		run = s.dijkstra
	case AStar:
		run = s.astar
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(alg))
	}

	begin := time.Now()
	s.Reset()
	s.status = Running
	run()
	s.elapsed = time.Since(begin)

	s.logger.Debug("search finished",
		"algorithm", alg,
		"status", s.status,
		"expanded", s.expanded,
		"elapsed", s.elapsed)
	return nil
}

// Status returns the lifecycle state of the session.
func (s *Session) Status() Status { return s.status }

// Start returns the designated start node, or visgraph.None.
func (s *Session) Start() visgraph.NodeID { return s.start }

// End returns the designated end node, or visgraph.None.
func (s *Session) End() visgraph.NodeID { return s.end }

// Elapsed returns the duration of the last run.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Expanded returns how many nodes the last run expanded.
func (s *Session) Expanded() int { return s.expanded }

// tracked reports whether id is covered by the scratch state of the last
// Reset. Nodes added to the graph since then are not.
func (s *Session) tracked(id visgraph.NodeID) bool {
	return id >= 0 && int(id) < len(s.cost)
}

// Cost returns the best known cost from the start node to id, or Unreached.
func (s *Session) Cost(id visgraph.NodeID) float64 {
	if !s.tracked(id) {
		return Unreached
	}
	return s.cost[id]
}

// Heuristic returns the heuristic estimate recorded for id, or Unestimated.
func (s *Session) Heuristic(id visgraph.NodeID) float64 {
	if !s.tracked(id) {
		return Unestimated
	}
	return s.heuristic[id]
}

// Visited reports whether id was expanded during the last run.
func (s *Session) Visited(id visgraph.NodeID) bool {
	return s.tracked(id) && s.visited[id]
}

// Predecessor returns the node from which id was reached, or visgraph.None.
func (s *Session) Predecessor(id visgraph.NodeID) visgraph.NodeID {
	if !s.tracked(id) {
		return visgraph.None
	}
	return s.pred[id]
}

// Path returns the route from start to end, or nil when there is none.
func (s *Session) Path() []visgraph.NodeID {
	if s.status != PathFound {
		return nil
	}

	var path []visgraph.NodeID
	for cur := s.end; cur != visgraph.None; cur = s.pred[cur] {
		path = append(path, cur)
		if cur == s.start {
			break
		}
		if len(path) > len(s.pred) {
			// predecessor chain does not lead back to start
			return nil
		}
	}
	if path[len(path)-1] != s.start {
		return nil
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathPoints returns the route as a line string from start to end.
func (s *Session) PathPoints() orb.LineString {
	path := s.Path()
	if path == nil {
		return nil
	}
	ls := make(orb.LineString, 0, len(path))
	for _, id := range path {
		ls = append(ls, s.graph.Node(id).Pos)
	}
	return ls
}

// PathLength returns the sum of the distances between consecutive route nodes.
func (s *Session) PathLength() float64 {
	path := s.Path()
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += s.graph.Distance(path[i-1], path[i])
	}
	return total
}

func (s *Session) estimate(id visgraph.NodeID) float64 {
	return s.graph.Distance(id, s.end)
}
