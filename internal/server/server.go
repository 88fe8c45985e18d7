// Package server exposes route planning over HTTP.
//
// Endpoints:
//
//	POST /route        compute a route between two nodes
//	GET  /graph/lines  visibility edges and walls for visualization
//	GET  /health       server status
//
// The server owns one graph and one search session. Searches are not safe for
// concurrent use, so requests touching the session are serialised.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/paulmach/orb"

	"github.com/MaastrichtU-BISS/wayfinder/internal/config"
	"github.com/MaastrichtU-BISS/wayfinder/internal/mapfile"
	"github.com/MaastrichtU-BISS/wayfinder/internal/search"
	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// Point is a JSON map coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func fromOrb(p orb.Point) Point { return Point{X: p.X(), Y: p.Y()} }

func (p Point) toOrb() orb.Point { return orb.Point{p.X, p.Y} }

// RouteRequest selects the endpoints and algorithm of a search. An endpoint is
// given either by label or by a point snapped to the nearest labelled node;
// when neither is set the map's own start or end node is used.
type RouteRequest struct {
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	StartPoint *Point `json:"startPoint,omitempty"`
	EndPoint   *Point `json:"endPoint,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
}

// RouteResponse is the outcome of a search.
type RouteResponse struct {
	Path      []Point `json:"path"`
	Success   bool    `json:"success"`
	Message   string  `json:"message,omitempty"`
	Length    float64 `json:"length,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	ElapsedMs float64 `json:"elapsedMs"`
	Expanded  int     `json:"expanded"`
}

// Server serves one floor plan.
type Server struct {
	mu        sync.Mutex
	graph     *visgraph.Graph
	session   *search.Session
	endpoints mapfile.Endpoints
	cfg       config.Config
	logger    *log.Logger
}

// New returns a server for g. endpoints are the defaults used when a request
// names none.
func New(g *visgraph.Graph, endpoints mapfile.Endpoints, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		graph:     g,
		session:   search.NewSession(g, search.WithLogger(logger)),
		endpoints: endpoints,
		cfg:       cfg,
		logger:    logger,
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Post("/route", s.routeHandler)
	r.Get("/graph/lines", s.linesHandler)
	r.Get("/health", s.healthHandler)
	return r
}

// corsMiddleware adds CORS headers to allow frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

var errUnresolved = errors.New("endpoint not found")

func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("invalid route request", "err", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	alg := s.cfg.SearchAlgorithm()
	if req.Algorithm != "" {
		var err error
		if alg, err = search.ParseAlgorithm(req.Algorithm); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start, err := s.resolve(req.Start, req.StartPoint, s.endpoints.Start)
	if err != nil {
		writeJSON(w, http.StatusOK, RouteResponse{Path: []Point{}, Message: "start: " + err.Error()})
		return
	}
	end, err := s.resolve(req.End, req.EndPoint, s.endpoints.End)
	if err != nil {
		writeJSON(w, http.StatusOK, RouteResponse{Path: []Point{}, Message: "end: " + err.Error()})
		return
	}

	if err := s.prepare(start, end); err != nil {
		s.logger.Error("route setup failed", "start", start, "end", end, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.session.Run(alg); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := RouteResponse{
		Success:   s.session.Status() == search.PathFound,
		ElapsedMs: float64(s.session.Elapsed().Microseconds()) / 1000,
		Expanded:  s.session.Expanded(),
		Path:      []Point{},
	}
	if resp.Success {
		for _, p := range s.session.PathPoints() {
			resp.Path = append(resp.Path, fromOrb(p))
		}
		resp.Length = s.session.PathLength() * s.cfg.UnitScale
		resp.Unit = s.cfg.Unit
		s.logger.Info("route found", "algorithm", alg, "waypoints", len(resp.Path),
			"length", resp.Length, "unit", resp.Unit)
	} else {
		resp.Message = "No path found"
		s.logger.Info("no route", "algorithm", alg, "start", start, "end", end)
	}

	writeJSON(w, http.StatusOK, resp)
}

// prepare designates the endpoints of the next run, leaving unchanged ones alone.
func (s *Server) prepare(start, end visgraph.NodeID) error {
	if start != s.session.Start() {
		if err := s.session.SetStart(start); err != nil {
			return err
		}
	}
	if end != s.session.End() {
		if err := s.session.SetEnd(end); err != nil {
			return err
		}
	}
	return nil
}

// resolve picks a node by label, then by point, then falls back to def.
func (s *Server) resolve(label string, p *Point, def visgraph.NodeID) (visgraph.NodeID, error) {
	switch {
	case label != "":
		if id, ok := s.graph.Lookup(label); ok {
			return id, nil
		}
		return visgraph.None, errUnresolved
	case p != nil:
		if id, ok := s.graph.NearestLabeled(p.toOrb(), s.cfg.PickRadius); ok {
			return id, nil
		}
		return visgraph.None, errUnresolved
	case def != visgraph.None:
		return def, nil
	}
	return visgraph.None, errUnresolved
}

func (s *Server) linesHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	edges := s.graph.Edges()
	lines := make([][]Point, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, []Point{
			fromOrb(s.graph.Node(e.From).Pos),
			fromOrb(s.graph.Node(e.To).Pos),
		})
	}
	walls := make([][]Point, 0, len(s.graph.Walls()))
	for _, wall := range s.graph.Walls() {
		walls = append(walls, []Point{fromOrb(wall.A), fromOrb(wall.B)})
	}
	numNodes := s.graph.Len()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"lines":    lines,
		"walls":    walls,
		"numNodes": numNodes,
		"numEdges": len(lines),
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	numNodes := s.graph.Len()
	numWalls := len(s.graph.Walls())
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"numNodes": numNodes,
		"numWalls": numWalls,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
