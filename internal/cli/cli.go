// Package cli implements the wayfinder command-line interface.
//
// # Commands
//
//   - route:  find a route on a floor plan and print it
//   - graph:  inspect the visibility graph, export DOT or SVG
//   - render: draw the floor plan and route to a PNG file
//   - serve:  expose routing over HTTP
//
// Every command takes the floor plan as its argument, or falls back to the
// map named in the configuration file given with --config.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MaastrichtU-BISS/wayfinder/internal/buildinfo"
	"github.com/MaastrichtU-BISS/wayfinder/internal/config"
	"github.com/MaastrichtU-BISS/wayfinder/internal/mapfile"
	"github.com/MaastrichtU-BISS/wayfinder/internal/search"
	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a CLI that logs to w at the given level. Command results go to
// the command's output writer.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	build := buildinfo.Resolve()
	root := &cobra.Command{
		Use:          "wayfinder",
		Short:        "Wayfinder plans routes across floor plans",
		Long:         `Wayfinder builds a visibility graph from the walls and waypoints of a floor plan and finds routes between waypoints.`,
		Version:      build.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(build.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML configuration file")

	root.AddCommand(c.routeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// loadConfig reads --config, or returns the defaults when it is unset.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("config loaded", "path", c.configPath)
	return cfg, nil
}

// floorPlan is a loaded map ready for searching.
type floorPlan struct {
	graph     *visgraph.Graph
	endpoints mapfile.Endpoints
}

// loadPlan loads the map named by args or by the configuration.
func (c *CLI) loadPlan(args []string, cfg config.Config) (*floorPlan, error) {
	path := cfg.Map
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no map given: pass a map file or set map in the config")
	}

	prog := newProgress(c.Logger)
	g := visgraph.New(visgraph.WithLogger(c.Logger))
	res, err := mapfile.LoadFile(path, g, c.Logger, mapfile.WithSimplify(cfg.Simplify))
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Loaded %s: %d walls, %d nodes, %d edges",
		path, res.Walls, res.Nodes, len(g.Edges())))

	return &floorPlan{graph: g, endpoints: res.Endpoints}, nil
}

// endpoint picks a node by label, falling back to def.
func (p *floorPlan) endpoint(label string, def visgraph.NodeID, role string) (visgraph.NodeID, error) {
	if label == "" {
		if def == visgraph.None {
			return visgraph.None, fmt.Errorf("map has no %s node; pass --%s", role, flagForRole(role))
		}
		return def, nil
	}
	id, ok := p.graph.Lookup(label)
	if !ok {
		return visgraph.None, fmt.Errorf("no node labelled %q", label)
	}
	return id, nil
}

func flagForRole(role string) string {
	if role == "start" {
		return "from"
	}
	return "to"
}

// plan runs a search between the chosen endpoints.
func (p *floorPlan) plan(from, to string, alg search.Algorithm, logger *log.Logger) (*search.Session, error) {
	start, err := p.endpoint(from, p.endpoints.Start, "start")
	if err != nil {
		return nil, err
	}
	end, err := p.endpoint(to, p.endpoints.End, "end")
	if err != nil {
		return nil, err
	}

	s := search.NewSession(p.graph, search.WithLogger(logger))
	if err := s.SetStart(start); err != nil {
		return nil, err
	}
	if err := s.SetEnd(end); err != nil {
		return nil, err
	}
	if err := s.Run(alg); err != nil {
		return nil, err
	}
	return s, nil
}

// createOutput opens path for writing.
func createOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}
