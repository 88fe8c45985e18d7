package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MaastrichtU-BISS/wayfinder/internal/search"
)

// routeOpts holds the command-line flags for the route command.
type routeOpts struct {
	algorithm string // heuristic, uniform_cost or astar; empty means config
	from      string // start label; empty means the map's start node
	to        string // end label; empty means the map's end node
	json      bool   // print the result as JSON
}

// routeResult is the JSON form of a search outcome.
type routeResult struct {
	Algorithm string       `json:"algorithm"`
	Status    string       `json:"status"`
	Path      [][2]float64 `json:"path"`
	Nodes     []int        `json:"nodes"`
	Estimates []float64    `json:"estimates"` // heuristic per path node, -1 when not estimated
	Length    float64      `json:"length"`
	Unit      string       `json:"unit"`
	ElapsedMs float64      `json:"elapsedMs"`
	Expanded  int          `json:"expanded"`
}

func (c *CLI) routeCommand() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:   "route [map]",
		Short: "Find a route between two nodes of a floor plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRoute(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "search algorithm: heuristic, uniform_cost or astar")
	cmd.Flags().StringVar(&opts.from, "from", "", "start node label")
	cmd.Flags().StringVar(&opts.to, "to", "", "end node label")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")

	return cmd
}

func (c *CLI) runRoute(cmd *cobra.Command, args []string, opts routeOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	alg := cfg.SearchAlgorithm()
	if opts.algorithm != "" {
		if alg, err = search.ParseAlgorithm(opts.algorithm); err != nil {
			return err
		}
	}

	plan, err := c.loadPlan(args, cfg)
	if err != nil {
		return err
	}
	s, err := plan.plan(opts.from, opts.to, alg, c.Logger)
	if err != nil {
		return err
	}

	res := routeResult{
		Algorithm: alg.String(),
		Status:    s.Status().String(),
		Path:      [][2]float64{},
		Nodes:     []int{},
		Estimates: []float64{},
		Unit:      cfg.Unit,
		ElapsedMs: float64(s.Elapsed().Microseconds()) / 1000,
		Expanded:  s.Expanded(),
	}
	for _, id := range s.Path() {
		res.Nodes = append(res.Nodes, int(id))
		res.Estimates = append(res.Estimates, s.Heuristic(id))
	}
	for _, p := range s.PathPoints() {
		res.Path = append(res.Path, [2]float64{p.X(), p.Y()})
	}
	res.Length = s.PathLength() * cfg.UnitScale

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if s.Status() != search.PathFound {
		c.Logger.Warn("no route", "algorithm", alg, "expanded", res.Expanded)
		fmt.Fprintln(out, "No path found")
		return nil
	}
	for i, p := range res.Path {
		fmt.Fprintf(out, "%3d  node %-4d (%g, %g)\n", i, res.Nodes[i], p[0], p[1])
	}
	fmt.Fprintf(out, "Path Found In: %.3f ms\n", res.ElapsedMs)
	fmt.Fprintf(out, "Path Length: %.1f %s\n", res.Length, res.Unit)
	return nil
}
