package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MaastrichtU-BISS/wayfinder/internal/render"
	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	dot  string // DOT output path
	svg  string // SVG output path
	from string
	to   string
}

func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [map]",
		Short: "Print visibility graph statistics and export it",
		Long: `Graph builds the visibility graph of a floor plan and prints its size.
With --dot or --svg the graph is written out, the route between --from and --to
highlighted when one exists.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dot, "dot", "", "write Graphviz DOT to this file")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "write an SVG rendering to this file")
	cmd.Flags().StringVar(&opts.from, "from", "", "start node label for the highlighted route")
	cmd.Flags().StringVar(&opts.to, "to", "", "end node label for the highlighted route")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, args []string, opts graphOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	plan, err := c.loadPlan(args, cfg)
	if err != nil {
		return err
	}
	g := plan.graph

	labeled := 0
	for _, n := range g.Nodes() {
		if n.Labeled() {
			labeled++
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "walls:   %d\n", len(g.Walls()))
	fmt.Fprintf(out, "nodes:   %d (%d labelled)\n", g.Len(), labeled)
	fmt.Fprintf(out, "edges:   %d\n", len(g.Edges()))

	if opts.dot == "" && opts.svg == "" {
		return nil
	}

	var path []visgraph.NodeID
	if s, err := plan.plan(opts.from, opts.to, cfg.SearchAlgorithm(), c.Logger); err == nil {
		path = s.Path()
	} else {
		c.Logger.Debug("no route to highlight", "err", err)
	}
	dot := render.ToDOT(g, path)

	if opts.dot != "" {
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write DOT: %w", err)
		}
		c.Logger.Infof("Wrote %s", opts.dot)
	}
	if opts.svg != "" {
		prog := newProgress(c.Logger)
		svg, err := render.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			return fmt.Errorf("write SVG: %w", err)
		}
		prog.done("Wrote " + opts.svg)
	}
	return nil
}
