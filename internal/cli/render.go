package cli

import (
	"github.com/spf13/cobra"

	"github.com/MaastrichtU-BISS/wayfinder/internal/render"
	"github.com/MaastrichtU-BISS/wayfinder/internal/search"
)

// renderOpts holds the command-line flags for the render command. Zero
// values fall back to the [render] table of the configuration.
type renderOpts struct {
	output    string
	algorithm string
	from      string
	to        string
	width     int
	height    int
	scale     float64
	debug     bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{output: "route.png"}

	cmd := &cobra.Command{
		Use:   "render [map]",
		Short: "Draw a floor plan and its route to PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG file")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "search algorithm: heuristic, uniform_cost or astar")
	cmd.Flags().StringVar(&opts.from, "from", "", "start node label")
	cmd.Flags().StringVar(&opts.to, "to", "", "end node label")
	cmd.Flags().IntVar(&opts.width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "image height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "map units to pixels")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "draw every wall, edge and node")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, opts renderOpts) error {
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

	png := render.PNGOptions{
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
		Scale:  cfg.Render.Scale,
		Debug:  cfg.Render.Debug || opts.debug,
	}
	if opts.width > 0 {
		png.Width = opts.width
	}
	if opts.height > 0 {
		png.Height = opts.height
	}
	if opts.scale > 0 {
		png.Scale = opts.scale
	}

	plan, err := c.loadPlan(args, cfg)
	if err != nil {
		return err
	}

	scene := render.Scene{Graph: plan.graph, Unit: cfg.Unit, UnitScale: cfg.UnitScale}
	s, err := plan.plan(opts.from, opts.to, alg, c.Logger)
	if err != nil {
		if !png.Debug {
			return err
		}
		c.Logger.Warn("drawing without a route", "err", err)
	} else {
		scene.Session = s
	}

	f, err := createOutput(opts.output)
	if err != nil {
		return err
	}
	defer f.Close()

	prog := newProgress(c.Logger)
	if err := render.DrawPNG(f, scene, png); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	prog.done("Wrote " + opts.output)
	return nil
}
