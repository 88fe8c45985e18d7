// Package config loads wayfinder settings from TOML.
//
// Example:
//
//	map = "maps/school.txt"
//	algorithm = "heuristic"
//	pick_radius = 20.0
//	unit_scale = 0.6
//	unit = "ft"
//
//	[server]
//	addr = ":8080"
//
//	[render]
//	width = 1418
//	height = 1221
//	debug = false
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/MaastrichtU-BISS/wayfinder/internal/search"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all wayfinder settings.
type Config struct {
	// Map is the floor plan to load when none is given on the command line.
	Map string `toml:"map"`

	// Algorithm is the default search algorithm name.
	Algorithm string `toml:"algorithm"`

	// PickRadius is how far from a point a labelled node may be to be picked.
	PickRadius float64 `toml:"pick_radius"`

	// Simplify is the Douglas-Peucker tolerance applied to GeoJSON walls.
	Simplify float64 `toml:"simplify"`

	// UnitScale converts map units into reported length units.
	UnitScale float64 `toml:"unit_scale"`
	Unit      string  `toml:"unit"`

	Server Server `toml:"server"`
	Render Render `toml:"render"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Render configures PNG snapshots.
type Render struct {
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"`
	Debug  bool    `toml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Algorithm:  "heuristic",
		PickRadius: 20,
		UnitScale:  0.6,
		Unit:       "ft",
		Server:     Server{Addr: ":8080"},
		Render:     Render{Width: 1418, Height: 1221, Scale: 1},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if _, err := search.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("%w: algorithm: %v", ErrInvalid, err)
	}
	if c.PickRadius <= 0 {
		return fmt.Errorf("%w: pick_radius must be positive, got %g", ErrInvalid, c.PickRadius)
	}
	if c.Simplify < 0 {
		return fmt.Errorf("%w: simplify must not be negative, got %g", ErrInvalid, c.Simplify)
	}
	if c.UnitScale <= 0 {
		return fmt.Errorf("%w: unit_scale must be positive, got %g", ErrInvalid, c.UnitScale)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size must be positive, got %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("%w: render scale must be positive, got %g", ErrInvalid, c.Render.Scale)
	}
	return nil
}

// SearchAlgorithm returns the configured algorithm.
func (c Config) SearchAlgorithm() search.Algorithm {
	alg, err := search.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return search.Greedy
	}
	return alg
}
