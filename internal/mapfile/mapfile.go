// Package mapfile loads floor plans into a visibility graph.
//
// Two formats are understood. The text format is line oriented, one command
// per line:
//
//	# comment
//	o ax ay bx by   wall from a to b
//	b x1 y1 x2 y2   axis-aligned box, registered as four walls
//	n x y           anonymous node
//	N x y label     named node
//	s x y           start node
//	e x y           end node
//
// Lines shorter than three characters are skipped, as are lines whose
// arguments do not parse. Unknown commands are logged and ignored. Commands
// reach the builder in file order, so walls must precede the nodes they are
// meant to separate.
//
// The GeoJSON format is described on LoadGeoJSON.
package mapfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// ErrMalformed is returned for a map file that cannot be decoded at all.
var ErrMalformed = errors.New("mapfile: malformed map")

// Builder receives walls and nodes in load order.
type Builder interface {
	AddWall(a, b orb.Point)
	AddNode(p orb.Point, label string) visgraph.NodeID
}

// Endpoints are the start and end nodes named by a map, visgraph.None when absent.
type Endpoints struct {
	Start visgraph.NodeID
	End   visgraph.NodeID
}

// Stats counts what a load registered.
type Stats struct {
	Walls   int
	Nodes   int
	Skipped int
	Unknown int
}

// Result is the outcome of a load.
type Result struct {
	Endpoints
	Stats
}

func newResult() Result {
	return Result{Endpoints: Endpoints{Start: visgraph.None, End: visgraph.None}}
}

// Load reads a text floor plan from r into b. Only read errors are returned.
func Load(r io.Reader, b Builder, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	res := newResult()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) < 3 {
			continue
		}
		cmd := line[0]
		args := line[2:]

		if err := apply(cmd, args, b, &res); err != nil {
			if errors.Is(err, errUnknownCommand) {
				logger.Warn("unknown map command", "line", lineNo, "cmd", string(cmd), "args", args)
				res.Unknown++
			} else {
				logger.Debug("skipping map line", "line", lineNo, "err", err)
				res.Skipped++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read map: %w", err)
	}

	logger.Debug("map loaded", "walls", res.Walls, "nodes", res.Nodes,
		"skipped", res.Skipped, "unknown", res.Unknown)
	return res, nil
}

var errUnknownCommand = errors.New("unknown command")

func apply(cmd byte, args string, b Builder, res *Result) error {
	switch cmd {
	case '#':
		return nil

	case 'o':
		v, err := floats(args, 4)
		if err != nil {
			return err
		}
		b.AddWall(orb.Point{v[0], v[1]}, orb.Point{v[2], v[3]})
		res.Walls++

	case 'b':
		v, err := floats(args, 4)
		if err != nil {
			return err
		}
		x, y, x2, y2 := v[0], v[1], v[2], v[3]
		b.AddWall(orb.Point{x, y}, orb.Point{x2, y})
		b.AddWall(orb.Point{x2, y}, orb.Point{x2, y2})
		b.AddWall(orb.Point{x, y}, orb.Point{x, y2})
		b.AddWall(orb.Point{x, y2}, orb.Point{x2, y2})
		res.Walls += 4

	case 'n', 's', 'e':
		v, err := floats(args, 2)
		if err != nil {
			return err
		}
		id := b.AddNode(orb.Point{v[0], v[1]}, visgraph.Anonymous)
		res.Nodes++
		switch cmd {
		case 's':
			res.Start = id
		case 'e':
			res.End = id
		}

	case 'N':
		v, err := floats(args, 2)
		if err != nil {
			return err
		}
		label := visgraph.Anonymous
		if fields := strings.Fields(args); len(fields) > 2 {
			label = fields[2]
		}
		b.AddNode(orb.Point{v[0], v[1]}, label)
		res.Nodes++

	default:
		return errUnknownCommand
	}
	return nil
}

// floats parses the first n whitespace separated numbers of s.
func floats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, fmt.Errorf("want %d numbers, got %d fields", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// LoadFile loads a floor plan from path, picking the format by extension:
// .geojson and .json use LoadGeoJSON, anything else the text format.
// Options apply to GeoJSON only.
func LoadFile(path string, b Builder, logger *log.Logger, opts ...Option) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return newResult(), fmt.Errorf("read map: %w", err)
		}
		return LoadGeoJSON(data, b, logger, opts...)
	}

	f, err := os.Open(path)
	if err != nil {
		return newResult(), fmt.Errorf("open map: %w", err)
	}
	defer f.Close()
	return Load(f, b, logger)
}
