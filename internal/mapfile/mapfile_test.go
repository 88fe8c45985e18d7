package mapfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

// recorder captures builder calls in order.
type recorder struct {
	calls []string
	walls [][2]orb.Point
	nodes []string
}

func (r *recorder) AddWall(a, b orb.Point) {
	r.calls = append(r.calls, "wall")
	r.walls = append(r.walls, [2]orb.Point{a, b})
}

func (r *recorder) AddNode(p orb.Point, label string) visgraph.NodeID {
	r.calls = append(r.calls, "node")
	r.nodes = append(r.nodes, label)
	return visgraph.NodeID(len(r.nodes) - 1)
}

const floor = `# ground floor
o 0 0 10 0
b 20 20 30 40
n 1 1
N 2 2 library
s 3 3
e 4 4
`

func TestLoadText(t *testing.T) {
	rec := &recorder{}
	res, err := Load(strings.NewReader(floor), rec, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Walls)
	assert.Equal(t, 4, res.Nodes)
	assert.Equal(t, visgraph.NodeID(2), res.Start)
	assert.Equal(t, visgraph.NodeID(3), res.End)
	assert.Equal(t, []string{"", "library", "", ""}, rec.nodes)

	want := [][2]orb.Point{
		{{0, 0}, {10, 0}},
		{{20, 20}, {30, 20}},
		{{30, 20}, {30, 40}},
		{{20, 20}, {20, 40}},
		{{20, 40}, {30, 40}},
	}
	assert.Equal(t, want, rec.walls)
	assert.Equal(t, []string{"wall", "wall", "wall", "wall", "wall", "node", "node", "node", "node"}, rec.calls)
}

func TestLoadTextSkipsBadLines(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	input := strings.Join([]string{
		"",
		"n",
		"n 1",        // too few numbers
		"o 1 2 x 4",  // not a number
		"z 1 2",      // unknown command
		"n 5 5\r",    // CRLF line ending
		"N 6 6",      // named node without a label
		"s 1 1 junk", // trailing tokens are ignored
	}, "\n")

	rec := &recorder{}
	res, err := Load(strings.NewReader(input), rec, logger)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Nodes)
	assert.Equal(t, 0, res.Walls)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 1, res.Unknown)
	assert.Equal(t, visgraph.NodeID(2), res.Start)
	assert.Equal(t, visgraph.None, res.End)
	assert.Contains(t, buf.String(), "unknown map command")
}

func TestLoadTextIntoGraph(t *testing.T) {
	input := `o 5 -5 5 5
s 0 0
e 10 0
n 5 10
`
	g := visgraph.New()
	res, err := Load(strings.NewReader(input), g, nil)
	require.NoError(t, err)

	assert.False(t, g.HasEdge(res.Start, res.End))
	assert.True(t, g.HasEdge(res.Start, 2))
	assert.True(t, g.HasEdge(2, res.End))
}

const geoFloor = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"role": "start"},
     "geometry": {"type": "Point", "coordinates": [0, 0]}},
    {"type": "Feature", "properties": {"label": "cafe", "role": "end"},
     "geometry": {"type": "Point", "coordinates": [10, 0]}},
    {"type": "Feature", "properties": {"name": "stairs"},
     "geometry": {"type": "Point", "coordinates": [5, 10]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "LineString", "coordinates": [[5, -5], [5, 5]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[20, 20], [30, 20], [30, 30], [20, 30], [20, 20]]]}}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	rec := &recorder{}
	res, err := LoadGeoJSON([]byte(geoFloor), rec, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Walls)
	assert.Equal(t, 3, res.Nodes)
	assert.Equal(t, visgraph.NodeID(0), res.Start)
	assert.Equal(t, visgraph.NodeID(1), res.End)
	assert.Equal(t, []string{"", "cafe", "stairs"}, rec.nodes)

	// walls first even though points come first in the file
	assert.Equal(t, []string{"wall", "wall", "wall", "wall", "wall", "node", "node", "node"}, rec.calls)
}

func TestLoadGeoJSONOpenRing(t *testing.T) {
	input := `{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {},
	   "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [4, 0], [4, 4]]]}},
	  {"type": "Feature", "properties": {"label": "inside"},
	   "geometry": {"type": "Point", "coordinates": [3, 1]}}
	]}`

	var buf bytes.Buffer
	rec := &recorder{}
	res, err := LoadGeoJSON([]byte(input), rec, log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel}))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Walls, "open ring is closed")
	assert.Equal(t, [2]orb.Point{{4, 4}, {0, 0}}, rec.walls[2])
	assert.Contains(t, buf.String(), "node inside obstacle polygon")
}

func TestLoadGeoJSONMalformed(t *testing.T) {
	_, err := LoadGeoJSON([]byte("{not json"), &recorder{}, nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "floor.txt")
	require.NoError(t, os.WriteFile(txt, []byte(floor), 0o644))
	res, err := LoadFile(txt, &recorder{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Nodes)

	geo := filepath.Join(dir, "floor.geojson")
	require.NoError(t, os.WriteFile(geo, []byte(geoFloor), 0o644))
	res, err = LoadFile(geo, &recorder{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Nodes)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"), &recorder{}, nil)
	assert.Error(t, err)
}

func TestLoadGeoJSONSimplify(t *testing.T) {
	input := []byte(`{"type": "FeatureCollection", "features": [
	  {"type": "Feature", "properties": {},
	   "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [5, 0.1], [10, 0], [10, 10], [0, 10], [0, 0]]]}},
	  {"type": "Feature", "properties": {},
	   "geometry": {"type": "LineString", "coordinates": [[20, 0], [25, 0.05], [30, 0]]}}
	]}`)

	res, err := LoadGeoJSON(input, &recorder{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Walls)

	rec := &recorder{}
	res, err = LoadGeoJSON(input, rec, nil, WithSimplify(0.5))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Walls)
	assert.Equal(t, [2]orb.Point{{20, 0}, {30, 0}}, rec.walls[4])
}

func TestLoadTextNamedNodeWithoutLabel(t *testing.T) {
	rec := &recorder{}
	res, err := Load(strings.NewReader("N 3 4\nN 5 6 atrium\n"), rec, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Nodes)
	assert.Equal(t, []string{visgraph.Anonymous, "atrium"}, rec.nodes)
}
