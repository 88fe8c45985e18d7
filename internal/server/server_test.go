package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaastrichtU-BISS/wayfinder/internal/config"
	"github.com/MaastrichtU-BISS/wayfinder/internal/mapfile"
	"github.com/MaastrichtU-BISS/wayfinder/internal/visgraph"
)

const floor = `o 5 -5 5 5
b 40 40 60 60
s 0 0
e 10 0
N 5 10 stairs
N 50 50 vault
N 0 -20 lobby
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	g := visgraph.New()
	res, err := mapfile.Load(strings.NewReader(floor), g, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(New(g, res.Endpoints, config.Default(), nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postRoute(t *testing.T, srv *httptest.Server, body string) (*http.Response, RouteResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/route", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out RouteResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestRouteDefaultsToMapEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, out := postRoute(t, srv, `{"algorithm": "dijkstra"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	require.True(t, out.Success, out.Message)
	assert.Equal(t, Point{0, 0}, out.Path[0])
	assert.Equal(t, Point{10, 0}, out.Path[len(out.Path)-1])
	assert.Len(t, out.Path, 3)
	assert.Equal(t, "ft", out.Unit)
	assert.Greater(t, out.Length, 0.0)
}

func TestRouteEmptyBody(t *testing.T) {
	srv := newTestServer(t)
	resp, out := postRoute(t, srv, ``)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Success)
}

func TestRouteByLabelAndPoint(t *testing.T) {
	srv := newTestServer(t)

	_, out := postRoute(t, srv, `{"start": "lobby", "endPoint": {"x": 7, "y": 12}}`)
	require.True(t, out.Success, out.Message)
	assert.Equal(t, Point{0, -20}, out.Path[0])
	assert.Equal(t, Point{5, 10}, out.Path[len(out.Path)-1])
}

func TestRouteUnreachable(t *testing.T) {
	srv := newTestServer(t)

	for _, alg := range []string{"heuristic", "dijkstra", "astar"} {
		_, out := postRoute(t, srv, `{"start": "lobby", "end": "vault", "algorithm": "`+alg+`"}`)
		assert.False(t, out.Success, alg)
		assert.Empty(t, out.Path, alg)
		assert.Equal(t, "No path found", out.Message, alg)
	}
}

func TestRouteUnresolvedEndpoint(t *testing.T) {
	srv := newTestServer(t)

	_, out := postRoute(t, srv, `{"start": "gym"}`)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "start")

	_, out = postRoute(t, srv, `{"endPoint": {"x": 500, "y": 500}}`)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "end")
}

func TestRouteBadRequests(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postRoute(t, srv, `{"algorithm": "bfs"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postRoute(t, srv, `{not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err := http.Get(srv.URL + "/route")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouteStaleDefaultEndpoint(t *testing.T) {
	g := visgraph.New()
	_, err := mapfile.Load(strings.NewReader(floor), g, nil)
	require.NoError(t, err)

	stale := mapfile.Endpoints{Start: 99, End: 1}
	srv := httptest.NewServer(New(g, stale, config.Default(), nil).Handler())
	t.Cleanup(srv.Close)

	resp, _ := postRoute(t, srv, ``)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// a request naming its own start is unaffected
	resp, out := postRoute(t, srv, `{"start": "lobby"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, out.Success, out.Message)
}

func TestPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/route", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "POST, GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
}

func TestGraphLines(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/graph/lines")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Success  bool      `json:"success"`
		Lines    [][]Point `json:"lines"`
		Walls    [][]Point `json:"walls"`
		NumNodes int       `json:"numNodes"`
		NumEdges int       `json:"numEdges"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.True(t, out.Success)
	assert.Equal(t, 5, out.NumNodes)
	assert.Len(t, out.Walls, 5)
	assert.Equal(t, len(out.Lines), out.NumEdges)
	for _, l := range out.Lines {
		assert.Len(t, l, 2)
		assert.NotEqual(t, Point{50, 50}, l[0], "vault is walled in")
		assert.NotEqual(t, Point{50, 50}, l[1], "vault is walled in")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ready", out["status"])
	assert.Equal(t, 5.0, out["numNodes"])
	assert.Equal(t, 5.0, out["numWalls"])
}
