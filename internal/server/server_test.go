package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/config"
	"github.com/matzehuels/flowlayout/pkg/layout"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

const body = `{
  "nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}, {"id": "D", "data": {"k": "v"}}],
  "edges": [
    {"source": "A", "target": "B"},
    {"source": "A", "target": "C"},
    {"source": "C", "target": "D"}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(fc, nil, logger)
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 4096
	return New(runner, cfg, layout.DefaultOptions(), logger)
}

func do(t *testing.T, s *Server, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

type layoutResponse struct {
	Canvas struct {
		Nodes []struct {
			ID       string          `json:"id"`
			Position layout.Position `json:"position"`
			Data     map[string]any  `json:"data"`
		} `json:"nodes"`
	} `json:"canvas"`
	Layers        map[string]int `json:"layers"`
	FeedbackEdges []layout.Edge  `json:"feedback_edges"`
	Cache         struct {
		LayoutHit bool `json:"layout_hit"`
	} `json:"cache"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) layoutResponse {
	t.Helper()
	var out layoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestLayout(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/layout", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	out := decode(t, rec)
	require.Len(t, out.Canvas.Nodes, 4)
	pos := map[string]layout.Position{}
	for _, n := range out.Canvas.Nodes {
		pos[n.ID] = n.Position
	}
	assert.InDelta(t, 80.0, pos["D"].Y, 1e-6)
	assert.InDelta(t, 25.0, pos["C"].Y, 1e-6)
	assert.InDelta(t, 146.0, pos["B"].Y, 1e-6)
	assert.InDelta(t, -2.5, pos["A"].Y, 1e-6)
	assert.Equal(t, 860.0, pos["D"].X)
	assert.Equal(t, "v", out.Canvas.Nodes[3].Data["k"])
	assert.Equal(t, 2, out.Layers["D"])
	assert.False(t, out.Cache.LayoutHit)

	again := decode(t, do(t, s, http.MethodPost, "/v1/layout", body))
	assert.True(t, again.Cache.LayoutHit)
}

func TestLayout_PartialGridOverride(t *testing.T) {
	s := newTestServer(t)
	payload := `{"nodes": [{"id": "X"}], "edges": [], "options": {"grid": {"start_y": 10}}}`
	rec := do(t, s, http.MethodPost, "/v1/layout", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode(t, rec)
	assert.Equal(t, layout.Position{X: layout.DefaultStartX, Y: 10}, out.Canvas.Nodes[0].Position)
}

func TestLayout_Cycle(t *testing.T) {
	s := newTestServer(t)
	payload := `{"nodes": [{"id": "A"}, {"id": "B"}], "edges": [{"source": "A", "target": "B"}, {"source": "B", "target": "A"}]}`
	out := decode(t, do(t, s, http.MethodPost, "/v1/layout", payload))
	assert.Equal(t, []layout.Edge{{Source: "B", Target: "A"}}, out.FeedbackEdges)
}

func TestLayout_Errors(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name    string
		payload string
		status  int
		code    string
	}{
		{"Malformed", `{"nodes": [`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"DuplicateID", `{"nodes": [{"id": "a"}, {"id": "a"}]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"EmptyID", `{"nodes": [{"id": ""}]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"BadGrid", `{"nodes": [], "options": {"grid": {"step_y": -1}}}`, http.StatusBadRequest, "INVALID_OPTIONS"},
		{"BadMode", `{"nodes": [], "options": {"mode": "radial"}}`, http.StatusBadRequest, "INVALID_OPTIONS"},
		{"TooLarge", `{"nodes": [` + strings.Repeat(`{"id": "n"},`, 1000) + `{"id": "z"}]}`, http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/layout", tt.payload)
			assert.Equal(t, tt.status, rec.Code)

			var e errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
			assert.Equal(t, tt.code, string(e.Code))
			assert.NotEmpty(t, e.Message)
		})
	}
}

func TestLayout_WorkspaceScopesCache(t *testing.T) {
	s := newTestServer(t)
	post := func(ws string) bool {
		req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(body))
		if ws != "" {
			req.Header.Set(WorkspaceHeader, ws)
		}
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode(t, rec).Cache.LayoutHit
	}

	assert.False(t, post("acme"))
	assert.True(t, post("acme"))
	assert.False(t, post("globex"))
	assert.False(t, post(""))
}

func TestGrid(t *testing.T) {
	s := newTestServer(t)
	payload := `{"nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}], "options": {"columns": 2, "grid": {"start_x": 0, "start_y": 0, "step_x": 10, "step_y": 20}}}`
	rec := do(t, s, http.MethodPost, "/v1/layout/grid", payload)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode(t, rec)
	assert.Equal(t, layout.Position{X: 0, Y: 0}, out.Canvas.Nodes[0].Position)
	assert.Equal(t, layout.Position{X: 10, Y: 0}, out.Canvas.Nodes[1].Position)
	assert.Equal(t, layout.Position{X: 0, Y: 20}, out.Canvas.Nodes[2].Position)
}

func TestRender_DOT(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/render?format=dot", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/vnd.graphviz")
	assert.Equal(t, "miss", rec.Header().Get("X-Render-Cache"))
	assert.Contains(t, rec.Body.String(), `"A" -> "B";`)

	rec = do(t, s, http.MethodPost, "/v1/render?format=dot", body)
	assert.Equal(t, "hit", rec.Header().Get("X-Layout-Cache"))
	assert.Equal(t, "hit", rec.Header().Get("X-Render-Cache"))
}

func TestRender_UnknownFormat(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/render?format=pdf", body)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version"`)
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")

	rec = do(t, s, http.MethodGet, "/v1/layout", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	generated, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), generated.Version())

	own := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, own)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, own, rec.Header().Get(RequestIDHeader))

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), config.Default().Server, layout.DefaultOptions(), logger)

	do(t, s, http.MethodPost, "/v1/layout", body)
	out := buf.String()
	assert.Contains(t, out, "route=/v1/layout")
	assert.Contains(t, out, "status=200")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
