package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/flowlayout/pkg/buildinfo"
	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/canvas"
	"github.com/matzehuels/flowlayout/pkg/errors"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
	"github.com/matzehuels/flowlayout/pkg/render"
)

// layoutRequest is a canvas document with optional pipeline options:
//
//	{"nodes": [...], "edges": [...], "options": {"grid": {"step_y": 180}}}
type layoutRequest struct {
	canvas.Canvas
	Options pipeline.Options `json:"options"`
}

// WorkspaceHeader names the workspace a request belongs to. Requests with
// different workspaces never share cache entries.
const WorkspaceHeader = "X-Workspace-ID"

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	res, err := s.runnerFor(r).Layout(r.Context(), &req.Canvas, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	res, err := s.runnerFor(r).Grid(r.Context(), &req.Canvas, req.Options.Columns, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRender lays out the canvas and returns the preview itself. The
// format comes from ?format= or options.format, svg by default.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	if f := r.URL.Query().Get("format"); f != "" {
		req.Options.Format = f
	}
	res, data, err := s.runnerFor(r).Execute(r.Context(), &req.Canvas, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Options.Format])
	if req.Options.Format == "" {
		w.Header().Set("Content-Type", contentTypes[render.FormatSVG])
	}
	w.Header().Set("X-Layout-Cache", hitOrMiss(res.CacheInfo.LayoutHit))
	w.Header().Set("X-Render-Cache", hitOrMiss(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

var contentTypes = map[string]string{
	render.FormatSVG: "image/svg+xml",
	render.FormatPNG: "image/png",
	render.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

func hitOrMiss(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeErrorCode(w, http.StatusNotFound, errors.ErrCodeNotFound, "no route for "+r.Method+" "+r.URL.Path)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorCode(w, http.StatusMethodNotAllowed, errors.ErrCodeUnsupported, r.Method+" not allowed on "+r.URL.Path)
}

// runnerFor returns the server runner, with cache keys scoped to the
// request's workspace when it names one.
func (s *Server) runnerFor(r *http.Request) *pipeline.Runner {
	ws := r.Header.Get(WorkspaceHeader)
	if ws == "" {
		return s.runner
	}
	scoped := *s.runner
	scoped.Keyer = cache.NewScopedKeyer(s.runner.Keyer, "ws:"+ws+":")
	return &scoped
}

// readRequest decodes the body on top of the server's default grid, so a
// request may override single grid fields.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (*layoutRequest, bool) {
	grid := s.grid
	req := &layoutRequest{Options: pipeline.Options{Grid: &grid}}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeErrorCode(w, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput, "request body too large")
			return nil, false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
		return nil, false
	}
	req.Options.Logger = s.logger.With("id", RequestIDFromContext(r.Context()))
	return req, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(code)
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
	}
	writeErrorCode(w, status, code, errors.UserMessage(err))
}

func writeErrorCode(w http.ResponseWriter, status int, code errors.Code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
