package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/euclid-tools/densify/pkg/buildinfo"
	"github.com/euclid-tools/densify/pkg/densify"
	"github.com/euclid-tools/densify/pkg/errors"
	pkgio "github.com/euclid-tools/densify/pkg/io"
	"github.com/euclid-tools/densify/pkg/observability"
	"github.com/euclid-tools/densify/pkg/pipeline"
)

type densifyRequest struct {
	Segments       json.RawMessage `json:"segments"`
	Step           *float64        `json:"step"`
	Policy         string          `json:"policy"`
	SkipDegenerate bool            `json:"skip_degenerate"`
}

type densifyResponse struct {
	RunID    string          `json:"run_id"`
	Segments [][2][2]float64 `json:"segments"`
	Stats    densify.Stats   `json:"stats"`
	Cached   bool            `json:"cached"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleDensify(w http.ResponseWriter, r *http.Request) {
	var req densifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeErr(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Segments) == 0 {
		s.writeErr(w, r, errors.New(errors.ErrCodeInvalidGraph, "segments is required"))
		return
	}
	if req.Step == nil {
		s.writeErr(w, r, errors.New(errors.ErrCodeInvalidStep, "step is required"))
		return
	}
	// Options treats a zero step as unset, so reject it here.
	if err := pipeline.ValidateStep(*req.Step); err != nil {
		s.writeErr(w, r, err)
		return
	}

	g, err := pkgio.ReadJSON(bytes.NewReader(req.Segments))
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), g, pipeline.Options{
		Step:           *req.Step,
		Policy:         req.Policy,
		Workers:        s.cfg.Workers,
		SkipDegenerate: req.SkipDegenerate,
		MaxPoints:      s.cfg.MaxPoints,
		Formats:        []string{pipeline.FormatJSON},
	})
	if err != nil {
		s.writeErr(w, r, err)
		return
	}

	w.Header().Set("X-Run-ID", res.RunID)
	writeJSON(w, http.StatusOK, densifyResponse{
		RunID:    res.RunID,
		Segments: pkgio.Coordinates(res.Dense),
		Stats:    res.Stats.Stats,
		Cached:   res.CacheInfo.DensifyHit,
	})
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, errors.HTTPStatus(err), err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
