// Package server exposes the formatting pipeline over HTTP.
//
//	POST /v1/format   {"mode","text","separator","config":{...}}
//	GET  /healthz
//
// Errors are returned as {"code","message"} with the pkg/errors code.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/textfmt/pkg/buildinfo"
	"github.com/matzehuels/textfmt/pkg/config"
	"github.com/matzehuels/textfmt/pkg/errors"
	"github.com/matzehuels/textfmt/pkg/format"
	"github.com/matzehuels/textfmt/pkg/observability"
	"github.com/matzehuels/textfmt/pkg/pipeline"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds a request body: the text limit plus room for the
// JSON envelope and config.
const maxBodyBytes = errors.MaxTextSize + 64<<10

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	base   format.Config
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithBaseConfig sets the config that request configs are applied on top
// of. Defaults to format.DefaultConfig.
func WithBaseConfig(cfg format.Config) Option {
	return func(s *Server) { s.base = cfg }
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		runner: runner,
		logger: logger,
		base:   format.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/format", s.handleFormat)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

// FormatRequest is the body of POST /v1/format.
type FormatRequest struct {
	Mode      string          `json:"mode"`
	Text      string          `json:"text"`
	Separator string          `json:"separator,omitempty"`
	Refresh   bool            `json:"refresh,omitempty"`
	Config    *config.Profile `json:"config,omitempty"`
}

// FormatResponse is the body of a successful POST /v1/format.
type FormatResponse struct {
	Output     string             `json:"output"`
	SplitWords []format.SplitWord `json:"split_words"`
	Lines      int                `json:"lines"`
	Paragraphs int                `json:"paragraphs"`
	CacheHit   bool               `json:"cache_hit"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
	})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	cfg := s.base
	if req.Config != nil {
		var err error
		if cfg, err = req.Config.Apply(cfg); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Mode:      req.Mode,
		Text:      req.Text,
		Separator: req.Separator,
		Refresh:   req.Refresh,
		Config:    &cfg,
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	split := res.SplitWords
	if split == nil {
		split = []format.SplitWord{}
	}
	writeJSON(w, http.StatusOK, FormatResponse{
		Output:     res.Output,
		SplitWords: split,
		Lines:      res.Stats.Lines,
		Paragraphs: res.Stats.Paragraphs,
		CacheHit:   res.CacheHit,
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
		code = errors.ErrCodeInternal
		msg = "request canceled"
	default:
		s.logger.Error("request failed", "err", err, "request_id", w.Header().Get(RequestIDHeader))
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Middleware
// =============================================================================

// requestID echoes the incoming X-Request-ID or assigns a new uuid.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// logRequests logs each request through the server's logger and reports
// it to the HTTP hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, d)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d,
			"remote", r.RemoteAddr,
			"request_id", w.Header().Get(RequestIDHeader))
	})
}
