// Package server exposes the mindmap engine as a JSON HTTP API.
//
// The API is stateless: every request loads the target map record from
// the store, operates on it, and saves it back. Nothing controller-like
// is shared between requests, so the handlers are safe under concurrent
// load as long as the store backend is.
//
// Layout and render results are cached by content hash, so repeated view
// and export requests for an unchanged map skip recomputation.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/cache"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/store"
)

// Server routes HTTP requests to the engine.
type Server struct {
	logger *log.Logger
	store  store.Store
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	layout layout.Config
	router chi.Router
}

// New assembles a server over the given store. A nil cache disables
// caching, a nil logger falls back to the default logger.
func New(st store.Store, c cache.Cache, logger *log.Logger, cfg layout.Config, ttl time.Duration) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}

	s := &Server{
		logger: logger,
		store:  st,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		ttl:    ttl,
		layout: cfg,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/maps", func(r chi.Router) {
		r.Get("/", s.handleListMaps)
		r.Post("/", s.handleCreateMap)
		r.Route("/{mapID}", func(r chi.Router) {
			r.Get("/", s.handleGetMap)
			r.Patch("/", s.handleRenameMap)
			r.Delete("/", s.handleDeleteMap)
			r.Get("/view", s.handleView)
			r.Post("/layout", s.handleSetLayout)
			r.Get("/export", s.handleExport)
		})
	})
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving mindmap API", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// respondJSON writes v as a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// respondError maps an engine error to an HTTP status and JSON body.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.respondJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidMode, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeNodeNotFound, errors.ErrCodeMapNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRootProtected, errors.ErrCodeNoSelection, errors.ErrCodeNoChildren, errors.ErrCodeLastMap:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
