package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jhaabhiiishek/mindmap-assignment/pkg/cache"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/errors"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/graph"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/hierarchy"
	mapio "github.com/jhaabhiiishek/mindmap-assignment/pkg/io"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/layout"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/observability"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/render"
	"github.com/jhaabhiiishek/mindmap-assignment/pkg/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mapSummary is the list representation of a map record.
type mapSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	NodeCount  int       `json:"node_count"`
	LayoutMode string    `json:"layout_mode,omitempty"`
}

func (s *Server) handleListMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeStorage, err, "list maps"))
		return
	}

	out := make([]mapSummary, len(maps))
	for i, m := range maps {
		out[i] = mapSummary{
			ID:         m.ID,
			Name:       m.Name,
			CreatedAt:  m.CreatedAt,
			NodeCount:  hierarchy.Count(m.Root),
			LayoutMode: m.LayoutMode,
		}
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string          `json:"name"`
		Root *hierarchy.Node `json:"hierarchical_data,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if req.Name == "" {
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "map name is required"))
		return
	}

	root := req.Root
	if root == nil {
		root = &hierarchy.Node{ID: uuid.NewString(), Label: "Central Idea", Kind: hierarchy.KindRoot}
	} else if err := validateTree(root); err != nil {
		s.respondError(w, err)
		return
	}

	m := store.NewMap(req.Name, root)
	if err := s.store.Save(r.Context(), m); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeStorage, err, "save map"))
		return
	}
	s.respondJSON(w, http.StatusCreated, m)
}

func (s *Server) handleGetMap(w http.ResponseWriter, r *http.Request) {
	m, err := s.loadMap(r.Context(), chi.URLParam(r, "mapID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleRenameMap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	if req.Name == "" {
		s.respondError(w, errors.New(errors.ErrCodeInvalidInput, "map name is required"))
		return
	}

	m, err := s.loadMap(r.Context(), chi.URLParam(r, "mapID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	m.Name = req.Name
	if err := s.store.Save(r.Context(), m); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeStorage, err, "save map"))
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

func (s *Server) handleDeleteMap(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "mapID")

	maps, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeStorage, err, "list maps"))
		return
	}
	if len(maps) <= 1 {
		s.respondError(w, errors.New(errors.ErrCodeLastMap, "cannot delete the only remaining map"))
		return
	}

	if err := s.store.Delete(r.Context(), id); err == store.ErrNotFound {
		s.respondError(w, errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", id))
		return
	} else if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeStorage, err, "delete map"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleView returns the laid-out visible view of a map. The optional
// "mode" query parameter previews a different layout without persisting
// it. Responses are cached by content hash.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	m, err := s.loadMap(r.Context(), chi.URLParam(r, "mapID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	mode, err := s.viewMode(m, r.URL.Query().Get("mode"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	body, err := s.layoutView(r.Context(), m, mode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleSetLayout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}
	mode, err := layout.ParseMode(req.Mode)
	if err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeInvalidMode, err, "set layout mode"))
		return
	}

	m, err := s.loadMap(r.Context(), chi.URLParam(r, "mapID"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	m.LayoutMode = string(mode)
	if err := s.store.Save(r.Context(), m); err != nil {
		s.respondError(w, errors.Wrap(errors.ErrCodeStorage, err, "save map"))
		return
	}

	body, err := s.layoutView(r.Context(), m, mode)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// handleExport serves the map in an interchange format: "json" (the
// editable tree), "dot", or "svg". DOT and SVG artifacts are cached.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	m, err := s.loadMap(r.Context(), chi.URLParam(r, "mapID"))
	if err != nil {
		s.respondError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		if err := mapio.WriteJSON(m.Root, w); err != nil {
			s.logger.Error("export json", "map", m.ID, "err", err)
		}
	case "dot", "svg":
		body, err := s.renderArtifact(r.Context(), m, format)
		if err != nil {
			s.respondError(w, err)
			return
		}
		if format == "svg" {
			w.Header().Set("Content-Type", "image/svg+xml")
		} else {
			w.Header().Set("Content-Type", "text/vnd.graphviz")
		}
		w.Write(body)
	default:
		s.respondError(w, errors.New(errors.ErrCodeUnsupported, "unknown export format %q", format))
	}
}

// =============================================================================
// Shared pieces
// =============================================================================

func (s *Server) loadMap(ctx context.Context, id string) (*store.Map, error) {
	m, err := s.store.Get(ctx, id)
	if err == store.ErrNotFound {
		return nil, errors.New(errors.ErrCodeMapNotFound, "map %q does not exist", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load map %s", id)
	}
	return m, nil
}

func (s *Server) viewMode(m *store.Map, param string) (layout.Mode, error) {
	raw := param
	if raw == "" {
		raw = m.LayoutMode
	}
	if raw == "" {
		return layout.DefaultMode, nil
	}
	mode, err := layout.ParseMode(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidMode, err, "select layout mode")
	}
	return mode, nil
}

// layoutView flattens, filters, and lays out a map record, serving and
// populating the layout cache.
func (s *Server) layoutView(ctx context.Context, m *store.Map, mode layout.Mode) ([]byte, error) {
	nodes, edges := graph.Flatten(m.Root, 0, "")
	nodes, edges = graph.FilterCollapsed(nodes, edges, m.CollapsedSet())

	flat, err := graph.MarshalView(nodes, edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal view")
	}
	key := s.keyer.LayoutKey(cache.Hash(flat), layoutKeyOpts(mode, s.layout))
	if body, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "layout")
		return body, nil
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, string(mode), len(nodes))
	nodes = layout.New(mode, s.layout).Layout(nodes, edges)
	observability.Engine().OnLayoutComplete(ctx, string(mode), time.Since(start), nil)

	body, err := graph.MarshalView(nodes, edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal view")
	}
	if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
		s.logger.Warn("cache layout", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "layout", len(body))
	}
	return body, nil
}

// renderArtifact produces a DOT or SVG artifact for a map record, serving
// and populating the render cache.
func (s *Server) renderArtifact(ctx context.Context, m *store.Map, format string) ([]byte, error) {
	mode, err := s.viewMode(m, "")
	if err != nil {
		return nil, err
	}

	nodes, edges := graph.Flatten(m.Root, 0, "")
	nodes, edges = graph.FilterCollapsed(nodes, edges, m.CollapsedSet())
	nodes = layout.New(mode, s.layout).Layout(nodes, edges)

	laid, err := graph.MarshalView(nodes, edges)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal view")
	}
	key := s.keyer.RenderKey(cache.Hash(laid), cache.RenderKeyOpts{Format: format})
	if body, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "render")
		return body, nil
	}
	observability.Cache().OnCacheMiss(ctx, "render")

	start := time.Now()
	observability.Engine().OnRenderStart(ctx, format)
	dot := render.ToDOT(nodes, edges, render.Options{Pinned: true})
	var body []byte
	if format == "dot" {
		body = []byte(dot)
	} else {
		body, err = render.RenderSVG(dot)
	}
	observability.Engine().OnRenderComplete(ctx, format, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	if err := s.cache.Set(ctx, key, body, s.ttl); err != nil {
		s.logger.Warn("cache artifact", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "render", len(body))
	}
	return body, nil
}

// layoutKeyOpts maps the full layout configuration into the cache key, so
// configurations differing in any constant never share a cached result.
func layoutKeyOpts(mode layout.Mode, cfg layout.Config) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:         string(mode),
		HSpacing:     cfg.HSpacing,
		VSpacing:     cfg.VSpacing,
		LinkDistance: cfg.LinkDistance,
		Charge:       cfg.Charge,
		Iterations:   cfg.Iterations,
		RadialStep:   cfg.RadialStep,
	}
}

// validateTree round-trips the submitted tree through the import
// validator, so API-created maps obey the same rules as file imports.
func validateTree(root *hierarchy.Node) error {
	var buf bytes.Buffer
	if err := mapio.WriteJSON(root, &buf); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	if _, err := mapio.ReadJSON(&buf); err != nil {
		return err
	}
	return nil
}
