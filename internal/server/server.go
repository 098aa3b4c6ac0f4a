// Package server exposes the dashboard layout engine over HTTP.
//
// The API is deliberately small: layouts are read and written whole, as
// snapshots keyed by tab id. The drag/resize interaction loop runs in the
// client; the server validates, normalizes, persists, and fans committed
// layouts out to live subscribers.
//
// # Endpoints
//
//	GET    /healthz                   liveness probe
//	GET    /api/panels                registered panels with defaults
//	GET    /api/tabs                  stored tab ids
//	GET    /api/tabs/{tab}/layout     snapshot (registry defaults if absent)
//	PUT    /api/tabs/{tab}/layout     validate, normalize, persist, broadcast
//	DELETE /api/tabs/{tab}/layout     drop the stored snapshot
//	POST   /api/tabs/{tab}/compact    remove vertical gaps, persist, broadcast
//	GET    /api/tabs/{tab}/live       websocket feed of committed layouts
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/gridboard/gridboard/pkg/errors"
	"github.com/gridboard/gridboard/pkg/grid"
	"github.com/gridboard/gridboard/pkg/registry"
	"github.com/gridboard/gridboard/pkg/store"
)

// Config configures a Server.
type Config struct {
	// Dims is the server-side grid geometry used to clamp and normalize
	// incoming snapshots.
	Dims grid.Dims

	// Logger for request and error logging. Optional; nil uses log.Default().
	Logger *log.Logger
}

// Server handles the layout HTTP API.
type Server struct {
	reg   *registry.Registry
	store store.Store
	hub   *Hub
	dims  grid.Dims
	log   *log.Logger
}

// New creates a server over the given registry and store.
func New(reg *registry.Registry, st store.Store, cfg Config) *Server {
	l := cfg.Logger
	if l == nil {
		l = log.Default()
	}
	dims := cfg.Dims
	if !dims.Valid() {
		dims = grid.Dims{Cols: 12, CellWidth: 90, CellHeight: 90, Gap: 14}
	}
	return &Server{
		reg:   reg,
		store: st,
		hub:   NewHub(),
		dims:  dims,
		log:   l,
	}
}

// Hub returns the live-update hub. Run it alongside the HTTP listener.
func (s *Server) Hub() *Hub { return s.hub }

// Router builds the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/panels", s.handlePanels)
		r.Get("/tabs", s.handleTabs)
		r.Route("/tabs/{tab}", func(r chi.Router) {
			r.Use(s.validateTab)
			r.Get("/layout", s.handleGetLayout)
			r.Put("/layout", s.handlePutLayout)
			r.Delete("/layout", s.handleDeleteLayout)
			r.Post("/compact", s.handleCompact)
			r.Get("/live", s.handleLive)
		})
	})

	return r
}

// requestLogger assigns a request id and logs method, path, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request", "id", reqID, "method", r.Method, "path", r.URL.Path, "dur", time.Since(start).Round(time.Millisecond))
	})
}

// validateTab rejects tab ids that could smuggle path components into the
// persistence layer.
func (s *Server) validateTab(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := apperrors.ValidateTabID(chi.URLParam(r, "tab")); err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handlePanels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reg.Panels())
}

func (s *Server) handleTabs(w http.ResponseWriter, r *http.Request) {
	tabs, err := s.store.Tabs(r.Context())
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "list tabs"))
		return
	}
	if tabs == nil {
		tabs = []string{}
	}
	writeJSON(w, http.StatusOK, tabs)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")
	snap, err := s.store.Load(r.Context(), tab, s.defaults())
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "load tab %s", tab))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")

	var snap grid.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidSnapshot, err, "decode snapshot"))
		return
	}

	normalized, err := s.normalize(snap)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.store.Save(r.Context(), tab, normalized); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "save tab %s", tab))
		return
	}

	s.hub.Broadcast(tab, "layout", normalized)
	writeJSON(w, http.StatusOK, normalized)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")
	if err := s.store.Delete(r.Context(), tab); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete tab %s", tab))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompact(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")

	snap, err := s.store.Load(r.Context(), tab, s.defaults())
	if err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "load tab %s", tab))
		return
	}

	model := grid.NewModel(s.dims)
	if err := s.reg.Seed(model, snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	model.Compact()
	compacted := model.Snapshot()

	if err := s.store.Save(r.Context(), tab, compacted); err != nil {
		s.writeError(w, r, apperrors.Wrap(apperrors.ErrCodeStore, err, "save tab %s", tab))
		return
	}

	s.hub.Broadcast(tab, "compact", compacted)
	writeJSON(w, http.StatusOK, compacted)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")
	if err := s.hub.serveWS(w, r, tab); err != nil {
		s.log.Warn("websocket upgrade failed", "tab", tab, "err", err)
	}
}

// =============================================================================
// Helpers
// =============================================================================

// defaults returns the snapshot produced by registry defaults alone.
func (s *Server) defaults() grid.Snapshot {
	model := grid.NewModel(s.dims)
	if err := s.reg.Seed(model, nil); err != nil {
		s.log.Error("seed registry defaults", "err", err)
		return grid.Snapshot{}
	}
	return model.Snapshot()
}

// normalize runs an incoming snapshot through the model: entries failing
// validation or naming unknown panels are dropped, geometry is clamped, and
// panels missing from the snapshot get their registry defaults.
func (s *Server) normalize(snap grid.Snapshot) (grid.Snapshot, error) {
	model := grid.NewModel(s.dims)
	if err := s.reg.Seed(model, snap); err != nil {
		return nil, err
	}
	return model.Snapshot(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidSnapshot, apperrors.ErrCodeInvalidPanel, apperrors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeTabNotFound, apperrors.ErrCodePanelNotFound:
		status = http.StatusNotFound
	}

	s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	writeJSON(w, status, map[string]string{
		"error": apperrors.UserMessage(err),
		"code":  string(apperrors.GetCode(err)),
	})
}

// ListenAndServe runs the HTTP server and hub until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	go s.hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
