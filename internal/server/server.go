// Package server exposes the layout engine over HTTP for the dashboard:
// the raw snapshot, the selectable algorithms, and the computed render
// contract. The server is stateless; interaction state (selection, focus,
// filters) lives in the client.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mlorenzen/decklog/pkg/buildinfo"
	aerr "github.com/mlorenzen/decklog/pkg/errors"
	"github.com/mlorenzen/decklog/pkg/graph"
	"github.com/mlorenzen/decklog/pkg/layout"
)

// SnapshotFunc supplies the current graph snapshot. Production wires this to
// source.Loader.Load so the cache TTL governs refreshes; tests supply fixed
// snapshots.
type SnapshotFunc func(ctx context.Context) (*graph.Snapshot, error)

// Server is the decklog HTTP API.
type Server struct {
	snapshot SnapshotFunc
	opts     layout.Options
	logger   *charmlog.Logger
}

// New creates a server. A nil logger falls back to charmlog.Default().
func New(snapshot SnapshotFunc, opts layout.Options, logger *charmlog.Logger) *Server {
	if logger == nil {
		logger = charmlog.Default()
	}
	opts.Logger = logger
	return &Server{snapshot: snapshot, opts: opts, logger: logger}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/algorithms", s.handleAlgorithms)
		r.Get("/layout", s.handleLayout)
	})
	return r
}

// ListenAndServe runs the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
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

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"nodes": snap.Nodes,
		"edges": snap.Edges,
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, layout.Algorithms())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	algorithm := r.URL.Query().Get("algorithm")
	if algorithm == "" {
		algorithm = layout.AlgorithmForce
	}
	if !knownAlgorithm(algorithm) {
		s.writeError(w, aerr.New(aerr.ErrCodeInvalidAlgorithm, "unknown algorithm %q", algorithm))
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	result := layout.Compute(snap, algorithm, s.opts)
	writeJSON(w, http.StatusOK, Render(snap, result))
}

func knownAlgorithm(name string) bool {
	for _, a := range layout.Algorithms() {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP statuses and emits the
// code alongside the message so clients can branch without string matching.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := aerr.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case aerr.ErrCodeInvalidInput, aerr.ErrCodeInvalidAlgorithm, aerr.ErrCodeInvalidSnapshot:
		status = http.StatusBadRequest
	case aerr.ErrCodeNotFound, aerr.ErrCodeSnapshotNotFound, aerr.ErrCodeNodeNotFound:
		status = http.StatusNotFound
	case aerr.ErrCodeNetwork, aerr.ErrCodeTimeout:
		status = http.StatusBadGateway
	}
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": err.Error(),
		},
	})
}
