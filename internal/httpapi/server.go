// Package httpapi serves the topic index, mappings, coverage report and
// study plan as a JSON HTTP API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/a2zdsa/atlas/internal/logger"
	"github.com/a2zdsa/atlas/internal/usecase"
)

type Server struct {
	router chi.Router
	atlas  *usecase.Atlas
	log    *logger.Logger
}

func NewServer(a *usecase.Atlas, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	srv := &Server{
		router: chi.NewRouter(),
		atlas:  a,
		log:    log.With("component", "http"),
	}
	srv.routes()
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("http server shutting down")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() {
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/topics", s.handleTopics)
		r.Get("/topics/{id}", s.handleTopic)
		r.Get("/mappings", s.handleMappings)
		r.Get("/mappings/{id}", s.handleMapping)
		r.Get("/coverage", s.handleCoverage)
		r.Get("/stats", s.handleStats)
		r.Get("/study-plan", s.handleStudyPlan)
		r.Get("/study-plan/today", s.handleStudyPlanToday)
		r.Post("/rebuild", s.handleRebuild)
		r.Get("/search", s.handleSearch)
		r.Get("/progress", s.handleProgress)
		r.Post("/progress/{taskID}", s.handleCompleteTask)
		r.Delete("/progress/{taskID}", s.handleReopenTask)
		r.Get("/history", s.handleHistory)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "status", status, "error", err)
	} else {
		s.log.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
