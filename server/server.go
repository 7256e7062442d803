// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/poiesic/leveler/core"
)

const (
	// ServiceName is reported by the health endpoint.
	ServiceName = "ai-orchestration"

	// DefaultMaxBodyBytes caps the size of a generate request body.
	DefaultMaxBodyBytes int64 = 1 << 20

	shutdownTimeout = 10 * time.Second
)

// Generator produces a leveling result for a validated query.
type Generator interface {
	Generate(ctx context.Context, query *core.Query) (*core.Result, error)
}

// Server serves ladder generation over HTTP.
type Server struct {
	generator      Generator
	logger         *slog.Logger
	allowedOrigins []string
	maxBodyBytes   int64
	handler        http.Handler
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets the logger for the server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "server")
		return nil
	}
}

// WithAllowedOrigins sets the CORS origin allow-list. Defaults to "*".
// Credentialed requests are allowed only for an explicit list without "*".
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
		return nil
	}
}

// WithMaxBodyBytes caps the request body size for POST /generate.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) error {
		if n <= 0 {
			return fmt.Errorf("max body bytes must be positive, got %d", n)
		}
		s.maxBodyBytes = n
		return nil
	}
}

// NewServer creates a server around the given generator.
func NewServer(generator Generator, opts ...Option) (*Server, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	s := &Server{
		generator:      generator,
		logger:         slog.Default().With("component", "server"),
		allowedOrigins: []string{"*"},
		maxBodyBytes:   DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !slices.Contains(s.allowedOrigins, "*"),
	}))

	r.Get("/health", s.handleHealth)
	r.Post("/generate", s.handleGenerate)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": ServiceName})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var query core.Query
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&query); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := core.ValidateQuery(&query); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	result, err := s.generator.Generate(r.Context(), &query)
	if err != nil {
		s.logger.Error("generation failed",
			"request_id", middleware.GetReqID(r.Context()),
			"err", err)
		s.writeError(w, http.StatusInternalServerError, errors.New("generation failed"))
		return
	}

	s.logger.Debug("generated ladder",
		"request_id", middleware.GetReqID(r.Context()),
		"levels", len(result.Levels),
		"peers", len(result.Provenance),
		"duration", time.Since(start))
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", "err", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
