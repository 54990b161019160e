// Package api exposes practice sessions over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/sqlchallenge/internal/hint"
	"github.com/abhisek/sqlchallenge/internal/logging"
)

// Server is the HTTP API server.
type Server struct {
	router   *chi.Mux
	sessions *Sessions
	hints    *hint.Service
}

// NewServer creates a server over sessions. hints may be nil or disabled;
// the hint route then answers 503.
func NewServer(sessions *Sessions, hints *hint.Service) *Server {
	s := &Server{sessions: sessions, hints: hints}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/topics", s.handleListTopics)
		r.Get("/topics/{topic}/schema", s.handleGetSchema)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Post("/challenge", s.handleNextChallenge)
				r.Post("/run", s.handleRun)
				r.Post("/submit", s.handleSubmit)
				r.Post("/hint", s.handleHint)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs each request and carries the request ID into the
// context logger.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		reqID := middleware.GetReqID(r.Context())
		r = r.WithContext(logging.WithRequestID(r.Context(), reqID))

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
