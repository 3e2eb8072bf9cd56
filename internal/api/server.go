// Package api serves the quiz extraction endpoint and the in-memory study
// session API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/abhisek/quizify/internal/quizgen"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options tunes request handling.
type Options struct {
	// GenerationTimeout bounds one extraction. Zero means no limit beyond
	// the provider's own timeout.
	GenerationTimeout time.Duration

	// MaxTextBytes is checked before an asynchronous session extraction
	// is started.
	MaxTextBytes int

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64
}

// DefaultOptions returns the options used by the serve command.
func DefaultOptions() Options {
	return Options{
		GenerationTimeout: 2 * time.Minute,
		MaxTextBytes:      quizgen.DefaultMaxTextBytes,
		MaxBodyBytes:      1 << 20,
	}
}

// Server is the HTTP API server for quizify.
type Server struct {
	router   chi.Router
	gen      quizgen.Generator
	sessions *Registry
	log      *slog.Logger
	opts     Options
}

// NewServer creates and configures the HTTP server.
func NewServer(gen quizgen.Generator, log *slog.Logger, opts Options) *Server {
	s := &Server{
		gen:      gen,
		sessions: NewRegistry(),
		log:      log,
		opts:     opts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the session registry.
func (s *Server) Sessions() *Registry {
	return s.sessions
}

// Close cancels every in-flight session extraction.
func (s *Server) Close() {
	s.sessions.Close()
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(BodyLimit(s.opts.MaxBodyBytes))

		r.Post("/quiz", s.handleQuiz)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/extract", s.handleSessionExtract)
			r.Post("/events", s.handleSessionEvent)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
