// Package demo serves an in-memory tutoring backend with the endpoints the
// dashboards call. It backs the demo command and end-to-end tests.
package demo

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// smartQuizSize caps the number of bank questions in an adaptive quiz.
const smartQuizSize = 5

// Server is the demo HTTP backend.
type Server struct {
	router  *chi.Mux
	data    *store
	logger  *slog.Logger
	shuffle func(n int, swap func(i, j int))
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.data.now = now
	}
}

// WithShuffle replaces the random order of adaptive quizzes.
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(s *Server) {
		s.shuffle = fn
	}
}

// NewServer creates a server with freshly seeded data.
func NewServer(opts ...Option) *Server {
	s := &Server{
		data:    newStore(time.Now),
		logger:  slog.New(slog.DiscardHandler),
		shuffle: rand.Shuffle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRouter()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/student", func(r chi.Router) {
		r.Get("/progress", s.handleProgress)
		r.Get("/learning-path", s.handleLearningPath)
		r.Get("/manual-quizzes", s.handleFixedSets)
		r.Post("/quiz/generate", s.handleGenerate)
		r.Post("/quiz/submit", s.handleSubmit)
		r.Get("/lessons", s.handleLessons)
		r.Get("/assignments", s.handleAssignments)
		r.Post("/assignments/submit", s.handleSubmitAssignment)
		r.Post("/mentor/message", s.handleMessageMentor)
		r.Post("/ai-mentor", s.handleAIMentor)
	})

	r.Route("/api/mentor", func(r chi.Router) {
		r.Get("/students", s.handleStudents)
		r.Get("/lessons", s.handleCoachLessons)
		r.Post("/lessons", s.handleCreateLesson)
		r.Get("/assignments", s.handleCoachAssignments)
		r.Post("/assignments", s.handleCreateAssignment)
		r.Get("/assignments/{id}/submissions", s.handleSubmissions)
		r.Post("/submissions/feedback", s.handleFeedback)
		r.Get("/messages", s.handleMessages)
		r.Post("/messages", s.handleAnswerMessage)
		r.Get("/quizzes", s.handleCoachQuizzes)
		r.Post("/quizzes", s.handleCreateQuiz)
		r.Get("/quizzes/{id}/questions", s.handleQuizQuestions)
		r.Post("/quizzes/{id}/questions", s.handleAddQuizQuestion)
	})

	s.router = r
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) respondStatus(w http.ResponseWriter, status string) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
