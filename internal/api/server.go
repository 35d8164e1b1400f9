package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/lexirank/internal/config"
	"github.com/abhisek/lexirank/internal/scoring"
)

// maxBodyBytes caps the size of a submitted answer sheet.
const maxBodyBytes = 1 << 20

// Server is the HTTP API for level scoring.
type Server struct {
	config  config.ServerConfig
	router  *chi.Mux
	scoring *scoring.Service
	logger  *slog.Logger
	now     func() time.Time
}

// NewServer creates a new API server.
func NewServer(cfg config.ServerConfig, svc *scoring.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:  cfg,
		scoring: svc,
		logger:  logger,
		now:     time.Now,
	}
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
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ranks", s.handleListRanks)
		r.Get("/ranks/{rank}", s.handleGetRank)

		r.Post("/level", s.handleEstimate)

		r.Route("/results", func(r chi.Router) {
			r.Post("/", s.handleSubmitResult)
			r.Get("/{id}", s.handleGetResult)
		})

		r.Get("/students/{studentID}/results", s.handleStudentResults)
		r.Get("/students/{studentID}/results/latest", s.handleLatestResult)
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
