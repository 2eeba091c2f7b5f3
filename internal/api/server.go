package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/terra-clan/extension-portal/internal/config"
	"github.com/terra-clan/extension-portal/internal/enrollment"
	"github.com/terra-clan/extension-portal/internal/health"
	"github.com/terra-clan/extension-portal/internal/metrics"
	"github.com/terra-clan/extension-portal/internal/portal"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	portal         *portal.Service
	enrollments    *enrollment.Service
	registry       *health.Registry
	upgrader       *websocket.Upgrader
	defaultStudent string
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	portalCfg config.PortalConfig,
	svc *portal.Service,
	enrollments *enrollment.Service,
	registry *health.Registry,
) *Server {
	s := &Server{
		config:         cfg,
		portal:         svc,
		enrollments:    enrollments,
		registry:       registry,
		defaultStudent: portalCfg.StudentID,
	}
	s.upgrader = s.newUpgrader()
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", StudentHeader},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Operational endpoints (outside versioned API)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.viewerMiddleware)

		// Long-lived, so kept out of the request timeout
		r.Get("/live", s.handleLive)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.config.RequestTimeout))

			r.Get("/stats", s.handleStats)
			r.Get("/filters", s.handleFilters)
			r.Get("/navigation", s.handleNavigation)

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", s.handleListProjects)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetProject)
					r.Get("/certificate", s.handleGetProjectCertificate)
					r.Get("/enrollment-form", s.handleEnrollmentForm)
					r.Post("/enrollments", s.handleEnroll)
				})
			})

			// Viewer-scoped listings
			r.Get("/enrollments", s.handleListEnrollments)
			r.Get("/enrollments/history", s.handleHistory)
			r.Get("/my-projects", s.handleMyProjects)
			r.Get("/certificates", s.handleListCertificates)
			r.Get("/certificates/summary", s.handleCertificateSummary)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog and records request metrics
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.RequestTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", elapsed.Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"student_id", r.Header.Get(StudentHeader),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
