package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rpggio/stratdesk/internal/mcp"
	"github.com/rpggio/stratdesk/internal/metrics"
)

// Config wires the HTTP surface.
type Config struct {
	Services mcp.Services
	// MCP serves the streamable MCP endpoint. Nil leaves /mcp unmounted.
	MCP            http.Handler
	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	svc    mcp.Services
	logger *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(SessionMiddleware)
	r.Use(requestLogger(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	}))

	srv := &Server{svc: cfg.Services, logger: cfg.Logger}

	r.Get("/healthz", srv.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if srv.svc.Settings != nil {
			r.Use(srv.maintenanceGuard)
		}
		srv.workspaceRoutes(r)
		r.Route("/admin", srv.adminRoutes)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requestLogger logs each request at debug level and counts it by route pattern.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.Global().HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			sessionID, _ := SessionIDFromContext(r.Context())
			logger.Debug("http request",
				"session_id", sessionID,
				"method", r.Method,
				"route", route,
				"status", status,
				"elapsed", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// maintenanceGuard rejects writes while maintenance mode is on. Reads and settings
// updates still go through.
func (s *Server) maintenanceGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodOptions || r.URL.Path == "/api/v1/admin/settings" {
			next.ServeHTTP(w, r)
			return
		}
		current, err := s.svc.Settings.Get(r.Context())
		if err != nil {
			s.logger.Warn("cannot read maintenance flag", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if current.MaintenanceMode {
			s.respondError(w, mcp.ErrMaintenance)
			return
		}
		next.ServeHTTP(w, r)
	})
}
