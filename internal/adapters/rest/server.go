package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recommendation-service/internal/core/domain"
	core_ports "recommendation-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

const maxBodyBytes = 10 << 10

// ServerConfig holds the HTTP settings of the router.
type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

// MetricsExposer observes requests and serves the scrape endpoint.
type MetricsExposer interface {
	HTTPObserver
	Handler() http.Handler
}

type Server struct {
	httpServer *http.Server
	logger     core_ports.LoggerPort
}

// NewRouter builds the chi router with every route of the service.
// metrics may be nil, in which case /metrics is not mounted.
func NewRouter(cfg ServerConfig, handlers *Handlers, auth *AuthMiddleware, db Pinger, metrics MetricsExposer, baseLogger core_ports.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger, metrics))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, fmt.Sprintf("Can't find %s on this server!", r.URL.RequestURI()))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path))
	})

	r.Get("/health", HealthHandler(db))
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.Limit(
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				WriteJSONError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later!")
			}),
		))
		r.Use(middleware.RequestSize(maxBodyBytes))

		r.Post("/users/signin", handlers.HandleSignIn)

		r.Get("/properties/{propertyID}/reviews", handlers.HandleGetPropertyReviews)

		r.Group(func(r chi.Router) {
			r.Use(auth.Protect)
			r.Use(auth.RestrictTo(domain.RoleTenant))

			r.Post("/recommendations", handlers.HandleGetRecommendations)
		})
	})

	return r
}

func NewServer(cfg ServerConfig, handler http.Handler, baseLogger core_ports.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// Start runs the HTTP server until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_ports.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
