package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	breaker_adapter "recommendation-service/internal/adapters/breaker"
	token_adapter "recommendation-service/internal/adapters/jwt"
	logger_adapter "recommendation-service/internal/adapters/logger"
	metrics_adapter "recommendation-service/internal/adapters/metrics"
	postgres_adapter "recommendation-service/internal/adapters/postgres"
	"recommendation-service/internal/adapters/postgres/migrations"
	rabbitmq_adapter "recommendation-service/internal/adapters/rabbitmq"
	"recommendation-service/internal/adapters/rest"
	"recommendation-service/internal/configs"
	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
	"recommendation-service/internal/core/usecase"
	fluentlogger "recommendation-service/pkg/fluent_logger"
	"recommendation-service/pkg/postgres"
	"recommendation-service/pkg/rabbitmq/rabbitmq_common"
	"recommendation-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gobreaker "github.com/sony/gobreaker/v2"
)

const eventsPublishTimeout = 2 * time.Second

// App is the recommendation service process.
type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	rabbitConn *rabbitmq_common.ConnectionManager
	publisher  *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp(envPath string) (*App, error) {
	appConfig, err := configs.LoadConfig(envPath)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := newBaseLogger(appConfig)
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}
	// releases whatever was opened before a failure
	fail := func(msg string, err error) (*App, error) {
		appLogger.Error(msg, err, nil)
		application.close()
		return nil, fmt.Errorf("%s: %w", msg, err)
	}

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL:     appConfig.Database.URL,
		MaxConns:        appConfig.Database.MaxConns,
		MaxConnLifetime: appConfig.Database.MaxConnLifetime,
		ConnectTimeout:  appConfig.Database.ConnectTimeout,
	})
	if err != nil {
		return fail("failed to connect to PostgreSQL", err)
	}
	application.dbPool = dbPool
	appLogger.Debug("Successfully connected to PostgreSQL pool!", nil)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recommendationMetrics := metrics_adapter.NewRecommendationMetrics(registry)

	candidateStore, err := postgres_adapter.NewCandidateStoreAdapter(dbPool)
	if err != nil {
		return fail("failed to create candidate store", err)
	}
	guardedStore, err := breaker_adapter.NewCandidateStoreBreaker(candidateStore, breaker_adapter.Config{
		Name:        "candidate-store",
		MaxFailures: appConfig.StoreBreaker.MaxFailures,
		OpenTimeout: appConfig.StoreBreaker.OpenTimeout,
		OnStateChange: func(name string, from, to gobreaker.State) {
			recommendationMetrics.BreakerStateChanged(name, from, to)
		},
	}, baseLogger)
	if err != nil {
		return fail("failed to create candidate store breaker", err)
	}

	recommendationRepo, err := postgres_adapter.NewRecommendationRepository(dbPool)
	if err != nil {
		return fail("failed to create recommendation repository", err)
	}
	userRepo, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		return fail("failed to create user repository", err)
	}
	reviewRepo, err := postgres_adapter.NewReviewRepository(dbPool)
	if err != nil {
		return fail("failed to create review repository", err)
	}

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret, appConfig.Auth.JWTIssuer)
	if err != nil {
		return fail("failed to create token service", err)
	}

	var events port.RecommendationEventsPort
	if appConfig.RabbitMQ.Enabled {
		eventsAdapter, err := application.connectEvents(baseLogger)
		if err != nil {
			return fail("failed to set up recommendation events", err)
		}
		events = eventsAdapter
	}
	appLogger.Debug("All outgoing adapters initialized.", port.Fields{"events_enabled": events != nil})

	scorer, err := usecase.NewScoringEngine(domain.DefaultScoreWeights)
	if err != nil {
		return fail("failed to create scoring engine", err)
	}

	getRecommendationsUC := usecase.NewGetRecommendationsUseCase(
		usecase.NewCandidateRetriever(guardedStore),
		scorer,
		recommendationRepo,
		events,
		recommendationMetrics,
		usecase.GetRecommendationsConfig{
			Timeout:            appConfig.Recommendation.Timeout,
			PersistTimeout:     appConfig.Recommendation.PersistTimeout,
			PersistConcurrency: appConfig.Recommendation.PersistConcurrency,
		},
	)
	loginUC := usecase.NewLoginUserUseCase(userRepo, tokenService, appConfig.Auth.JWTTTL)
	authenticateUC := usecase.NewAuthenticateUserUseCase(tokenService, userRepo)
	reviewsUC := usecase.NewGetPropertyReviewsUseCase(reviewRepo)
	appLogger.Debug("All use cases initialized.", nil)

	serverCfg := rest.ServerConfig{
		Port:               appConfig.Rest.Port,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		RateLimitRequests:  appConfig.Rest.RateLimitRequests,
		RateLimitWindow:    appConfig.Rest.RateLimitWindow,
	}
	handlers := rest.NewHandlers(getRecommendationsUC, loginUC, reviewsUC, rest.CookieConfig{
		TTL:    appConfig.Auth.CookieTTL,
		Secure: appConfig.Auth.CookieSecure,
	})
	router := rest.NewRouter(serverCfg, handlers, rest.NewAuthMiddleware(authenticateUC), dbPool, recommendationMetrics, baseLogger)
	application.apiServer = rest.NewServer(serverCfg, router, baseLogger)
	appLogger.Debug("REST API server configured.", nil)

	return application, nil
}

func (a *App) connectEvents(baseLogger port.LoggerPort) (*rabbitmq_adapter.RecommendationEventsAdapter, error) {
	pkgLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, pkgLogger)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	a.rabbitConn = connManager

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             a.config.RabbitMQ.Exchange,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   pkgLogger,
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("create publisher: %w", err)
	}
	a.publisher = publisher

	return rabbitmq_adapter.NewRecommendationEventsAdapter(publisher, a.config.RabbitMQ.RoutingKey, eventsPublishTimeout)
}

// Run serves HTTP until SIGINT/SIGTERM or a server failure, then shuts down.
func (a *App) Run() error {
	defer a.close()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Rest.ShutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

// close releases resources in reverse order of creation. The fluent client goes last
// so shutdown messages still reach it.
func (a *App) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.rabbitConn != nil {
		if err := a.rabbitConn.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Debug("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

// Migrate applies the embedded schema migrations and returns the versions it applied.
func Migrate(ctx context.Context, envPath string) ([]string, error) {
	appConfig, err := configs.LoadConfig(envPath)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := newBaseLogger(appConfig)
	if err != nil {
		return nil, err
	}
	if fluentClient != nil {
		defer fluentClient.Close()
	}
	logger := baseLogger.WithFields(port.Fields{"component": "migrate"})
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	dbPool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL:    appConfig.Database.URL,
		ConnectTimeout: appConfig.Database.ConnectTimeout,
	})
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbPool.Close()

	all, err := postgres_adapter.LoadMigrations(migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	migrator, err := postgres_adapter.NewMigrator(dbPool, all)
	if err != nil {
		return nil, err
	}

	applied, err := migrator.Up(ctx)
	if err != nil {
		logger.Error("Migration failed", err, port.Fields{"applied": applied})
		return applied, err
	}
	logger.Info("Migrations finished", port.Fields{"applied": applied, "known": len(all)})
	return applied, nil
}

// newBaseLogger builds the stdout logger and, when enabled, the Fluent Bit one.
func newBaseLogger(cfg *configs.AppConfig) (port.LoggerPort, *fluent.Fluent, error) {
	activeLoggers := []port.LoggerPort{
		logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
			Level:    logger_adapter.ParseLevel(cfg.StdoutLogger.Level),
			IsJSON:   cfg.StdoutLogger.IsJSON,
			UseColor: !cfg.StdoutLogger.IsJSON,
		}),
	}
	stdoutLogger := activeLoggers[0]

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(cfg.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			return nil, nil, fmt.Errorf("failed to create fluentbit adapter: %w", err)
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Debug("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers),
		"fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}
