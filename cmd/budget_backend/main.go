package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	convadapter "github.com/SscSPs/budget_engine/internal/adapters/conversion"
	"github.com/SscSPs/budget_engine/internal/adapters/telemetry"
	portsrepo "github.com/SscSPs/budget_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/SscSPs/budget_engine/internal/core/services"
	"github.com/SscSPs/budget_engine/internal/handlers"
	"github.com/SscSPs/budget_engine/internal/middleware"
	"github.com/SscSPs/budget_engine/internal/platform/config"
	"github.com/SscSPs/budget_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/budget_engine/internal/utils"
	"github.com/SscSPs/budget_engine/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Budget Engine API
// @version 1.0
// @description Converts and aggregates multi-currency budget scenarios.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck,
		database.WithConnectTimeout(10*time.Second),
		database.WithMaxConns(cfg.DBMaxConns))
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	sink, closeSink := newTelemetrySink(cfg, posthogClient, logger)
	defer closeSink()

	client := newConversionClient(cfg, repos, logger)
	serviceContainer := services.NewServiceContainer(cfg, repos, client, sink, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
		corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
		r.Use(cors.New(corsConfig))
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter), middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.ConversionTimeout + 20*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
		cancel()
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("conversion_backend", cfg.ConversionBackend))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

// newConversionClient selects the conversion backend configured with CONVERSION_BACKEND.
func newConversionClient(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) portssvc.ConversionClient {
	switch cfg.ConversionBackend {
	case config.ConversionBackendHTTP:
		logger.Info("Using remote conversion service",
			slog.String("url", cfg.ConversionServiceURL),
			slog.Duration("timeout", cfg.ConversionTimeout))
		return convadapter.NewHTTPClient(cfg.ConversionServiceURL, cfg.ConversionTimeout)
	default:
		logger.Info("Using stored exchange rates for conversion")
		return convadapter.NewRateClient(repos.ExchangeRateRepo)
	}
}

// newTelemetrySink always logs failures, forwards them to PostHog when configured and
// publishes them to AMQP when TELEMETRY_AMQP_URL is set.
func newTelemetrySink(cfg *config.Config, posthogClient *utils.PosthogClientWrapper, logger *slog.Logger) (portssvc.TelemetrySink, func()) {
	sinks := []portssvc.TelemetrySink{telemetry.NewLogSink(logger)}
	if posthogClient.IsInitialized() {
		sinks = append(sinks, telemetry.NewPosthogSink(posthogClient, "budget-engine"))
	}

	closeSink := func() {}
	if cfg.TelemetryAMQPURL != "" {
		amqpSink, err := telemetry.DialAMQPSink(cfg.TelemetryAMQPURL, cfg.TelemetryAMQPQueue, logger)
		if err != nil {
			// telemetry is best effort; the engine keeps serving without the broker
			logger.Error("Failed to connect telemetry broker", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, amqpSink)
			closeSink = func() {
				if err := amqpSink.Close(); err != nil {
					logger.Warn("Failed to close telemetry broker", slog.String("error", err.Error()))
				}
			}
			logger.Info("Publishing conversion failures", slog.String("queue", cfg.TelemetryAMQPQueue))
		}
	}
	return telemetry.NewMultiSink(logger, sinks...), closeSink
}
