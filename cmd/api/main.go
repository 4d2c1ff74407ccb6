// Package main provides the entrypoint for the ClimaVista API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/airquality"
	aqprovider "github.com/climavista/climavista/internal/airquality/openmeteo"
	"github.com/climavista/climavista/internal/alert"
	"github.com/climavista/climavista/internal/api"
	"github.com/climavista/climavista/internal/api/handler"
	"github.com/climavista/climavista/internal/api/middleware"
	"github.com/climavista/climavista/internal/auth"
	"github.com/climavista/climavista/internal/database"
	"github.com/climavista/climavista/internal/historical"
	archiveprovider "github.com/climavista/climavista/internal/historical/openmeteo"
	"github.com/climavista/climavista/internal/kv"
	"github.com/climavista/climavista/internal/telemetry"
	"github.com/climavista/climavista/internal/user"
	"github.com/climavista/climavista/internal/user/mockapi"
	"github.com/climavista/climavista/internal/weather"
	"github.com/climavista/climavista/internal/weather/openmeteo"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "climavista-api"

	// Local development reads configuration from a .env file; missing files
	// are fine in deployed environments.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting ClimaVista API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Pick the key-value store: Postgres when configured, in-memory otherwise.
	readiness := map[string]handler.ReadinessCheck{}
	var store kv.Store = kv.NewInMemoryStore()
	if os.Getenv("DB_HOST") != "" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		store = kv.NewPostgresStore(pool)
		readiness["database"] = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(pingCtx)
		}
	} else {
		log.Warn().Msg("DB_HOST not set - using in-memory store, data will not survive restarts")
	}

	// Initialize JWT session service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	sessions := auth.NewJWTService(auth.JWTConfig{
		SigningKey: []byte(jwtSigningKey),
		Issuer:     "https://api.climavista.cr",
		Audience:   "climavista-api",
	})

	// Initialize user directory and service
	directoryBaseURL := os.Getenv("USER_DIRECTORY_URL")
	if directoryBaseURL == "" {
		log.Warn().Msg("USER_DIRECTORY_URL not set - auth endpoints will fail")
	}
	userService := user.NewService(user.ServiceConfig{
		Directory: mockapi.NewClient(mockapi.ClientConfig{BaseURL: directoryBaseURL}),
		Logger:    log,
	})
	log.Info().Msg("user service initialized")

	// Initialize weather service
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: openmeteo.NewClient(openmeteo.ClientConfig{
			BaseURL: os.Getenv("OPEN_METEO_FORECAST_URL"),
		}),
		Logger: log,
	})
	log.Info().Msg("weather service initialized")

	// Initialize air quality service
	airQualityService := airquality.NewService(airquality.ServiceConfig{
		Provider: aqprovider.NewClient(aqprovider.ClientConfig{
			BaseURL: os.Getenv("OPEN_METEO_AIR_QUALITY_URL"),
		}),
		Logger: log,
	})
	log.Info().Msg("air quality service initialized")

	// Initialize historical service
	historicalService := historical.NewService(historical.ServiceConfig{
		Provider: archiveprovider.NewClient(archiveprovider.ClientConfig{
			BaseURL: os.Getenv("OPEN_METEO_ARCHIVE_URL"),
		}),
		Store:  store,
		Logger: log,
	})
	log.Info().Msg("historical service initialized")

	// Initialize alert subscription store
	subscriptions := alert.NewSubscriptionStore(store, log)

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		Sessions:          sessions,
		UserService:       userService,
		WeatherService:    weatherService,
		AirQualityService: airQualityService,
		HistoricalService: historicalService,
		Subscriptions:     subscriptions,
		Readiness:         readiness,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
