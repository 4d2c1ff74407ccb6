// Package main provides the entrypoint for the ClimaVista alert worker.
package main

import (
	"context"
	"fmt"
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
	"github.com/climavista/climavista/internal/alert/emailjs"
	"github.com/climavista/climavista/internal/database"
	"github.com/climavista/climavista/internal/kv"
	"github.com/climavista/climavista/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "climavista-worker"

	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting ClimaVista alert worker")

	// Worker also exposes a health endpoint for the container platform.
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Pick the key-value store: Postgres when configured, in-memory
	// otherwise. The worker needs the same store the API writes
	// subscriptions to.
	var store kv.Store = kv.NewInMemoryStore()
	if os.Getenv("DB_HOST") != "" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		store = kv.NewPostgresStore(pool)
		log.Info().Str("host", dbConfig.Host).Msg("database connected")
	} else {
		log.Warn().Msg("DB_HOST not set - using in-memory store, no shared subscriptions")
	}

	airQualityService := airquality.NewService(airquality.ServiceConfig{
		Provider: aqprovider.NewClient(aqprovider.ClientConfig{
			BaseURL: os.Getenv("OPEN_METEO_AIR_QUALITY_URL"),
		}),
		Logger: log,
	})

	sender := emailjs.NewClient(emailjs.ClientConfig{
		ServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		TemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		PublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
	})
	if os.Getenv("EMAILJS_SERVICE_ID") == "" {
		log.Warn().Msg("EMAILJS_SERVICE_ID not set - alert emails will be rejected")
	}

	dispatcher := alert.NewDispatcher(alert.DispatcherConfig{
		AirQuality:    airQualityService,
		Subscriptions: alert.NewSubscriptionStore(store, log),
		Sender:        sender,
		Logger:        log,
	})

	checkInterval := worker.DefaultCheckInterval
	if raw := os.Getenv("ALERT_CHECK_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal().Err(err).Str("value", raw).Msg("invalid ALERT_CHECK_INTERVAL")
		}
		checkInterval = parsed
	}

	alertWorker, err := worker.New(worker.Config{
		Dispatcher:    dispatcher,
		Logger:        log,
		CheckInterval: checkInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create worker")
	}

	// Health check endpoint
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	workerDone := make(chan error, 1)
	go func() {
		workerDone <- alertWorker.Run(ctx)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	if err := <-workerDone; err != nil {
		log.Error().Err(err).Msg("worker shutdown error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
