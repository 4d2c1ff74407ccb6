// Package api provides the HTTP API for ClimaVista.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/airquality"
	"github.com/climavista/climavista/internal/alert"
	"github.com/climavista/climavista/internal/api/handler"
	"github.com/climavista/climavista/internal/api/middleware"
	"github.com/climavista/climavista/internal/auth"
	"github.com/climavista/climavista/internal/historical"
	"github.com/climavista/climavista/internal/user"
	"github.com/climavista/climavista/internal/weather"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	Sessions          *auth.JWTService
	UserService       *user.Service
	WeatherService    *weather.Service
	AirQualityService *airquality.Service
	HistoricalService *historical.Service
	Subscriptions     *alert.SubscriptionStore
	Readiness         map[string]handler.ReadinessCheck
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "climavista-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Readiness)
	metadataHandler := handler.NewMetadataHandler()
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherService)
	airQualityHandler := handler.NewAirQualityHandler(cfg.AirQualityService)
	historicalHandler := handler.NewHistoricalHandler(cfg.HistoricalService)
	authHandler := handler.NewAuthHandler(cfg.UserService, cfg.Sessions)
	alertHandler := handler.NewAlertHandler(cfg.Subscriptions)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.Sessions)

	// Create rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)           // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Location catalog (public) - standard rate limiting
		r.With(standardRateLimit).Get("/locations", metadataHandler.ListLocations)

		// Current conditions and recommendations - standard rate limiting
		r.Route("/weather", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", weatherHandler.GetWeather)
			r.Get("/recommendations", weatherHandler.GetRecommendations)
		})

		// Air quality - standard rate limiting
		r.Route("/airquality", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", airQualityHandler.GetCurrent)
			r.Get("/scale", airQualityHandler.GetScale)
		})

		// Historical archive - expensive upstream calls, strict rate limiting
		r.Route("/historical", func(r chi.Router) {
			r.Use(expensiveRateLimit)
			r.Get("/", historicalHandler.GetAggregate)
			r.Get("/anomalies", historicalHandler.GetAnomalies)
			r.Get("/ranges", historicalHandler.ListRanges)
		})

		// Bookmarks (authenticated) - user-based rate limiting
		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user
			r.Get("/", historicalHandler.ListBookmarks)
			r.Post("/", historicalHandler.CreateBookmark)
			r.Delete("/{bookmarkId}", historicalHandler.DeleteBookmark)
		})

		// Alert subscription (authenticated) - user-based rate limiting
		r.Route("/alerts/subscription", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Get("/", alertHandler.GetSubscription)
			r.Put("/", alertHandler.UpdateSubscription)
		})
	})

	return r
}
