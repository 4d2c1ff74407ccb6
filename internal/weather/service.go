package weather

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for forecast data providers.
type Provider interface {
	// FetchForecast fetches the current + hourly forecast for a location.
	FetchForecast(ctx context.Context, lat, lon float64) (*ForecastBundle, error)

	// FetchRainProbability fetches hourly precipitation probability.
	FetchRainProbability(ctx context.Context, lat, lon float64) (*RainProbabilityBundle, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the weather service.
type ServiceConfig struct {
	// Provider is the forecast data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache forecast bundles (default: 10 minutes).
	CacheTTL time.Duration
}

// Service provides forecast data with per-location caching.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedForecast
}

type cachedForecast struct {
	forecast  *ForecastBundle
	rainProb  *RainProbabilityBundle
	expiresAt time.Time
}

// NewService creates a new weather service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedForecast),
	}
}

// GetSnapshot returns the normalized snapshot for a location and period,
// together with any active provider alerts.
func (s *Service) GetSnapshot(ctx context.Context, lat, lon float64, period Period) (Snapshot, []AlertItem, error) {
	forecast, rainProb, err := s.getBundles(ctx, lat, lon)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return SelectPeriod(period, forecast, rainProb), ProcessAlerts(forecast), nil
}

// InvalidateCache clears all cached forecast data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedForecast)
}

func (s *Service) getBundles(ctx context.Context, lat, lon float64) (*ForecastBundle, *RainProbabilityBundle, error) {
	key := cacheKey(lat, lon)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.forecast, cached.rainProb, nil
	}
	s.mu.RUnlock()

	return s.fetchBundles(ctx, lat, lon, key)
}

func (s *Service) fetchBundles(ctx context.Context, lat, lon float64, key string) (*ForecastBundle, *RainProbabilityBundle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check: another goroutine might have refreshed while we waited.
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		return cached.forecast, cached.rainProb, nil
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("provider", s.provider.Name()).
		Msg("fetching forecast from provider")

	forecast, err := s.provider.FetchForecast(ctx, lat, lon)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch forecast")
		return nil, nil, ErrProviderUnavailable
	}

	rainProb, err := s.provider.FetchRainProbability(ctx, lat, lon)
	if err != nil {
		// Rain probability is a secondary signal; serve the forecast without it.
		s.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch rain probability")
		rainProb = nil
	}

	s.cache[key] = &cachedForecast{
		forecast:  forecast,
		rainProb:  rainProb,
		expiresAt: time.Now().Add(s.cacheTTL),
	}

	return forecast, rainProb, nil
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f:%.2f", lat, lon)
}
