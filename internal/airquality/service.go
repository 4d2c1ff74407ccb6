package airquality

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for air-quality data providers.
type Provider interface {
	// FetchCurrent fetches the current air-quality bundle for a location.
	FetchCurrent(ctx context.Context, lat, lon float64) (*CurrentBundle, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the air-quality service.
type ServiceConfig struct {
	// Provider is the air-quality data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache readings (default: 10 minutes).
	CacheTTL time.Duration
}

// Service provides classified air-quality readings with per-location caching.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedReading
}

type cachedReading struct {
	reading   Reading
	expiresAt time.Time
}

// NewService creates a new air-quality service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedReading),
	}
}

// GetReading returns the current reading for a location together with its
// severity band. The AQI is clamped to the scale before classification.
func (s *Service) GetReading(ctx context.Context, lat, lon float64) (Reading, Category, error) {
	key := cacheKey(lat, lon)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.reading, Classify(cached.reading.AQI), nil
	}
	s.mu.RUnlock()

	reading, err := s.fetchReading(ctx, lat, lon, key)
	if err != nil {
		return Reading{}, Category{}, err
	}
	return reading, Classify(reading.AQI), nil
}

// InvalidateCache clears all cached readings.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedReading)
}

func (s *Service) fetchReading(ctx context.Context, lat, lon float64, key string) (Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check: another goroutine might have refreshed while we waited.
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		return cached.reading, nil
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("provider", s.provider.Name()).
		Msg("fetching air quality from provider")

	bundle, err := s.provider.FetchCurrent(ctx, lat, lon)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch air quality")
		return Reading{}, ErrProviderUnavailable
	}

	reading, err := readingFromBundle(bundle)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("air quality response unusable")
		return Reading{}, err
	}

	s.cache[key] = &cachedReading{
		reading:   reading,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
	return reading, nil
}

// readingFromBundle extracts a Reading from the provider bundle. The current
// block is authoritative; the hourly series is a fallback when the provider
// omits it.
func readingFromBundle(bundle *CurrentBundle) (Reading, error) {
	if bundle != nil && bundle.Current != nil && bundle.Current.USAQI != nil {
		return Reading{
			AQI:  ClampToScale(*bundle.Current.USAQI),
			PM25: bundle.Current.PM25,
			PM10: bundle.Current.PM10,
		}, nil
	}

	if bundle != nil && bundle.Hourly != nil {
		for i := len(bundle.Hourly.USAQI) - 1; i >= 0; i-- {
			if bundle.Hourly.USAQI[i] == nil {
				continue
			}
			reading := Reading{AQI: ClampToScale(*bundle.Hourly.USAQI[i])}
			if i < len(bundle.Hourly.PM25) {
				reading.PM25 = bundle.Hourly.PM25[i]
			}
			if i < len(bundle.Hourly.PM10) {
				reading.PM10 = bundle.Hourly.PM10[i]
			}
			return reading, nil
		}
	}

	return Reading{}, ErrMissingAQI
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f:%.2f", lat, lon)
}
