package historical

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/kv"
	"github.com/climavista/climavista/internal/location"
)

// Provider defines the interface for archive data providers.
type Provider interface {
	// FetchArchive fetches the daily series for a location and ISO date range.
	FetchArchive(ctx context.Context, lat, lon float64, startDate, endDate string) (*ArchiveResponse, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the historical service.
type ServiceConfig struct {
	// Provider is the archive data provider.
	Provider Provider

	// Store backs the aggregate cache and bookmarks.
	Store kv.Store

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long cached aggregates stay fresh (default: 1 hour).
	CacheTTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service fetches archive data, aggregates it, and caches the result.
type Service struct {
	provider  Provider
	cache     *Cache
	bookmarks *BookmarkStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates a new historical service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		provider:  cfg.Provider,
		cache:     NewCache(cfg.Store, cfg.Logger, cfg.CacheTTL),
		bookmarks: NewBookmarkStore(cfg.Store, cfg.Logger),
		logger:    cfg.Logger,
		now:       now,
	}
}

// RangeOptions returns the preset date ranges anchored at the current time.
func (s *Service) RangeOptions() []RangeOption {
	return RangeOptions(s.now())
}

// Bookmarks exposes the bookmark store.
func (s *Service) Bookmarks() *BookmarkStore {
	return s.bookmarks
}

// GetAggregate returns the aggregate for a location and date range, serving
// from cache when fresh.
func (s *Service) GetAggregate(ctx context.Context, loc location.Location, startDate, endDate string) (*Aggregate, error) {
	if err := ValidateDates(startDate, endDate); err != nil {
		return nil, err
	}

	key := CacheKey(loc.ID, startDate, endDate)
	if aggregate, ok := s.cache.Get(ctx, key); ok {
		return aggregate, nil
	}

	aggregate, err := s.fetchAggregate(ctx, loc.Lat, loc.Lon, startDate, endDate)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, aggregate)
	return aggregate, nil
}

// GetAnomalies compares a date range against the same dates one year
// earlier. The baseline fetch is best-effort: when it fails, the anomaly is
// reported as unavailable (nil) rather than failing the request.
func (s *Service) GetAnomalies(ctx context.Context, loc location.Location, startDate, endDate string) (*ClimateAnomaly, error) {
	current, err := s.GetAggregate(ctx, loc, startDate, endDate)
	if err != nil {
		return nil, err
	}

	baselineStart, baselineEnd, err := BaselineDates(startDate, endDate)
	if err != nil {
		return nil, err
	}

	baselineKey := CacheKey(loc.ID, baselineStart, baselineEnd)
	baseline, ok := s.cache.Get(ctx, baselineKey)
	if !ok {
		baseline, err = s.fetchAggregate(ctx, loc.Lat, loc.Lon, baselineStart, baselineEnd)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("location", loc.ID).
				Str("baseline_start", baselineStart).
				Str("baseline_end", baselineEnd).
				Msg("baseline fetch failed, anomalies unavailable")
			return nil, nil
		}
		s.cache.Set(ctx, baselineKey, baseline)
	}

	return CalculateAnomalies(current, baseline), nil
}

func (s *Service) fetchAggregate(ctx context.Context, lat, lon float64, startDate, endDate string) (*Aggregate, error) {
	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("start", startDate).
		Str("end", endDate).
		Str("provider", s.provider.Name()).
		Msg("fetching archive from provider")

	raw, err := s.provider.FetchArchive(ctx, lat, lon, startDate, endDate)
	if err != nil {
		s.logger.Error().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("failed to fetch archive")
		return nil, ErrProviderUnavailable
	}
	return BuildAggregate(raw)
}
