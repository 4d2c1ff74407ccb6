package weather_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climavista/climavista/internal/weather"
)

type mockProvider struct {
	forecast    *weather.ForecastBundle
	rainProb    *weather.RainProbabilityBundle
	forecastErr error
	rainErr     error
	fetchCount  atomic.Int32
}

func (m *mockProvider) FetchForecast(_ context.Context, _, _ float64) (*weather.ForecastBundle, error) {
	m.fetchCount.Add(1)
	if m.forecastErr != nil {
		return nil, m.forecastErr
	}
	return m.forecast, nil
}

func (m *mockProvider) FetchRainProbability(_ context.Context, _, _ float64) (*weather.RainProbabilityBundle, error) {
	if m.rainErr != nil {
		return nil, m.rainErr
	}
	return m.rainProb, nil
}

func (m *mockProvider) Name() string { return "mock" }

func TestService_GetSnapshot(t *testing.T) {
	provider := &mockProvider{forecast: testForecast(), rainProb: testRainProb()}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
		CacheTTL: 5 * time.Minute,
	})

	ctx := context.Background()

	snapshot, alerts, err := svc.GetSnapshot(ctx, 9.93, -84.08, weather.PeriodNow)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Temperature)
	assert.Equal(t, 27.4, *snapshot.Temperature)
	assert.Empty(t, alerts)
	assert.Equal(t, int32(1), provider.fetchCount.Load())

	// Second call within the TTL hits the cache.
	_, _, err = svc.GetSnapshot(ctx, 9.93, -84.08, weather.Period(1))
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.fetchCount.Load())

	// A different location misses the cache.
	_, _, err = svc.GetSnapshot(ctx, 10.02, -84.21, weather.PeriodNow)
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.fetchCount.Load())
}

func TestService_GetSnapshot_ProviderError(t *testing.T) {
	provider := &mockProvider{forecastErr: errors.New("boom")}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	_, _, err := svc.GetSnapshot(context.Background(), 9.93, -84.08, weather.PeriodNow)
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestService_GetSnapshot_RainProbabilityFailureIsNotFatal(t *testing.T) {
	provider := &mockProvider{forecast: testForecast(), rainErr: errors.New("boom")}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	snapshot, _, err := svc.GetSnapshot(context.Background(), 9.93, -84.08, weather.PeriodNow)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Temperature)
	assert.Nil(t, snapshot.RainProbability)
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &mockProvider{forecast: testForecast(), rainProb: testRainProb()}
	svc := weather.NewService(weather.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	ctx := context.Background()
	_, _, err := svc.GetSnapshot(ctx, 9.93, -84.08, weather.PeriodNow)
	require.NoError(t, err)

	svc.InvalidateCache()

	_, _, err = svc.GetSnapshot(ctx, 9.93, -84.08, weather.PeriodNow)
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.fetchCount.Load())
}
