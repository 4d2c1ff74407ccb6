package historical_test

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

	"github.com/climavista/climavista/internal/historical"
	"github.com/climavista/climavista/internal/kv"
	"github.com/climavista/climavista/internal/location"
)

type mockArchiveProvider struct {
	archives   map[string]*historical.ArchiveResponse
	err        error
	fetchCount atomic.Int32
}

func (m *mockArchiveProvider) FetchArchive(_ context.Context, _, _ float64, startDate, endDate string) (*historical.ArchiveResponse, error) {
	m.fetchCount.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	if archive, ok := m.archives[startDate+"_"+endDate]; ok {
		return archive, nil
	}
	return testArchive(), nil
}

func (m *mockArchiveProvider) Name() string { return "mock-archive" }

func sanJose() location.Location {
	loc, _ := location.FindByID("san-jose")
	return loc
}

func TestService_GetAggregate_CachesResult(t *testing.T) {
	provider := &mockArchiveProvider{}
	svc := historical.NewService(historical.ServiceConfig{
		Provider: provider,
		Store:    kv.NewInMemoryStore(),
		Logger:   zerolog.New(io.Discard),
	})

	ctx := context.Background()

	aggregate, err := svc.GetAggregate(ctx, sanJose(), "2024-04-01", "2024-04-03")
	require.NoError(t, err)
	assert.Equal(t, 3, aggregate.Days)
	assert.Equal(t, int32(1), provider.fetchCount.Load())

	// Same range hits the cache.
	_, err = svc.GetAggregate(ctx, sanJose(), "2024-04-01", "2024-04-03")
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.fetchCount.Load())

	// A different range fetches again.
	_, err = svc.GetAggregate(ctx, sanJose(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.fetchCount.Load())
}

func TestService_GetAggregate_InvalidDates(t *testing.T) {
	svc := historical.NewService(historical.ServiceConfig{
		Provider: &mockArchiveProvider{},
		Store:    kv.NewInMemoryStore(),
		Logger:   zerolog.New(io.Discard),
	})

	_, err := svc.GetAggregate(context.Background(), sanJose(), "2024-05-01", "2024-04-01")
	assert.ErrorIs(t, err, historical.ErrInvalidDateRange)
}

func TestService_GetAggregate_ProviderError(t *testing.T) {
	svc := historical.NewService(historical.ServiceConfig{
		Provider: &mockArchiveProvider{err: errors.New("boom")},
		Store:    kv.NewInMemoryStore(),
		Logger:   zerolog.New(io.Discard),
	})

	_, err := svc.GetAggregate(context.Background(), sanJose(), "2024-04-01", "2024-04-03")
	assert.ErrorIs(t, err, historical.ErrProviderUnavailable)
}

func TestService_GetAnomalies(t *testing.T) {
	warm := testArchive()
	cool := testArchive()
	cooler := floats(20.0, 21.0, 19.0)
	cool.Daily = &historical.DailySeries{
		Time:            cool.Daily.Time,
		TemperatureMax:  cool.Daily.TemperatureMax,
		TemperatureMin:  cool.Daily.TemperatureMin,
		TemperatureMean: cooler,
	}

	provider := &mockArchiveProvider{archives: map[string]*historical.ArchiveResponse{
		"2024-04-01_2024-04-03": warm,
		"2023-04-01_2023-04-03": cool,
	}}
	svc := historical.NewService(historical.ServiceConfig{
		Provider: provider,
		Store:    kv.NewInMemoryStore(),
		Logger:   zerolog.New(io.Discard),
	})

	anomaly, err := svc.GetAnomalies(context.Background(), sanJose(), "2024-04-01", "2024-04-03")
	require.NoError(t, err)
	require.NotNil(t, anomaly)

	assert.InDelta(t, 2.0, anomaly.TemperatureAnomaly, 1e-9)
	assert.True(t, anomaly.IsWarmer)
	assert.Equal(t, int32(2), provider.fetchCount.Load())
}

func TestService_GetAnomalies_BaselineFailureIsNotFatal(t *testing.T) {
	provider := &mockArchiveProvider{}
	store := kv.NewInMemoryStore()
	svc := historical.NewService(historical.ServiceConfig{
		Provider: provider,
		Store:    store,
		Logger:   zerolog.New(io.Discard),
	})

	ctx := context.Background()

	// Prime the current range, then make the provider fail for the baseline.
	_, err := svc.GetAggregate(ctx, sanJose(), "2024-04-01", "2024-04-03")
	require.NoError(t, err)
	provider.err = errors.New("boom")

	anomaly, err := svc.GetAnomalies(ctx, sanJose(), "2024-04-01", "2024-04-03")
	require.NoError(t, err)
	assert.Nil(t, anomaly)
}

func TestService_RangeOptions(t *testing.T) {
	svc := historical.NewService(historical.ServiceConfig{
		Provider: &mockArchiveProvider{},
		Store:    kv.NewInMemoryStore(),
		Logger:   zerolog.New(io.Discard),
		Now: func() time.Time {
			return time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
		},
	})

	options := svc.RangeOptions()
	require.Len(t, options, 4)
	assert.Equal(t, "2024-05-15", options[0].EndDate)
}
