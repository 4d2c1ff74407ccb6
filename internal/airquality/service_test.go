package airquality_test

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

	"github.com/climavista/climavista/internal/airquality"
)

type mockProvider struct {
	bundle     *airquality.CurrentBundle
	err        error
	fetchCount atomic.Int32
}

func (m *mockProvider) FetchCurrent(_ context.Context, _, _ float64) (*airquality.CurrentBundle, error) {
	m.fetchCount.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return m.bundle, nil
}

func (m *mockProvider) Name() string { return "mock" }

func ptrTo[T any](v T) *T { return &v }

func TestService_GetReading(t *testing.T) {
	provider := &mockProvider{bundle: &airquality.CurrentBundle{
		Current: &airquality.CurrentBlock{
			USAQI: ptrTo(72.0),
			PM25:  ptrTo(18.3),
			PM10:  ptrTo(31.0),
		},
	}}
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
		CacheTTL: 5 * time.Minute,
	})

	ctx := context.Background()

	reading, category, err := svc.GetReading(ctx, 9.93, -84.08)
	require.NoError(t, err)
	assert.Equal(t, 72.0, reading.AQI)
	require.NotNil(t, reading.PM25)
	assert.Equal(t, 18.3, *reading.PM25)
	assert.Equal(t, "Moderado", category.Name)
	assert.Equal(t, int32(1), provider.fetchCount.Load())

	// Second call within the TTL hits the cache.
	_, _, err = svc.GetReading(ctx, 9.93, -84.08)
	require.NoError(t, err)
	assert.Equal(t, int32(1), provider.fetchCount.Load())

	// A different location misses the cache.
	_, _, err = svc.GetReading(ctx, 10.02, -84.21)
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.fetchCount.Load())
}

func TestService_GetReading_ClampsAboveScale(t *testing.T) {
	provider := &mockProvider{bundle: &airquality.CurrentBundle{
		Current: &airquality.CurrentBlock{USAQI: ptrTo(412.0)},
	}}
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	reading, category, err := svc.GetReading(context.Background(), 9.93, -84.08)
	require.NoError(t, err)
	assert.Equal(t, 300.0, reading.AQI)
	assert.Equal(t, "Muy peligroso", category.Name)
}

func TestService_GetReading_HourlyFallback(t *testing.T) {
	provider := &mockProvider{bundle: &airquality.CurrentBundle{
		Hourly: &airquality.HourlyBlock{
			Time:  []string{"2024-05-10T13:00", "2024-05-10T14:00", "2024-05-10T15:00"},
			USAQI: []*float64{ptrTo(55.0), ptrTo(61.0), nil},
			PM25:  []*float64{ptrTo(12.0), ptrTo(14.5), nil},
			PM10:  []*float64{nil, ptrTo(22.0), nil},
		},
	}}
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	// The most recent non-null hourly value wins.
	reading, _, err := svc.GetReading(context.Background(), 9.93, -84.08)
	require.NoError(t, err)
	assert.Equal(t, 61.0, reading.AQI)
	require.NotNil(t, reading.PM25)
	assert.Equal(t, 14.5, *reading.PM25)
}

func TestService_GetReading_MissingAQI(t *testing.T) {
	provider := &mockProvider{bundle: &airquality.CurrentBundle{
		Current: &airquality.CurrentBlock{PM25: ptrTo(10.0)},
	}}
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	_, _, err := svc.GetReading(context.Background(), 9.93, -84.08)
	assert.ErrorIs(t, err, airquality.ErrMissingAQI)
}

func TestService_GetReading_ProviderError(t *testing.T) {
	provider := &mockProvider{err: errors.New("boom")}
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	_, _, err := svc.GetReading(context.Background(), 9.93, -84.08)
	assert.ErrorIs(t, err, airquality.ErrProviderUnavailable)
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &mockProvider{bundle: &airquality.CurrentBundle{
		Current: &airquality.CurrentBlock{USAQI: ptrTo(35.0)},
	}}
	svc := airquality.NewService(airquality.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	ctx := context.Background()
	_, _, err := svc.GetReading(ctx, 9.93, -84.08)
	require.NoError(t, err)

	svc.InvalidateCache()

	_, _, err = svc.GetReading(ctx, 9.93, -84.08)
	require.NoError(t, err)
	assert.Equal(t, int32(2), provider.fetchCount.Load())
}
