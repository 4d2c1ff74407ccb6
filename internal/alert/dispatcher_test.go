package alert_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climavista/climavista/internal/airquality"
	"github.com/climavista/climavista/internal/alert"
	"github.com/climavista/climavista/internal/kv"
	"github.com/climavista/climavista/internal/location"
)

type stubAirQuality struct {
	aqi float64
}

func (s *stubAirQuality) GetReading(_ context.Context, _, _ float64) (airquality.Reading, airquality.Category, error) {
	return airquality.Reading{AQI: s.aqi}, airquality.Classify(s.aqi), nil
}

type recordingSender struct {
	mu    sync.Mutex
	sends []map[string]string
}

func (r *recordingSender) Send(_ context.Context, params map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	r.sends = append(r.sends, copied)
	return nil
}

func (r *recordingSender) Name() string { return "recording" }

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sends)
}

func newDispatcher(aq *stubAirQuality, sender *recordingSender) (*alert.Dispatcher, *alert.SubscriptionStore) {
	subs := alert.NewSubscriptionStore(kv.NewInMemoryStore(), zerolog.New(io.Discard))
	return alert.NewDispatcher(alert.DispatcherConfig{
		AirQuality:    aq,
		Subscriptions: subs,
		Sender:        sender,
		Logger:        zerolog.New(io.Discard),
	}), subs
}

func TestDispatcher_SendsOnRiskyCategory(t *testing.T) {
	aq := &stubAirQuality{aqi: 180}
	sender := &recordingSender{}
	dispatcher, subs := newDispatcher(aq, sender)
	ctx := context.Background()

	require.NoError(t, subs.Set(ctx, "usr1", alert.Subscription{Email: "ana@ejemplo.com", Enabled: true}))

	dispatcher.Run(ctx)

	// One email per catalog location for the single subscriber.
	assert.Equal(t, len(location.Catalog), sender.count())
	first := sender.sends[0]
	assert.Equal(t, "No recomendable", first["category"])
	assert.Equal(t, "180", first["aqi"])
	assert.Equal(t, "ana@ejemplo.com", first["to_email"])
}

func TestDispatcher_GoodAirSendsNothing(t *testing.T) {
	aq := &stubAirQuality{aqi: 42}
	sender := &recordingSender{}
	dispatcher, subs := newDispatcher(aq, sender)
	ctx := context.Background()

	require.NoError(t, subs.Set(ctx, "usr1", alert.Subscription{Email: "ana@ejemplo.com", Enabled: true}))

	dispatcher.Run(ctx)
	assert.Zero(t, sender.count())
}

func TestDispatcher_NoSubscribersSkipsEvaluation(t *testing.T) {
	aq := &stubAirQuality{aqi: 250}
	sender := &recordingSender{}
	dispatcher, _ := newDispatcher(aq, sender)

	dispatcher.Run(context.Background())
	assert.Zero(t, sender.count())
}

func TestDispatcher_DeduplicatesUntilCategoryChanges(t *testing.T) {
	aq := &stubAirQuality{aqi: 180}
	sender := &recordingSender{}
	dispatcher, subs := newDispatcher(aq, sender)
	ctx := context.Background()

	require.NoError(t, subs.Set(ctx, "usr1", alert.Subscription{Email: "ana@ejemplo.com", Enabled: true}))

	dispatcher.Run(ctx)
	afterFirst := sender.count()
	require.Positive(t, afterFirst)

	// Same category again: no new emails.
	dispatcher.Run(ctx)
	assert.Equal(t, afterFirst, sender.count())

	// Worsening to a new category re-alerts.
	aq.aqi = 240
	dispatcher.Run(ctx)
	assert.Equal(t, afterFirst*2, sender.count())
	assert.Equal(t, "Muy peligroso", sender.sends[len(sender.sends)-1]["category"])

	// Clearing re-arms, so the next risky reading alerts again.
	aq.aqi = 30
	dispatcher.Run(ctx)
	assert.Equal(t, afterFirst*2, sender.count())

	aq.aqi = 240
	dispatcher.Run(ctx)
	assert.Equal(t, afterFirst*3, sender.count())
}
