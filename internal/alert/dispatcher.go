package alert

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/airquality"
	"github.com/climavista/climavista/internal/location"
)

// Sender delivers a rendered alert email.
type Sender interface {
	// Send renders the alert template with the given params and sends it.
	Send(ctx context.Context, params map[string]string) error

	// Name returns the sender name for logging.
	Name() string
}

// AirQualityReader provides the current classified reading for coordinates.
type AirQualityReader interface {
	GetReading(ctx context.Context, lat, lon float64) (airquality.Reading, airquality.Category, error)
}

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	// AirQuality provides current readings.
	AirQuality AirQualityReader

	// Subscriptions lists who gets alerted.
	Subscriptions *SubscriptionStore

	// Sender delivers the emails.
	Sender Sender

	// Logger for dispatch operations.
	Logger zerolog.Logger
}

// Dispatcher evaluates the air quality of every catalog location and emails
// enabled subscribers when a location enters a risky category. A
// location+category pair is alerted once; it re-arms when the category
// changes or the air clears.
type Dispatcher struct {
	airQuality    AirQualityReader
	subscriptions *SubscriptionStore
	sender        Sender
	logger        zerolog.Logger

	mu       sync.Mutex
	notified map[string]string // location ID -> last alerted category
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		airQuality:    cfg.AirQuality,
		subscriptions: cfg.Subscriptions,
		sender:        cfg.Sender,
		logger:        cfg.Logger,
		notified:      make(map[string]string),
	}
}

// Run performs one evaluation pass over the location catalog. Provider and
// delivery failures are logged per location and do not stop the pass.
func (d *Dispatcher) Run(ctx context.Context) {
	subscribers, err := d.subscriptions.ListEnabled(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to list alert subscribers")
		return
	}
	if len(subscribers) == 0 {
		return
	}

	for _, loc := range location.Catalog {
		d.evaluate(ctx, loc, subscribers)
	}
}

func (d *Dispatcher) evaluate(ctx context.Context, loc location.Location, subscribers map[string]Subscription) {
	reading, category, err := d.airQuality.GetReading(ctx, loc.Lat, loc.Lon)
	if err != nil {
		d.logger.Error().Err(err).Str("location", loc.ID).Msg("air quality check failed")
		return
	}

	if !category.IsRisky() {
		d.reset(loc.ID)
		return
	}
	if !d.shouldNotify(loc.ID, category.Name) {
		return
	}

	params := map[string]string{
		"location": loc.Name,
		"aqi":      fmt.Sprintf("%.0f", reading.AQI),
		"category": category.Name,
		"message":  category.Message,
	}

	delivered := 0
	for userID, sub := range subscribers {
		params["to_email"] = sub.Email
		if err := d.sender.Send(ctx, params); err != nil {
			d.logger.Error().Err(err).
				Str("location", loc.ID).
				Str("user_id", userID).
				Msg("failed to send alert email")
			continue
		}
		delivered++
	}

	if delivered > 0 {
		d.markNotified(loc.ID, category.Name)
		d.logger.Info().
			Str("location", loc.ID).
			Str("category", category.Name).
			Int("delivered", delivered).
			Msg("air quality alert dispatched")
	}
}

// shouldNotify reports whether this location+category pair has not been
// alerted yet.
func (d *Dispatcher) shouldNotify(locationID, category string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notified[locationID] != category
}

func (d *Dispatcher) markNotified(locationID, category string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notified[locationID] = category
}

func (d *Dispatcher) reset(locationID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.notified, locationID)
}
