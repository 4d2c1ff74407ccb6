// Package worker schedules the background alert dispatch job.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/climavista/climavista/internal/alert"
)

// DefaultCheckInterval is how often the air quality is evaluated for alerts.
const DefaultCheckInterval = 15 * time.Minute

// Config holds configuration for the worker.
type Config struct {
	// Dispatcher runs the alert evaluation pass.
	Dispatcher *alert.Dispatcher

	// Logger for worker lifecycle events.
	Logger zerolog.Logger

	// CheckInterval overrides the default evaluation interval.
	CheckInterval time.Duration
}

// Worker runs the alert dispatcher on a schedule.
type Worker struct {
	dispatcher *alert.Dispatcher
	logger     zerolog.Logger
	interval   time.Duration
	scheduler  gocron.Scheduler
}

// New creates a worker with its scheduler.
func New(cfg Config) (*Worker, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	interval := cfg.CheckInterval
	if interval == 0 {
		interval = DefaultCheckInterval
	}

	return &Worker{
		dispatcher: cfg.Dispatcher,
		logger:     cfg.Logger,
		interval:   interval,
		scheduler:  scheduler,
	}, nil
}

// Run starts the schedule and blocks until the context is canceled. The
// first evaluation runs immediately; subsequent ones follow the interval.
func (w *Worker) Run(ctx context.Context) error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(w.dispatcher.Run),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithName("air_quality_alert_job"),
	)
	if err != nil {
		return fmt.Errorf("create alert job: %w", err)
	}

	w.logger.Info().
		Dur("interval", w.interval).
		Msg("alert worker started")
	w.scheduler.Start()

	<-ctx.Done()
	w.logger.Info().Msg("alert worker stopping")
	return w.scheduler.Shutdown()
}
