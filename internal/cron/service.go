package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/gasline/gasline-backend/pkg/logger"
	"github.com/gasline/gasline-backend/pkg/metrics"
)

const defaultRunHour = 1

// ServiceParams configure the cron service.
type ServiceParams struct {
	Logger   *logger.Logger
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.CronJobMetrics
	RunHour  int
	Location *time.Location
	// Interval overrides the daily schedule with a fixed cadence; used by
	// tests and local runs.
	Interval time.Duration
}

// Service executes registered cron jobs once per day at a fixed local hour
// in the business time zone.
type Service struct {
	logg     *logger.Logger
	registry *Registry
	lock     Lock
	metrics  *metrics.CronJobMetrics
	runHour  int
	location *time.Location
	interval time.Duration
	now      func() time.Time
}

// NewService builds a cron service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Lock == nil {
		return nil, fmt.Errorf("lock required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	runHour := params.RunHour
	if runHour < 0 || runHour > 23 {
		runHour = defaultRunHour
	}
	return &Service{
		logg:     params.Logger,
		registry: registry,
		lock:     params.Lock,
		metrics:  params.Metrics,
		runHour:  runHour,
		location: location,
		interval: params.Interval,
		now:      time.Now,
	}, nil
}

// Run blocks until the context is canceled, firing a cycle at each scheduled
// time.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.interval > 0 {
		return s.runFixedInterval(ctx)
	}
	for {
		wait := time.Until(s.nextRunAt(s.now()))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logg.Info(ctx, "cron service context canceled")
			return ctx.Err()
		case <-timer.C:
			if err := s.runCycle(ctx); err != nil {
				s.logg.Error(ctx, "scheduled run failed", err)
			}
		}
	}
}

func (s *Service) runFixedInterval(ctx context.Context) error {
	if err := s.runCycle(ctx); err != nil {
		s.logg.Error(ctx, "scheduled run failed", err)
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "cron service context canceled")
			return ctx.Err()
		case <-ticker.C:
			if err := s.runCycle(ctx); err != nil {
				s.logg.Error(ctx, "scheduled run failed", err)
			}
		}
	}
}

// nextRunAt returns the next occurrence of the configured local hour. Date
// arithmetic (not Add) keeps the local hour stable across DST changes.
func (s *Service) nextRunAt(now time.Time) time.Time {
	local := now.In(s.location)
	next := time.Date(local.Year(), local.Month(), local.Day(), s.runHour, 0, 0, 0, s.location)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, s.runHour, 0, 0, 0, s.location)
	}
	return next
}

func (s *Service) runCycle(ctx context.Context) error {
	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("lock acquire: %w", err)
	}
	if !locked {
		s.logg.Info(ctx, "another cron instance is running; skipping this cycle")
		return nil
	}
	defer func() {
		if relErr := s.lock.Release(ctx); relErr != nil {
			s.logg.Error(ctx, "failed to release cron lock", relErr)
		}
	}()

	s.logg.Info(ctx, "scheduled run starting")
	for _, job := range s.registry.Jobs() {
		if ctx.Err() != nil {
			s.logg.Info(ctx, "scheduled run interrupted")
			return ctx.Err()
		}
		s.runJob(ctx, job)
	}
	s.logg.Info(ctx, "scheduled run complete")
	return nil
}

func (s *Service) runJob(ctx context.Context, job Job) {
	jobCtx := s.logg.WithJob(ctx, job.Name())
	jobCtx = s.logg.WithField(jobCtx, "event", "cron.job")
	s.logg.Info(jobCtx, "job start")
	start := time.Now()
	err := job.Run(jobCtx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(job.Name(), duration)
	jobCtx = s.logg.WithField(jobCtx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.logg.Error(jobCtx, "job failed", err)
		s.metrics.IncFailure(job.Name())
		return
	}
	s.logg.Info(jobCtx, "job completed")
	s.metrics.IncSuccess(job.Name())
}
