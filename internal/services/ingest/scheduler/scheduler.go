// Package scheduler triggers ingestion runs on a cron schedule
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"tjmwatch/internal/platform/logger"
	"tjmwatch/internal/services/ingest/domain"
)

// Options configures the scheduler
type Options struct {
	// Spec is a standard 5 field cron expression evaluated in UTC
	Spec       string
	RunOnStart bool
}

// Scheduler wraps robfig/cron around a RunnerPort
type Scheduler struct {
	cron   *cron.Cron
	runner domain.RunnerPort
	opts   Options
	log    *logger.Logger
	id     cron.EntryID
}

// New validates the spec and builds a stopped scheduler
func New(runner domain.RunnerPort, opts Options) (*Scheduler, error) {
	if runner == nil {
		return nil, errors.New("scheduler: nil runner")
	}
	if _, err := cron.ParseStandard(opts.Spec); err != nil {
		return nil, fmt.Errorf("scheduler: invalid spec %q: %w", opts.Spec, err)
	}
	log := logger.Named("scheduler")
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner: runner,
		opts:   opts,
		log:    log,
	}, nil
}

// Start registers the job and starts ticking; runs once immediately when RunOnStart is set
func (s *Scheduler) Start(ctx context.Context) error {
	id, err := s.cron.AddFunc(s.opts.Spec, func() { s.fire(ctx, domain.TriggerCron) })
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.id = id
	s.cron.Start()
	s.log.Info().Str("spec", s.opts.Spec).Time("next", s.Next()).Msg("scheduler started")

	if s.opts.RunOnStart {
		go s.fire(ctx, domain.TriggerStart)
	}
	return nil
}

// Stop stops scheduling and waits for a running job up to ctx
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out with a run in flight")
	}
}

// Next reports the next scheduled fire time
func (s *Scheduler) Next() time.Time {
	if s.id == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.id).Next
}

// RunOnce performs a single run outside the schedule
func (s *Scheduler) RunOnce(ctx context.Context) (domain.Result, error) {
	return s.runner.Run(domain.WithTrigger(ctx, domain.TriggerManual))
}

func (s *Scheduler) fire(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}
	res, err := s.runner.Run(domain.WithTrigger(ctx, trigger))
	switch {
	case errors.Is(err, domain.ErrRunInProgress):
		s.log.Info().Str("trigger", trigger).Msg("run skipped; lease held elsewhere")
	case err != nil:
		s.log.Error().Err(err).Str("trigger", trigger).Msg("scheduled run failed")
	default:
		s.log.Info().Str("trigger", trigger).Int("count", res.Count).Msg("scheduled run done")
	}
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct{ log *logger.Logger }

func (l cronLogger) Info(msg string, kv ...any) {
	l.log.Debug().Fields(kv).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, kv ...any) {
	l.log.Error().Err(err).Fields(kv).Msg("cron: " + msg)
}
