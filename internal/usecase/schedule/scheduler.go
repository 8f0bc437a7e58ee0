// Package schedule runs prune passes on a cron schedule for daemon mode.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/robfig/cron/v3"
)

// ErrAlreadyRunning is returned when a run is requested while one is in progress.
var ErrAlreadyRunning = errors.New("a scheduled run is already in progress")

// Job is the work executed on every tick.
type Job func(ctx context.Context) error

// Scheduler runs a single job on a standard cron expression.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entryID cron.EntryID
	spec    string
	job     Job
	baseCtx context.Context
	running atomic.Bool
	log     zerowrap.Logger
	nowFn   func() time.Time
}

// NewScheduler creates a scheduler. Times are evaluated in UTC.
func NewScheduler(log zerowrap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger{log: log}),
		),
		log: log,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Schedule registers job on spec, replacing any previous registration.
// spec accepts five-field cron expressions and descriptors such as "@hourly".
func (s *Scheduler) Schedule(spec string, job Job) error {
	if job == nil {
		return fmt.Errorf("job is required")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	id, err := s.cron.AddFunc(spec, func() {
		if err := s.execute(s.baseContext()); err != nil && !errors.Is(err, ErrAlreadyRunning) {
			s.log.Error().Err(err).Str("schedule", spec).Msg("scheduled prune failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule prune: %w", err)
	}

	s.entryID = id
	s.spec = spec
	s.job = job
	return nil
}

// Spec returns the active cron expression.
func (s *Scheduler) Spec() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// Next returns the next activation time, or the zero time if nothing is scheduled
// or the scheduler is not started.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// RunNow executes the job immediately unless a run is already in progress.
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.execute(ctx)
}

// Run starts the scheduler and blocks until ctx is cancelled. It waits for a
// job in progress before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.entryID == 0 {
		s.mu.Unlock()
		return fmt.Errorf("no schedule registered")
	}
	s.baseCtx = ctx
	s.mu.Unlock()

	s.cron.Start()
	s.log.Info().Str("schedule", s.Spec()).Time("next_run", s.Next()).Msg("scheduler started")

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info().Msg("scheduler stopped")
	return nil
}

func (s *Scheduler) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseCtx == nil {
		return context.Background()
	}
	return s.baseCtx
}

func (s *Scheduler) execute(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn().Msg("previous prune still running, skipping this activation")
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.mu.Lock()
	job := s.job
	s.mu.Unlock()
	if job == nil {
		return fmt.Errorf("no job registered")
	}

	started := s.nowFn()
	err := job(zerowrap.WithCtx(ctx, s.log))
	s.log.Debug().Dur("elapsed", s.nowFn().Sub(started)).Msg("scheduled prune finished")
	return err
}

// cronLogger routes robfig/cron diagnostics to zerowrap.
type cronLogger struct {
	log zerowrap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
