package scheduler

import (
	"context"
	"time"

	"safenode/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scheduler triggers sweep cycles on a fixed interval. Each tick checks the
// account directory first and takes the cycle lock, so a down database or a
// still-running cycle turns the tick into a no-op instead of a failure pile.
type Scheduler struct {
	runner    ports.SweepRunner
	lock      ports.CycleLock
	directory ports.HealthChecker
	interval  time.Duration
	lockTTL   time.Duration
	log       zerolog.Logger
}

// New creates a Scheduler. lock and directory may be nil to disable the
// corresponding guard.
func New(
	runner ports.SweepRunner,
	lock ports.CycleLock,
	directory ports.HealthChecker,
	interval time.Duration,
	lockTTL time.Duration,
	log zerolog.Logger,
) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	if lockTTL <= 0 {
		lockTTL = 3 * interval
	}
	return &Scheduler{
		runner:    runner,
		lock:      lock,
		directory: directory,
		interval:  interval,
		lockTTL:   lockTTL,
		log:       log,
	}
}

// Run blocks until ctx is cancelled. The first cycle fires immediately.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("sweep scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("sweep scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	if s.directory != nil {
		if err := s.directory.Ping(ctx); err != nil {
			s.log.Warn().Err(err).Msg("account directory down, skipping scheduled cycle")
			return
		}
	}

	if s.lock != nil {
		runID := uuid.New().String()
		acquired, err := s.lock.TryAcquire(ctx, runID, s.lockTTL)
		if err != nil {
			s.log.Warn().Err(err).Msg("cycle lock unavailable, running unguarded")
		} else if !acquired {
			s.log.Info().Msg("previous cycle still running, skipping tick")
			return
		} else {
			defer func() {
				if err := s.lock.Release(ctx, runID); err != nil {
					s.log.Warn().Err(err).Msg("cycle lock release failed")
				}
			}()
		}
	}

	if _, err := s.runner.RunOnce(ctx); err != nil {
		s.log.Error().Err(err).Msg("scheduled sweep cycle failed")
	}
}
