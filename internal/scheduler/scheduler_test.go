package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"safenode/internal/core/domain"
	"safenode/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// countingRunner is a trivial SweepRunner that counts invocations.
type countingRunner struct {
	calls atomic.Int32
}

func (r *countingRunner) RunOnce(ctx context.Context) (*domain.CycleResult, error) {
	r.calls.Add(1)
	return &domain.CycleResult{}, nil
}

func (r *countingRunner) LastResult() *domain.CycleResult { return nil }

func TestScheduler_FirstCycleFiresImmediately(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, nil, nil, time.Hour, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return runner.calls.Load() == 1
	}, time.Second, 5*time.Millisecond, "first cycle should not wait for the interval")

	cancel()
	<-done
}

func TestScheduler_TicksOnInterval(t *testing.T) {
	runner := &countingRunner{}
	s := New(runner, nil, nil, 10*time.Millisecond, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return runner.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestScheduler_SkipsTickWhenDirectoryDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := &countingRunner{}
	directory := mocks.NewMockHealthChecker(ctrl)
	directory.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")).MinTimes(1)

	s := New(runner, nil, directory, 10*time.Millisecond, 0, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	assert.Equal(t, int32(0), runner.calls.Load(), "cycles must not run while the directory is down")
}

func TestScheduler_SkipsTickWhenLockHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := &countingRunner{}
	lock := mocks.NewMockCycleLock(ctrl)
	lock.EXPECT().TryAcquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).MinTimes(1)

	s := New(runner, lock, nil, 10*time.Millisecond, 0, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	assert.Equal(t, int32(0), runner.calls.Load(), "cycles must not overlap a held lock")
}

func TestScheduler_ReleasesLockAfterCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := &countingRunner{}
	lock := mocks.NewMockCycleLock(ctrl)

	var released atomic.Int32
	lock.EXPECT().TryAcquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	lock.EXPECT().Release(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, string) error {
			released.Add(1)
			return nil
		}).AnyTimes()

	s := New(runner, lock, nil, time.Hour, 0, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return runner.calls.Load() == 1 && released.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}
