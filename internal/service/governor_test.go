package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const mb = 1024 * 1024

func newTestGovernor(freeBytes uint64, probeErr error) *Governor {
	g := NewGovernor(50, 5, zerolog.Nop())
	g.available = func() (uint64, error) { return freeBytes, probeErr }
	return g
}

func TestGovernor_Concurrency(t *testing.T) {
	cases := []struct {
		name string
		free uint64
		want int
	}{
		{"500MB free caps at ceiling", 500 * mb, 5},
		{"80MB free floors at one", 80 * mb, 1},
		{"zero free still one", 0, 1},
		{"150MB free gives three", 150 * mb, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGovernor(c.free, nil)
			assert.Equal(t, c.want, g.Concurrency())
		})
	}
}

func TestGovernor_Concurrency_ProbeFailure(t *testing.T) {
	g := newTestGovernor(0, errors.New("no /proc"))
	assert.Equal(t, 1, g.Concurrency())
}

func TestGovernor_Run_BoundsParallelism(t *testing.T) {
	g := newTestGovernor(100*mb, nil) // concurrency 2
	assert.Equal(t, 2, g.Concurrency())

	var inFlight, peak int32
	var mu sync.Mutex
	barrier := make(chan struct{})

	tasks := make([]func(context.Context), 6)
	for i := range tasks {
		tasks[i] = func(context.Context) {
			n := atomic.AddInt32(&inFlight, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			<-barrier
			atomic.AddInt32(&inFlight, -1)
		}
	}

	done := make(chan struct{})
	go func() {
		g.Run(context.Background(), tasks)
		close(done)
	}()

	close(barrier)
	<-done

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int32(2))
}

func TestGovernor_Run_WaitsForAllTasks(t *testing.T) {
	g := newTestGovernor(500*mb, nil)

	var ran int32
	tasks := make([]func(context.Context), 20)
	for i := range tasks {
		tasks[i] = func(context.Context) { atomic.AddInt32(&ran, 1) }
	}

	g.Run(context.Background(), tasks)
	assert.Equal(t, int32(20), atomic.LoadInt32(&ran))
}

func TestGovernor_Run_PanickingTaskDoesNotAbortBatch(t *testing.T) {
	g := newTestGovernor(500*mb, nil)

	var ran int32
	tasks := []func(context.Context){
		func(context.Context) { panic("boom") },
		func(context.Context) { atomic.AddInt32(&ran, 1) },
		func(context.Context) { atomic.AddInt32(&ran, 1) },
	}

	g.Run(context.Background(), tasks)
	assert.Equal(t, int32(2), atomic.LoadInt32(&ran))
}
