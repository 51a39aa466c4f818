package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/mem"
)

// Governor implements ports.TaskRunner. It derives a safe parallelism bound
// from currently available memory (a conservative per-task budget) clamped to
// a small ceiling so the upstream RPC rate limits are respected, and runs
// account tasks through a bounded semaphore.
type Governor struct {
	budgetMB  uint64
	ceiling   int
	available func() (uint64, error) // bytes; injectable for tests
	log       zerolog.Logger
}

// NewGovernor creates a Governor with the given per-task memory budget (MB)
// and concurrency ceiling.
func NewGovernor(budgetMB uint64, ceiling int, log zerolog.Logger) *Governor {
	if budgetMB == 0 {
		budgetMB = 50
	}
	if ceiling < 1 {
		ceiling = 1
	}
	return &Governor{
		budgetMB:  budgetMB,
		ceiling:   ceiling,
		available: availableMemory,
		log:       log,
	}
}

func availableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// Concurrency returns free-memory / budget, clamped to [1, ceiling].
// A failed memory probe degrades to the serial minimum rather than erroring.
func (g *Governor) Concurrency() int {
	free, err := g.available()
	if err != nil {
		g.log.Warn().Err(err).Msg("memory probe failed, using concurrency 1")
		return 1
	}
	freeMB := free / (1024 * 1024)
	n := int(freeMB / g.budgetMB)
	if n < 1 {
		n = 1
	}
	if n > g.ceiling {
		n = g.ceiling
	}
	return n
}

// Run executes tasks with at most Concurrency() in flight and returns only
// after all have settled. A panicking task is logged and counted as settled;
// it never takes down the batch.
func (g *Governor) Run(ctx context.Context, tasks []func(context.Context)) {
	n := g.Concurrency()
	sem := make(chan struct{}, n)
	var wg sync.WaitGroup

	for _, task := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func(task func(context.Context)) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					g.log.Error().Interface("panic", r).Msg("account task panicked")
				}
			}()
			task(ctx)
		}(task)
	}

	wg.Wait()
}
