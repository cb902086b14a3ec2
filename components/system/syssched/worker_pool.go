package syssched

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/open-control-systems/net-resolver/components/status"
)

// ErrPoolClosed is reported for jobs that never started because the pool was closed.
var ErrPoolClosed = fmt.Errorf("worker pool closed: %w", status.StatusInvalidState)

// WorkerPool runs submitted jobs asynchronously, at most size jobs at a time.
//
// Remarks:
//   - Can be used from multiple goroutines.
//   - Submission never blocks, jobs wait for a free worker.
//   - There is no ordering guarantee between job completions.
type WorkerPool struct {
	size   int
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWorkerPool is an initialization of WorkerPool.
//
// Parameters:
//   - size - maximum number of jobs running at the same time, should be positive.
func NewWorkerPool(size int) *WorkerPool {
	if size < 1 {
		panic(fmt.Sprintf("worker-pool: invalid size: %d", size))
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		size:   size,
		sem:    semaphore.NewWeighted(int64(size)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Size returns the maximum number of concurrently running jobs.
func (p *WorkerPool) Size() int {
	return p.size
}

// Close stops accepting new jobs and waits for the running ones.
//
// Remarks:
//   - Jobs still waiting for a worker are abandoned with ErrPoolClosed.
func (p *WorkerPool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()

	return nil
}

// Submit schedules fn for the execution on the pool.
//
// Remarks:
//   - A panic inside fn, or runtime.Goexit() called by fn, completes the future
//     with *WorkerFault.
func Submit[T any](p *WorkerPool, fn func() (T, error)) *Future[T] {
	future := NewFuture[T]()

	p.schedule(
		func() {
			finished := false

			defer func() {
				if v := recover(); v != nil {
					future.fail(&WorkerFault{Value: v, Stack: debug.Stack()})
				} else if !finished {
					future.fail(&WorkerFault{
						Value: "worker goroutine exited",
						Stack: debug.Stack(),
					})
				}
			}()

			future.Complete(fn())
			finished = true
		},
		func(err error) {
			var zero T
			future.Complete(zero, err)
		},
	)

	return future
}

func (p *WorkerPool) schedule(run func(), abandon func(err error)) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		abandon(ErrPoolClosed)

		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()

		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			abandon(ErrPoolClosed)

			return
		}
		defer p.sem.Release(1)

		run()
	}()
}
