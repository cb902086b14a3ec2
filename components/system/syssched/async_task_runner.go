package syssched

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/open-control-systems/net-resolver/components/status"
)

// AsyncTaskRunnerParams represents various options for AsyncTaskRunner.
type AsyncTaskRunnerParams struct {
	// UpdateInterval is an interval between task runs.
	UpdateInterval time.Duration

	// ExitOnSuccess stops the runner after the first successful task run.
	ExitOnSuccess bool
}

// AsyncTaskRunner periodically runs task in the standalone goroutine.
type AsyncTaskRunner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	doneCh  chan struct{}
	task    Task
	handler ErrorHandler
	params  AsyncTaskRunnerParams

	mu      sync.Mutex
	started bool
}

// NewAsyncTaskRunner is an initialization of AsyncTaskRunner.
//
// Parameters:
//   - ctx - parent context, the runner stops when it's done.
//   - task - task to run periodically.
//   - handler - optional handler of the task errors.
//   - params - various runner options, UpdateInterval should be positive.
func NewAsyncTaskRunner(
	ctx context.Context,
	task Task,
	handler ErrorHandler,
	params AsyncTaskRunnerParams,
) *AsyncTaskRunner {
	if params.UpdateInterval <= 0 {
		panic(fmt.Sprintf("async-task-runner: invalid update interval: %s",
			params.UpdateInterval))
	}

	ctx, cancel := context.WithCancel(ctx)

	return &AsyncTaskRunner{
		ctx:     ctx,
		cancel:  cancel,
		doneCh:  make(chan struct{}),
		task:    task,
		handler: handler,
		params:  params,
	}
}

// Start begins asynchronous task processing.
func (r *AsyncTaskRunner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return status.StatusInvalidState
	}

	r.started = true

	go r.run()

	return nil
}

// Stop ends asynchronous task processing and waits until the runner is finished.
func (r *AsyncTaskRunner) Stop() error {
	r.cancel()

	r.mu.Lock()
	started := r.started
	r.mu.Unlock()

	if started {
		<-r.doneCh
	}

	return nil
}

// Done returns a channel that is closed when the runner is finished.
func (r *AsyncTaskRunner) Done() <-chan struct{} {
	return r.doneCh
}

func (r *AsyncTaskRunner) run() {
	defer close(r.doneCh)

	ticker := time.NewTicker(r.params.UpdateInterval)
	defer ticker.Stop()

	if r.runTask() {
		return
	}

	for {
		select {
		case <-ticker.C:
			if r.runTask() {
				return
			}

		case <-r.ctx.Done():
			return
		}
	}
}

func (r *AsyncTaskRunner) runTask() bool {
	if err := r.task.Run(); err != nil {
		if r.handler != nil {
			r.handler.HandleError(err)
		}

		return false
	}

	return r.params.ExitOnSuccess
}
