package syssched

import (
	"context"
	"fmt"
	"sync"

	"github.com/open-control-systems/net-resolver/components/status"
)

// WorkerFault is raised when a job terminates abnormally instead of returning a result.
//
// Remarks:
//   - It's never returned as an ordinary error, Future.Wait() panics with it.
type WorkerFault struct {
	// Value is the value the job panicked with.
	Value any

	// Stack is the stack trace of the panicked goroutine.
	Stack []byte
}

// Error returns string representation of the fault.
func (f *WorkerFault) Error() string {
	return fmt.Sprintf("worker fault: %v", f.Value)
}

// Future is a result of an asynchronous operation, completed exactly once.
type Future[T any] struct {
	doneCh chan struct{}
	once   sync.Once

	value T
	err   error
	fault *WorkerFault
}

// NewFuture creates a pending future, completed with Complete().
func NewFuture[T any]() *Future[T] {
	return &Future[T]{
		doneCh: make(chan struct{}),
	}
}

// CompletedFuture creates a future already completed with value and err.
func CompletedFuture[T any](value T, err error) *Future[T] {
	f := NewFuture[T]()
	f.Complete(value, err)

	return f
}

// Complete sets the result of the future.
//
// Remarks:
//   - Only the first call has effect.
func (f *Future[T]) Complete(value T, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err

		close(f.doneCh)
	})
}

// Done returns a channel that is closed when the future is completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.doneCh
}

// Wait blocks until the future is completed or ctx is done.
//
// Remarks:
//   - status.StatusTimeout is returned if ctx is done first, the operation itself
//     isn't cancelled.
//   - Completed result is returned even if ctx is already done.
//   - Panics with *WorkerFault if the operation terminated abnormally.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.doneCh:
	default:
		select {
		case <-f.doneCh:
		case <-ctx.Done():
			var zero T

			return zero, fmt.Errorf("%w: %w", status.StatusTimeout, ctx.Err())
		}
	}

	if f.fault != nil {
		panic(f.fault)
	}

	return f.value, f.err
}

// Get blocks until the future is completed.
func (f *Future[T]) Get() (T, error) {
	return f.Wait(context.Background())
}

func (f *Future[T]) fail(fault *WorkerFault) {
	f.once.Do(func() {
		f.fault = fault

		close(f.doneCh)
	})
}
