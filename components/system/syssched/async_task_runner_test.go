package syssched

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/net-resolver/components/status"
)

type testAsyncTaskRunnerTask struct {
	mu        sync.Mutex
	err       error
	callCount int
}

func (t *testAsyncTaskRunnerTask) Run() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.callCount++

	return t.err
}

func (t *testAsyncTaskRunnerTask) getCallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.callCount
}

func (t *testAsyncTaskRunnerTask) setError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.err = err
}

type testAsyncTaskRunnerErrorHandler struct {
	mu   sync.Mutex
	errs []error
}

func (h *testAsyncTaskRunnerErrorHandler) HandleError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.errs = append(h.errs, err)
}

func (h *testAsyncTaskRunnerErrorHandler) getErrorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.errs)
}

func TestAsyncTaskRunnerExitOnSuccess(t *testing.T) {
	task := &testAsyncTaskRunnerTask{
		err: status.StatusNotSupported,
	}
	handler := &testAsyncTaskRunnerErrorHandler{}

	runner := NewAsyncTaskRunner(context.Background(), task, handler, AsyncTaskRunnerParams{
		UpdateInterval: time.Millisecond * 10,
		ExitOnSuccess:  true,
	})
	require.Nil(t, runner.Start())

	for task.getCallCount() < 2 {
		time.Sleep(time.Millisecond * 5)
	}

	task.setError(nil)

	select {
	case <-runner.Done():
	case <-time.After(time.Second * 10):
		t.Fatal("runner didn't exit on success")
	}

	require.Nil(t, runner.Stop())
	require.GreaterOrEqual(t, handler.getErrorCount(), 2)
}

func TestAsyncTaskRunnerRunUntilStopped(t *testing.T) {
	task := &testAsyncTaskRunnerTask{}

	runner := NewAsyncTaskRunner(context.Background(), task, nil, AsyncTaskRunnerParams{
		UpdateInterval: time.Millisecond * 10,
	})
	require.Nil(t, runner.Start())
	require.Equal(t, status.StatusInvalidState, runner.Start())

	for task.getCallCount() < 3 {
		time.Sleep(time.Millisecond * 5)
	}

	require.Nil(t, runner.Stop())

	count := task.getCallCount()
	time.Sleep(time.Millisecond * 50)
	require.Equal(t, count, task.getCallCount())
}

func TestAsyncTaskRunnerParentContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	runner := NewAsyncTaskRunner(ctx, &testAsyncTaskRunnerTask{}, nil, AsyncTaskRunnerParams{
		UpdateInterval: time.Hour,
	})
	require.Nil(t, runner.Start())

	cancel()

	select {
	case <-runner.Done():
	case <-time.After(time.Second * 10):
		t.Fatal("runner didn't exit on context cancellation")
	}
}

func TestAsyncTaskRunnerStopNotStarted(t *testing.T) {
	runner := NewAsyncTaskRunner(context.Background(), &testAsyncTaskRunnerTask{}, nil,
		AsyncTaskRunnerParams{UpdateInterval: time.Second})

	require.Nil(t, runner.Stop())
}

func TestAsyncTaskRunnerInvalidInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		require.Panics(t, func() {
			NewAsyncTaskRunner(context.Background(), &testAsyncTaskRunnerTask{}, nil,
				AsyncTaskRunnerParams{UpdateInterval: interval})
		})
	}
}
