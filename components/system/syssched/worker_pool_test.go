package syssched

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/net-resolver/components/status"
)

func TestWorkerPoolInvalidSize(t *testing.T) {
	require.Panics(t, func() { NewWorkerPool(0) })
	require.Panics(t, func() { NewWorkerPool(-1) })
}

func TestWorkerPoolSubmit(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	errFoo := errors.New("foo")

	value, err := Submit(pool, func() (string, error) { return "foo", nil }).Get()
	require.Nil(t, err)
	require.Equal(t, "foo", value)

	value, err = Submit(pool, func() (string, error) { return "", errFoo }).Get()
	require.Equal(t, errFoo, err)
	require.Equal(t, "", value)
}

func TestWorkerPoolMoreJobsThanWorkers(t *testing.T) {
	const (
		poolSize = 3
		jobCount = 32
	)

	pool := NewWorkerPool(poolSize)
	defer pool.Close()

	var (
		running    atomic.Int32
		maxRunning atomic.Int32
	)

	releaseCh := make(chan struct{})

	futures := make([]*Future[int], 0, jobCount)
	for n := 0; n < jobCount; n++ {
		futures = append(futures, Submit(pool, func() (int, error) {
			cur := running.Add(1)
			defer running.Add(-1)

			for {
				prev := maxRunning.Load()
				if cur <= prev || maxRunning.CompareAndSwap(prev, cur) {
					break
				}
			}

			<-releaseCh

			return n, nil
		}))
	}

	// Submission never blocks, even when all workers are busy.
	close(releaseCh)

	for n, future := range futures {
		value, err := future.Get()
		require.Nil(t, err)
		require.Equal(t, n, value)
	}

	require.LessOrEqual(t, maxRunning.Load(), int32(poolSize))
}

func TestWorkerPoolFault(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	future := Submit(pool, func() (int, error) {
		panic("boom")
	})

	<-future.Done()

	var fault *WorkerFault
	func() {
		defer func() {
			v := recover()
			require.NotNil(t, v)

			var ok bool
			fault, ok = v.(*WorkerFault)
			require.True(t, ok)
		}()

		_, _ = future.Get()
	}()

	require.Equal(t, "boom", fault.Value)
	require.NotEmpty(t, fault.Stack)

	// The pool keeps working after the fault.
	value, err := Submit(pool, func() (int, error) { return 1, nil }).Get()
	require.Nil(t, err)
	require.Equal(t, 1, value)
}

func TestWorkerPoolGoexit(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	future := Submit(pool, func() (int, error) {
		runtime.Goexit()

		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	select {
	case <-future.Done():
	case <-ctx.Done():
		require.FailNow(t, "future isn't completed after goexit")
	}

	require.PanicsWithError(t, "worker fault: worker goroutine exited", func() {
		_, _ = future.Wait(ctx)
	})

	value, err := Submit(pool, func() (int, error) { return 2, nil }).Get()
	require.Nil(t, err)
	require.Equal(t, 2, value)
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool := NewWorkerPool(1)
	require.Nil(t, pool.Close())

	called := false

	_, err := Submit(pool, func() (int, error) {
		called = true

		return 1, nil
	}).Get()
	require.ErrorIs(t, err, ErrPoolClosed)
	require.ErrorIs(t, err, status.StatusInvalidState)
	require.False(t, called)
}

func TestWorkerPoolCloseAbandonsWaitingJobs(t *testing.T) {
	pool := NewWorkerPool(1)

	startedCh := make(chan struct{})
	releaseCh := make(chan struct{})

	running := Submit(pool, func() (int, error) {
		close(startedCh)
		<-releaseCh

		return 1, nil
	})

	<-startedCh

	waiting := Submit(pool, func() (int, error) { return 2, nil })

	var (
		wg       sync.WaitGroup
		closeErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		closeErr = pool.Close()
	}()

	_, err := waiting.Get()
	require.ErrorIs(t, err, ErrPoolClosed)

	time.Sleep(time.Millisecond * 10)
	close(releaseCh)

	value, err := running.Get()
	require.Nil(t, err)
	require.Equal(t, 1, value)

	wg.Wait()
	require.Nil(t, closeErr)
}
