package sysnet

import (
	"fmt"
	"net/netip"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/open-control-systems/net-resolver/components/status"
	"github.com/open-control-systems/net-resolver/components/system/syssched"
)

// CPUPoolResolver resolves host names with the platform resolver on a fixed-size pool.
//
// Remarks:
//   - Can be used from multiple goroutines.
//   - Clone() shares the pool, the pool is closed when the last handle is closed.
type CPUPoolResolver struct {
	shared *sharedPool
	once   sync.Once
}

// NewCPUPoolResolver is an initialization of CPUPoolResolver.
//
// Parameters:
//   - numThreads - number of lookups running at the same time, zero means the number
//     of logical CPUs.
func NewCPUPoolResolver(numThreads int) *CPUPoolResolver {
	if numThreads < 0 {
		panic(fmt.Sprintf("cpu-pool-resolver: invalid number of threads: %d", numThreads))
	}

	if numThreads == 0 {
		numThreads = runtime.NumCPU()
	}

	pool := syssched.NewWorkerPool(numThreads)

	shared := &sharedPool{
		pool:     pool,
		resolver: NewPoolResolver(pool, NewSystemLookuper(nil)),
	}
	shared.refs.Store(1)

	return &CPUPoolResolver{shared: shared}
}

// Resolve submits host lookup to the pool.
func (r *CPUPoolResolver) Resolve(host string) *syssched.Future[[]netip.Addr] {
	return r.shared.resolver.Resolve(host)
}

// NumThreads returns the pool size.
func (r *CPUPoolResolver) NumThreads() int {
	return r.shared.pool.Size()
}

// Clone returns a new handle sharing the same pool.
func (r *CPUPoolResolver) Clone() *CPUPoolResolver {
	r.shared.refs.Add(1)

	return &CPUPoolResolver{shared: r.shared}
}

// Close releases the handle.
//
// Remarks:
//   - Lookups still waiting for a free thread fail once the last handle is closed.
//   - Closing the same handle twice returns status.StatusInvalidState.
func (r *CPUPoolResolver) Close() error {
	err := status.StatusInvalidState

	r.once.Do(func() {
		err = nil

		if r.shared.refs.Add(-1) == 0 {
			err = r.shared.pool.Close()
		}
	})

	return err
}

type sharedPool struct {
	pool     *syssched.WorkerPool
	resolver *PoolResolver
	refs     atomic.Int32
}
