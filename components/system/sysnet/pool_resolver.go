package sysnet

import (
	"context"
	"net/netip"

	"github.com/open-control-systems/net-resolver/components/system/syssched"
)

// PoolResolver performs blocking lookups on the worker pool.
type PoolResolver struct {
	pool     *syssched.WorkerPool
	lookuper Lookuper
}

// NewPoolResolver is an initialization of PoolResolver.
//
// Parameters:
//   - pool to run lookups on, it isn't closed by the resolver.
//   - lookuper to perform an actual lookup.
func NewPoolResolver(pool *syssched.WorkerPool, lookuper Lookuper) *PoolResolver {
	return &PoolResolver{
		pool:     pool,
		lookuper: lookuper,
	}
}

// Resolve submits host lookup to the worker pool.
//
// Remarks:
//   - Can be used from multiple goroutines.
//   - Lookup can't be cancelled once submitted.
func (r *PoolResolver) Resolve(host string) *syssched.Future[[]netip.Addr] {
	return syssched.Submit(r.pool, func() ([]netip.Addr, error) {
		return r.lookuper.Lookup(context.Background(), host)
	})
}
