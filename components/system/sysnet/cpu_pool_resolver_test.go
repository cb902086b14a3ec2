package sysnet

import (
	"context"
	"net/netip"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/net-resolver/components/status"
	"github.com/open-control-systems/net-resolver/components/system/syssched"
)

func TestCPUPoolResolverResolveIPLiteral(t *testing.T) {
	resolver := NewCPUPoolResolver(2)
	defer resolver.Close()

	for n := 0; n < 3; n++ {
		addrs, err := resolver.Resolve("127.0.0.1").Get()
		require.Nil(t, err)
		require.Equal(t, []netip.Addr{netip.MustParseAddr("127.0.0.1")}, addrs)
	}

	addrs, err := resolver.Resolve("::1").Get()
	require.Nil(t, err)
	require.Equal(t, []netip.Addr{netip.MustParseAddr("::1")}, addrs)
}

func TestCPUPoolResolverResolveNotBlocking(t *testing.T) {
	resolver := NewCPUPoolResolver(1)
	defer resolver.Close()

	futures := make([]*syssched.Future[[]netip.Addr], 0, 16)
	for n := 0; n < 16; n++ {
		futures = append(futures, resolver.Resolve("127.0.0.1"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	for _, future := range futures {
		addrs, err := future.Wait(ctx)
		require.Nil(t, err)
		require.Len(t, addrs, 1)
	}
}

func TestCPUPoolResolverNumThreads(t *testing.T) {
	resolver := NewCPUPoolResolver(3)
	require.Equal(t, 3, resolver.NumThreads())
	require.Nil(t, resolver.Close())

	resolver = NewCPUPoolResolver(0)
	require.Equal(t, runtime.NumCPU(), resolver.NumThreads())
	require.Nil(t, resolver.Close())

	require.Panics(t, func() { NewCPUPoolResolver(-1) })
}

func TestCPUPoolResolverClone(t *testing.T) {
	resolver := NewCPUPoolResolver(1)
	clone := resolver.Clone()

	require.Equal(t, resolver.NumThreads(), clone.NumThreads())

	require.Nil(t, resolver.Close())
	require.Equal(t, status.StatusInvalidState, resolver.Close())

	// The pool is alive while the clone is open.
	addrs, err := clone.Resolve("127.0.0.1").Get()
	require.Nil(t, err)
	require.Equal(t, []netip.Addr{netip.MustParseAddr("127.0.0.1")}, addrs)

	require.Nil(t, clone.Close())

	_, err = clone.Resolve("127.0.0.1").Get()
	require.ErrorIs(t, err, syssched.ErrPoolClosed)
}
