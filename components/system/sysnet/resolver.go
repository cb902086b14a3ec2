package sysnet

import (
	"context"
	"net/netip"

	"github.com/open-control-systems/net-resolver/components/system/syssched"
)

// Resolver resolves host names into IP addresses.
//
// Remarks:
//   - Resolve should never block the caller.
//   - Errors of the underlying lookup are reported unchanged.
type Resolver interface {
	// Resolve starts resolving host, e.g. "example.com" or "127.0.0.1", into the list of
	// IP addresses. The returned future is completed when resolving is finished.
	Resolve(host string) *syssched.Future[[]netip.Addr]
}

// Lookuper performs a blocking lookup of host IP addresses.
type Lookuper interface {
	// Lookup returns IP addresses of host in the order they were received.
	Lookup(ctx context.Context, host string) ([]netip.Addr, error)
}

// LookupFunc is a function type that implements the Lookuper interface.
type LookupFunc func(ctx context.Context, host string) ([]netip.Addr, error)

// Lookup calls the function itself to fulfill the Lookuper interface.
func (f LookupFunc) Lookup(ctx context.Context, host string) ([]netip.Addr, error) {
	return f(ctx, host)
}

// ResolveHandler to handle the result of host resolving.
type ResolveHandler interface {
	// HandleResolve handles the resolving result of host to addrs.
	HandleResolve(host string, addrs []netip.Addr)
}

// unmapAddrs converts IPv4-mapped IPv6 addresses into plain IPv4 addresses in place.
func unmapAddrs(addrs []netip.Addr) []netip.Addr {
	for n, addr := range addrs {
		addrs[n] = addr.Unmap()
	}

	return addrs
}

// parseLiteral returns the address if host is an IP literal.
func parseLiteral(host string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}

	return addr.Unmap(), true
}
