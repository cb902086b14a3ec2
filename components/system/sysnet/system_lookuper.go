package sysnet

import (
	"context"
	"net"
	"net/netip"
)

// SystemLookuper looks up host addresses with the platform resolver.
type SystemLookuper struct {
	resolver *net.Resolver
}

// NewSystemLookuper is an initialization of SystemLookuper.
//
// Parameters:
//   - resolver - platform resolver, net.DefaultResolver is used if nil.
func NewSystemLookuper(resolver *net.Resolver) *SystemLookuper {
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	return &SystemLookuper{resolver: resolver}
}

// Lookup resolves host into both IPv4 and IPv6 addresses.
//
// Remarks:
//   - IP literal is returned as is, without consulting the platform.
func (l *SystemLookuper) Lookup(ctx context.Context, host string) ([]netip.Addr, error) {
	if addr, ok := parseLiteral(host); ok {
		return []netip.Addr{addr}, nil
	}

	addrs, err := l.resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil, err
	}

	return unmapAddrs(addrs), nil
}
