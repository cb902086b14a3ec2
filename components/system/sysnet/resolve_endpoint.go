package sysnet

import (
	"context"
	"fmt"
	"net/netip"
)

// ResolveEndpoint resolves endpoint into the list of socket addresses.
//
// Remarks:
//   - Socket address endpoint is returned as is, resolver isn't used.
//   - Every resolved IP address is combined with the endpoint port.
//   - ctx limits the waiting time only, the lookup itself isn't cancelled.
func ResolveEndpoint(
	ctx context.Context,
	resolver Resolver,
	endpoint Endpoint,
) ([]netip.AddrPort, error) {
	switch endpoint.Kind() {
	case EndpointKindSocketAddr:
		return []netip.AddrPort{endpoint.AddrPort()}, nil

	case EndpointKindHost:
		addrs, err := resolver.Resolve(endpoint.Host()).Wait(ctx)
		if err != nil {
			return nil, err
		}

		addrPorts := make([]netip.AddrPort, 0, len(addrs))
		for _, addr := range addrs {
			addrPorts = append(addrPorts, netip.AddrPortFrom(addr, endpoint.Port()))
		}

		return addrPorts, nil

	default:
		return nil, fmt.Errorf("resolve-endpoint: %w: kind=%s", ErrInvalidEndpoint,
			endpoint.Kind())
	}
}
