package sysnet

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

var (
	// ErrInvalidEndpoint indicates that the endpoint string can't be split into host and port.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrInvalidPort indicates that the endpoint port isn't a 16-bit unsigned integer.
	ErrInvalidPort = errors.New("invalid port")
)

// EndpointKind represents known endpoint variants.
type EndpointKind int

const (
	// EndpointKindNone is a kind of the zero Endpoint.
	EndpointKindNone EndpointKind = iota

	// EndpointKindHost is used for an unresolved host name and port.
	EndpointKindHost

	// EndpointKindSocketAddr is used for a resolved IP address and port.
	EndpointKindSocketAddr
)

// String returns string representation of the endpoint kind.
func (k EndpointKind) String() string {
	switch k {
	case EndpointKindHost:
		return "host"
	case EndpointKindSocketAddr:
		return "socket-addr"
	default:
		return "<none>"
	}
}

// Endpoint identifies the target of a connection.
//
// It's either a socket address or a host name which needs to be resolved into a list of
// IP addresses. Endpoint is a comparable value, it never performs any resolving.
type Endpoint struct {
	kind EndpointKind
	host string
	port uint16
	addr netip.AddrPort
}

// EndpointFromAddrPort makes a socket address endpoint.
func EndpointFromAddrPort(addr netip.AddrPort) Endpoint {
	return Endpoint{
		kind: EndpointKindSocketAddr,
		port: addr.Port(),
		addr: addr,
	}
}

// EndpointFromTCPAddr makes a socket address endpoint from TCP address.
//
// Remarks:
//   - Missing IP is treated as the IPv4 unspecified address.
//   - IPv4 address stored in the 16-byte form isn't reported as IPv4-mapped IPv6 address.
func EndpointFromTCPAddr(addr *net.TCPAddr) Endpoint {
	if len(addr.IP) == 0 {
		return EndpointFromIP(netip.IPv4Unspecified(), uint16(addr.Port))
	}

	ap := addr.AddrPort()

	return EndpointFromIP(ap.Addr().Unmap(), ap.Port())
}

// EndpointFromIP makes a socket address endpoint from IP address and port.
func EndpointFromIP(ip netip.Addr, port uint16) Endpoint {
	return EndpointFromAddrPort(netip.AddrPortFrom(ip, port))
}

// EndpointFromHostPort makes an endpoint from host and port.
//
// Remarks:
//   - host is checked for an IP literal first, the socket address endpoint is made for it.
//     IPv6 literal may be enclosed in brackets.
//   - Any other non-empty host is kept unresolved, it can't contain ':', '[' or ']'.
func EndpointFromHostPort(host string, port uint16) (Endpoint, error) {
	if host == "" {
		return Endpoint{}, fmt.Errorf("%w: empty host", ErrInvalidEndpoint)
	}

	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		ip, err := netip.ParseAddr(host[1 : len(host)-1])
		if err != nil {
			return Endpoint{}, fmt.Errorf("%w: invalid bracketed address: %q",
				ErrInvalidEndpoint, host)
		}

		return EndpointFromIP(ip, port), nil
	}

	if ip, err := netip.ParseAddr(host); err == nil {
		return EndpointFromIP(ip, port), nil
	}

	if strings.ContainsAny(host, ":[]") {
		return Endpoint{}, fmt.Errorf("%w: invalid host: %q", ErrInvalidEndpoint, host)
	}

	return Endpoint{
		kind: EndpointKindHost,
		host: host,
		port: port,
	}, nil
}

// ParseEndpoint parses an endpoint of form <host>:<port>.
//
// Remarks:
//   - The string is split at the last colon.
//   - IPv6 literals should be enclosed in brackets, e.g. "[::1]:80".
//
// Examples:
//   - "localhost:1227" - host endpoint.
//   - "0.0.0.0:1227" - socket address endpoint.
//   - "[fe80::1%eth0]:1227" - socket address endpoint.
func ParseEndpoint(s string) (Endpoint, error) {
	idx := strings.LastIndexByte(s, ':')
	if idx < 0 {
		return Endpoint{}, fmt.Errorf("%w: missing port: %q", ErrInvalidEndpoint, s)
	}

	host := s[:idx]

	port, err := strconv.ParseUint(s[idx+1:], 10, 16)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrInvalidPort, s[idx+1:])
	}

	bracketed := strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]")

	if !bracketed && strings.ContainsAny(host, ":[]") {
		return Endpoint{}, fmt.Errorf("%w: IPv6 address should be enclosed in brackets: %q",
			ErrInvalidEndpoint, s)
	}

	return EndpointFromHostPort(host, uint16(port))
}

// Kind returns the endpoint variant.
func (e Endpoint) Kind() EndpointKind {
	return e.kind
}

// IsResolved returns true for the socket address endpoint.
func (e Endpoint) IsResolved() bool {
	return e.kind == EndpointKindSocketAddr
}

// Host returns the unresolved host name, empty for the socket address endpoint.
func (e Endpoint) Host() string {
	return e.host
}

// Port returns the endpoint port.
func (e Endpoint) Port() uint16 {
	return e.port
}

// AddrPort returns the socket address, invalid for the host endpoint.
func (e Endpoint) AddrPort() netip.AddrPort {
	return e.addr
}

// String returns string representation of the endpoint, accepted by ParseEndpoint.
func (e Endpoint) String() string {
	switch e.kind {
	case EndpointKindHost:
		return net.JoinHostPort(e.host, strconv.Itoa(int(e.port)))
	case EndpointKindSocketAddr:
		return e.addr.String()
	default:
		return "<none>"
	}
}
