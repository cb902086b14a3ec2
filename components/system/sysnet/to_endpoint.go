package sysnet

import "net/netip"

// ToEndpoint is implemented by values that can be converted into an Endpoint.
//
// Unlike net.ResolveTCPAddr, the conversion never resolves host names.
type ToEndpoint interface {
	// ToEndpoint converts the value into an Endpoint.
	ToEndpoint() (Endpoint, error)
}

// SocketAddr is a resolved socket address, the conversion never fails.
type SocketAddr netip.AddrPort

// ToEndpoint implements ToEndpoint.
func (a SocketAddr) ToEndpoint() (Endpoint, error) {
	return EndpointFromAddrPort(netip.AddrPort(a)), nil
}

// IPPort is a pair of IP address and port, the conversion never fails.
type IPPort struct {
	IP   netip.Addr
	Port uint16
}

// ToEndpoint implements ToEndpoint.
func (p IPPort) ToEndpoint() (Endpoint, error) {
	return EndpointFromIP(p.IP, p.Port), nil
}

// HostPort is a pair of host, either a name or an IP literal, and port.
type HostPort struct {
	Host string
	Port uint16
}

// ToEndpoint implements ToEndpoint, see EndpointFromHostPort.
func (p HostPort) ToEndpoint() (Endpoint, error) {
	return EndpointFromHostPort(p.Host, p.Port)
}

// Target is a string of form <host>:<port>.
type Target string

// ToEndpoint implements ToEndpoint, see ParseEndpoint.
func (t Target) ToEndpoint() (Endpoint, error) {
	return ParseEndpoint(string(t))
}

// ToEndpoint returns the endpoint itself.
func (e Endpoint) ToEndpoint() (Endpoint, error) {
	return e, nil
}
