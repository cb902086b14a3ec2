package sysmdns

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/open-control-systems/net-resolver/components/core"
	"github.com/open-control-systems/net-resolver/components/status"
)

// ZeroconfLookuperParams represents various options for zeroconf mDNS lookuper.
type ZeroconfLookuperParams struct {
	// Service is a mDNS service to browse for.
	//
	// Examples:
	//  - Lookup for all HTTP services over TCP protocol: "_http._tcp".
	Service string

	// Domain is a mDNS domain, "local" is used if empty.
	Domain string

	// Timeout is a mDNS browsing timeout.
	Timeout time.Duration
}

// ZeroconfLookuper looks up addresses of mDNS hosts by browsing the local network.
//
// A host is found when any instance of the configured service advertises it.
//
// References:
//   - https://github.com/grandcat/zeroconf
type ZeroconfLookuper struct {
	params ZeroconfLookuperParams
}

// NewZeroconfLookuper is an initialization of ZeroconfLookuper.
func NewZeroconfLookuper(params ZeroconfLookuperParams) *ZeroconfLookuper {
	if params.Domain == "" {
		params.Domain = "local"
	}

	return &ZeroconfLookuper{params: params}
}

// Lookup browses the local network until host is found or the timeout is expired.
//
// Remarks:
//   - Only hosts in the configured domain are supported, e.g. "bonsai-growlab.local".
//   - IPv4 addresses are returned before IPv6 addresses.
func (l *ZeroconfLookuper) Lookup(ctx context.Context, host string) ([]netip.Addr, error) {
	host = strings.TrimSuffix(host, ".")

	if !strings.HasSuffix(host, "."+l.params.Domain) {
		return nil, fmt.Errorf("zeroconf-lookuper: unsupported host: host=%s domain=%s: %w",
			host, l.params.Domain, status.StatusNotSupported)
	}

	// Resolver is closed when the browsing is finished.
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("zeroconf-lookuper: failed to create resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.params.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	if err := resolver.Browse(ctx, l.params.Service, l.params.Domain, entries); err != nil {
		return nil, fmt.Errorf("zeroconf-lookuper: failed to browse: service=%s: %w",
			l.params.Service, err)
	}

	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return nil, l.notFound(host)
			}

			if addrs := l.matchEntry(host, entry); len(addrs) > 0 {
				return addrs, nil
			}

		case <-ctx.Done():
			return nil, l.notFound(host)
		}
	}
}

func (l *ZeroconfLookuper) matchEntry(host string, entry *zeroconf.ServiceEntry) []netip.Addr {
	if !strings.EqualFold(strings.TrimSuffix(entry.HostName, "."), host) {
		return nil
	}

	var addrs []netip.Addr

	for _, ip := range append(append([]net.IP{}, entry.AddrIPv4...), entry.AddrIPv6...) {
		if addr, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, addr.Unmap())
		}
	}

	if len(addrs) == 0 {
		core.LogWrn.Printf("zeroconf-lookuper: ignore entry: instance=%s host=%s:"+
			" IP address not found\n", entry.Instance, host)
	}

	return addrs
}

func (l *ZeroconfLookuper) notFound(host string) error {
	return &net.DNSError{
		Err:        "no such host",
		Name:       host,
		Server:     "mdns",
		IsNotFound: true,
	}
}
