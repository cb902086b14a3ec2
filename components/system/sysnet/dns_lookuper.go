package sysnet

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/miekg/dns"
)

// DNSLookuperParams represents various options for DNSLookuper.
type DNSLookuperParams struct {
	// Server is a DNS server address.
	//
	// Examples:
	//  - "1.1.1.1:53".
	//  - "[2606:4700:4700::1111]:53".
	Server string

	// Net is a transport protocol, "udp" or "tcp", "udp" is used if empty.
	Net string

	// Timeout is a timeout of a single DNS query, DNS client default is used if zero.
	Timeout time.Duration
}

// DNSLookuper looks up host addresses by querying the configured DNS server directly.
//
// Remarks:
//   - A records are queried first, then AAAA records.
//   - Host is treated as a fully qualified domain name, search domains aren't applied.
//   - Truncated UDP reply is queried again over TCP.
//
// References:
//   - https://github.com/miekg/dns
type DNSLookuper struct {
	params    DNSLookuperParams
	client    *dns.Client
	tcpClient *dns.Client
}

// NewDNSLookuper is an initialization of DNSLookuper.
func NewDNSLookuper(params DNSLookuperParams) *DNSLookuper {
	return &DNSLookuper{
		params: params,
		client: &dns.Client{
			Net:     params.Net,
			Timeout: params.Timeout,
		},
		tcpClient: &dns.Client{
			Net:     "tcp",
			Timeout: params.Timeout,
		},
	}
}

// Lookup queries A and AAAA records of host.
//
// Remarks:
//   - Can be used from multiple goroutines.
//   - Non-existent domain is reported as *net.DNSError with IsNotFound set.
func (l *DNSLookuper) Lookup(ctx context.Context, host string) ([]netip.Addr, error) {
	if addr, ok := parseLiteral(host); ok {
		return []netip.Addr{addr}, nil
	}

	var addrs []netip.Addr

	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		answer, err := l.query(ctx, host, qtype)
		if err != nil {
			return nil, err
		}

		addrs = append(addrs, answer...)
	}

	if len(addrs) == 0 {
		return nil, &net.DNSError{
			Err:        "no such host",
			Name:       host,
			Server:     l.params.Server,
			IsNotFound: true,
		}
	}

	return addrs, nil
}

func (l *DNSLookuper) query(ctx context.Context, host string, qtype uint16) ([]netip.Addr, error) {
	msg := &dns.Msg{}
	msg.SetQuestion(dns.Fqdn(host), qtype)

	reply, _, err := l.client.ExchangeContext(ctx, msg, l.params.Server)
	if err == nil && reply.Truncated && l.isUDP() {
		reply, _, err = l.tcpClient.ExchangeContext(ctx, msg, l.params.Server)
	}
	if err != nil {
		return nil, fmt.Errorf("dns-lookuper: query failed: host=%s type=%s server=%s: %w",
			host, dns.TypeToString[qtype], l.params.Server, err)
	}

	switch reply.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, &net.DNSError{
			Err:        "no such host",
			Name:       host,
			Server:     l.params.Server,
			IsNotFound: true,
		}
	default:
		return nil, &net.DNSError{
			Err:    "server misbehaving: " + dns.RcodeToString[reply.Rcode],
			Name:   host,
			Server: l.params.Server,
		}
	}

	var addrs []netip.Addr

	for _, rr := range reply.Answer {
		var ip net.IP

		switch record := rr.(type) {
		case *dns.A:
			ip = record.A
		case *dns.AAAA:
			ip = record.AAAA
		default:
			continue
		}

		if addr, ok := netip.AddrFromSlice(ip); ok {
			addrs = append(addrs, addr.Unmap())
		}
	}

	return addrs, nil
}

func (l *DNSLookuper) isUDP() bool {
	switch l.params.Net {
	case "", "udp", "udp4", "udp6":
		return true
	default:
		return false
	}
}
