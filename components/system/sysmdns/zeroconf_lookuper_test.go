package sysmdns

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/net-resolver/components/status"
)

func TestZeroconfLookuperUnsupportedHost(t *testing.T) {
	lookuper := NewZeroconfLookuper(ZeroconfLookuperParams{
		Service: "_http._tcp",
		Timeout: time.Second,
	})

	for _, host := range []string{"example.com", "local", "foo.lan"} {
		addrs, err := lookuper.Lookup(context.Background(), host)
		require.ErrorIs(t, err, status.StatusNotSupported, host)
		require.Nil(t, addrs)
	}
}

func TestZeroconfLookuperMatchEntry(t *testing.T) {
	lookuper := NewZeroconfLookuper(ZeroconfLookuperParams{
		Service: "_http._tcp",
		Timeout: time.Second,
	})

	entry := zeroconf.NewServiceEntry("Bonsai GrowLab Firmware", "_http._tcp", "local")
	entry.HostName = "Bonsai-GrowLab.local."
	entry.AddrIPv4 = []net.IP{net.IPv4(192, 168, 4, 1)}
	entry.AddrIPv6 = []net.IP{net.ParseIP("fe80::1")}

	require.Equal(t, []netip.Addr{
		netip.MustParseAddr("192.168.4.1"),
		netip.MustParseAddr("fe80::1"),
	}, lookuper.matchEntry("bonsai-growlab.local", entry))

	require.Nil(t, lookuper.matchEntry("other.local", entry))

	entry.AddrIPv4 = nil
	entry.AddrIPv6 = nil
	require.Nil(t, lookuper.matchEntry("bonsai-growlab.local", entry))
}
