package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/net-resolver/components/core"
	"github.com/open-control-systems/net-resolver/components/storage/stcore"
	"github.com/open-control-systems/net-resolver/components/system/sysmdns"
	"github.com/open-control-systems/net-resolver/components/system/sysnet"
	"github.com/open-control-systems/net-resolver/components/system/syssched"
)

const (
	strategySystem = "system"
	strategyDNS    = "dns"
	strategyHosts  = "hosts"
	strategyMdns   = "mdns"
)

type resolverParams struct {
	strategy    string
	threads     int
	timeout     time.Duration
	dnsServer   string
	dnsNet      string
	hostsDB     string
	mdnsService string
}

func (p *resolverParams) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&p.strategy, "strategy", strategySystem,
		"lookup strategy: system, dns, hosts, mdns")
	flags.IntVar(&p.threads, "threads", 0,
		"number of concurrent lookups, 0 means the number of CPUs")
	flags.DurationVar(&p.timeout, "timeout", time.Second*10, "resolving timeout")
	flags.StringVar(&p.dnsServer, "dns-server", "1.1.1.1:53", "DNS server for the dns strategy")
	flags.StringVar(&p.dnsNet, "dns-net", "udp", "DNS transport for the dns strategy: udp, tcp")
	flags.StringVar(&p.hostsDB, "hosts-db", "", "static hosts database file")
	flags.StringVar(&p.mdnsService, "mdns-service", "_http._tcp",
		"mDNS service to browse for the mdns strategy")
}

// openHostsStore opens the static hosts table, an empty table is used if no file is configured.
func (p *resolverParams) openHostsStore(closer *core.FanoutCloser) (*sysnet.HostsStore, error) {
	if p.hostsDB == "" {
		return sysnet.NewHostsStore(&stcore.NoopDB{}), nil
	}

	db, err := stcore.OpenBboltDB(p.hostsDB, "hosts", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open hosts database: path=%s: %w", p.hostsDB, err)
	}

	closer.Add("hosts-db", db)

	return sysnet.NewHostsStore(db), nil
}

// newResolver makes resolver for the configured strategy, resources are registered in closer.
func (p *resolverParams) newResolver(closer *core.FanoutCloser) (sysnet.Resolver, error) {
	if p.strategy == strategySystem {
		resolver := sysnet.NewCPUPoolResolver(p.threads)
		closer.Add("cpu-pool-resolver", resolver)

		return resolver, nil
	}

	lookuper, err := p.newLookuper(closer)
	if err != nil {
		return nil, err
	}

	threads := p.threads
	if threads == 0 {
		threads = 4
	}

	pool := syssched.NewWorkerPool(threads)
	closer.Add("worker-pool", pool)

	return sysnet.NewPoolResolver(pool, lookuper), nil
}

func (p *resolverParams) newLookuper(closer *core.FanoutCloser) (sysnet.Lookuper, error) {
	switch p.strategy {
	case strategyDNS:
		return sysnet.NewDNSLookuper(sysnet.DNSLookuperParams{
			Server:  p.dnsServer,
			Net:     p.dnsNet,
			Timeout: p.timeout,
		}), nil

	case strategyHosts:
		return p.openHostsStore(closer)

	case strategyMdns:
		return sysmdns.NewZeroconfLookuper(sysmdns.ZeroconfLookuperParams{
			Service: p.mdnsService,
			Timeout: p.timeout,
		}), nil

	default:
		return nil, fmt.Errorf("unknown strategy: %s", p.strategy)
	}
}
