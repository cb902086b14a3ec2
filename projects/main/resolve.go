package main

import (
	"context"
	"fmt"
	"io"
	"net/netip"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/open-control-systems/net-resolver/components/core"
	"github.com/open-control-systems/net-resolver/components/system/sysnet"
)

func newResolveCommand(params *resolverParams) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve HOST...",
		Short: "Resolve host names into IP addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closer := &core.FanoutCloser{}
			defer closer.Close()

			resolver, err := params.newResolver(closer)
			if err != nil {
				return err
			}

			return resolveHosts(cmd.Context(), cmd.OutOrStdout(), resolver, args,
				params)
		},
	}
}

// resolveHosts submits all hosts at once and prints the results in the argument order.
func resolveHosts(
	ctx context.Context,
	w io.Writer,
	resolver sysnet.Resolver,
	hosts []string,
	params *resolverParams,
) error {
	ctx, cancel := context.WithTimeout(ctx, params.timeout)
	defer cancel()

	results := make([][]netip.Addr, len(hosts))
	errs := make([]error, len(hosts))

	group := errgroup.Group{}

	for n, host := range hosts {
		future := resolver.Resolve(host)

		group.Go(func() error {
			results[n], errs[n] = future.Wait(ctx)

			return nil
		})
	}

	// Failures are kept in errs, every host is reported below.
	_ = group.Wait()

	failed := 0

	for n, host := range hosts {
		if errs[n] != nil {
			failed++

			core.LogErr.Printf("resolve: failed to resolve: host=%s err=%v\n", host, errs[n])

			continue
		}

		for _, addr := range results[n] {
			fmt.Fprintf(w, "%s\t%s\n", host, addr)
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to resolve %d of %d hosts", failed, len(hosts))
	}

	return nil
}
