package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/net-resolver/components/core"
	"github.com/open-control-systems/net-resolver/components/system/sysnet"
)

func newEndpointCommand(params *resolverParams) *cobra.Command {
	resolve := false

	cmd := &cobra.Command{
		Use:   "endpoint TARGET...",
		Short: "Classify <host>:<port> targets, optionally resolving host endpoints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resolver sysnet.Resolver

			if resolve {
				closer := &core.FanoutCloser{}
				defer closer.Close()

				r, err := params.newResolver(closer)
				if err != nil {
					return err
				}

				resolver = r
			}

			return printEndpoints(cmd.Context(), cmd.OutOrStdout(), resolver, args, params)
		},
	}

	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve host endpoints")

	return cmd
}

// printEndpoints prints endpoint kind for each target, resolver is optional.
func printEndpoints(
	ctx context.Context,
	w io.Writer,
	resolver sysnet.Resolver,
	targets []string,
	params *resolverParams,
) error {
	failed := 0

	for _, target := range targets {
		endpoint, err := sysnet.Target(target).ToEndpoint()
		if err != nil {
			failed++

			core.LogErr.Printf("endpoint: failed to parse: target=%s err=%v\n", target, err)

			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", target, endpoint.Kind(), endpoint)

		if resolver == nil || endpoint.IsResolved() {
			continue
		}

		ctx, cancel := context.WithTimeout(ctx, params.timeout)
		addrs, err := sysnet.ResolveEndpoint(ctx, resolver, endpoint)
		cancel()

		if err != nil {
			failed++

			core.LogErr.Printf("endpoint: failed to resolve: target=%s err=%v\n", target, err)

			continue
		}

		for _, addr := range addrs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", target, sysnet.EndpointKindSocketAddr, addr)
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to handle %d of %d targets", failed, len(targets))
	}

	return nil
}
