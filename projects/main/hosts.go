package main

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/net-resolver/components/core"
)

func newHostsCommand(params *resolverParams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "Manage static hosts used by the hosts strategy",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if params.hostsDB == "" {
				return fmt.Errorf("--hosts-db is required")
			}

			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add HOST IP...",
			Short: "Set IP addresses of the host",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(_ *cobra.Command, args []string) error {
				addrs := make([]netip.Addr, 0, len(args)-1)
				for _, arg := range args[1:] {
					addr, err := netip.ParseAddr(arg)
					if err != nil {
						return err
					}

					addrs = append(addrs, addr)
				}

				closer := &core.FanoutCloser{}
				defer closer.Close()

				store, err := params.openHostsStore(closer)
				if err != nil {
					return err
				}

				return store.Add(args[0], addrs)
			},
		},
		&cobra.Command{
			Use:   "remove HOST",
			Short: "Remove the host",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				closer := &core.FanoutCloser{}
				defer closer.Close()

				store, err := params.openHostsStore(closer)
				if err != nil {
					return err
				}

				return store.Remove(args[0])
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all hosts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				closer := &core.FanoutCloser{}
				defer closer.Close()

				store, err := params.openHostsStore(closer)
				if err != nil {
					return err
				}

				items, err := store.GetItems()
				if err != nil {
					return err
				}

				for _, item := range items {
					addrs := make([]string, 0, len(item.Addrs))
					for _, addr := range item.Addrs {
						addrs = append(addrs, addr.String())
					}

					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.Host,
						strings.Join(addrs, " "))
				}

				return nil
			},
		},
	)

	return cmd
}
