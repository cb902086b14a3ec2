package main

import (
	"fmt"
	"io"
	"net/netip"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/net-resolver/components/core"
	"github.com/open-control-systems/net-resolver/components/system/sysnet"
	"github.com/open-control-systems/net-resolver/components/system/syssched"
)

type printResolveHandler struct {
	w io.Writer
}

func (h *printResolveHandler) HandleResolve(host string, addrs []netip.Addr) {
	fmt.Fprintf(h.w, "%s\t%s\t%v\n", time.Now().Format(time.RFC3339), host, addrs)
}

func newWatchCommand(params *resolverParams) *cobra.Command {
	interval := time.Second * 30

	cmd := &cobra.Command{
		Use:   "watch HOST",
		Short: "Periodically resolve the host and print address changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("invalid interval: %s", interval)
			}

			closer := &core.FanoutCloser{}
			defer closer.Close()

			resolver, err := params.newResolver(closer)
			if err != nil {
				return err
			}

			watcher := sysnet.NewResolveWatcher(
				cmd.Context(),
				resolver,
				&printResolveHandler{w: cmd.OutOrStdout()},
				args[0],
				params.timeout,
			)

			runner := syssched.NewAsyncTaskRunner(
				cmd.Context(),
				watcher,
				watcher,
				syssched.AsyncTaskRunnerParams{
					UpdateInterval: interval,
				},
			)
			if err := runner.Start(); err != nil {
				return err
			}

			closer.Add("resolve-watcher", core.FuncCloser(runner.Stop))

			<-runner.Done()

			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", interval, "resolving interval")

	return cmd
}
