package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/open-control-systems/net-resolver/components/core"
)

func main() {
	if err := core.SetLogFile(os.Getenv("NET_RESOLVER_LOG_PATH")); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to setup log file: ", err)
	}

	appContext, cancelFunc := signal.NotifyContext(context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer cancelFunc()

	if err := newRootCommand().ExecuteContext(appContext); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	params := &resolverParams{}

	cmd := &cobra.Command{
		Use:          "net-resolver",
		Short:        "Resolve host names and classify connection endpoints",
		SilenceUsage: true,
	}

	params.register(cmd)

	cmd.AddCommand(
		newResolveCommand(params),
		newEndpointCommand(params),
		newHostsCommand(params),
		newWatchCommand(params),
	)

	return cmd
}
