package sysnet

import (
	"context"
	"net/netip"
	"slices"
	"time"

	"github.com/open-control-systems/net-resolver/components/core"
)

// ResolveWatcher periodically resolves host and reports address changes.
//
// Remarks:
//   - Should be run with syssched.AsyncTaskRunner.
//   - The last result is kept only to detect changes, it's never served to callers.
type ResolveWatcher struct {
	ctx      context.Context
	resolver Resolver
	handler  ResolveHandler
	host     string
	timeout  time.Duration

	resolved bool
	addrs    []netip.Addr
}

// NewResolveWatcher is an initialization of ResolveWatcher.
//
// Parameters:
//   - ctx - parent context.
//   - resolver to resolve host.
//   - handler to be notified when host addresses are changed.
//   - host - host to watch.
//   - timeout - how long to wait for a single resolving.
func NewResolveWatcher(
	ctx context.Context,
	resolver Resolver,
	handler ResolveHandler,
	host string,
	timeout time.Duration,
) *ResolveWatcher {
	return &ResolveWatcher{
		ctx:      ctx,
		resolver: resolver,
		handler:  handler,
		host:     host,
		timeout:  timeout,
	}
}

// Run resolves host once and notifies the handler if the addresses are changed.
func (w *ResolveWatcher) Run() error {
	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	addrs, err := w.resolver.Resolve(w.host).Wait(ctx)
	if err != nil {
		return err
	}

	if w.resolved && slices.Equal(w.addrs, addrs) {
		return nil
	}

	if w.resolved {
		core.LogInf.Printf("resolve-watcher: addrs changed: host=%s cur=%v new=%v\n",
			w.host, w.addrs, addrs)
	} else {
		core.LogInf.Printf("resolve-watcher: addrs resolved: host=%s addrs=%v\n",
			w.host, addrs)
	}

	w.resolved = true
	w.addrs = addrs

	w.handler.HandleResolve(w.host, addrs)

	return nil
}

// HandleError handles errors from the Run() call.
func (w *ResolveWatcher) HandleError(err error) {
	core.LogErr.Printf("resolve-watcher: failed to resolve: host=%s err=%v\n", w.host, err)
}
