// Command waapi calls WAAPI procedures from the shell.
//
//	waapi info
//	waapi call ak.wwise.core.object.get --args '{"from":{"path":["\\Events"]}}' --options '{"return":["name"]}'
//	waapi ops ak.wwise.core.undo
//	waapi subscribe ak.wwise.ui.selectionChanged
//	waapi instances --watch
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
