// Command airide is the terminal front end of the ride-hailing app. Each
// subcommand drives one app screen against the configured backend and keeps
// the signed-in user and registered driver in a local device store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"airide/internal/screens"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", screens.Message(err))
		stop()
		os.Exit(1)
	}
}
