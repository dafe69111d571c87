package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/patchcheck/internal/cmd"
	"github.com/dendrascience/patchcheck/patchfile"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, cmd.NewRootCmd())
	stop()

	// Retry deletions that failed while the command ran. Paths that still fail are
	// reported through the logger the command configured.
	patchfile.DeferredCleanup.Flush()
	if err != nil {
		os.Exit(1)
	}
}
