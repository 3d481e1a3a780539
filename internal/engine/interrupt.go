package engine

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupInterruptHandler returns a context that is cancelled when SIGINT or
// SIGTERM is received, so a long-running Delete can stop gracefully and
// report partial progress instead of terminating abruptly.
func SetupInterruptHandler() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}
