package cmdutil

import (
	"os"
	"os/signal"
	"syscall"
)

// InterruptChan returns a channel that is closed once the process receives SIGINT or SIGTERM.
// Every goroutine waiting on it is released by the same signal.
func InterruptChan() <-chan struct{} {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		<-sigChan
		signal.Stop(sigChan)
		close(done)
	}()

	return done
}
