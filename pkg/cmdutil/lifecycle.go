package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// StopFunc releases what a Component started. ctx bounds the shutdown.
type StopFunc func(ctx context.Context) error

// Component is a long running part of a binary, such as a server or a poller.
type Component struct {
	Name  string
	Start func(ctx context.Context) (StopFunc, error)
}

// Run starts components in order, blocks until interrupt is closed and then stops them in
// reverse order, each within stopTimeout. When a component fails to start, the ones already
// running are stopped and the start error is returned.
func Run(
	ctx context.Context,
	logger *slog.Logger,
	interrupt <-chan struct{},
	stopTimeout time.Duration,
	components ...Component,
) error {
	stops := make([]StopFunc, 0, len(components))
	names := make([]string, 0, len(components))

	stopAll := func() error {
		var errs []error
		for i := len(stops) - 1; i >= 0; i-- {
			logger.InfoContext(ctx, "stopping component", slog.String("component", names[i]))

			stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
			if err := stops[i](stopCtx); err != nil {
				errs = append(errs, fmt.Errorf("stop %s: %w", names[i], err))
			}
			cancel()
		}
		return errors.Join(errs...)
	}

	for _, c := range components {
		stop, err := c.Start(ctx)
		if err != nil {
			return errors.Join(fmt.Errorf("start %s: %w", c.Name, err), stopAll())
		}
		stops = append(stops, stop)
		names = append(names, c.Name)
		logger.InfoContext(ctx, "component started", slog.String("component", c.Name))
	}

	select {
	case <-interrupt:
	case <-ctx.Done():
	}

	return stopAll()
}

// NoErr adapts a cleanup that cannot fail.
func NoErr(cleanup func()) StopFunc {
	return func(context.Context) error {
		cleanup()
		return nil
	}
}
