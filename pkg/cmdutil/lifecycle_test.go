package cmdutil_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/pkg/cmdutil"
)

func TestRun(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	component := func(name string, events *[]string, startErr, stopErr error) cmdutil.Component {
		return cmdutil.Component{
			Name: name,
			Start: func(context.Context) (cmdutil.StopFunc, error) {
				if startErr != nil {
					return nil, startErr
				}
				*events = append(*events, "start "+name)
				return func(ctx context.Context) error {
					_, hasDeadline := ctx.Deadline()
					assert.True(t, hasDeadline)
					*events = append(*events, "stop "+name)
					return stopErr
				}, nil
			},
		}
	}

	t.Run("Should stop in reverse order after interrupt", func(t *testing.T) {
		var events []string
		interrupt := make(chan struct{})
		close(interrupt)

		err := cmdutil.Run(context.Background(), logger, interrupt, time.Second,
			component("event", &events, nil, nil),
			component("http", &events, nil, nil),
			component("relay", &events, nil, nil),
		)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"start event", "start http", "start relay",
			"stop relay", "stop http", "stop event",
		}, events)
	})

	t.Run("Should unwind started components when one fails to start", func(t *testing.T) {
		var events []string
		boom := errors.New("boom")

		err := cmdutil.Run(context.Background(), logger, make(chan struct{}), time.Second,
			component("event", &events, nil, nil),
			component("http", &events, boom, nil),
			component("relay", &events, nil, nil),
		)

		require.ErrorIs(t, err, boom)
		assert.ErrorContains(t, err, "start http")
		assert.Equal(t, []string{"start event", "stop event"}, events)
	})

	t.Run("Should return stop errors after context cancellation", func(t *testing.T) {
		var events []string
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := cmdutil.Run(ctx, logger, make(chan struct{}), time.Second,
			component("http", &events, nil, errors.New("shutdown timeout")),
		)

		assert.ErrorContains(t, err, "stop http: shutdown timeout")
		assert.Equal(t, []string{"start http", "stop http"}, events)
	})

	t.Run("Should adapt infallible cleanup", func(t *testing.T) {
		called := false
		stop := cmdutil.NoErr(func() { called = true })

		require.NoError(t, stop(context.Background()))
		assert.True(t, called)
	})
}
