// Package smoke drives a running shop API through its main workflows and stops at the first
// broken expectation.
package smoke

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/client"
)

// ErrAssertion marks a response that did not match what a scenario expected.
var ErrAssertion = errors.New("assertion failed")

// Scenario is one end-to-end workflow.
type Scenario struct {
	Name string
	Run  func(ctx context.Context, c *client.Client, logger *slog.Logger) error
}

// Scenarios returns the default workflows: product CRUD, order CRUD and color filtering.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "products crud", Run: productsCRUD},
		{Name: "orders crud", Run: ordersCRUD},
		{Name: "color filtering", Run: colorFiltering},
	}
}

type Runner struct {
	client    *client.Client
	logger    *slog.Logger
	scenarios []Scenario
}

func NewRunner(c *client.Client, logger *slog.Logger, scenarios ...Scenario) *Runner {
	if len(scenarios) == 0 {
		scenarios = Scenarios()
	}
	return &Runner{
		client:    c,
		logger:    logger.With(slog.String("service", "smoke")),
		scenarios: scenarios,
	}
}

// Run executes the scenarios in order and returns the first failure, wrapped with the
// scenario name. Connection failures keep client.ErrConnection in their chain.
func (r *Runner) Run(ctx context.Context) error {
	for _, sc := range r.scenarios {
		logger := r.logger.With(slog.String("scenario", sc.Name))
		logger.InfoContext(ctx, "scenario started")

		t1 := time.Now()
		if err := sc.Run(ctx, r.client, logger); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}

		logger.InfoContext(ctx, "scenario passed", slog.Duration("duration", time.Since(t1)))
	}

	r.logger.InfoContext(ctx, "all scenarios passed", slog.Int("count", len(r.scenarios)))
	return nil
}

func check(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAssertion, fmt.Sprintf(format, args...))
}
