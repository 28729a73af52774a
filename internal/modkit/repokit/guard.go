package repokit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNilDependency is returned when a required dependency was never wired
var ErrNilDependency = errors.New("nil dependency")

// Ping checks a dependency within timeout, a ctx that already has a deadline keeps it
func Ping(ctx context.Context, name string, p interface{ Ping(context.Context) error }, timeout time.Duration) error {
	if p == nil {
		return fmt.Errorf("%s: %w", name, ErrNilDependency)
	}
	if _, ok := ctx.Deadline(); !ok && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", name, err)
	}
	return nil
}
