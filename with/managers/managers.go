// Package managers provides ready-made resource managers for
// [github.com/on-the-ground/with_ive_go/with].
package managers

import (
	"context"

	"github.com/on-the-ground/with_ive_go/with"
)

// New builds a manager from a pair of function literals. A nil exit is
// treated as a no-op release that never suppresses.
func New[V any](
	enter func(context.Context) (V, error),
	exit func(context.Context, error) (bool, error),
) with.Manager[V] {
	if exit == nil {
		exit = func(context.Context, error) (bool, error) { return false, nil }
	}
	return funcManager[V]{enter: enter, exit: exit}
}

type funcManager[V any] struct {
	enter func(context.Context) (V, error)
	exit  func(context.Context, error) (bool, error)
}

func (m funcManager[V]) Enter(ctx context.Context) (V, error) {
	return m.enter(ctx)
}

func (m funcManager[V]) Exit(ctx context.Context, cause error) (bool, error) {
	return m.exit(ctx, cause)
}

// Value returns a trivial manager: Enter hands back v, Exit does
// nothing and never suppresses. Useful as the innermost manager under
// wrappers like [Suppress] or [Logged].
func Value[V any](v V) with.Manager[V] {
	return New(
		func(context.Context) (V, error) { return v, nil },
		nil,
	)
}
