package managers

import (
	"context"
	"errors"

	"github.com/on-the-ground/with_ive_go/with"
)

// Suppress wraps a manager so that in-scope errors matching any target
// (via errors.Is) are swallowed. The inner manager releases first and
// keeps the final word: if it already suppressed the cause, or failed,
// that outcome stands.
func Suppress[V any](m with.Manager[V], targets ...error) with.Manager[V] {
	return New(
		m.Enter,
		func(ctx context.Context, cause error) (bool, error) {
			suppressed, err := m.Exit(ctx, cause)
			if err != nil || suppressed {
				return suppressed, err
			}
			if cause == nil {
				return false, nil
			}
			for _, target := range targets {
				if errors.Is(cause, target) {
					return true, nil
				}
			}
			return false, nil
		},
	)
}
