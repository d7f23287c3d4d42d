package with

import "context"

// Manager is the resource-manager capability: Enter acquires the
// resource and hands back its value, Exit releases it with the outcome
// of the scope.
//
// Exit receives the error (or reified panic) that is unwinding the
// scope, nil on a clean exit. Returning suppressed == true declares the
// cause swallowed: the scope then completes cleanly with an empty
// result. An error returned by Exit always propagates, and may mask an
// in-flight cause — that is part of the manager contract, not a bug in
// the caller.
type Manager[V any] interface {
	Enter(ctx context.Context) (V, error)
	Exit(ctx context.Context, cause error) (suppressed bool, err error)
}

// exit runs the manager's release hook for the given cause and folds
// the outcome back into a single error: the release error if it failed,
// nil if the cause was suppressed (or there was none), the cause
// otherwise.
func exit[V any](ctx context.Context, m Manager[V], cause error) error {
	suppressed, err := m.Exit(ctx, cause)
	if err != nil {
		return err
	}
	if suppressed {
		return nil
	}
	return cause
}
