package with

import (
	"context"

	"github.com/on-the-ground/with_ive_go/shared/panics"
)

// Do executes action within the scope of a manager.
//
//   - The manager is entered first; an Enter failure propagates directly
//     and Exit is never called.
//   - On every other path Exit is called exactly once, after the action.
//   - If the action fails, the error is handed to Exit. A failing Exit
//     takes precedence (it may mask the action error, per the manager
//     contract). If Exit suppresses the cause, Do returns the zero
//     result and a nil error; otherwise the action's error propagates
//     unchanged.
//   - A panic in the action reaches Exit as a *panics.Error and is
//     re-raised with its original value unless suppressed.
func Do[V, R any](
	ctx context.Context,
	m Manager[V],
	action func(context.Context, V) (R, error),
) (R, error) {
	var zero R

	value, err := m.Enter(ctx)
	if err != nil {
		return zero, err
	}

	var (
		result    R
		cause     error
		panicked  bool
		panickedV any
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
				panickedV = r
				cause = panics.From(r)
			}
		}()
		result, cause = action(ctx, value)
	}()

	if cause != nil {
		suppressed, exitErr := m.Exit(ctx, cause)
		if exitErr != nil {
			return zero, exitErr
		}
		if suppressed {
			return zero, nil
		}
		if panicked {
			panic(panickedV)
		}
		return zero, cause
	}

	if _, exitErr := m.Exit(ctx, nil); exitErr != nil {
		return zero, exitErr
	}
	return result, nil
}
