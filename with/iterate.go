package with

import (
	"context"
	"errors"
	"io"

	"github.com/on-the-ground/with_ive_go/gen"
)

// Iterate executes action within the scope of a manager and forwards the
// generator it returns, keeping the resource held for the duration of
// iteration.
//
// Nothing runs until the first pull on the returned generator: entering
// the manager, invoking the action, and pulling the underlying generator
// all happen lazily, so a generator closed before the first pull never
// acquires the resource at all.
//
// Every produced value is forwarded to the consumer before release.
// Values injected with Send are delivered into the underlying generator
// and its responses returned unchanged. Closing the returned generator
// closes the underlying one first, then releases the resource.
//
// Exit runs exactly once whichever way the sequence terminates —
// exhaustion, error, or early close — except when Enter itself fails,
// in which case the failure surfaces from the first pull with no
// release attempted. An error suppressed by the manager terminates the
// forwarded sequence cleanly.
func Iterate[V, T, U any](
	ctx context.Context,
	m Manager[V],
	action func(context.Context, V) (*gen.Generator[T, U], error),
) *gen.Generator[T, U] {
	return gen.New(ctx, func(ctx context.Context, y *gen.Yielder[T, U]) error {
		value, err := m.Enter(ctx)
		if err != nil {
			return err
		}

		inner, err := action(ctx, value)
		if err != nil {
			return exit(ctx, m, err)
		}

		var injected U
		for first := true; ; first = false {
			var (
				produced T
				pullErr  error
			)
			if first {
				produced, pullErr = inner.Next(ctx)
			} else {
				produced, pullErr = inner.Send(ctx, injected)
			}
			if pullErr != nil {
				if errors.Is(pullErr, io.EOF) {
					return exit(ctx, m, nil)
				}
				return exit(ctx, m, pullErr)
			}

			injected, err = y.Yield(ctx, produced)
			if err != nil {
				// The consumer closed (or abandoned) the forwarding
				// generator: close the underlying one before release.
				if closeErr := inner.Close(ctx); closeErr != nil {
					return exit(ctx, m, closeErr)
				}
				return exit(ctx, m, err)
			}
		}
	})
}
