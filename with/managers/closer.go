package managers

import (
	"context"
	"io"

	"github.com/on-the-ground/with_ive_go/with"
)

// Closing scopes an io.Closer: Enter hands it back, Exit closes it.
// It never suppresses; a Close failure propagates and takes precedence
// over the in-flight cause, per the manager contract.
func Closing[C io.Closer](c C) with.Manager[C] {
	return New(
		func(context.Context) (C, error) { return c, nil },
		func(context.Context, error) (bool, error) { return false, c.Close() },
	)
}
