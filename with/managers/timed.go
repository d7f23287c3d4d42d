package managers

import (
	"context"
	"time"

	"github.com/rickb777/date/v2/timespan"

	"github.com/on-the-ground/with_ive_go/with"
)

// TimeSpan is the interval a timed scope was held.
type TimeSpan = timespan.TimeSpan

// Timed wraps a manager and records the interval between Enter and
// Exit. Query it with [TimedManager.Span] after the scope has ended.
//
// Like the other stateful wrappers, a TimedManager tracks one scope at
// a time and must not be shared across goroutines.
func Timed[V any](m with.Manager[V]) *TimedManager[V] {
	return &TimedManager[V]{inner: m}
}

type TimedManager[V any] struct {
	inner with.Manager[V]

	from time.Time
	span TimeSpan
	held bool
}

func (tm *TimedManager[V]) Enter(ctx context.Context) (V, error) {
	value, err := tm.inner.Enter(ctx)
	if err == nil {
		tm.from = time.Now()
		tm.held = true
	}
	return value, err
}

func (tm *TimedManager[V]) Exit(ctx context.Context, cause error) (bool, error) {
	if tm.held {
		tm.span = timespan.BetweenTimes(tm.from, time.Now())
		tm.held = false
	}
	return tm.inner.Exit(ctx, cause)
}

// Span returns the interval of the most recently completed scope. The
// zero TimeSpan is returned if no scope has completed yet.
func (tm *TimedManager[V]) Span() TimeSpan {
	return tm.span
}
