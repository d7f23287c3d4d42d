package gen

import (
	"context"
	"errors"
	"io"
	"iter"
	"sync"

	"github.com/on-the-ground/with_ive_go/shared/panics"
)

// ErrClosed is returned from Yielder.Yield once the consumer has closed
// the generator. Producers should unwind when they see it; returning it
// (or nil) from the producer counts as a clean close.
var ErrClosed = errors.New("gen: generator closed")

// Producer is the body of a generator. It runs on its own goroutine and
// emits values through the Yielder. It is not started until the consumer
// pulls for the first time.
type Producer[T, U any] func(ctx context.Context, y *Yielder[T, U]) error

// Generator is a lazy, bidirectional sequence: the consumer pulls values
// with Next, optionally injecting a value into the suspended producer
// with Send, and may terminate early with Close.
//
// This is safe only in a single consumer goroutine — NEVER share a
// Generator across goroutines. The producer side runs on its own
// goroutine but only ever executes while the consumer is blocked in
// Next, Send, or Close, so the exchange is lockstep.
type Generator[T, U any] struct {
	resume chan U
	yields chan T
	done   chan struct{}
	closed chan struct{}

	closeOnce sync.Once

	// err is written by the producer goroutine before done is closed,
	// and read by the consumer only after done is closed.
	err error

	finished bool
}

// Yielder is the producer-side handle of a Generator.
type Yielder[T, U any] struct {
	g *Generator[T, U]
}

// New starts a Generator running produce. The producer goroutine stays
// parked until the first Next or Send, so creating a generator has no
// observable effect on its own; a generator closed before the first pull
// never runs its body.
//
// A generator that is neither drained nor closed leaks its producer
// goroutine. Callers that may stop early must call Close.
func New[T, U any](ctx context.Context, produce Producer[T, U]) *Generator[T, U] {
	g := &Generator[T, U]{
		resume: make(chan U),
		yields: make(chan T),
		done:   make(chan struct{}),
		closed: make(chan struct{}),
	}

	go func() {
		defer close(g.done)
		defer func() {
			if r := recover(); r != nil {
				g.err = panics.From(r)
			}
		}()

		// Park until the first pull. The value injected by a premature
		// Send is dropped: there is no suspension point to deliver it to.
		select {
		case <-g.resume:
		case <-g.closed:
			return
		}

		g.err = produce(ctx, &Yielder[T, U]{g: g})
	}()

	return g
}

// Yield suspends the producer, hands v to the consumer, and blocks until
// the consumer pulls again. The value injected by the consumer's Send
// (the zero U for a plain Next) is returned on resume.
//
// Yield returns ErrClosed once the consumer has closed the generator,
// giving the producer the chance to run its cleanup before returning.
func (y *Yielder[T, U]) Yield(ctx context.Context, v T) (U, error) {
	g := y.g
	var zero U

	select {
	case g.yields <- v:
	case <-g.closed:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case u := <-g.resume:
		return u, nil
	case <-g.closed:
		return zero, ErrClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Next resumes the producer and returns the next produced value.
// It returns io.EOF once the producer has returned cleanly, and the
// producer's error if it failed.
func (g *Generator[T, U]) Next(ctx context.Context) (T, error) {
	var zero U
	return g.Send(ctx, zero)
}

// Send resumes the producer with an injected value and returns the next
// produced value. The injected value becomes the return value of the
// producer's suspended Yield call. Sending before the first production
// drops the injected value.
func (g *Generator[T, U]) Send(ctx context.Context, v U) (T, error) {
	var zero T
	if g.finished {
		return zero, io.EOF
	}

	select {
	case g.resume <- v:
	case <-g.done:
		return zero, g.finish()
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case out := <-g.yields:
		return out, nil
	case <-g.done:
		return zero, g.finish()
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Close terminates the generator early. The producer's pending Yield
// returns ErrClosed so it can unwind its cleanup; Close waits for the
// producer goroutine to finish. Close is idempotent, and closing an
// already exhausted generator is a no-op.
//
// If the producer returns an error other than ErrClosed while unwinding,
// Close returns it.
func (g *Generator[T, U]) Close(ctx context.Context) error {
	if g.finished {
		return nil
	}

	g.closeOnce.Do(func() {
		close(g.closed)
	})

	select {
	case <-g.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	g.finished = true
	if g.err != nil && !errors.Is(g.err, ErrClosed) {
		return g.err
	}
	return nil
}

// finish records exhaustion and maps the producer outcome to the
// consumer-facing error: io.EOF for a clean return, the producer's error
// otherwise.
func (g *Generator[T, U]) finish() error {
	g.finished = true
	if g.err != nil {
		return g.err
	}
	return io.EOF
}

// FromSlice returns a generator producing the items in order. Injected
// values are ignored.
func FromSlice[T, U any](ctx context.Context, items []T) *Generator[T, U] {
	return New(ctx, func(ctx context.Context, y *Yielder[T, U]) error {
		for _, item := range items {
			if _, err := y.Yield(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
}

// Collect drains the generator into a slice. On error it returns the
// values produced so far alongside the error, following io.Reader
// conventions.
func (g *Generator[T, U]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for {
		v, err := g.Next(ctx)
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return items, err
		}
		items = append(items, v)
	}
}

// All bridges the generator to a range-over-func sequence. Breaking out
// of the loop early closes the generator so its producer can unwind.
func (g *Generator[T, U]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := g.Next(ctx)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(v, err)
				return
			}
			if !yield(v, nil) {
				_ = g.Close(ctx)
				return
			}
		}
	}
}
