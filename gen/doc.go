// Package gen provides a lazy, bidirectional generator for Go.
//
// A generator couples a producer function with a consumer through a
// lockstep channel handoff: the producer runs on its own goroutine but
// only advances while the consumer is blocked pulling, so values are
// exchanged one at a time with no buffering and no parallelism.
//
// # Producing
//
// The producer receives a [Yielder] and emits values by calling
// [Yielder.Yield], which suspends it until the consumer pulls again:
//
//	g := gen.New(ctx, func(ctx context.Context, y *gen.Yielder[int, any]) error {
//	    for i := 0; i < 3; i++ {
//	        if _, err := y.Yield(ctx, i); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
//
// The body does not start until the first pull, matching generator
// semantics: creating a generator is free, and closing it before the
// first pull never runs the body.
//
// # Consuming
//
// [Generator.Next] pulls the next value, returning io.EOF on clean
// exhaustion. [Generator.Send] additionally injects a value, delivered
// as the return value of the producer's suspended Yield. [Generator.Close]
// terminates early: the pending Yield returns [ErrClosed] so the
// producer can unwind its cleanup first.
//
// # Errors and panics
//
// An error returned by the producer surfaces from the consumer's next
// pull. A panic in the producer is recovered and surfaced as a
// *panics.Error, keeping the consumer's goroutine alive.
package gen
