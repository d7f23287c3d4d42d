// Package panics reifies recovered panic values as errors.
//
// A panic that crosses a scope boundary still has to reach the scope's
// release hook as an outcome, so recovered values are wrapped in *Error
// together with the stack captured at recovery time. The original panic
// value stays reachable through the Value field for re-panicking.
package panics

import (
	"fmt"
	"runtime/debug"
)

// Error carries a recovered panic value and the goroutine stack captured
// at the recovery site.
type Error struct {
	Value any
	Stack []byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value for errors.Is/As matching when the
// panic was raised with an error value.
func (e *Error) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// From wraps a recovered value into *Error. Values that already are
// *Error pass through unchanged, so a panic re-raised across nested
// scopes keeps its original capture site.
func From(v any) *Error {
	if err, ok := v.(*Error); ok {
		return err
	}
	return &Error{
		Value: v,
		Stack: debug.Stack(),
	}
}
