// Package with turns block-structured resource scoping into plain
// function calls.
//
// A [Manager] is the acquire/release-with-outcome capability: Enter
// hands back the resource value, Exit releases it and sees how the
// scope ended. The two entry points guarantee that release runs on
// every exit path:
//
//   - [Do] runs an action within the scope of a manager and returns its
//     result. Errors (and panics) raised by the action reach the
//     manager's Exit, which may suppress them.
//   - [Iterate] runs an action that produces a lazy sequence and
//     forwards it to the caller, keeping the resource held until the
//     sequence is exhausted, closed, or fails.
//
// # Why functions over syntax?
//
// defer-based scoping is syntax: it composes only inside a single
// function body. A manager is a value — it can be passed around,
// wrapped, decorated, and handed to [Do] or [Iterate] at the point
// where the scope actually runs. The
// [github.com/on-the-ground/with_ive_go/with/managers] subpackage
// provides adapters (function-literal managers, io.Closer scoping,
// error suppression, zap-logged and time-measured scopes).
//
// # Exit contract
//
// Exit is called exactly once per scope, with the unwinding error as
// its cause (nil on a clean exit). Returning suppressed == true
// swallows the cause: Do returns an empty result, Iterate ends the
// forwarded sequence cleanly. An error returned by Exit itself always
// propagates and may mask the in-flight cause. If Enter fails, Exit is
// never called.
//
// Example:
//
//	n, err := with.Do(ctx, managers.New(openTemp, removeTemp),
//	    func(ctx context.Context, f *os.File) (int64, error) {
//	        return io.Copy(f, src)
//	    })
package with
