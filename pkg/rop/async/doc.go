// Package async lifts rop combinators over futures. A future is a
// <-chan rop.ResultOf[T] that delivers exactly one result and closes.
//
// Every callback receives the context; none is invoked when the awaited
// input already failed. Panics and returned errors become failed results.
//
// Key operations:
// - Go/Completed/Await: create and consume futures
// - Map/Bind/Ensure/Tap/TapOnFailure/TapBoth/Match/Try: lifted combinators
// - OkIf/FailIf: conditional factories with context-aware predicates
// - Timeout/RunWithTimeout: race a future against a timer
// - CombineParallel/CombineParallelFuncs: wait for all, then rop.Combine
package async
