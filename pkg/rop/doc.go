// Package rop implements immutable, reason-carrying results.
//
// A Result holds an ordered list of reasons (Success or Error variants)
// and is failed as soon as one error reason is present. ResultOf[T] adds
// a value that is only reachable on success.
//
// Highlights:
// - Ok/Fail/OkOf/FailOf and friends: construct results
// - With*: append reasons, always returning a new instance
// - Map/Bind/SelectMany/Ensure/Where: transform successful values
// - Tap/TapOnFailure/TapBoth/Match/Fold: leave the railway
// - OkIf/FailIf/OkIfLazy: conditional construction
// - Merge/Combine/CombineValues: aggregate several results
// - Try/TryOf: turn errors and panics into failed results
//
// Callback panics never escape a combinator; they become ExceptionError
// reasons. Nil callbacks and empty required lists panic immediately.
package rop
