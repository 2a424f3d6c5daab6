// Package chain provides a fluent, context-carrying wrapper around
// rop.ResultOf for synchronous railway chains.
//
// Key operations:
// - Start/FromValue: begin a chain from a result or a value
// - Then/ThenTry/Map: continue on success, short-circuit on failure
// - Tap/TapOnFailure: side effects that keep the result
// - Ensure/Where/ValidateAll: turn a success into a failure
// - Or/And/RepeatUntil/While: combine or repeat chains
// - Finally: collapse the chain into a value
package chain
