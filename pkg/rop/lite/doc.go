// Package lite builds streaming pipelines over channels of rop.ResultOf.
//
// Run and Turnout start a number of worker lines (core.Locomotive) that push
// each input through a stage engine. Engines are built with Ensure, Where,
// Bind, Map, Try and Tap; failed inputs pass through unchanged. Finally folds
// the stream into plain values.
//
// Set core.WithProcessOptions(ctx, true) to drain pending inputs after
// cancellation so upstream stages can exit.
package lite
