// Package roplog writes rop results to the zerolog logger carried by a
// context (see zerolog.Ctx). One event is emitted per result, listing every
// reason with its kind, message and tags.
package roplog

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ib-77/fluentrop/pkg/rop"
)

// Settings selects the level used for successful and failed results.
type Settings struct {
	SuccessLevel zerolog.Level
	FailureLevel zerolog.Level
}

var DefaultSettings = Settings{
	SuccessLevel: zerolog.DebugLevel,
	FailureLevel: zerolog.ErrorLevel,
}

type settingsKey struct{}

// WithSettings stores s on ctx for later Log calls.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// SettingsFrom returns the settings stored on ctx or DefaultSettings.
func SettingsFrom(ctx context.Context) Settings {
	if s, ok := ctx.Value(settingsKey{}).(Settings); ok {
		return s
	}
	return DefaultSettings
}

// Log writes r under label.
func Log(ctx context.Context, r rop.Outcome, label string) {
	event(ctx, r, label).Msg(message(r))
}

// LogOf is Log that also records the value of a successful result.
func LogOf[T any](ctx context.Context, r rop.ResultOf[T], label string) {
	e := event(ctx, r, label)
	if v, ok := r.TryGetValue(); ok {
		e = e.Interface("value", v)
	}
	e.Msg(message(r))
}

// LogIfFailed logs r only when it failed.
func LogIfFailed(ctx context.Context, r rop.Outcome, label string) {
	if r.IsFailed() {
		Log(ctx, r, label)
	}
}

func event(ctx context.Context, r rop.Outcome, label string) *zerolog.Event {
	settings := SettingsFrom(ctx)
	level := settings.SuccessLevel
	if r.IsFailed() {
		level = settings.FailureLevel
	}

	e := zerolog.Ctx(ctx).WithLevel(level).
		Str("context", label).
		Str("result_id", r.ID().String()).
		Bool("is_success", r.IsSuccess()).
		Array("reasons", reasons(r.Reasons()))
	if r.IsFailed() {
		e = e.Err(r.Err())
	}
	return e
}

func reasons(rs []rop.Reason) *zerolog.Array {
	arr := zerolog.Arr()
	for _, reason := range rs {
		d := zerolog.Dict().
			Str("kind", rop.Kind(reason)).
			Str("message", reason.Message())
		if tags := reason.Tags(); len(tags) > 0 {
			d = d.Fields(tags)
		}
		arr = arr.Dict(d)
	}
	return arr
}

func message(r rop.Outcome) string {
	if r.IsSuccess() {
		return "result succeeded"
	}
	return "result failed"
}
