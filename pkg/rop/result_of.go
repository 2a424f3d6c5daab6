package rop

import "fmt"

// ResultOf is a Result that also carries a value. The value is only
// reachable while the result is successful.
type ResultOf[T any] struct {
	Result
	value T
}

// Value returns the value of a successful result. On a failed result it
// panics with a *ResultError naming every error message; use Get,
// TryGetValue or GetValueOr when failure is expected.
func (r ResultOf[T]) Value() T {
	if r.IsFailed() {
		panic(&ResultError{op: "value access", errs: r.Errors()})
	}
	return r.value
}

// Get returns the value together with Err.
func (r ResultOf[T]) Get() (T, error) {
	if err := r.Err(); err != nil {
		var zero T
		return zero, err
	}
	return r.value, nil
}

func (r ResultOf[T]) TryGetValue() (T, bool) {
	if r.IsFailed() {
		var zero T
		return zero, false
	}
	return r.value, true
}

func (r ResultOf[T]) GetValueOr(fallback T) T {
	if r.IsFailed() {
		return fallback
	}
	return r.value
}

// GetValueOrElse computes the fallback lazily.
func (r ResultOf[T]) GetValueOrElse(fallback func() T) T {
	if fallback == nil {
		panic(nilArgument("fallback"))
	}
	if r.IsFailed() {
		return fallback()
	}
	return r.value
}

// GetValueOrHandle derives the fallback from the errors.
func (r ResultOf[T]) GetValueOrHandle(handler func([]ErrorReason) T) T {
	if handler == nil {
		panic(nilArgument("handler"))
	}
	if r.IsFailed() {
		return handler(r.Errors())
	}
	return r.value
}

// ToResult drops the value and keeps every reason.
func (r ResultOf[T]) ToResult() Result {
	return newResult(r.reasons)
}

func (r ResultOf[T]) String() string {
	if r.IsSuccess() {
		return fmt.Sprintf("%s, Value='%v'", r.Result.String(), r.value)
	}
	return r.Result.String()
}

func (r ResultOf[T]) WithReason(reason Reason) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithReason(reason), value: r.value}
}

func (r ResultOf[T]) WithReasons(reasons ...Reason) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithReasons(reasons...), value: r.value}
}

func (r ResultOf[T]) WithSuccess(success SuccessReason) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithSuccess(success), value: r.value}
}

func (r ResultOf[T]) WithSuccessMessage(message string) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithSuccessMessage(message), value: r.value}
}

func (r ResultOf[T]) WithSuccesses(successes ...SuccessReason) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithSuccesses(successes...), value: r.value}
}

func (r ResultOf[T]) WithError(err ErrorReason) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithError(err), value: r.value}
}

func (r ResultOf[T]) WithErrorMessage(message string) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithErrorMessage(message), value: r.value}
}

func (r ResultOf[T]) WithErrors(errs ...ErrorReason) ResultOf[T] {
	return ResultOf[T]{Result: r.Result.WithErrors(errs...), value: r.value}
}

// Tap runs action with the value when the result is successful and
// returns r. A panicking action turns the result into a failure.
func (r ResultOf[T]) Tap(action func(T)) ResultOf[T] {
	if action == nil {
		panic(nilArgument("action"))
	}
	if r.IsFailed() {
		return r
	}
	if err := protectAction(func() { action(r.value) }); err != nil {
		return r.WithError(NewExceptionError(err))
	}
	return r
}

func (r ResultOf[T]) TapOnFailure(action func(ErrorReason)) ResultOf[T] {
	return r.keep(r.Result.TapOnFailure(action))
}

func (r ResultOf[T]) TapOnFailures(action func([]ErrorReason)) ResultOf[T] {
	return r.keep(r.Result.TapOnFailures(action))
}

func (r ResultOf[T]) TapBoth(action func(ResultOf[T])) ResultOf[T] {
	if action == nil {
		panic(nilArgument("action"))
	}
	if err := protectAction(func() { action(r) }); err != nil {
		return r.WithError(NewExceptionError(err))
	}
	return r
}

// Match runs onSuccess with the value or onFailure with the errors.
func (r ResultOf[T]) Match(onSuccess func(T), onFailure func([]ErrorReason)) {
	if onSuccess == nil {
		panic(nilArgument("onSuccess"))
	}
	r.Result.Match(func() { onSuccess(r.value) }, onFailure)
}

// keep returns r itself when inner is the untouched receiver.
func (r ResultOf[T]) keep(inner Result) ResultOf[T] {
	if inner.id == r.id && len(inner.reasons) == len(r.reasons) {
		return r
	}
	return ResultOf[T]{Result: inner, value: r.value}
}
