package async

import (
	"context"
	"errors"

	"github.com/ib-77/fluentrop/pkg/rop"
)

// ErrFutureClosed is reported when a future is closed without delivering.
var ErrFutureClosed = errors.New("async: future closed without a result")

// Go runs operation on its own goroutine and returns a future that
// delivers exactly one result. A panic in operation becomes a failure;
// a context that is already done skips operation.
func Go[T any](ctx context.Context, operation func(ctx context.Context) rop.ResultOf[T]) <-chan rop.ResultOf[T] {
	if operation == nil {
		panic("async: operation must not be nil")
	}

	out := make(chan rop.ResultOf[T], 1)

	go func() {
		defer close(out)

		if err := ctx.Err(); err != nil {
			out <- rop.FailOfWith[T](canceled(err))
			return
		}
		out <- safe(ctx, operation)
	}()

	return out
}

// Completed wraps an existing result into a future.
func Completed[T any](r rop.ResultOf[T]) <-chan rop.ResultOf[T] {
	out := make(chan rop.ResultOf[T], 1)
	out <- r
	close(out)
	return out
}

// Await blocks until future delivers or ctx is done.
func Await[T any](ctx context.Context, future <-chan rop.ResultOf[T]) rop.ResultOf[T] {
	return receive(ctx, future,
		func(err error) rop.ResultOf[T] { return rop.FailOfWith[T](canceled(err)) },
		func() rop.ResultOf[T] { return rop.FailOfWith[T](rop.NewExceptionError(ErrFutureClosed)) })
}

// AwaitResult is Await for non-generic futures.
func AwaitResult(ctx context.Context, future <-chan rop.Result) rop.Result {
	return receive(ctx, future,
		func(err error) rop.Result { return rop.FailWith(canceled(err)) },
		func() rop.Result { return rop.FailWith(rop.NewExceptionError(ErrFutureClosed)) })
}

// Map awaits future and applies mapper to a successful value. mapper is
// never called for a failed input; its error or panic fails the output.
func Map[T, U any](ctx context.Context, future <-chan rop.ResultOf[T],
	mapper func(ctx context.Context, v T) (U, error)) <-chan rop.ResultOf[U] {
	if mapper == nil {
		panic("async: mapper must not be nil")
	}
	return Go(ctx, func(ctx context.Context) rop.ResultOf[U] {
		return rop.Bind(Await(ctx, future), func(v T) rop.ResultOf[U] {
			return rop.TryOf(func() (U, error) { return mapper(ctx, v) }, nil)
		})
	})
}

// Bind awaits future and chains binder on success.
func Bind[T, U any](ctx context.Context, future <-chan rop.ResultOf[T],
	binder func(ctx context.Context, v T) rop.ResultOf[U]) <-chan rop.ResultOf[U] {
	if binder == nil {
		panic("async: binder must not be nil")
	}
	return Go(ctx, func(ctx context.Context) rop.ResultOf[U] {
		return rop.Bind(Await(ctx, future), func(v T) rop.ResultOf[U] {
			return binder(ctx, v)
		})
	})
}

// Ensure awaits future and fails it with err when predicate rejects the value.
func Ensure[T any](ctx context.Context, future <-chan rop.ResultOf[T],
	predicate func(ctx context.Context, v T) (bool, error), err rop.ErrorReason) <-chan rop.ResultOf[T] {
	if predicate == nil {
		panic("async: predicate must not be nil")
	}
	if rop.IsNil(err) {
		panic("async: error must not be nil")
	}
	return Go(ctx, func(ctx context.Context) rop.ResultOf[T] {
		in := Await(ctx, future)
		v, ok := in.TryGetValue()
		if !ok {
			return in
		}
		check := rop.TryOf(func() (bool, error) { return predicate(ctx, v) }, nil)
		if check.IsFailed() {
			return in.WithErrors(check.Errors()...)
		}
		if !check.Value() {
			return in.WithError(err)
		}
		return in
	})
}

// Tap runs action on success and passes the input through. A failing
// action fails the output.
func Tap[T any](ctx context.Context, future <-chan rop.ResultOf[T],
	action func(ctx context.Context, v T) error) <-chan rop.ResultOf[T] {
	if action == nil {
		panic("async: action must not be nil")
	}
	return Go(ctx, func(ctx context.Context) rop.ResultOf[T] {
		in := Await(ctx, future)
		v, ok := in.TryGetValue()
		if !ok {
			return in
		}
		return sideEffect(in, func() error { return action(ctx, v) })
	})
}

// TapOnFailure runs action with the errors of a failed input.
func TapOnFailure[T any](ctx context.Context, future <-chan rop.ResultOf[T],
	action func(ctx context.Context, errs []rop.ErrorReason) error) <-chan rop.ResultOf[T] {
	if action == nil {
		panic("async: action must not be nil")
	}
	return Go(ctx, func(ctx context.Context) rop.ResultOf[T] {
		in := Await(ctx, future)
		if in.IsSuccess() {
			return in
		}
		return sideEffect(in, func() error { return action(ctx, in.Errors()) })
	})
}

// TapBoth runs action with the input whatever its state.
func TapBoth[T any](ctx context.Context, future <-chan rop.ResultOf[T],
	action func(ctx context.Context, r rop.ResultOf[T]) error) <-chan rop.ResultOf[T] {
	if action == nil {
		panic("async: action must not be nil")
	}
	return Go(ctx, func(ctx context.Context) rop.ResultOf[T] {
		in := Await(ctx, future)
		return sideEffect(in, func() error { return action(ctx, in) })
	})
}

// Match awaits future and runs exactly one branch.
func Match[T, U any](ctx context.Context, future <-chan rop.ResultOf[T],
	onSuccess func(ctx context.Context, v T) U,
	onFailure func(ctx context.Context, errs []rop.ErrorReason) U) U {
	if onSuccess == nil || onFailure == nil {
		panic("async: match branches must not be nil")
	}
	return rop.Fold(Await(ctx, future),
		func(v T) U { return onSuccess(ctx, v) },
		func(errs []rop.ErrorReason) U { return onFailure(ctx, errs) })
}

// Try runs operation asynchronously; errors and panics go through handler.
func Try[T any](ctx context.Context, operation func(ctx context.Context) (T, error),
	handler rop.ErrorHandler) <-chan rop.ResultOf[T] {
	if operation == nil {
		panic("async: operation must not be nil")
	}
	return Go(ctx, func(ctx context.Context) rop.ResultOf[T] {
		return rop.TryOf(func() (T, error) { return operation(ctx) }, handler)
	})
}

// OkIf evaluates predicate asynchronously; an error or panic in the
// predicate becomes a failure instead of a verdict.
func OkIf(ctx context.Context, predicate func(ctx context.Context) (bool, error), message string) <-chan rop.Result {
	if predicate == nil {
		panic("async: predicate must not be nil")
	}
	if message == "" {
		panic("async: message must not be empty")
	}
	out := make(chan rop.Result, 1)

	go func() {
		defer close(out)

		if err := ctx.Err(); err != nil {
			out <- rop.FailWith(canceled(err))
			return
		}
		check := rop.TryOf(func() (bool, error) { return predicate(ctx) }, nil)
		if check.IsFailed() {
			out <- check.ToResult()
			return
		}
		out <- rop.OkIf(check.Value(), message)
	}()

	return out
}

// FailIf is OkIf with the verdict inverted.
func FailIf(ctx context.Context, predicate func(ctx context.Context) (bool, error), message string) <-chan rop.Result {
	if predicate == nil {
		panic("async: predicate must not be nil")
	}
	if message == "" {
		panic("async: message must not be empty")
	}
	return OkIf(ctx, func(ctx context.Context) (bool, error) {
		failed, err := predicate(ctx)
		return !failed, err
	}, message)
}

func safe[T any](ctx context.Context, operation func(ctx context.Context) rop.ResultOf[T]) rop.ResultOf[T] {
	var out rop.ResultOf[T]
	guard := rop.Try(func() error {
		out = operation(ctx)
		return nil
	}, nil)
	if guard.IsFailed() {
		return rop.FailOfErrors[T](guard.Errors())
	}
	return out
}

func sideEffect[T any](in rop.ResultOf[T], action func() error) rop.ResultOf[T] {
	if done := rop.Try(action, nil); done.IsFailed() {
		return in.WithErrors(done.Errors()...)
	}
	return in
}

func canceled(err error) rop.ErrorReason {
	return rop.NewExceptionError(err)
}

func receive[R any](ctx context.Context, ch <-chan R, onCancel func(error) R, onClosed func() R) R {
	select {
	case r, ok := <-ch:
		if !ok {
			return onClosed()
		}
		return r
	case <-ctx.Done():
		return onCancel(ctx.Err())
	}
}
