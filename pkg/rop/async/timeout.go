package async

import (
	"context"
	"errors"
	"time"

	"github.com/ib-77/fluentrop/pkg/rop"
)

// Timeout races future against a timer. When the timer fires first the
// output fails with a rop.TimeoutError and future is no longer awaited.
// Cancellation of ctx fails the output as well. A non-positive timeout
// panics.
func Timeout[T any](ctx context.Context, future <-chan rop.ResultOf[T], timeout time.Duration) <-chan rop.ResultOf[T] {
	if timeout <= 0 {
		panic("async: timeout must be positive")
	}

	out := make(chan rop.ResultOf[T], 1)

	go func() {
		defer close(out)

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case r, ok := <-future:
			if !ok {
				out <- rop.FailOfWith[T](rop.NewExceptionError(ErrFutureClosed))
				return
			}
			out <- r
		case <-timer.C:
			out <- rop.FailOfWith[T](rop.NewTimeoutError(timeout))
		case <-ctx.Done():
			out <- rop.FailOfWith[T](canceled(ctx.Err()))
		}
	}()

	return out
}

// RunWithTimeout starts operation with a context bounded by timeout. If the
// deadline passes first, the output fails with a rop.TimeoutError; a failure
// the operation reports because of that deadline is replaced the same way.
func RunWithTimeout[T any](ctx context.Context, timeout time.Duration,
	operation func(ctx context.Context) rop.ResultOf[T]) <-chan rop.ResultOf[T] {
	if timeout <= 0 {
		panic("async: timeout must be positive")
	}
	if operation == nil {
		panic("async: operation must not be nil")
	}

	out := make(chan rop.ResultOf[T], 1)

	go func() {
		defer close(out)

		tctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		future := Go(tctx, operation)

		select {
		case r := <-future:
			if r.IsFailed() && timedOut(ctx, tctx) {
				out <- rop.FailOfWith[T](rop.NewTimeoutError(timeout))
				return
			}
			out <- r
		case <-tctx.Done():
			if timedOut(ctx, tctx) {
				out <- rop.FailOfWith[T](rop.NewTimeoutError(timeout))
				return
			}
			out <- rop.FailOfWith[T](canceled(ctx.Err()))
		}
	}()

	return out
}

func timedOut(parent, bounded context.Context) bool {
	return parent.Err() == nil && errors.Is(bounded.Err(), context.DeadlineExceeded)
}
