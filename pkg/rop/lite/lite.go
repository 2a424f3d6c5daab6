package lite

import (
	"context"
	"sync"

	"github.com/ib-77/fluentrop/pkg/rop"
	"github.com/ib-77/fluentrop/pkg/rop/async"
	"github.com/ib-77/fluentrop/pkg/rop/core"
)

// Run starts lines workers that push every input through engine. The output
// is closed when the input is exhausted or ctx is done.
func Run[T any](ctx context.Context, inputCh <-chan rop.ResultOf[T],
	engine core.Engine[T, T],
	lines int) <-chan rop.ResultOf[T] {
	return Turnout(ctx, inputCh, engine, lines)
}

// Turnout is Run for engines that change the value type.
func Turnout[In, Out any](ctx context.Context, inputCh <-chan rop.ResultOf[In],
	engine core.Engine[In, Out],
	lines int) <-chan rop.ResultOf[Out] {
	if engine == nil {
		panic("lite: engine must not be nil")
	}
	if lines <= 0 {
		lines = 1
	}

	out := make(chan rop.ResultOf[Out])
	wg := &sync.WaitGroup{}

	handlers := core.CancellationHandlers[In, Out]{}
	if core.IsDrainRemainingEnabled(ctx, false) {
		handlers = core.DrainOnCancel[In, Out]()
	}

	for range lines {
		wg.Add(1)
		go core.Locomotive(ctx, inputCh, out, engine, handlers, nil, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Ensure fails a successful input with err when predicate rejects it.
func Ensure[T any](predicate func(ctx context.Context, v T) (bool, error), err rop.ErrorReason) core.Engine[T, T] {
	if predicate == nil {
		panic("lite: predicate must not be nil")
	}
	if rop.IsNil(err) {
		panic("lite: error must not be nil")
	}
	return func(ctx context.Context, input rop.ResultOf[T]) <-chan rop.ResultOf[T] {
		return async.Ensure(ctx, async.Completed(input), predicate, err)
	}
}

// Where is Ensure with a plain message.
func Where[T any](predicate func(ctx context.Context, v T) bool, message string) core.Engine[T, T] {
	if predicate == nil {
		panic("lite: predicate must not be nil")
	}
	err := rop.NewError(message)
	return Ensure(func(ctx context.Context, v T) (bool, error) {
		return predicate(ctx, v), nil
	}, err)
}

func Bind[In, Out any](binder func(ctx context.Context, v In) rop.ResultOf[Out]) core.Engine[In, Out] {
	if binder == nil {
		panic("lite: binder must not be nil")
	}
	return func(ctx context.Context, input rop.ResultOf[In]) <-chan rop.ResultOf[Out] {
		return async.Bind(ctx, async.Completed(input), binder)
	}
}

func Map[In, Out any](mapper func(ctx context.Context, v In) Out) core.Engine[In, Out] {
	if mapper == nil {
		panic("lite: mapper must not be nil")
	}
	return func(ctx context.Context, input rop.ResultOf[In]) <-chan rop.ResultOf[Out] {
		return async.Map(ctx, async.Completed(input), func(ctx context.Context, v In) (Out, error) {
			return mapper(ctx, v), nil
		})
	}
}

// Try runs operation on a successful input; its error becomes a failure.
func Try[In, Out any](operation func(ctx context.Context, v In) (Out, error)) core.Engine[In, Out] {
	if operation == nil {
		panic("lite: operation must not be nil")
	}
	return func(ctx context.Context, input rop.ResultOf[In]) <-chan rop.ResultOf[Out] {
		return async.Map(ctx, async.Completed(input), operation)
	}
}

// Tap runs action for every input; a failing action fails the result.
func Tap[T any](action func(ctx context.Context, r rop.ResultOf[T]) error) core.Engine[T, T] {
	if action == nil {
		panic("lite: action must not be nil")
	}
	return func(ctx context.Context, input rop.ResultOf[T]) <-chan rop.ResultOf[T] {
		return async.TapBoth(ctx, async.Completed(input), action)
	}
}

type FinallyHandlers[In, Out any] struct {
	OnSuccess func(ctx context.Context, v In) Out
	OnFailure func(ctx context.Context, errs []rop.ErrorReason) Out
}

// Finally folds every result of inputCh into Out. It stops when the input is
// closed or ctx is done.
func Finally[In, Out any](ctx context.Context, inputCh <-chan rop.ResultOf[In],
	handlers FinallyHandlers[In, Out]) <-chan Out {
	if handlers.OnSuccess == nil || handlers.OnFailure == nil {
		panic("lite: finally handlers must not be nil")
	}

	out := make(chan Out)

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				if core.IsDrainRemainingEnabled(ctx, false) {
					go core.Drain(inputCh)
				}
				return
			case in, ok := <-inputCh:
				if !ok {
					return
				}
				v := rop.Fold(in,
					func(v In) Out { return handlers.OnSuccess(ctx, v) },
					func(errs []rop.ErrorReason) Out { return handlers.OnFailure(ctx, errs) })

				select {
				case out <- v:
				case <-ctx.Done():
					if core.IsDrainRemainingEnabled(ctx, false) {
						go core.Drain(inputCh)
					}
					return
				}
			}
		}
	}()

	return out
}
