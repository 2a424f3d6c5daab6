package core

import (
	"context"
	"errors"
	"sync"

	"github.com/ib-77/fluentrop/pkg/rop"
)

// ErrNoResult is the cause of the failure a Locomotive emits when an engine
// future closes without a result while the context is still live.
var ErrNoResult = errors.New("core: engine produced no result")

// Engine processes one input result into a future of one output result.
// Engines receive failed inputs too; it is up to them to short-circuit.
type Engine[In, Out any] func(ctx context.Context, input rop.ResultOf[In]) <-chan rop.ResultOf[Out]

// CancellationHandlers are notified when the context of a Locomotive ends.
// OnCancel always runs last; the other two see the input (and its output)
// that was in flight at that moment.
type CancellationHandlers[In, Out any] struct {
	OnCancel            func(ctx context.Context, inputCh <-chan rop.ResultOf[In], outCh chan<- rop.ResultOf[Out])
	OnCancelUnprocessed func(ctx context.Context, unprocessed rop.ResultOf[In], outCh chan<- rop.ResultOf[Out])
	OnCancelProcessed   func(ctx context.Context, in rop.ResultOf[In], processed rop.ResultOf[Out], outCh chan<- rop.ResultOf[Out])
}

// DrainOnCancel returns handlers that consume the rest of the input once
// ctx is done, so upstream stages are not left blocked on a send.
func DrainOnCancel[In, Out any]() CancellationHandlers[In, Out] {
	return CancellationHandlers[In, Out]{
		OnCancel: func(_ context.Context, inputCh <-chan rop.ResultOf[In], _ chan<- rop.ResultOf[Out]) {
			go Drain(inputCh)
		},
	}
}

// Locomotive is one worker line: it pulls results from inputCh, runs engine
// on each of them and pushes the outputs to outCh until the input is closed
// or ctx is done. Every input yields exactly one output while ctx is live; a
// panicking engine or one whose future closes empty yields a failed result
// instead of stopping the line. onSent, when set, sees every delivered output.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan rop.ResultOf[In], outCh chan<- rop.ResultOf[Out],
	engine Engine[In, Out],
	handlers CancellationHandlers[In, Out],
	onSent func(ctx context.Context, out rop.ResultOf[Out]), wg *sync.WaitGroup) {
	defer wg.Done()

	stop := func() {
		if handlers.OnCancel != nil {
			handlers.OnCancel(ctx, inputCh, outCh)
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			select {
			case <-ctx.Done():
				if handlers.OnCancelUnprocessed != nil {
					handlers.OnCancelUnprocessed(ctx, in, outCh)
				}
				stop()
				return
			case pr, produced := <-start(ctx, engine, in):
				if !produced {
					if ctx.Err() != nil {
						stop()
						return
					}
					pr = rop.FailOfWith[Out](rop.NewExceptionError(ErrNoResult))
				}

				select {
				case <-ctx.Done():
					if handlers.OnCancelProcessed != nil {
						handlers.OnCancelProcessed(ctx, in, pr, outCh)
					}
					stop()
					return
				case outCh <- pr:
					if onSent != nil {
						onSent(ctx, pr)
					}
				}
			}
		}
	}
}

// start runs engine on in. A panic while starting, or a nil future, becomes
// a completed future holding the failure.
func start[In, Out any](ctx context.Context, engine Engine[In, Out], in rop.ResultOf[In]) <-chan rop.ResultOf[Out] {
	var future <-chan rop.ResultOf[Out]
	started := rop.Try(func() error {
		future = engine(ctx, in)
		return nil
	}, nil)

	switch {
	case started.IsFailed():
		return completed(rop.FailOfErrors[Out](started.Errors()))
	case future == nil:
		return completed(rop.FailOfWith[Out](rop.NewExceptionError(ErrNoResult)))
	default:
		return future
	}
}

func completed[T any](r rop.ResultOf[T]) <-chan rop.ResultOf[T] {
	ch := make(chan rop.ResultOf[T], 1)
	ch <- r
	close(ch)
	return ch
}
