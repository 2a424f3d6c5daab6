package async

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ib-77/fluentrop/pkg/rop"
	"github.com/ib-77/fluentrop/pkg/rop/core"
)

// CombineParallel awaits every future, including the ones after a failure,
// and combines the results with rop.CombineValues.
func CombineParallel[T any](ctx context.Context, futures ...<-chan rop.ResultOf[T]) rop.ResultOf[[]T] {
	results := make([]rop.ResultOf[T], len(futures))
	for i, future := range futures {
		results[i] = Await(ctx, future)
	}
	return rop.CombineValues(results...)
}

// CombineParallelFuncs runs operations concurrently, at most
// core.GetWorkerMaxCount(ctx, len(operations)) at a time, waits for all of
// them and combines the results with rop.Combine.
func CombineParallelFuncs(ctx context.Context, operations ...func(ctx context.Context) rop.Result) rop.Result {
	for _, op := range operations {
		if op == nil {
			panic("async: operation must not be nil")
		}
	}

	results := make([]rop.Result, len(operations))

	var g errgroup.Group
	if limit := core.GetWorkerMaxCount(ctx, len(operations)); limit > 0 {
		g.SetLimit(limit)
	}

	for i, op := range operations {
		g.Go(func() error {
			results[i] = safeResult(ctx, op)
			return nil
		})
	}
	_ = g.Wait()

	return rop.Combine(results...)
}

func safeResult(ctx context.Context, operation func(ctx context.Context) rop.Result) rop.Result {
	if err := ctx.Err(); err != nil {
		return rop.FailWith(canceled(err))
	}
	var out rop.Result
	guard := rop.Try(func() error {
		out = operation(ctx)
		return nil
	}, nil)
	if guard.IsFailed() {
		return guard
	}
	return out
}
