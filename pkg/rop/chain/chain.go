package chain

import (
	"context"

	"github.com/ib-77/fluentrop/pkg/rop"
)

// Chain carries a rop.ResultOf together with the context its steps run in.
// Every step returns a new Chain; the receiver is never modified.
type Chain[T any] struct {
	ctx    context.Context
	result rop.ResultOf[T]
}

func Start[T any](ctx context.Context, result rop.ResultOf[T]) *Chain[T] {
	return &Chain[T]{ctx: ctx, result: result}
}

func FromValue[T any](ctx context.Context, value T) *Chain[T] {
	return Start(ctx, rop.OkOf(value))
}

func (c *Chain[T]) Result() rop.ResultOf[T] {
	return c.result
}

func (c *Chain[T]) Context() context.Context {
	return c.ctx
}

// Then chains binder on success. A done context fails the chain before
// binder runs.
func Then[T, U any](c *Chain[T], binder func(context.Context, T) rop.ResultOf[U]) *Chain[U] {
	if binder == nil {
		panic("chain: binder must not be nil")
	}
	return &Chain[U]{
		ctx: c.ctx,
		result: rop.Bind(c.live(), func(v T) rop.ResultOf[U] {
			return binder(c.ctx, v)
		}),
	}
}

// ThenTry chains a call returning (U, error); the error or a panic fails the chain.
func ThenTry[T, U any](c *Chain[T], operation func(context.Context, T) (U, error)) *Chain[U] {
	if operation == nil {
		panic("chain: operation must not be nil")
	}
	return Then(c, func(ctx context.Context, v T) rop.ResultOf[U] {
		return rop.TryOf(func() (U, error) { return operation(ctx, v) }, nil)
	})
}

func Map[T, U any](c *Chain[T], mapper func(context.Context, T) U) *Chain[U] {
	if mapper == nil {
		panic("chain: mapper must not be nil")
	}
	return &Chain[U]{
		ctx: c.ctx,
		result: rop.Map(c.live(), func(v T) U {
			return mapper(c.ctx, v)
		}),
	}
}

// Tap runs action on success and keeps the result.
func (c *Chain[T]) Tap(action func(context.Context, T)) *Chain[T] {
	if action == nil {
		panic("chain: action must not be nil")
	}
	return &Chain[T]{
		ctx:    c.ctx,
		result: c.result.Tap(func(v T) { action(c.ctx, v) }),
	}
}

// TapOnFailure runs action with the errors of a failed chain.
func (c *Chain[T]) TapOnFailure(action func(context.Context, []rop.ErrorReason)) *Chain[T] {
	if action == nil {
		panic("chain: action must not be nil")
	}
	return &Chain[T]{
		ctx:    c.ctx,
		result: c.result.TapOnFailures(func(errs []rop.ErrorReason) { action(c.ctx, errs) }),
	}
}

func (c *Chain[T]) Ensure(predicate func(context.Context, T) bool, err rop.ErrorReason) *Chain[T] {
	if predicate == nil {
		panic("chain: predicate must not be nil")
	}
	return &Chain[T]{
		ctx: c.ctx,
		result: rop.Ensure(c.live(), func(v T) bool {
			return predicate(c.ctx, v)
		}, err),
	}
}

func (c *Chain[T]) Where(predicate func(context.Context, T) bool, message string) *Chain[T] {
	return c.Ensure(predicate, rop.NewError(message))
}

// Or returns the first successful chain among c and alternatives. When all
// of them failed, c is returned.
func (c *Chain[T]) Or(alternatives ...*Chain[T]) *Chain[T] {
	if c.result.IsSuccess() {
		return c
	}
	for _, alt := range alternatives {
		if alt != nil && alt.result.IsSuccess() {
			return alt
		}
	}
	return c
}

// And returns the first failed chain among c and required, or the last one
// when all succeeded.
func (c *Chain[T]) And(required ...*Chain[T]) *Chain[T] {
	last := c
	for _, ch := range append([]*Chain[T]{c}, required...) {
		if ch == nil {
			continue
		}
		if ch.result.IsFailed() {
			return ch
		}
		last = ch
	}
	return last
}

// RepeatUntil runs step at least once and keeps running it while the chain
// succeeds and until reports true for the new value.
func (c *Chain[T]) RepeatUntil(step func(context.Context, T) rop.ResultOf[T],
	until func(context.Context, T) bool) *Chain[T] {
	if step == nil || until == nil {
		panic("chain: step and condition must not be nil")
	}
	if c.result.IsFailed() {
		return c
	}
	for {
		c = Then(c, step)
		v, ok := c.result.TryGetValue()
		if !ok {
			return c
		}
		more, next := c.holds(until, v)
		if !more {
			return next
		}
	}
}

// While runs step as long as the chain succeeds and while holds.
func (c *Chain[T]) While(step func(context.Context, T) rop.ResultOf[T],
	while func(context.Context, T) bool) *Chain[T] {
	if step == nil || while == nil {
		panic("chain: step and condition must not be nil")
	}
	for {
		v, ok := c.result.TryGetValue()
		if !ok {
			return c
		}
		more, next := c.holds(while, v)
		if !more {
			return next
		}
		c = Then(c, step)
	}
}

// ValidateAll runs every validator against the value. With breakOnError the
// first failure stops the run; otherwise all errors are collected.
func ValidateAll[T any](c *Chain[T], breakOnError bool, validators ...func(context.Context, T) rop.Result) *Chain[T] {
	for _, validate := range validators {
		if validate == nil {
			panic("chain: validator must not be nil")
		}
	}

	v, ok := c.live().TryGetValue()
	if !ok {
		return &Chain[T]{ctx: c.ctx, result: c.live()}
	}

	results := make([]rop.Result, 0, len(validators))
	for _, validate := range validators {
		if err := c.ctx.Err(); err != nil {
			results = append(results, rop.FailWith(rop.NewExceptionError(err)))
			break
		}
		r := validated(c.ctx, v, validate)
		results = append(results, r)
		if breakOnError && r.IsFailed() {
			break
		}
	}

	combined := rop.Combine(results...)
	if combined.IsFailed() {
		return &Chain[T]{ctx: c.ctx, result: c.result.WithErrors(combined.Errors()...)}
	}
	return c
}

// validated runs validate; a panic becomes a failed result.
func validated[T any](ctx context.Context, v T, validate func(context.Context, T) rop.Result) rop.Result {
	var out rop.Result
	guard := rop.Try(func() error {
		out = validate(ctx, v)
		return nil
	}, nil)
	if guard.IsFailed() {
		return guard
	}
	return out
}

// Finally collapses the chain into U through exactly one of the handlers.
func Finally[T, U any](c *Chain[T], onSuccess func(context.Context, T) U,
	onFailure func(context.Context, []rop.ErrorReason) U) U {
	if onSuccess == nil || onFailure == nil {
		panic("chain: finally handlers must not be nil")
	}
	return rop.Fold(c.result,
		func(v T) U { return onSuccess(c.ctx, v) },
		func(errs []rop.ErrorReason) U { return onFailure(c.ctx, errs) })
}

// live fails a successful result when the chain context is already done.
func (c *Chain[T]) live() rop.ResultOf[T] {
	if c.result.IsSuccess() && c.ctx.Err() != nil {
		return c.result.WithError(rop.NewExceptionError(c.ctx.Err()))
	}
	return c.result
}

// holds evaluates cond on v. A panicking cond reports false and fails the
// returned chain.
func (c *Chain[T]) holds(cond func(context.Context, T) bool, v T) (bool, *Chain[T]) {
	var ok bool
	guard := rop.Try(func() error {
		ok = cond(c.ctx, v)
		return nil
	}, nil)
	if guard.IsFailed() {
		return false, &Chain[T]{ctx: c.ctx, result: c.result.WithErrors(guard.Errors()...)}
	}
	return ok, c
}
