package rop

// Map applies mapper to the value of a successful result, keeping its
// success reasons. A failed result propagates its reasons and mapper is
// not called. A panic in mapper yields a failure holding an ExceptionError.
func Map[T, U any](r ResultOf[T], mapper func(T) U) ResultOf[U] {
	if mapper == nil {
		panic(nilArgument("mapper"))
	}
	if r.IsFailed() {
		return ResultOf[U]{Result: newResult(r.reasons)}
	}
	value, err := protect(func() U { return mapper(r.value) })
	if err != nil {
		return FailOfWith[U](NewExceptionError(err))
	}
	return ResultOf[U]{Result: newResult(r.successReasons()), value: value}
}

// MapTo attaches a computed value to a successful Result.
func MapTo[U any](r Result, mapper func() U) ResultOf[U] {
	if mapper == nil {
		panic(nilArgument("mapper"))
	}
	return Map(ToResultOf(r, struct{}{}), func(struct{}) U { return mapper() })
}

// Bind chains a result-returning step. On a failed source binder is not
// called. A failed step yields the step's reasons; a successful step keeps
// the source successes followed by the step's reasons.
func Bind[T, U any](r ResultOf[T], binder func(T) ResultOf[U]) ResultOf[U] {
	if binder == nil {
		panic(nilArgument("binder"))
	}
	if r.IsFailed() {
		return ResultOf[U]{Result: newResult(r.reasons)}
	}
	out, err := protect(func() ResultOf[U] { return binder(r.value) })
	if err != nil {
		return FailOfWith[U](NewExceptionError(err))
	}
	if out.IsFailed() {
		return out
	}
	return ResultOf[U]{Result: newResult(concat(r.successReasons(), out.reasons)), value: out.value}
}

// BindTo chains a value-producing step after a non-generic Result.
func BindTo[U any](r Result, binder func() ResultOf[U]) ResultOf[U] {
	if binder == nil {
		panic(nilArgument("binder"))
	}
	return Bind(ToResultOf(r, struct{}{}), func(struct{}) ResultOf[U] { return binder() })
}

// BindResult is Bind for non-generic results.
func BindResult(r Result, binder func() Result) Result {
	if binder == nil {
		panic(nilArgument("binder"))
	}
	return Bind(ToResultOf(r, struct{}{}), func(struct{}) ResultOf[struct{}] {
		return ToResultOf(binder(), struct{}{})
	}).ToResult()
}

// SelectMany binds collection and projects both values into the final
// value. Successes are kept source first, then the collection step.
func SelectMany[T, M, U any](r ResultOf[T], collection func(T) ResultOf[M], project func(T, M) U) ResultOf[U] {
	if collection == nil {
		panic(nilArgument("collection"))
	}
	if project == nil {
		panic(nilArgument("project"))
	}
	if r.IsFailed() {
		return ResultOf[U]{Result: newResult(r.reasons)}
	}
	mid, err := protect(func() ResultOf[M] { return collection(r.value) })
	if err != nil {
		return FailOfWith[U](NewExceptionError(err))
	}
	if mid.IsFailed() {
		return ResultOf[U]{Result: newResult(mid.reasons)}
	}
	value, err := protect(func() U { return project(r.value, mid.value) })
	if err != nil {
		return FailOfWith[U](NewExceptionError(err))
	}
	return ResultOf[U]{Result: newResult(concat(r.successReasons(), mid.successReasons())), value: value}
}

// Ensure fails a successful result with err when predicate rejects the
// value. The existing reasons are kept.
func Ensure[T any](r ResultOf[T], predicate func(T) bool, err ErrorReason) ResultOf[T] {
	if predicate == nil {
		panic(nilArgument("predicate"))
	}
	if IsNil(err) {
		panic(nilArgument("error"))
	}
	if r.IsFailed() {
		return r
	}
	ok, perr := protect(func() bool { return predicate(r.value) })
	if perr != nil {
		return r.WithError(NewExceptionError(perr))
	}
	if !ok {
		return r.WithError(err)
	}
	return r
}

// Where is Ensure with an error message.
func Where[T any](r ResultOf[T], predicate func(T) bool, message string) ResultOf[T] {
	return Ensure(r, predicate, NewError(message))
}

// Fold reduces r to a value through exactly one branch.
func Fold[T, U any](r ResultOf[T], onSuccess func(T) U, onFailure func([]ErrorReason) U) U {
	if onSuccess == nil {
		panic(nilArgument("onSuccess"))
	}
	if onFailure == nil {
		panic(nilArgument("onFailure"))
	}
	if r.IsSuccess() {
		return onSuccess(r.value)
	}
	return onFailure(r.Errors())
}

// FoldResult is Fold for non-generic results.
func FoldResult[U any](r Result, onSuccess func() U, onFailure func([]ErrorReason) U) U {
	if onSuccess == nil {
		panic(nilArgument("onSuccess"))
	}
	if onFailure == nil {
		panic(nilArgument("onFailure"))
	}
	if r.IsSuccess() {
		return onSuccess()
	}
	return onFailure(r.Errors())
}

func concat(a, b []Reason) []Reason {
	out := make([]Reason, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
