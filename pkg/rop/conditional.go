package rop

// OkIf returns Ok when condition holds, otherwise a failure with message.
func OkIf(condition bool, message string) Result {
	if condition {
		return Ok()
	}
	return Fail(message)
}

func OkIfWith(condition bool, err ErrorReason) Result {
	if condition {
		return Ok()
	}
	return FailWith(err)
}

// OkIfFunc evaluates predicate lazily; a panic becomes an ExceptionError.
func OkIfFunc(predicate func() bool, message string) Result {
	if predicate == nil {
		panic(nilArgument("predicate"))
	}
	ok, err := protect(predicate)
	if err != nil {
		return FailWith(NewExceptionError(err))
	}
	return OkIf(ok, message)
}

func FailIf(condition bool, message string) Result {
	return OkIf(!condition, message)
}

func FailIfWith(condition bool, err ErrorReason) Result {
	return OkIfWith(!condition, err)
}

func FailIfFunc(predicate func() bool, message string) Result {
	if predicate == nil {
		panic(nilArgument("predicate"))
	}
	return OkIfFunc(func() bool { return !predicate() }, message)
}

// OkIfValue wraps the eagerly supplied value when condition holds.
func OkIfValue[T any](condition bool, value T, message string) ResultOf[T] {
	if condition {
		return OkOf(value)
	}
	return FailOf[T](message)
}

// OkIfLazy calls factory only when condition holds. A panic in factory
// yields a failure holding an ExceptionError.
func OkIfLazy[T any](condition bool, factory func() T, message string) ResultOf[T] {
	if factory == nil {
		panic(nilArgument("factory"))
	}
	if !condition {
		return FailOf[T](message)
	}
	value, err := protect(factory)
	if err != nil {
		return FailOfWith[T](NewExceptionError(err))
	}
	return OkOf(value)
}
