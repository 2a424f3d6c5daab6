package rop

// ErrorHandler maps a failure raised by an operation to an error reason.
type ErrorHandler func(err error) ErrorReason

// Try runs operation. A returned error or a panic becomes a failed Result
// through handler; a nil handler uses ErrorFrom.
func Try(operation func() error, handler ErrorHandler) Result {
	if operation == nil {
		panic(nilArgument("operation"))
	}
	err, panicked := protectErr(operation)
	if panicked != nil {
		err = panicked
	}
	if IsNil(err) {
		return Ok()
	}
	return FailWith(handle(handler, err))
}

// TryOf is Try for operations producing a value.
func TryOf[T any](operation func() (T, error), handler ErrorHandler) ResultOf[T] {
	if operation == nil {
		panic(nilArgument("operation"))
	}
	var value T
	err, panicked := protectErr(func() error {
		var err error
		value, err = operation()
		return err
	})
	if panicked != nil {
		err = panicked
	}
	if IsNil(err) {
		return OkOf(value)
	}
	return FailOfWith[T](handle(handler, err))
}

func handle(handler ErrorHandler, err error) ErrorReason {
	if handler == nil {
		return ErrorFrom(err)
	}
	mapped, panicked := protect(func() ErrorReason { return handler(err) })
	if panicked != nil {
		return NewExceptionError(panicked)
	}
	if IsNil(mapped) {
		return ErrorFrom(err)
	}
	return mapped
}

// protect calls f, converting a panic into an error.
func protect[T any](f func() T) (out T, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = panicError(v)
		}
	}()
	return f(), nil
}

func protectAction(f func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = panicError(v)
		}
	}()
	f()
	return nil
}

func protectErr(f func() error) (err error, panicked error) {
	defer func() {
		if v := recover(); v != nil {
			panicked = panicError(v)
		}
	}()
	return f(), nil
}
