package rop

import "fmt"

// Ok returns a successful Result without reasons.
func Ok() Result {
	return newResult(nil)
}

// OkOf returns a successful ResultOf holding value.
func OkOf[T any](value T) ResultOf[T] {
	return ResultOf[T]{Result: newResult(nil), value: value}
}

// Fail returns a Result failed with a single error built from message.
func Fail(message string) Result {
	return newResult([]Reason{NewError(message)})
}

// FailWith returns a Result failed with err. It panics on nil.
func FailWith(err ErrorReason) Result {
	if IsNil(err) {
		panic(nilArgument("error"))
	}
	return newResult([]Reason{err})
}

// FailMessages returns a Result failed with one error per message.
// An empty list is a programming error and panics.
func FailMessages(messages []string) Result {
	if len(messages) == 0 {
		panic("rop: error messages must not be empty")
	}
	reasons := make([]Reason, len(messages))
	for i, m := range messages {
		reasons[i] = NewError(m)
	}
	return newResult(reasons)
}

// FailErrors returns a Result failed with errs. An empty list panics.
func FailErrors(errs []ErrorReason) Result {
	if len(errs) == 0 {
		panic("rop: errors must not be empty")
	}
	for _, err := range errs {
		if IsNil(err) {
			panic(nilArgument("error"))
		}
	}
	return newResult(toReasons(errs))
}

func FailOf[T any](message string) ResultOf[T] {
	return ResultOf[T]{Result: Fail(message)}
}

func FailOfWith[T any](err ErrorReason) ResultOf[T] {
	return ResultOf[T]{Result: FailWith(err)}
}

func FailOfMessages[T any](messages []string) ResultOf[T] {
	return ResultOf[T]{Result: FailMessages(messages)}
}

func FailOfErrors[T any](errs []ErrorReason) ResultOf[T] {
	return ResultOf[T]{Result: FailErrors(errs)}
}

// ToResultOf attaches value to r. A failed r keeps its reasons and no
// value is stored.
func ToResultOf[T any](r Result, value T) ResultOf[T] {
	if r.IsFailed() {
		return ResultOf[T]{Result: newResult(r.reasons)}
	}
	return ResultOf[T]{Result: newResult(r.reasons), value: value}
}

// From is the explicit form of "a value is a successful result".
func From[T any](value T) ResultOf[T] {
	return OkOf(value)
}

// FromError is the explicit form of "an error is a failed result".
func FromError[T any](err ErrorReason) ResultOf[T] {
	return FailOfWith[T](err)
}

// FromErrors fails with errs. Unlike FailOfErrors it never panics: an
// empty list yields a failure holding a ConversionError.
func FromErrors[T any](errs []ErrorReason) ResultOf[T] {
	valid := make([]ErrorReason, 0, len(errs))
	for _, err := range errs {
		if !IsNil(err) {
			valid = append(valid, err)
		}
	}
	if len(valid) == 0 {
		return FailOfWith[T](NewConversionError(fmt.Sprintf("%T", errs), len(errs)))
	}
	return FailOfErrors[T](valid)
}

// FromTuple bridges the Go (value, error) convention. A joined error (such
// as errors.Join or a *ResultError) yields one error reason per part.
func FromTuple[T any](value T, err error) ResultOf[T] {
	if IsNil(err) {
		return OkOf(value)
	}
	if er, ok := err.(ErrorReason); ok {
		return FailOfWith[T](er)
	}
	parts := GetErrors(err)
	errs := make([]ErrorReason, 0, len(parts))
	for _, part := range parts {
		if !IsNil(part) {
			errs = append(errs, ErrorFrom(part))
		}
	}
	if len(errs) == 0 {
		return FailOfWith[T](ErrorFrom(err))
	}
	return FailOfErrors[T](errs)
}
