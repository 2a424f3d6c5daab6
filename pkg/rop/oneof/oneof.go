// Package oneof provides closed two and three way unions.
//
// A union holds exactly one of its alternatives; Index reports which one.
// ToResult turns a OneOf2[rop.ErrorReason, T] into a rop.ResultOf[T].
package oneof

import (
	"fmt"

	"github.com/ib-77/fluentrop/pkg/rop"
)

type OneOf2[T0, T1 any] struct {
	index int
	t0    T0
	t1    T1
}

func From2T0[T0, T1 any](v T0) OneOf2[T0, T1] {
	return OneOf2[T0, T1]{index: 0, t0: v}
}

func From2T1[T0, T1 any](v T1) OneOf2[T0, T1] {
	return OneOf2[T0, T1]{index: 1, t1: v}
}

func (o OneOf2[T0, T1]) Index() int { return o.index }

func (o OneOf2[T0, T1]) IsT0() bool { return o.index == 0 }

func (o OneOf2[T0, T1]) IsT1() bool { return o.index == 1 }

func (o OneOf2[T0, T1]) AsT0() (T0, bool) { return o.t0, o.index == 0 }

func (o OneOf2[T0, T1]) AsT1() (T1, bool) { return o.t1, o.index == 1 }

// Value returns the held alternative as any.
func (o OneOf2[T0, T1]) Value() any {
	if o.index == 0 {
		return o.t0
	}
	return o.t1
}

// Switch runs the action matching the held alternative.
func (o OneOf2[T0, T1]) Switch(f0 func(T0), f1 func(T1)) {
	if f0 == nil || f1 == nil {
		panic("oneof: switch actions must not be nil")
	}
	if o.index == 0 {
		f0(o.t0)
		return
	}
	f1(o.t1)
}

func (o OneOf2[T0, T1]) String() string {
	return fmt.Sprintf("T%d(%v)", o.index, o.Value())
}

func Match2[T0, T1, U any](o OneOf2[T0, T1], f0 func(T0) U, f1 func(T1) U) U {
	if f0 == nil || f1 == nil {
		panic("oneof: match branches must not be nil")
	}
	if o.index == 0 {
		return f0(o.t0)
	}
	return f1(o.t1)
}

type OneOf3[T0, T1, T2 any] struct {
	index int
	t0    T0
	t1    T1
	t2    T2
}

func From3T0[T0, T1, T2 any](v T0) OneOf3[T0, T1, T2] {
	return OneOf3[T0, T1, T2]{index: 0, t0: v}
}

func From3T1[T0, T1, T2 any](v T1) OneOf3[T0, T1, T2] {
	return OneOf3[T0, T1, T2]{index: 1, t1: v}
}

func From3T2[T0, T1, T2 any](v T2) OneOf3[T0, T1, T2] {
	return OneOf3[T0, T1, T2]{index: 2, t2: v}
}

func (o OneOf3[T0, T1, T2]) Index() int { return o.index }

func (o OneOf3[T0, T1, T2]) IsT0() bool { return o.index == 0 }

func (o OneOf3[T0, T1, T2]) IsT1() bool { return o.index == 1 }

func (o OneOf3[T0, T1, T2]) IsT2() bool { return o.index == 2 }

func (o OneOf3[T0, T1, T2]) AsT0() (T0, bool) { return o.t0, o.index == 0 }

func (o OneOf3[T0, T1, T2]) AsT1() (T1, bool) { return o.t1, o.index == 1 }

func (o OneOf3[T0, T1, T2]) AsT2() (T2, bool) { return o.t2, o.index == 2 }

func (o OneOf3[T0, T1, T2]) Value() any {
	switch o.index {
	case 0:
		return o.t0
	case 1:
		return o.t1
	default:
		return o.t2
	}
}

func (o OneOf3[T0, T1, T2]) Switch(f0 func(T0), f1 func(T1), f2 func(T2)) {
	if f0 == nil || f1 == nil || f2 == nil {
		panic("oneof: switch actions must not be nil")
	}
	switch o.index {
	case 0:
		f0(o.t0)
	case 1:
		f1(o.t1)
	default:
		f2(o.t2)
	}
}

func (o OneOf3[T0, T1, T2]) String() string {
	return fmt.Sprintf("T%d(%v)", o.index, o.Value())
}

func Match3[T0, T1, T2, U any](o OneOf3[T0, T1, T2], f0 func(T0) U, f1 func(T1) U, f2 func(T2) U) U {
	if f0 == nil || f1 == nil || f2 == nil {
		panic("oneof: match branches must not be nil")
	}
	switch o.index {
	case 0:
		return f0(o.t0)
	case 1:
		return f1(o.t1)
	default:
		return f2(o.t2)
	}
}

// ToResult maps the error alternative to a failure and the value
// alternative to a success.
func ToResult[T any](o OneOf2[rop.ErrorReason, T]) rop.ResultOf[T] {
	if err, ok := o.AsT0(); ok {
		return rop.FromError[T](err)
	}
	return rop.OkOf(o.t1)
}

// FromResult is the inverse of ToResult; only the first error of a failed
// result is kept.
func FromResult[T any](r rop.ResultOf[T]) OneOf2[rop.ErrorReason, T] {
	if v, ok := r.TryGetValue(); ok {
		return From2T1[rop.ErrorReason](v)
	}
	return From2T0[rop.ErrorReason, T](r.Errors()[0])
}
