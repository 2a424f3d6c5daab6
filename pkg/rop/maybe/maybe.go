// Package maybe holds an optional value that converts to and from rop results.
package maybe

import (
	"fmt"

	"github.com/ib-77/fluentrop/pkg/rop"
)

type Maybe[T any] struct {
	value T
	some  bool
}

func Some[T any](value T) Maybe[T] {
	return Maybe[T]{value: value, some: true}
}

func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromPtr is None for a nil pointer and Some of the pointee otherwise.
func FromPtr[T any](p *T) Maybe[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (m Maybe[T]) IsSome() bool { return m.some }

func (m Maybe[T]) IsNone() bool { return !m.some }

func (m Maybe[T]) Get() (T, bool) {
	return m.value, m.some
}

func (m Maybe[T]) OrElse(fallback T) T {
	if m.some {
		return m.value
	}
	return fallback
}

func (m Maybe[T]) OrElseGet(fallback func() T) T {
	if m.some {
		return m.value
	}
	if fallback == nil {
		panic("maybe: fallback must not be nil")
	}
	return fallback()
}

// Filter keeps the value only when predicate holds.
func (m Maybe[T]) Filter(predicate func(T) bool) Maybe[T] {
	if predicate == nil {
		panic("maybe: predicate must not be nil")
	}
	if m.some && predicate(m.value) {
		return m
	}
	return None[T]()
}

func (m Maybe[T]) String() string {
	if m.some {
		return fmt.Sprintf("Some(%v)", m.value)
	}
	return "None"
}

func Map[T, U any](m Maybe[T], mapper func(T) U) Maybe[U] {
	if mapper == nil {
		panic("maybe: mapper must not be nil")
	}
	if !m.some {
		return None[U]()
	}
	return Some(mapper(m.value))
}

func Bind[T, U any](m Maybe[T], binder func(T) Maybe[U]) Maybe[U] {
	if binder == nil {
		panic("maybe: binder must not be nil")
	}
	if !m.some {
		return None[U]()
	}
	return binder(m.value)
}

func Match[T, U any](m Maybe[T], onSome func(T) U, onNone func() U) U {
	if onSome == nil || onNone == nil {
		panic("maybe: match branches must not be nil")
	}
	if m.some {
		return onSome(m.value)
	}
	return onNone()
}

// ToResult is a success carrying the value, or a failure with message when
// the value is absent.
func ToResult[T any](m Maybe[T], message string) rop.ResultOf[T] {
	if m.some {
		return rop.OkOf(m.value)
	}
	return rop.FailOf[T](message)
}

// FromResult drops the reasons of r and keeps only its value.
func FromResult[T any](r rop.ResultOf[T]) Maybe[T] {
	if v, ok := r.TryGetValue(); ok {
		return Some(v)
	}
	return None[T]()
}
