// Package optional provides a small generic container for a value that may be absent.
// It lets callers describe "transform if present, otherwise propagate absence" as a
// chain of calls instead of scattered nil checks.
package optional

import "fmt"

// Option holds either a value of type T or nothing.
// The zero Option is empty.
type Option[T any] struct {
	value   T
	present bool
}

// Some wraps v as a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Of wraps v when ok is true, in the style of the comma-ok idiom.
func Of[T any](v T, ok bool) Option[T] {
	if !ok {
		return None[T]()
	}
	return Some(v)
}

// FromPtr dereferences p. A nil pointer yields an empty Option.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Present reports whether the Option holds a value.
func (o Option[T]) Present() bool {
	return o.present
}

// Get returns the value and whether it was present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// Filter keeps the value only if pred holds for it.
func (o Option[T]) Filter(pred func(T) bool) Option[T] {
	if !o.present || !pred(o.value) {
		return None[T]()
	}
	return o
}

// OrElse extracts the value, or returns def when empty.
func (o Option[T]) OrElse(def T) T {
	if !o.present {
		return def
	}
	return o.value
}

// OrElseGet is OrElse with a lazily computed default.
func (o Option[T]) OrElseGet(def func() T) T {
	if !o.present {
		return def()
	}
	return o.value
}

// IfPresent calls fn with the value when there is one.
func (o Option[T]) IfPresent(fn func(T)) {
	if o.present {
		fn(o.value)
	}
}

func (o Option[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Map applies f to a present value. An empty Option stays empty.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.present {
		return None[U]()
	}
	return Some(f(o.value))
}

// FlatMap applies f to a present value and returns its result as is.
func FlatMap[T, U any](o Option[T], f func(T) Option[U]) Option[U] {
	if !o.present {
		return None[U]()
	}
	return f(o.value)
}
