// Package dbg writes tagged debug records of the form `[file:line] expr = value` to a diagnostic
// stream and hands the value back, so calls can wrap any expression in place.
//
// Dbg formats a value with its own type. Safe formats it as a caller-chosen type after checking the
// value's dynamic type, and panics on a mismatch. Unsafe reads the value's memory as the chosen type
// without any check.
//
// The expression text is recovered by parsing the caller's source file, so it is only available when
// the source is present at runtime; otherwise it is reported as `?`.
package dbg

import (
	"sync/atomic"
)

var defaultEmitter atomic.Pointer[Emitter]

func init() {
	e, err := New(nil, CreateOptions{})
	if err != nil {
		panic(err)
	}
	defaultEmitter.Store(e)
}

// Default returns the Emitter used by the package-level functions
func Default() *Emitter {
	return defaultEmitter.Load()
}

// SetDefault replaces the Emitter used by the package-level functions and returns the previous one
func SetDefault(e *Emitter) *Emitter {
	if e == nil {
		panic("dbg: SetDefault called with a nil Emitter")
	}
	return defaultEmitter.Swap(e)
}

// Here writes only the file and line of the call
func Here() {
	Default().emit(0, "Here", nil)
}

// Dbg writes value with its expression text and returns it
func Dbg[T any](value T) T {
	Default().emit(0, "Dbg", []any{value})
	return value
}

// Dbg2 writes each value on its own line, in order, and returns them
func Dbg2[A any, B any](a A, b B) (A, B) {
	Default().emit(0, "Dbg2", []any{a, b})
	return a, b
}

// Dbg3 writes each value on its own line, in order, and returns them
func Dbg3[A any, B any, C any](a A, b B, c C) (A, B, C) {
	Default().emit(0, "Dbg3", []any{a, b, c})
	return a, b, c
}

// All writes one record per argument, in order, and returns the arguments with any As or UnsafeAs
// wrappers removed
func All(args ...any) []any {
	Default().emit(0, "All", args)
	return unwrapAll(args)
}

// Labeled writes value under label instead of its source expression and returns it
func Labeled[T any](label string, value T) T {
	Default().emitLabeled(0, label, value)
	return value
}

// Safe writes value formatted as an O and returns it unchanged. O must be value's dynamic type or an
// interface it implements; otherwise Safe panics before writing anything.
func Safe[O any, T any](value T) T {
	Default().emit(0, "Safe", []any{As[O](value)})
	return value
}

// Unsafe writes value's memory formatted as an O and returns it unchanged. See UnsafeAs for the hazards.
func Unsafe[O any, T any](value T) T {
	Default().emit(0, "Unsafe", []any{UnsafeAs[O](value)})
	return value
}
