package dbg

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/unsafedbg/layout"
)

// Arg is a value paired with the type it should be formatted as. Args are built with As and UnsafeAs
// and are accepted anywhere All accepts a value.
type Arg interface {
	// Value returns the wrapped value unchanged
	Value() any
	check()
	render(formatter Formatter) (reflect.Type, string)
}

type safeArg[O any, T any] struct {
	value T
}

// As wraps value so that it is formatted as an O once its dynamic type has been checked against O.
// If O is an interface type, any value implementing O is accepted. Formatting a value of any other type
// panics with an error wrapping layout.TypeMismatchError.
func As[O any, T any](value T) Arg {
	return safeArg[O, T]{value: value}
}

func (a safeArg[O, T]) Value() any {
	return a.value
}

func (a safeArg[O, T]) check() {
	safeView[O](a.value)
}

func (a safeArg[O, T]) render(formatter Formatter) (reflect.Type, string) {
	view := safeView[O](a.value)
	return layout.TypeOf[O](), formatter.Format(view)
}

func safeView[O any](value any) O {
	target := layout.TypeOf[O]()
	err := layout.CheckType(reflect.TypeOf(value), target)
	if err != nil {
		panic(errors.Wrapf(err, "dbg: cannot format value as %s", target))
	}

	view, _ := value.(O)
	return view
}

type unsafeArg[O any, T any] struct {
	value T
}

// UnsafeAs wraps value so that its memory is read as an O when it is formatted. Nothing is checked:
// if O is larger than T, more strictly aligned, or holds pointers where T holds none, the behavior
// is undefined and may crash the garbage collector. Building with the debug_unsafe_dbg tag adds a size
// and alignment check that panics instead.
func UnsafeAs[O any, T any](value T) Arg {
	return unsafeArg[O, T]{value: value}
}

func (a unsafeArg[O, T]) Value() any {
	return a.value
}

func (a unsafeArg[O, T]) check() {
	layout.DebugCheckReinterpret[T, O]()
}

func (a unsafeArg[O, T]) render(formatter Formatter) (reflect.Type, string) {
	view := reinterpret[O](&a.value)
	return layout.TypeOf[O](), formatter.Format(view)
}

func reinterpret[O any, T any](value *T) O {
	layout.DebugCheckReinterpret[T, O]()
	return *(*O)(unsafe.Pointer(value))
}

// UnsafeFmt formats value's memory as if it were an O, using the default Emitter's Formatter.
// See UnsafeAs for the hazards.
func UnsafeFmt[O any, T any](value T) string {
	return Default().Format(UnsafeAs[O](value))
}

// SafeFmt formats value as an O, using the default Emitter's Formatter, after checking that O is
// value's dynamic type or an interface it implements. A mismatch panics.
func SafeFmt[O any, T any](value T) string {
	return Default().Format(As[O](value))
}
