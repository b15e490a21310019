//go:build debug_unsafe_dbg

package layout

// DebugEnabled reports whether the debug_unsafe_dbg build tag is present
const DebugEnabled bool = true

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_unsafe_dbg build tag is present
func DebugValidate(validatable Validatable) {
	err := validatable.Validate()
	if err != nil {
		panic(err)
	}
}

// DebugCheckReinterpret verifies that a T's storage can be read as an O, and panics if it cannot.
// This method no-ops unless the debug_unsafe_dbg build tag is present.
func DebugCheckReinterpret[T any, O any]() {
	source, target := Of[T](), Of[O]()
	DebugValidate(source)
	DebugValidate(target)

	err := CheckReinterpret(source, target)
	if err != nil {
		panic(err)
	}
}
