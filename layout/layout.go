package layout

import (
	"reflect"

	cerrors "github.com/cockroachdb/errors"
)

// Layout describes how a value of a single type is laid out in memory
type Layout struct {
	Type      reflect.Type
	Size      uintptr
	Alignment uintptr
}

// Of returns the Layout of T. T may be an interface type, in which case the Layout describes
// the interface header and not any dynamic value stored in it.
func Of[T any]() Layout {
	t := TypeOf[T]()
	return Layout{
		Type:      t,
		Size:      t.Size(),
		Alignment: uintptr(t.Align()),
	}
}

// TypeOf returns the static reflect.Type of T, including when T is an interface type
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// PaddedSize is the size of the type rounded up to its own alignment, which is the stride between
// consecutive values in an array
func (l Layout) PaddedSize() int {
	return AlignUp(int(l.Size), uint(l.Alignment))
}

func (l Layout) String() string {
	if l.Type == nil {
		return "<nil>"
	}
	return l.Type.String()
}

// Validate verifies that the Layout is internally consistent
func (l Layout) Validate() error {
	if l.Type == nil {
		return cerrors.New("layout has no type")
	}

	err := CheckPow2(l.Alignment, l.Type.String()+" alignment")
	if err != nil {
		return err
	}

	if l.Size%l.Alignment != 0 {
		return cerrors.Newf("%s has size %d, which is not a multiple of its alignment %d", l.Type, l.Size, l.Alignment)
	}

	return nil
}

// CheckReinterpret returns an error wrapping LayoutMismatchError if reading the storage of a value with
// Layout source as a value with Layout target would read past the end of the source or would
// be a misaligned read. A nil return does not make the reinterpretation meaningful, only bounded.
func CheckReinterpret(source, target Layout) error {
	if int(target.Size) > source.PaddedSize() {
		return cerrors.Wrapf(LayoutMismatchError, "%s is %d bytes but %s only occupies %d", target, target.Size, source, source.PaddedSize())
	}

	if target.Alignment > source.Alignment {
		return cerrors.Wrapf(LayoutMismatchError, "%s requires %d-byte alignment but %s only guarantees %d", target, target.Alignment, source, source.Alignment)
	}

	return nil
}

// CheckType returns an error wrapping TypeMismatchError if a value whose dynamic type is actual cannot be viewed
// as target. Interface targets accept any type that implements them.
func CheckType(actual, target reflect.Type) error {
	if actual == nil {
		if target.Kind() == reflect.Interface {
			return nil
		}
		return cerrors.Wrapf(TypeMismatchError, "expected %s, got nil", target)
	}

	if actual == target {
		return nil
	}

	if target.Kind() == reflect.Interface && actual.Implements(target) {
		return nil
	}

	return cerrors.Wrapf(TypeMismatchError, "expected %s, got %s", target, actual)
}
