package layout

import "github.com/pkg/errors"

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")

// TypeMismatchError is the error wrapped by every failed type-identity check performed before a value is
// reinterpreted as another type
var TypeMismatchError error = errors.New("reinterpreted type does not match the value's type")

// LayoutMismatchError is the error wrapped when one type's storage cannot be read as another type without
// overrunning or misaligning it
var LayoutMismatchError error = errors.New("incompatible memory layout")
