package dbg_test

import (
	"fmt"

	"github.com/vkngwrapper/unsafedbg/dbg"
)

type exampleA struct {
	X int32
	Y int32
}

type exampleB struct {
	X string
	Y bool
}

type exampleC struct {
	X bool
}

func nestedGeneric[R any, S any, T any](r R, s *S, t *T) {
	values := dbg.All(
		dbg.UnsafeAs[exampleA](r),
		dbg.UnsafeAs[*exampleB](s),
		dbg.UnsafeAs[*exampleC](t),
		"a normal string",
		[2]any{"ok", 5},
	)
	pairs := values[4].([2]any)
	dbg.Dbg2(pairs[0], pairs[1])
}

// The generic function cannot name the concrete types of its arguments, but the caller knows them
// and reinterprets each one for display.
func Example_reinterpret() {
	a := exampleA{X: 10, Y: 11}
	b := exampleB{X: "hello world", Y: false}
	c := exampleC{X: false}
	nestedGeneric(a, &b, &c)
}

func ExampleSafe() {
	var value fmt.Stringer = exampleName("typed")

	// Passes the value through after writing it to stderr
	value = dbg.Safe[exampleName](value)
	fmt.Println(value)
	// Output: typed
}

type exampleName string

func (n exampleName) String() string { return string(n) }

func ExampleLabeled() {
	total := dbg.Labeled("total", 2+3)
	fmt.Println(total)
	// Output: 5
}
