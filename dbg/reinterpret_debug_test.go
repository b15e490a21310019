//go:build debug_unsafe_dbg

package dbg_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/unsafedbg/dbg"
	"github.com/vkngwrapper/unsafedbg/layout"
)

type wide struct {
	A int64
	B int64
}

func TestUnsafeLayoutChecked(t *testing.T) {
	sink := useDefault(t, dbg.CreateOptions{})

	requirePanicsWith(t, layout.LayoutMismatchError, func() {
		dbg.Unsafe[wide](pair{X: 1, Y: 2})
	})
	requirePanicsWith(t, layout.LayoutMismatchError, func() {
		dbg.UnsafeFmt[int64]([8]byte{})
	})
	require.Empty(t, sink.String())

	arr := [2]int32{1, 2}
	require.Equal(t, arr, dbg.Unsafe[pair](arr))
	require.Contains(t, sink.String(), "arr = "+pretty(pair{X: 1, Y: 2}))
}

func TestUnsafeLayoutCheckedWhenDisabled(t *testing.T) {
	sink := useDefault(t, dbg.CreateOptions{Disabled: true})

	requirePanicsWith(t, layout.LayoutMismatchError, func() {
		dbg.All(dbg.UnsafeAs[wide](int32(4)))
	})
	require.Empty(t, sink.String())
}
