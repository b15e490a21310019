package dbg_test

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/unsafedbg/dbg"
	"golang.org/x/exp/slog"
)

type pair struct {
	X int32
	Y int32
}

type named string

func (n named) String() string { return string(n) }

// line returns the line it was called from, so a test can capture the line of a debug call made in the
// same statement
func line() int {
	_, _, l, _ := runtime.Caller(1)
	return l
}

func pretty(value any) string {
	return dbg.PrettyFormatter{}.Format(value)
}

func newEmitter(t *testing.T, options dbg.CreateOptions) (*dbg.Emitter, *bytes.Buffer) {
	var sink bytes.Buffer
	options.Sink = &sink

	e, err := dbg.New(nil, options)
	require.NoError(t, err)
	return e, &sink
}

func useDefault(t *testing.T, options dbg.CreateOptions) *bytes.Buffer {
	e, sink := newEmitter(t, options)
	previous := dbg.SetDefault(e)
	t.Cleanup(func() { dbg.SetDefault(previous) })
	return sink
}

func debugLogger() (*slog.Logger, *bytes.Buffer) {
	var logs bytes.Buffer
	return slog.New(slog.HandlerOptions{Level: slog.LevelDebug}.NewTextHandler(&logs)), &logs
}

func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered, "expected a panic")

		err, ok := recovered.(error)
		require.True(t, ok, "expected the panic value to be an error, got %T", recovered)
		require.True(t, errors.Is(err, target), "expected %v to wrap %v", err, target)
	}()

	fn()
}

func lines(sink *bytes.Buffer) []string {
	text := strings.TrimSuffix(sink.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
