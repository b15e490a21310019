package dbg

import (
	"io"
	"strconv"
)

// Format selects how an Emitter renders each record
type Format int

const (
	// FormatText writes `[file:line] expr = value`
	FormatText Format = iota
	// FormatJSON writes one JSON object per record
	FormatJSON
)

var formatNames = map[Format]string{
	FormatText: "FormatText",
	FormatJSON: "FormatJSON",
}

func (f Format) String() string {
	name, ok := formatNames[f]
	if !ok {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return name
}

// PathStyle selects how the file of a call site is displayed
type PathStyle int

const (
	// PathRelative displays files relative to the working directory at the time the Emitter was created,
	// falling back to the absolute path for files outside of it
	PathRelative PathStyle = iota
	// PathAbsolute displays the absolute path recorded by the compiler
	PathAbsolute
	// PathBase displays only the file name
	PathBase
)

var pathStyleNames = map[PathStyle]string{
	PathRelative: "PathRelative",
	PathAbsolute: "PathAbsolute",
	PathBase:     "PathBase",
}

func (s PathStyle) String() string {
	name, ok := pathStyleNames[s]
	if !ok {
		return "PathStyle(" + strconv.Itoa(int(s)) + ")"
	}
	return name
}

// CreateOptions configures an Emitter
type CreateOptions struct {
	// Sink receives the emitted records. Defaults to os.Stderr.
	Sink io.Writer
	// Format selects text or JSON records
	Format Format
	// PathStyle selects how call-site files are displayed
	PathStyle PathStyle
	// Formatter renders values. Defaults to PrettyFormatter.
	Formatter Formatter
	// Disabled turns every call into a passthrough that writes nothing
	Disabled bool
}
