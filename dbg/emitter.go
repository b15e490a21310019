package dbg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/unsafedbg/dbg/internal/callsite"
	"golang.org/x/exp/slog"
)

// Emitter writes tagged debug records to a sink. An Emitter is safe for concurrent use: every record is
// a single write to the sink, but the records of one multi-value call may interleave with another
// goroutine's.
type Emitter struct {
	logger    *slog.Logger
	sink      io.Writer
	format    Format
	pathStyle PathStyle
	formatter Formatter
	disabled  bool
	workDir   string
	resolver  *callsite.Resolver

	mutex sync.Mutex
	stats Statistics
}

// New creates an Emitter. logger receives the Emitter's own diagnostics, such as call sites whose
// expression text could not be recovered; it may be nil.
func New(logger *slog.Logger, options CreateOptions) (*Emitter, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard))
	}

	if _, ok := formatNames[options.Format]; !ok {
		return nil, errors.Newf("unknown format %s", options.Format)
	}
	if _, ok := pathStyleNames[options.PathStyle]; !ok {
		return nil, errors.Newf("unknown path style %s", options.PathStyle)
	}

	e := &Emitter{
		logger:    logger,
		sink:      options.Sink,
		format:    options.Format,
		pathStyle: options.PathStyle,
		formatter: options.Formatter,
		disabled:  options.Disabled,
		resolver:  callsite.NewResolver("As", "UnsafeAs"),
	}

	if e.sink == nil {
		e.sink = os.Stderr
	}
	if e.formatter == nil {
		e.formatter = PrettyFormatter{}
	}

	if e.pathStyle == PathRelative {
		workDir, err := os.Getwd()
		if err != nil {
			logger.Debug("could not determine working directory, displaying absolute paths", slog.Any("error", err))
		}
		e.workDir = workDir
	}

	logger.Debug("Emitter::New",
		slog.String("Format", e.format.String()),
		slog.String("PathStyle", e.pathStyle.String()),
		slog.Bool("Disabled", e.disabled),
	)
	return e, nil
}

// Statistics returns a snapshot of what the Emitter has written so far
func (e *Emitter) Statistics() Statistics {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	return e.stats
}

// ResetStatistics zeroes the Emitter's counters
func (e *Emitter) ResetStatistics() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.stats.Clear()
}

// Here writes only the file and line of the call
func (e *Emitter) Here() {
	e.emit(0, "Here", nil)
}

// All writes one record per argument, in order, and returns the arguments. Arguments built with As
// or UnsafeAs are formatted as their override type and returned unwrapped.
func (e *Emitter) All(args ...any) []any {
	e.emit(0, "All", args)
	return unwrapAll(args)
}

// Labeled writes value under an explicit label instead of its source expression and returns it
func (e *Emitter) Labeled(label string, value any) any {
	e.emitLabeled(0, label, value)
	return value
}

// Format renders value with the Emitter's Formatter without writing anything. Values built with As
// or UnsafeAs are rendered as their override type, and As panics on a type mismatch even when the
// Emitter is disabled.
func (e *Emitter) Format(value any) string {
	return e.render("", value).value
}

type record struct {
	expr  string
	typ   reflect.Type
	value string
}

func (e *Emitter) render(expr string, arg any) record {
	if override, ok := arg.(Arg); ok {
		typ, text := override.render(e.formatter)
		return record{expr: expr, typ: typ, value: text}
	}

	return record{expr: expr, typ: reflect.TypeOf(arg), value: e.formatter.Format(arg)}
}

// emit writes the records for one debug call. skip is the number of frames between the user's call
// and the exported function that called emit.
func (e *Emitter) emit(skip int, callee string, args []any) {
	if e.disabled {
		checkAll(args)
		return
	}
	defer e.countEmit()

	loc, ok := callsite.Capture(skip + 2)
	if !ok {
		e.logger.Debug("could not capture call site", slog.String("Callee", callee))
	}

	var call callsite.Call
	if ok && len(args) > 0 {
		resolved, err := e.resolver.Resolve(loc, callee)
		if err != nil {
			e.logger.Debug("could not resolve call-site expression",
				slog.String("Callee", callee),
				slog.String("File", loc.File),
				slog.Int("Line", loc.Line),
				slog.Any("error", err))
		} else {
			call = resolved
		}
	}

	if len(args) == 0 {
		e.write(loc, nil)
		return
	}

	for index, arg := range args {
		rec := e.render(call.Expr(index), arg)
		e.write(loc, &rec)
	}
}

func (e *Emitter) emitLabeled(skip int, label string, value any) {
	if e.disabled {
		checkAll([]any{value})
		return
	}
	defer e.countEmit()

	loc, ok := callsite.Capture(skip + 2)
	if !ok {
		e.logger.Debug("could not capture call site", slog.String("Label", label))
	}

	rec := e.render(label, value)
	e.write(loc, &rec)
}

func (e *Emitter) write(loc callsite.Location, rec *record) {
	var line []byte
	switch e.format {
	case FormatJSON:
		line = e.jsonLine(loc, rec)
	default:
		line = e.textLine(loc, rec)
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	written, err := e.sink.Write(line)
	if err != nil {
		e.logger.Error("failed to write debug record", slog.Any("error", err))
	}

	e.stats.ByteCount += written
	if rec != nil {
		e.stats.ValueCount++
	}
}

func (e *Emitter) countEmit() {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.stats.EmitCount++
}

func (e *Emitter) textLine(loc callsite.Location, rec *record) []byte {
	var builder strings.Builder
	fmt.Fprintf(&builder, "[%s:%d]", e.displayPath(loc.File), loc.Line)
	if rec != nil {
		fmt.Fprintf(&builder, " %s = %s", rec.expr, rec.value)
	}
	builder.WriteByte('\n')
	return []byte(builder.String())
}

func (e *Emitter) jsonLine(loc callsite.Location, rec *record) []byte {
	w := jwriter.NewWriter()
	obj := w.Object()
	obj.Name("file").String(e.displayPath(loc.File))
	obj.Name("line").Int(loc.Line)
	if rec != nil {
		obj.Name("expr").String(rec.expr)
		obj.Name("type").String(typeName(rec.typ))
		obj.Name("value").String(rec.value)
	}
	obj.End()

	if err := w.Error(); err != nil {
		e.logger.Error("failed to encode debug record", slog.Any("error", err))
	}
	return append(w.Bytes(), '\n')
}

func (e *Emitter) displayPath(file string) string {
	if file == "" {
		return callsite.Unknown
	}

	switch e.pathStyle {
	case PathBase:
		return filepath.Base(file)
	case PathRelative:
		if e.workDir == "" {
			return file
		}
		rel, err := filepath.Rel(e.workDir, file)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return file
		}
		return rel
	}
	return file
}

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "nil"
	}
	return typ.String()
}

// checkAll runs the type checks of every override argument without formatting anything
func checkAll(args []any) {
	for _, arg := range args {
		if override, ok := arg.(Arg); ok {
			override.check()
		}
	}
}

func unwrapAll(args []any) []any {
	values := make([]any, len(args))
	for index, arg := range args {
		if override, ok := arg.(Arg); ok {
			values[index] = override.Value()
			continue
		}
		values[index] = arg
	}
	return values
}
