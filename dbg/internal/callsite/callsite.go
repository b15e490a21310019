// Package callsite recovers the source text of the arguments passed to a debug call by parsing the
// caller's source file.
package callsite

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
)

// Unknown is the expression text used when a call site cannot be resolved
const Unknown = "?"

// Location is the file and line of a call
type Location struct {
	File string
	Line int
}

// Capture returns the Location of the function skip frames above the caller of Capture
func Capture(skip int) (Location, bool) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}, false
	}
	return Location{File: file, Line: line}, true
}

// Call is the source text of a resolved call's arguments
type Call struct {
	Args []string
	// Spread is true if the final argument was passed with `...`
	Spread bool
}

// Expr returns the text for the index'th value received by the call. Values that arrived through a
// spread final argument are named by their index into it.
func (c Call) Expr(index int) string {
	if len(c.Args) == 0 {
		return Unknown
	}

	last := len(c.Args) - 1
	if c.Spread && index >= last {
		return c.Args[last] + "[" + strconv.Itoa(index-last) + "]"
	}
	if index >= len(c.Args) {
		return Unknown
	}
	return c.Args[index]
}

type sourceFile struct {
	fset *token.FileSet
	file *ast.File
	src  []byte
	err  error
}

// Resolver finds calls in source files. Parsed files are cached for the life of the Resolver.
type Resolver struct {
	mutex sync.Mutex
	files *swiss.Map[string, *sourceFile]

	// Wrappers names single-argument functions whose argument text should be reported in place of
	// the wrapper call itself
	Wrappers []string
}

func NewResolver(wrappers ...string) *Resolver {
	return &Resolver{
		files:    swiss.NewMap[string, *sourceFile](8),
		Wrappers: wrappers,
	}
}

func (r *Resolver) load(path string) *sourceFile {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	cached, ok := r.files.Get(path)
	if ok {
		return cached
	}

	source := &sourceFile{fset: token.NewFileSet()}
	source.src, source.err = os.ReadFile(path)
	if source.err == nil {
		source.file, source.err = parser.ParseFile(source.fset, path, source.src, 0)
	}
	if source.err != nil {
		source.err = errors.Wrapf(source.err, "could not load %s", path)
	}

	r.files.Put(path, source)
	return source
}

// Forget drops every cached source file
func (r *Resolver) Forget() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.files.Clear()
}

// Resolve locates the call to a function named callee that spans loc and returns the text of its arguments.
// When more than one call matches, the narrowest one wins. Calls that are equally narrow cannot be told
// apart without a column, so they are reported as ambiguous rather than guessed.
func (r *Resolver) Resolve(loc Location, callee string) (Call, error) {
	source := r.load(loc.File)
	if source.err != nil {
		return Call{}, source.err
	}

	var candidates []*ast.CallExpr
	bestSpan := 0
	ast.Inspect(source.file, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok || calleeName(call.Fun) != callee {
			return true
		}

		start := source.fset.Position(call.Pos()).Line
		end := source.fset.Position(call.End()).Line
		if loc.Line < start || loc.Line > end {
			return true
		}

		span := end - start
		switch {
		case len(candidates) == 0 || span < bestSpan:
			candidates = append(candidates[:0], call)
			bestSpan = span
		case span == bestSpan:
			candidates = append(candidates, call)
		}
		return true
	})

	if len(candidates) == 0 {
		return Call{}, errors.Newf("no call to %s found at %s:%d", callee, loc.File, loc.Line)
	}
	if len(candidates) > 1 {
		return Call{}, errors.Newf("%d calls to %s at %s:%d cannot be told apart", len(candidates), callee, loc.File, loc.Line)
	}
	best := candidates[0]

	result := Call{
		Args:   make([]string, 0, len(best.Args)),
		Spread: best.Ellipsis.IsValid(),
	}
	for _, arg := range best.Args {
		result.Args = append(result.Args, source.text(r.unwrap(arg)))
	}
	return result, nil
}

func (r *Resolver) unwrap(arg ast.Expr) ast.Expr {
	call, ok := arg.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return arg
	}

	name := calleeName(call.Fun)
	for _, wrapper := range r.Wrappers {
		if name == wrapper {
			return call.Args[0]
		}
	}
	return arg
}

func (s *sourceFile) text(expr ast.Expr) string {
	start := s.fset.Position(expr.Pos()).Offset
	end := s.fset.Position(expr.End()).Offset
	if start < 0 || end > len(s.src) || start > end {
		return Unknown
	}
	return string(s.src[start:end])
}

func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	case *ast.ParenExpr:
		return calleeName(f.X)
	}
	return ""
}
