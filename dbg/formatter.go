package dbg

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/kr/pretty"
)

//go:generate mockgen -source formatter.go -destination mocks/formatter.go -package mock_dbg

// Formatter renders a value as human-readable debug text
type Formatter interface {
	Format(value any) string
}

// PrettyFormatter renders values as multi-line Go syntax
type PrettyFormatter struct{}

func (PrettyFormatter) Format(value any) string {
	return fmt.Sprintf("%# v", pretty.Formatter(value))
}

// SpewFormatter renders values with type annotations on every field
type SpewFormatter struct {
	// ShowPointers includes pointer addresses in the output
	ShowPointers bool
}

func (f SpewFormatter) Format(value any) string {
	config := spew.ConfigState{
		Indent:                  "    ",
		DisablePointerAddresses: !f.ShowPointers,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	return strings.TrimSuffix(config.Sdump(value), "\n")
}
