package lir

import (
	"lumen/internal/source"
)

// FuncFlags represents lowering outcomes as a bitmask.
type FuncFlags uint32

const (
	// FuncCoroutine marks a function destined for the state-machine
	// transform.
	FuncCoroutine FuncFlags = 1 << iota
	// FuncInlineTemplate marks an unnamed function that exists solely to
	// be spliced verbatim by the inliner. Mutually exclusive with
	// FuncCoroutine.
	FuncInlineTemplate
)

// HasFlag returns true if the given flag is set.
func (f FuncFlags) HasFlag(flag FuncFlags) bool {
	return f&flag != 0
}

// String returns a human-readable representation of flags.
func (f FuncFlags) String() string {
	s := ""
	if f.HasFlag(FuncCoroutine) {
		s += "coroutine "
	}
	if f.HasFlag(FuncInlineTemplate) {
		s += "inline-template "
	}
	return s
}

// Param is one parameter of a lowered function.
type Param struct {
	Name       string
	HasDefault bool
	Default    *Expr
}

// Func is one lowered output function. Name is empty for template
// declarations, which must never be invocable as standalone symbols.
type Func struct {
	Name   string
	Params []Param
	Body   []Stmt
	Link   source.Span
	Flags  FuncFlags
}

// IsCoroutine returns true if the function will become a state machine.
func (f *Func) IsCoroutine() bool {
	return f.Flags.HasFlag(FuncCoroutine)
}

// IsInlineTemplate returns true for inline-template-only functions.
func (f *Func) IsInlineTemplate() bool {
	return f.Flags.HasFlag(FuncInlineTemplate)
}

// CoroutineSegments are the ordered statement groups recorded while a
// suspend body is lowered: import bindings, the function prototype, and
// auxiliary declarations. They are consumed only when the function must be
// split into an executable/template pair.
type CoroutineSegments struct {
	Imports      []Stmt
	Prototype    []Stmt
	Declarations []Stmt
}

// InlineWrapper pairs a lowered function with the outer names it captures.
// The inliner decides independently whether to splice it.
type InlineWrapper struct {
	Fn       *Func
	Captured []string // sorted free-name set
}

// AccessorPair holds a property's lowered accessors. Setter is nil unless
// the property is a var.
type AccessorPair struct {
	Getter *Func
	Setter *Func
}
