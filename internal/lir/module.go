package lir

import (
	"lumen/internal/decl"
	"lumen/internal/source"
)

// Emission is the body of one emitted function unit: either a bare lowered
// function or an inline-wrapped one. Both fields nil means a bodiless
// registration (abstract member).
type Emission struct {
	Fn      *Func
	Wrapped *InlineWrapper
}

// Bare builds an emission carrying an unwrapped function.
func Bare(fn *Func) Emission { return Emission{Fn: fn} }

// Wrapped builds an emission carrying an inline-wrapped function.
func Wrapped(w *InlineWrapper) Emission { return Emission{Wrapped: w} }

// Func returns the underlying lowered function, unwrapping if needed.
func (e Emission) Func() *Func {
	if e.Fn != nil {
		return e.Fn
	}
	if e.Wrapped != nil {
		return e.Wrapped.Fn
	}
	return nil
}

// IsBodiless reports whether the emission registers a declaration with no
// body.
func (e Emission) IsBodiless() bool {
	return e.Fn == nil && e.Wrapped == nil
}

// FuncUnit is one emitted function declaration.
type FuncUnit struct {
	Desc *decl.Descriptor
	Body Emission
	Link source.Span
}

// PropUnit is one emitted property-descriptor pair.
type PropUnit struct {
	Desc   *decl.Descriptor
	Getter *Func
	Setter *Func
}

// Module collects the output units of one compilation unit. Funcs, Props
// and Hoisted all preserve emission order; Hoisted is append-only and its
// insertion order is the order later phases see the templates in.
type Module struct {
	Name    string
	Funcs   []FuncUnit
	Props   []PropUnit
	Hoisted []InlineWrapper
	Exports []*decl.Descriptor
}

// AppendHoisted appends one hoisted auxiliary declaration.
func (m *Module) AppendHoisted(w InlineWrapper) {
	m.Hoisted = append(m.Hoisted, w)
}
