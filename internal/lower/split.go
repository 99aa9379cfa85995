package lower

import (
	"fmt"

	"lumen/internal/decl"
	"lumen/internal/lir"
)

// split turns one suspend+inline+exported lowered function into two
// cooperating declarations.
//
// Exported callers need a stable, directly callable entry point that is
// itself a proper coroutine. Same-unit inline call sites need the raw
// pre-state-machine body spliced verbatim, which only a template supplies:
// a state machine is not re-entrant as source, so deriving the inline body
// from it would be behaviorally wrong, and emitting the executable form as
// inlinable would duplicate the state machine at every call site.
func (lo *Lowerer) split(desc *decl.Descriptor, out lir.Emission, inner *Scope) error {
	lowered := out.Func()
	if lowered == nil {
		return fmt.Errorf("lower: function %s: split without lowered body", desc.Name)
	}
	segs := inner.Segments()
	if segs == nil {
		return fmt.Errorf("lower: function %s: %w", desc.Name, ErrMissingSegments)
	}

	// The copy is taken before the original is touched: from here on the
	// executable form and the template must share no mutable substructure.
	execForm := lir.DeepCopy(lowered)

	// Executable declaration: reconstruct the capture environment, then
	// yield the (otherwise ordinary) function value.
	body := make([]lir.Stmt, 0, len(segs.Imports)+len(segs.Prototype)+len(segs.Declarations)+1)
	body = append(body, segs.Imports...)
	body = append(body, segs.Prototype...)
	body = append(body, segs.Declarations...)
	body = append(body, lir.ReturnFunc(execForm))

	executable := &lir.Func{
		Name:  desc.Name,
		Link:  lowered.Link,
		Flags: lir.FuncCoroutine,
		Body:  body,
	}
	if len(desc.Params) > 0 {
		executable.Params = make([]lir.Param, len(desc.Params))
		for i, p := range desc.Params {
			prm := lir.Param{Name: p.Name, HasDefault: p.HasDefault}
			if p.HasDefault {
				prm.Default = lir.Literal(p.Default)
			}
			executable.Params[i] = prm
		}
	}
	captured := inner.FreeNames()
	lo.Emit.EmitFunction(desc, lir.Wrapped(&lir.InlineWrapper{Fn: executable, Captured: captured}), desc.Span)

	// Template declaration: the original is consumed in place. It must
	// never be invocable as a standalone symbol and must not be picked up
	// by the state-machine transform; the inliner splices it verbatim as
	// literal suspend-containing code.
	lowered.Name = ""
	lowered.Flags &^= lir.FuncCoroutine
	lowered.Flags |= lir.FuncInlineTemplate

	inner.Hoist(lir.InlineWrapper{Fn: lowered, Captured: captured})
	return nil
}
