package lower

import (
	"fmt"

	"lumen/internal/decl"
	"lumen/internal/lir"
)

// lowerBody lowers a non-abstract function body in a fresh child scope.
//
// Default-value materialization is prepended only for non-overridable
// members: an overridable member's defaults live in one place in the
// hierarchy, so repeating them in every override would duplicate them.
//
// Result shaping: a suspend+exported function is returned unwrapped (it
// becomes a coroutine state machine downstream, untouched here); anything
// else is returned inline-wrapped whether or not the descriptor is inline,
// because the wrapper is inert until the inliner chooses to use it.
func (lo *Lowerer) lowerBody(parent *Scope, desc *decl.Descriptor, body decl.SourceBody) (lir.Emission, *Scope, error) {
	child := parent.Child()
	fn := child.AllocFunc(desc)

	if desc.IsSuspend() {
		child.AttachSegments()
	}

	if !desc.IsOverridable() {
		for _, p := range desc.Params {
			if !p.HasDefault {
				continue
			}
			fn.Body = append(fn.Body, lir.Default(p.Name, lir.Literal(p.Default)))
		}
	}

	stmts, err := lo.Bodies.Translate(body, child)
	if err != nil {
		return lir.Emission{}, nil, fmt.Errorf("lower: function %s: %w", desc.Name, err)
	}
	fn.Body = append(fn.Body, stmts...)

	if desc.IsSuspend() && desc.ShouldExport() {
		return lir.Bare(fn), child, nil
	}
	return lir.Wrapped(&lir.InlineWrapper{Fn: fn, Captured: child.FreeNames()}), child, nil
}
