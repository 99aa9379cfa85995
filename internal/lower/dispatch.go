package lower

import (
	"fmt"

	"lumen/internal/decl"
	"lumen/internal/lir"
)

// Lowerer dispatches declarations to the lowering routines and decides the
// emission shape of each one.
type Lowerer struct {
	Emit    Emitter
	Fields  FieldResolver
	Exports ExportRegistry
	Classes ClassTranslator
	Bodies  BodyTranslator
}

// New creates a lowerer over the given collaborators.
func New(emit Emitter, fields FieldResolver, exports ExportRegistry, classes ClassTranslator, bodies BodyTranslator) *Lowerer {
	return &Lowerer{Emit: emit, Fields: fields, Exports: exports, Classes: classes, Bodies: bodies}
}

// LowerUnit dispatches every declaration of one compilation unit in order
// and finalizes the hoisted list into the module.
func (lo *Lowerer) LowerUnit(u *Unit, decls []*decl.Declaration, m *lir.Module) error {
	root := u.RootScope()
	for _, d := range decls {
		if err := lo.Dispatch(root, d); err != nil {
			return err
		}
	}
	u.Finalize(m)
	return nil
}

// Dispatch lowers one declaration, producing zero or more output units.
func (lo *Lowerer) Dispatch(s *Scope, d *decl.Declaration) error {
	switch d.Kind {
	case decl.KindClass:
		desc, err := lo.Classes.TranslateClass(d, s)
		if err != nil {
			return err
		}
		if desc != nil && desc.ShouldExport() {
			lo.Exports.Register(desc)
		}
		return nil
	case decl.KindTypeAlias:
		// Erased: no output.
		return nil
	case decl.KindProperty:
		return lo.lowerProperty(s, d)
	case decl.KindFunction:
		return lo.lowerFunction(s, d)
	}
	return fmt.Errorf("lower: %w: %d", ErrUnknownKind, d.Kind)
}

func (lo *Lowerer) lowerProperty(s *Scope, d *decl.Declaration) error {
	desc := d.Desc
	if desc.Modality == decl.ModalityAbstract {
		// Abstract properties emit no accessors at all.
		return nil
	}
	getterDesc := desc.Getter
	if getterDesc == nil {
		return fmt.Errorf("lower: property %s: %w", desc.Name, ErrMissingGetter)
	}

	getter, err := lo.buildAccessor(s, desc, getterDesc, d.GetterBody, synthGetter)
	if err != nil {
		return err
	}

	var setter *lir.Func
	var setterDesc *decl.Descriptor
	if desc.IsVar() {
		setterDesc = desc.Setter
		if setterDesc == nil {
			return fmt.Errorf("lower: property %s: %w", desc.Name, ErrMissingSetter)
		}
		setter, err = lo.buildAccessor(s, desc, setterDesc, d.SetterBody, synthSetter)
		if err != nil {
			return err
		}
	}

	// Overridable and extension properties must be reachable through
	// ordinary call syntax, so their accessors become plain functions.
	if desc.IsOverridable() || desc.IsExtension() {
		lo.Emit.EmitFunction(getterDesc, lir.Bare(getter), desc.Span)
		if setter != nil {
			lo.Emit.EmitFunction(setterDesc, lir.Bare(setter), desc.Span)
		}
		return nil
	}
	lo.Emit.EmitProperty(desc, getter, setter)
	return nil
}

// buildAccessor translates a custom accessor body in a child scope, or
// synthesizes the default accessor against the backing field.
func (lo *Lowerer) buildAccessor(
	s *Scope,
	prop, accessor *decl.Descriptor,
	body decl.SourceBody,
	synth func(accessor *decl.Descriptor, field *lir.Expr) *lir.Func,
) (*lir.Func, error) {
	if body == nil {
		return synth(accessor, lo.Fields.ResolveBackingField(prop)), nil
	}
	child := s.Child()
	fn := child.AllocFunc(accessor)
	stmts, err := lo.Bodies.Translate(body, child)
	if err != nil {
		return nil, fmt.Errorf("lower: property %s: %w", prop.Name, err)
	}
	fn.Body = append(fn.Body, stmts...)
	return fn, nil
}

func (lo *Lowerer) lowerFunction(s *Scope, d *decl.Declaration) error {
	desc := d.Desc
	if desc.Modality == decl.ModalityAbstract {
		// Register the declaration with no body.
		lo.Emit.EmitFunction(desc, lir.Emission{}, desc.Span)
		return nil
	}

	out, inner, err := lo.lowerBody(s, desc, d.Body)
	if err != nil {
		return err
	}

	if desc.IsSuspend() && desc.IsInline() && desc.ShouldExport() {
		return lo.split(desc, out, inner)
	}
	lo.Emit.EmitFunction(desc, out, desc.Span)
	return nil
}
