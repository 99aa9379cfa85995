package lower

import (
	"lumen/internal/decl"
	"lumen/internal/lir"
	"lumen/internal/source"
)

// Emitter receives the output units the dispatcher produces. The two
// methods plus the backing-field lookup are the whole interface this pass
// requires from its container.
type Emitter interface {
	// EmitFunction registers one function declaration. body is bodiless
	// for abstract members.
	EmitFunction(d *decl.Descriptor, body lir.Emission, anchor source.Span)
	// EmitProperty registers one property-descriptor pair. setter is nil
	// for val properties.
	EmitProperty(d *decl.Descriptor, getter, setter *lir.Func)
}

// FieldResolver looks up the backing-field reference of a property. Pure
// lookup, no side effects.
type FieldResolver interface {
	ResolveBackingField(d *decl.Descriptor) *lir.Expr
}

// ExportRegistry records declarations that belong to the unit's externally
// visible surface. Register is idempotent.
type ExportRegistry interface {
	Register(d *decl.Descriptor)
}

// ClassTranslator translates a class or object declaration wholesale.
// The dispatcher only registers the resulting descriptor for export.
type ClassTranslator interface {
	TranslateClass(d *decl.Declaration, scope *Scope) (*decl.Descriptor, error)
}

// BodyTranslator produces the lowered statement sequence for a source
// body. It may recursively invoke the dispatcher for nested local
// declarations through the scope it is handed.
type BodyTranslator interface {
	Translate(body decl.SourceBody, scope *Scope) ([]lir.Stmt, error)
}
