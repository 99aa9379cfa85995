package decl

// Kind distinguishes the declaration variants handled by lowering.
type Kind uint8

const (
	// KindClass covers classes and singleton objects.
	KindClass Kind = iota
	// KindProperty covers val/var member properties.
	KindProperty
	// KindFunction covers named functions.
	KindFunction
	// KindTypeAlias covers type aliases (erased by lowering).
	KindTypeAlias
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindProperty:
		return "property"
	case KindFunction:
		return "function"
	case KindTypeAlias:
		return "typealias"
	}
	return "unknown"
}

// SourceBody is an opaque reference to a declaration's original syntactic
// body. Only the body translator interprets it; lowering itself treats it
// as a token to pass through.
type SourceBody any

// Declaration pairs a resolved descriptor with its syntactic bodies.
// Bodies may be absent for abstract members.
type Declaration struct {
	Kind Kind
	Desc *Descriptor

	// Body is the function body for KindFunction declarations.
	Body SourceBody

	// GetterBody and SetterBody are the custom accessor bodies of a
	// property; nil means the default accessor is synthesized.
	GetterBody SourceBody
	SetterBody SourceBody

	// Members holds nested declarations of a class or object.
	Members []*Declaration
}

// HasBody returns true if the declaration carries a function body.
func (d *Declaration) HasBody() bool {
	return d.Body != nil
}
