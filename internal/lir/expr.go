package lir

// ExprKind identifies the expression variants of the lowered representation.
type ExprKind uint8

const (
	// ExprName references a parameter or local by name.
	ExprName ExprKind = iota
	// ExprLiteral is a literal value kept as its source text.
	ExprLiteral
	// ExprField references a property backing field.
	ExprField
	// ExprRaw carries translator output verbatim.
	ExprRaw
)

// String returns a human-readable representation of the kind.
func (k ExprKind) String() string {
	switch k {
	case ExprName:
		return "name"
	case ExprLiteral:
		return "literal"
	case ExprField:
		return "field"
	case ExprRaw:
		return "raw"
	}
	return "unknown"
}

// Expr is one lowered expression. Text holds the name, literal text, field
// name, or raw payload depending on Kind.
type Expr struct {
	Kind ExprKind
	Text string
}

// Name builds a name reference.
func Name(text string) *Expr { return &Expr{Kind: ExprName, Text: text} }

// Literal builds a literal expression.
func Literal(text string) *Expr { return &Expr{Kind: ExprLiteral, Text: text} }

// Field builds a backing-field reference.
func Field(name string) *Expr { return &Expr{Kind: ExprField, Text: name} }

// Raw builds a raw translator-output expression.
func Raw(text string) *Expr { return &Expr{Kind: ExprRaw, Text: text} }
