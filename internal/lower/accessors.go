package lower

import (
	"lumen/internal/decl"
	"lumen/internal/lir"
)

// synthGetter synthesizes the default getter: return the backing field.
func synthGetter(accessor *decl.Descriptor, field *lir.Expr) *lir.Func {
	return &lir.Func{
		Name: accessor.Name,
		Link: accessor.Span,
		Body: []lir.Stmt{lir.Return(field)},
	}
}

// synthSetter synthesizes the default setter: assign the parameter to the
// backing field.
func synthSetter(accessor *decl.Descriptor, field *lir.Expr) *lir.Func {
	param := "value"
	if len(accessor.Params) > 0 && accessor.Params[0].Name != "" {
		param = accessor.Params[0].Name
	}
	return &lir.Func{
		Name:   accessor.Name,
		Link:   accessor.Span,
		Params: []lir.Param{{Name: param}},
		Body:   []lir.Stmt{lir.Assign(field, lir.Name(param))},
	}
}
