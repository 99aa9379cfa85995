package lir

// StmtKind identifies the statement variants of the lowered representation.
type StmtKind uint8

const (
	// StmtReturn returns an optional expression.
	StmtReturn StmtKind = iota
	// StmtAssign assigns Src to Dst.
	StmtAssign
	// StmtVar declares a local with an optional initializer.
	StmtVar
	// StmtExpr evaluates an expression for effect.
	StmtExpr
	// StmtDefault materializes a parameter's default value when the
	// argument was omitted at the call site.
	StmtDefault
	// StmtReturnFunc returns a function value. Used by the executable half
	// of a coroutine split to yield the reconstructed function.
	StmtReturnFunc
)

// String returns a human-readable representation of the kind.
func (k StmtKind) String() string {
	switch k {
	case StmtReturn:
		return "return"
	case StmtAssign:
		return "assign"
	case StmtVar:
		return "var"
	case StmtExpr:
		return "expr"
	case StmtDefault:
		return "default"
	case StmtReturnFunc:
		return "return-func"
	}
	return "unknown"
}

// Stmt is one lowered statement. Field use per kind:
//   - StmtReturn: Expr (optional)
//   - StmtAssign: Dst, Src
//   - StmtVar: Name, Expr (optional initializer)
//   - StmtExpr: Expr
//   - StmtDefault: Name (parameter), Expr (default value)
//   - StmtReturnFunc: Fn
type Stmt struct {
	Kind StmtKind
	Name string
	Expr *Expr
	Dst  *Expr
	Src  *Expr
	Fn   *Func
}

// Return builds a return statement; expr may be nil.
func Return(expr *Expr) Stmt { return Stmt{Kind: StmtReturn, Expr: expr} }

// Assign builds an assignment statement.
func Assign(dst, src *Expr) Stmt { return Stmt{Kind: StmtAssign, Dst: dst, Src: src} }

// Var builds a local declaration statement; init may be nil.
func Var(name string, init *Expr) Stmt { return Stmt{Kind: StmtVar, Name: name, Expr: init} }

// ExprOf builds an expression statement.
func ExprOf(expr *Expr) Stmt { return Stmt{Kind: StmtExpr, Expr: expr} }

// Default builds a default-materialization statement for a parameter.
func Default(param string, value *Expr) Stmt {
	return Stmt{Kind: StmtDefault, Name: param, Expr: value}
}

// ReturnFunc builds a statement returning a function value.
func ReturnFunc(fn *Func) Stmt { return Stmt{Kind: StmtReturnFunc, Fn: fn} }
