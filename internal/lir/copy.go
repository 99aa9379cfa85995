package lir

// DeepCopy clones a lowered function so that the clone shares no mutable
// substructure with the original. The coroutine split relies on this: the
// executable copy and the template must never alias one node.
func DeepCopy(f *Func) *Func {
	if f == nil {
		return nil
	}
	out := &Func{
		Name:  f.Name,
		Link:  f.Link,
		Flags: f.Flags,
	}
	if len(f.Params) > 0 {
		out.Params = make([]Param, len(f.Params))
		for i, p := range f.Params {
			out.Params[i] = Param{Name: p.Name, HasDefault: p.HasDefault, Default: copyExpr(p.Default)}
		}
	}
	out.Body = copyStmts(f.Body)
	return out
}

func copyStmts(stmts []Stmt) []Stmt {
	if len(stmts) == 0 {
		return nil
	}
	out := make([]Stmt, len(stmts))
	for i := range stmts {
		out[i] = copyStmt(stmts[i])
	}
	return out
}

func copyStmt(s Stmt) Stmt {
	return Stmt{
		Kind: s.Kind,
		Name: s.Name,
		Expr: copyExpr(s.Expr),
		Dst:  copyExpr(s.Dst),
		Src:  copyExpr(s.Src),
		Fn:   DeepCopy(s.Fn),
	}
}

func copyExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

// CopySegments clones coroutine segments.
func CopySegments(segs *CoroutineSegments) *CoroutineSegments {
	if segs == nil {
		return nil
	}
	return &CoroutineSegments{
		Imports:      copyStmts(segs.Imports),
		Prototype:    copyStmts(segs.Prototype),
		Declarations: copyStmts(segs.Declarations),
	}
}
