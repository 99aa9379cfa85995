package unitfile

import (
	"fmt"
	"unicode"

	"lumen/internal/decl"
	"lumen/internal/lir"
	"lumen/internal/lower"
)

// Translator is the reference body translator: it converts unit-file
// statement descriptions into lowered statements and records coroutine
// segments on the scope while a suspend body runs.
type Translator struct{}

// Translate implements lower.BodyTranslator.
func (Translator) Translate(body decl.SourceBody, scope *lower.Scope) ([]lir.Stmt, error) {
	if body == nil {
		return nil, nil
	}
	docs, ok := body.(Body)
	if !ok {
		return nil, fmt.Errorf("unitfile: unsupported body form %T", body)
	}
	var out []lir.Stmt
	for i := range docs {
		st, err := stmtFor(&docs[i], scope)
		if err != nil {
			return nil, err
		}
		out = append(out, st)

		// Segment ops are recorded a second time, as independent values,
		// so the split's synthetic body shares nothing with the template.
		switch docs[i].Op {
		case "import":
			seg, _ := stmtFor(&docs[i], scope)
			scope.RecordImport(seg)
		case "prototype":
			seg, _ := stmtFor(&docs[i], scope)
			scope.RecordPrototype(seg)
		case "declare":
			seg, _ := stmtFor(&docs[i], scope)
			scope.RecordDeclaration(seg)
		}
	}
	return out, nil
}

func stmtFor(doc *StmtDoc, scope *lower.Scope) (lir.Stmt, error) {
	switch doc.Op {
	case "return":
		if doc.Expr == "" {
			return lir.Return(nil), nil
		}
		return lir.Return(exprOf(doc.Expr, scope)), nil
	case "assign":
		return lir.Assign(exprOf(doc.Dst, scope), exprOf(doc.Src, scope)), nil
	case "var", "import", "prototype", "declare":
		scope.Declare(doc.Name)
		var init *lir.Expr
		if doc.Expr != "" {
			init = exprOf(doc.Expr, scope)
		}
		return lir.Var(doc.Name, init), nil
	case "expr":
		return lir.ExprOf(exprOf(doc.Expr, scope)), nil
	}
	return lir.Stmt{}, fmt.Errorf("unitfile: unknown statement op %q", doc.Op)
}

// exprOf classifies an expression text and records the names it references
// on the scope so free-name capture works.
func exprOf(text string, scope *lower.Scope) *lir.Expr {
	if text == "" {
		return lir.Raw("")
	}
	first := []rune(text)[0]
	if unicode.IsDigit(first) || first == '"' || first == '\'' {
		return lir.Literal(text)
	}
	if isIdent(text) {
		scope.Use(text)
		return lir.Name(text)
	}
	for _, name := range scanIdents(text) {
		scope.Use(name)
	}
	return lir.Raw(text)
}

func isIdent(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return s != ""
}

// scanIdents extracts the identifier tokens of an expression text.
func scanIdents(s string) []string {
	var out []string
	start := -1
	runes := []rune(s)
	for i, r := range runes {
		isWord := r == '_' || unicode.IsLetter(r) || (start >= 0 && unicode.IsDigit(r))
		if isWord {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, string(runes[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, string(runes[start:]))
	}
	return out
}
