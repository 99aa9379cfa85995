package lir

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps a lowered module to text format.
type Printer struct {
	w       io.Writer
	indent  int
	err     error
	midline bool
}

// NewPrinter creates a new printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the lowered module to the writer.
func Dump(w io.Writer, m *Module) error {
	return NewPrinter(w).PrintModule(m)
}

// PrintModule prints a complete module.
func (p *Printer) PrintModule(m *Module) error {
	p.printf("unit %s\n\n", m.Name)

	for i := range m.Props {
		p.printProp(&m.Props[i])
		p.printf("\n")
	}
	for i := range m.Funcs {
		p.printFuncUnit(&m.Funcs[i])
		p.printf("\n")
	}
	if len(m.Hoisted) > 0 {
		p.printf("hoisted:\n")
		for i := range m.Hoisted {
			p.indent++
			p.printWrapper(&m.Hoisted[i])
			p.indent--
		}
		p.printf("\n")
	}
	for _, d := range m.Exports {
		p.printf("export %s\n", d.Name)
	}
	return p.err
}

func (p *Printer) printProp(u *PropUnit) {
	p.printf("property %s\n", u.Desc.Name)
	p.indent++
	p.printf("get:\n")
	p.printFuncBody(u.Getter)
	if u.Setter != nil {
		p.printf("set:\n")
		p.printFuncBody(u.Setter)
	}
	p.indent--
}

func (p *Printer) printFuncUnit(u *FuncUnit) {
	if u.Body.IsBodiless() {
		p.printf("declare %s\n", u.Desc.Name)
		return
	}
	if u.Body.Wrapped != nil {
		p.printWrapper(u.Body.Wrapped)
		return
	}
	p.printFunc(u.Body.Fn)
}

func (p *Printer) printWrapper(w *InlineWrapper) {
	if len(w.Captured) > 0 {
		p.printf("inline captures [%s]\n", strings.Join(w.Captured, ", "))
	} else {
		p.printf("inline\n")
	}
	p.indent++
	p.printFunc(w.Fn)
	p.indent--
}

func (p *Printer) printFunc(f *Func) {
	if f == nil {
		p.printf("<nil>\n")
		return
	}
	name := f.Name
	if name == "" {
		name = "<template>"
	}
	flags := f.Flags.String()
	if flags != "" {
		flags = " [" + strings.TrimSpace(flags) + "]"
	}
	p.printf("fn %s(", name)
	for i, prm := range f.Params {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", prm.Name)
		if prm.HasDefault {
			p.printf(" = %s", p.exprStr(prm.Default))
		}
	}
	p.printf(")%s\n", flags)
	p.printFuncBody(f)
}

func (p *Printer) printFuncBody(f *Func) {
	if f == nil {
		return
	}
	p.indent++
	for i := range f.Body {
		p.printStmt(&f.Body[i])
	}
	p.indent--
}

func (p *Printer) printStmt(s *Stmt) {
	switch s.Kind {
	case StmtReturn:
		if s.Expr != nil {
			p.printf("return %s\n", p.exprStr(s.Expr))
		} else {
			p.printf("return\n")
		}
	case StmtAssign:
		p.printf("%s = %s\n", p.exprStr(s.Dst), p.exprStr(s.Src))
	case StmtVar:
		if s.Expr != nil {
			p.printf("var %s = %s\n", s.Name, p.exprStr(s.Expr))
		} else {
			p.printf("var %s\n", s.Name)
		}
	case StmtExpr:
		p.printf("%s\n", p.exprStr(s.Expr))
	case StmtDefault:
		p.printf("default %s = %s\n", s.Name, p.exprStr(s.Expr))
	case StmtReturnFunc:
		p.printf("return fn:\n")
		p.indent++
		p.printFunc(s.Fn)
		p.indent--
	default:
		p.printf("<unknown stmt %d>\n", s.Kind)
	}
}

func (p *Printer) exprStr(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprName:
		return e.Text
	case ExprLiteral:
		return e.Text
	case ExprField:
		return "field(" + e.Text + ")"
	case ExprRaw:
		return e.Text
	}
	return fmt.Sprintf("<unknown expr %d>", e.Kind)
}

// printf writes formatted text, indenting at line starts.
func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	s := fmt.Sprintf(format, args...)
	if s == "" {
		return
	}
	if !p.midline && p.indent > 0 {
		if _, err := io.WriteString(p.w, strings.Repeat("  ", p.indent)); err != nil {
			p.err = err
			return
		}
	}
	p.midline = !strings.HasSuffix(s, "\n")
	if _, err := io.WriteString(p.w, s); err != nil {
		p.err = err
	}
}
