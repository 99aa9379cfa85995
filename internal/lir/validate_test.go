package lir

import (
	"strings"
	"testing"

	"lumen/internal/decl"
)

func funcDesc(name string, flags decl.DescFlags) *decl.Descriptor {
	return &decl.Descriptor{Name: name, Flags: flags}
}

func TestValidateAcceptsPlainFunction(t *testing.T) {
	m := &Module{
		Funcs: []FuncUnit{{
			Desc: funcDesc("f", 0),
			Body: Wrapped(&InlineWrapper{Fn: &Func{Name: "f"}}),
		}},
	}
	if err := Validate(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateSuspendFlagExclusivity(t *testing.T) {
	cases := []struct {
		name  string
		flags FuncFlags
		ok    bool
	}{
		{"coroutine only", FuncCoroutine, true},
		{"neither", 0, false},
		{"both", FuncCoroutine | FuncInlineTemplate, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &Module{
				Funcs: []FuncUnit{{
					Desc: funcDesc("f", decl.DescSuspend),
					Body: Bare(&Func{Name: "f", Flags: tc.flags}),
				}},
			}
			err := Validate(m)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected invariant violation")
			}
		})
	}
}

func TestValidateTemplateInvariants(t *testing.T) {
	tmpl := &Func{Flags: FuncInlineTemplate}
	m := &Module{Hoisted: []InlineWrapper{{Fn: tmpl}}}
	if err := Validate(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	named := &Func{Name: "leak", Flags: FuncInlineTemplate}
	m = &Module{Hoisted: []InlineWrapper{{Fn: named}}}
	err := Validate(m)
	if err == nil || !strings.Contains(err.Error(), "unnamed") {
		t.Fatalf("expected named-template violation, got %v", err)
	}

	coro := &Func{Flags: FuncInlineTemplate | FuncCoroutine}
	m = &Module{Hoisted: []InlineWrapper{{Fn: coro}}}
	if err := Validate(m); err == nil {
		t.Fatal("expected state-machine-flag violation on template")
	}
}

func TestValidateExecutableShape(t *testing.T) {
	desc := funcDesc("f", decl.DescSuspend|decl.DescInline|decl.DescExport)

	good := &Func{
		Name:  "f",
		Flags: FuncCoroutine,
		Body:  []Stmt{Var("dep", Raw("require('dep')")), ReturnFunc(&Func{})},
	}
	m := &Module{Funcs: []FuncUnit{{Desc: desc, Body: Wrapped(&InlineWrapper{Fn: good})}}}
	if err := Validate(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := &Func{
		Name:  "f",
		Flags: FuncCoroutine,
		Body:  []Stmt{Return(Literal("1"))},
	}
	m = &Module{Funcs: []FuncUnit{{Desc: desc, Body: Wrapped(&InlineWrapper{Fn: bad})}}}
	if err := Validate(m); err == nil {
		t.Fatal("expected capture-and-return violation")
	}
}

func TestValidatePropertyPairs(t *testing.T) {
	getter := &Func{Name: "get_x", Body: []Stmt{Return(Field("_x"))}}
	setter := &Func{Name: "set_x", Body: []Stmt{Assign(Field("_x"), Name("value"))}}

	varDesc := funcDesc("x", decl.DescVar)
	m := &Module{Props: []PropUnit{{Desc: varDesc, Getter: getter, Setter: setter}}}
	if err := Validate(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m = &Module{Props: []PropUnit{{Desc: varDesc, Getter: getter}}}
	if err := Validate(m); err == nil {
		t.Fatal("expected var-without-setter violation")
	}

	valDesc := funcDesc("x", 0)
	m = &Module{Props: []PropUnit{{Desc: valDesc, Getter: getter, Setter: setter}}}
	if err := Validate(m); err == nil {
		t.Fatal("expected val-with-setter violation")
	}
}

func TestValidateBodilessRequiresAbstract(t *testing.T) {
	abstract := &decl.Descriptor{Name: "a", Modality: decl.ModalityAbstract}
	m := &Module{Funcs: []FuncUnit{{Desc: abstract}}}
	if err := Validate(m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := &decl.Descriptor{Name: "f"}
	m = &Module{Funcs: []FuncUnit{{Desc: final}}}
	if err := Validate(m); err == nil {
		t.Fatal("expected bodiless-non-abstract violation")
	}
}
