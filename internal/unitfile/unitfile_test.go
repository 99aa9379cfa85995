package unitfile

import (
	"testing"

	"lumen/internal/decl"
	"lumen/internal/project"
)

func TestParseFunctionDecl(t *testing.T) {
	src := `
[unit]
name = "demo"

[[decl]]
kind = "function"
name = "fetch"
visibility = "public"
modality = "open"
suspend = true
inline = true

[[decl.param]]
name = "url"

[[decl.param]]
name = "retries"
default = "3"

[[decl.body]]
op = "return"
expr = "url"
`
	u, err := Parse("demo.unit.toml", []byte(src), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Name != "demo" || len(u.Decls) != 1 {
		t.Fatalf("expected unit demo with 1 decl, got %+v", u)
	}
	d := u.Decls[0]
	if d.Kind != decl.KindFunction {
		t.Errorf("expected function kind, got %v", d.Kind)
	}
	desc := d.Desc
	if !desc.IsSuspend() || !desc.IsInline() || !desc.ShouldExport() {
		t.Errorf("flags not carried over: %v", desc.Flags)
	}
	if desc.Modality != decl.ModalityOpen || !desc.IsOverridable() {
		t.Errorf("expected open modality, got %v", desc.Modality)
	}
	if len(desc.Params) != 2 || !desc.Params[1].HasDefault || desc.Params[1].Default != "3" {
		t.Errorf("params not carried over: %+v", desc.Params)
	}
	if !d.HasBody() {
		t.Error("expected body")
	}
}

func TestParsePropertySynthesizesAccessorDescriptors(t *testing.T) {
	src := `
[unit]
name = "demo"

[[decl]]
kind = "property"
name = "x"
var = true
`
	u, err := Parse("demo.unit.toml", []byte(src), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	desc := u.Decls[0].Desc
	if desc.Getter == nil || desc.Getter.Name != "get_x" {
		t.Fatalf("expected getter descriptor, got %+v", desc.Getter)
	}
	if desc.Setter == nil || desc.Setter.Name != "set_x" {
		t.Fatalf("expected setter descriptor, got %+v", desc.Setter)
	}
	if len(desc.Setter.Params) != 1 || desc.Setter.Params[0].Name != "value" {
		t.Errorf("setter must take the value parameter, got %+v", desc.Setter.Params)
	}
	if desc.Setter.IsVar() {
		t.Error("accessor descriptors must not inherit the var flag")
	}
}

func TestParseValPropertyHasNoSetter(t *testing.T) {
	src := `
[unit]
name = "demo"

[[decl]]
kind = "property"
name = "x"
`
	u, err := Parse("demo.unit.toml", []byte(src), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Decls[0].Desc.Setter != nil {
		t.Error("val property must not get a setter descriptor")
	}
}

func TestExportConfigApplies(t *testing.T) {
	src := `
[unit]
name = "demo"

[[decl]]
kind = "function"
name = "helper"
visibility = "internal"
`
	cfg := &project.ExportConfig{MinVisibility: decl.VisInternal}
	u, err := Parse("demo.unit.toml", []byte(src), cfg)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !u.Decls[0].Desc.ShouldExport() {
		t.Error("internal threshold must admit internal declarations")
	}

	u, err = Parse("demo.unit.toml", []byte(src), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Decls[0].Desc.ShouldExport() {
		t.Error("nil config must admit public declarations only")
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing unit name", `[[decl]]
kind = "function"
name = "f"
`},
		{"bad kind", `[unit]
name = "u"

[[decl]]
kind = "widget"
name = "f"
`},
		{"bad modality", `[unit]
name = "u"

[[decl]]
kind = "function"
name = "f"
modality = "wobbly"
`},
		{"bad identifier", `[unit]
name = "u"

[[decl]]
kind = "function"
name = "not valid"
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse("bad.unit.toml", []byte(tc.src), nil); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestIdentNormalizesToNFC(t *testing.T) {
	// "é" written as e + combining acute must normalize to the composed
	// form.
	name, err := ident("café")
	if err != nil {
		t.Fatalf("ident: %v", err)
	}
	if name != "café" {
		t.Errorf("expected composed form, got %q", name)
	}
}

func TestScanIdents(t *testing.T) {
	got := scanIdents("http.get(url) + retries2")
	want := []string{"http", "get", "url", "retries2"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ident %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
