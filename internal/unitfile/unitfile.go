// Package unitfile loads TOML descriptions of resolved compilation units.
//
// The lowering pass consumes descriptors produced by upstream resolution;
// unit files are the serialized form of that input, used by the driver,
// the CLI and tests.
package unitfile

import (
	"fmt"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"lumen/internal/decl"
	"lumen/internal/project"
	"lumen/internal/source"
)

// Ext is the unit-description file extension.
const Ext = ".unit.toml"

// Unit is one loaded compilation unit.
type Unit struct {
	Name  string
	Decls []*decl.Declaration
}

// Body is the syntactic body form the reference translator understands.
type Body []StmtDoc

// StmtDoc is one statement of a unit-file body.
type StmtDoc struct {
	Op    string `toml:"op"`
	Expr  string `toml:"expr"`
	Dst   string `toml:"dst"`
	Src   string `toml:"src"`
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type unitDoc struct {
	Unit struct {
		Name string `toml:"name"`
	} `toml:"unit"`
	Decls []declDoc `toml:"decl"`
}

type declDoc struct {
	Kind       string     `toml:"kind"`
	Name       string     `toml:"name"`
	Modality   string     `toml:"modality"`
	Visibility string     `toml:"visibility"`
	Suspend    bool       `toml:"suspend"`
	Inline     bool       `toml:"inline"`
	Var        bool       `toml:"var"`
	Extension  bool       `toml:"extension"`
	Params     []paramDoc `toml:"param"`
	Body       []StmtDoc  `toml:"body"`
	Getter     []StmtDoc  `toml:"getter"`
	Setter     []StmtDoc  `toml:"setter"`
	Members    []declDoc  `toml:"member"`
}

type paramDoc struct {
	Name    string `toml:"name"`
	Default string `toml:"default"`
}

// Load reads a unit description from disk. The export configuration
// decides which declarations carry the export flag; nil admits public
// declarations only.
func Load(path string, exports *project.ExportConfig) (*Unit, error) {
	var doc unitDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("unitfile: %s: %w", path, err)
	}
	return build(&doc, path, exports)
}

// Parse reads a unit description from memory.
func Parse(name string, data []byte, exports *project.ExportConfig) (*Unit, error) {
	var doc unitDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unitfile: %s: %w", name, err)
	}
	return build(&doc, name, exports)
}

func build(doc *unitDoc, origin string, exports *project.ExportConfig) (*Unit, error) {
	u := &Unit{Name: doc.Unit.Name}
	if u.Name == "" {
		return nil, fmt.Errorf("unitfile: %s: missing [unit].name", origin)
	}
	for i := range doc.Decls {
		d, err := buildDecl(&doc.Decls[i], exports)
		if err != nil {
			return nil, fmt.Errorf("unitfile: %s: %w", origin, err)
		}
		u.Decls = append(u.Decls, d)
	}
	return u, nil
}

func buildDecl(doc *declDoc, exports *project.ExportConfig) (*decl.Declaration, error) {
	name, err := ident(doc.Name)
	if err != nil {
		return nil, err
	}
	kind, err := parseKind(doc.Kind)
	if err != nil {
		return nil, fmt.Errorf("declaration %s: %w", name, err)
	}
	modality, err := parseModality(doc.Modality)
	if err != nil {
		return nil, fmt.Errorf("declaration %s: %w", name, err)
	}
	vis, err := parseVisibility(doc.Visibility)
	if err != nil {
		return nil, fmt.Errorf("declaration %s: %w", name, err)
	}

	desc := &decl.Descriptor{
		Name:       name,
		Modality:   modality,
		Visibility: vis,
	}
	if doc.Var {
		desc.Flags |= decl.DescVar
	}
	if doc.Suspend {
		desc.Flags |= decl.DescSuspend
	}
	if doc.Inline {
		desc.Flags |= decl.DescInline
	}
	if doc.Extension {
		desc.Flags |= decl.DescExtension
	}
	if exports.Admits(name, vis) {
		desc.Flags |= decl.DescExport
	}
	for _, p := range doc.Params {
		pname, err := ident(p.Name)
		if err != nil {
			return nil, fmt.Errorf("declaration %s: %w", name, err)
		}
		desc.Params = append(desc.Params, decl.ParamDesc{
			Name:       pname,
			HasDefault: p.Default != "",
			Default:    p.Default,
		})
	}

	d := &decl.Declaration{Kind: kind, Desc: desc}
	switch kind {
	case decl.KindFunction:
		if modality != decl.ModalityAbstract {
			d.Body = Body(doc.Body)
		}
	case decl.KindProperty:
		desc.Getter = accessorDesc("get_"+name, desc, nil)
		if doc.Var {
			desc.Setter = accessorDesc("set_"+name, desc, []decl.ParamDesc{{Name: "value"}})
		}
		if len(doc.Getter) > 0 {
			d.GetterBody = Body(doc.Getter)
		}
		if len(doc.Setter) > 0 {
			d.SetterBody = Body(doc.Setter)
		}
	case decl.KindClass:
		for i := range doc.Members {
			member, err := buildDecl(&doc.Members[i], exports)
			if err != nil {
				return nil, fmt.Errorf("class %s: %w", name, err)
			}
			d.Members = append(d.Members, member)
		}
	case decl.KindTypeAlias:
		// Erased by lowering; nothing else to build.
	}
	return d, nil
}

// accessorDesc derives an accessor sub-descriptor from its property.
func accessorDesc(name string, prop *decl.Descriptor, params []decl.ParamDesc) *decl.Descriptor {
	flags := prop.Flags &^ decl.DescVar
	return &decl.Descriptor{
		Name:       name,
		Modality:   prop.Modality,
		Visibility: prop.Visibility,
		Flags:      flags,
		Params:     params,
		Span:       prop.Span,
	}
}

// ident normalizes a declaration name to NFC and validates that it is a
// plain identifier.
func ident(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty identifier")
	}
	name = norm.NFC.String(name)
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return name, nil
}

func parseKind(s string) (decl.Kind, error) {
	switch s {
	case "class", "object":
		return decl.KindClass, nil
	case "property":
		return decl.KindProperty, nil
	case "function":
		return decl.KindFunction, nil
	case "typealias":
		return decl.KindTypeAlias, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func parseModality(s string) (decl.Modality, error) {
	switch s {
	case "final", "":
		return decl.ModalityFinal, nil
	case "open":
		return decl.ModalityOpen, nil
	case "abstract":
		return decl.ModalityAbstract, nil
	case "sealed":
		return decl.ModalitySealed, nil
	}
	return 0, fmt.Errorf("unknown modality %q", s)
}

func parseVisibility(s string) (decl.Visibility, error) {
	switch s {
	case "private":
		return decl.VisPrivate, nil
	case "internal", "":
		return decl.VisInternal, nil
	case "public":
		return decl.VisPublic, nil
	}
	return 0, fmt.Errorf("unknown visibility %q", s)
}

// Span attaches a unit span to every descriptor of the unit. Called by the
// driver after the unit file is registered.
func (u *Unit) Span(span source.Span) {
	for _, d := range u.Decls {
		stampSpan(d, span)
	}
}

func stampSpan(d *decl.Declaration, span source.Span) {
	d.Desc.Span = span
	if d.Desc.Getter != nil {
		d.Desc.Getter.Span = span
	}
	if d.Desc.Setter != nil {
		d.Desc.Setter.Span = span
	}
	for _, m := range d.Members {
		stampSpan(m, span)
	}
}
