package lower

import (
	"lumen/internal/decl"
	"lumen/internal/lir"
	"lumen/internal/source"
)

// Collector is the default Emitter and ExportRegistry: it gathers output
// units into a lowered module in emission order.
type Collector struct {
	Module *lir.Module
	seen   map[*decl.Descriptor]struct{}
}

// NewCollector creates a collector with an empty module.
func NewCollector() *Collector {
	return &Collector{Module: &lir.Module{}}
}

// EmitFunction appends one function unit.
func (c *Collector) EmitFunction(d *decl.Descriptor, body lir.Emission, anchor source.Span) {
	c.Module.Funcs = append(c.Module.Funcs, lir.FuncUnit{Desc: d, Body: body, Link: anchor})
}

// EmitProperty appends one property unit.
func (c *Collector) EmitProperty(d *decl.Descriptor, getter, setter *lir.Func) {
	c.Module.Props = append(c.Module.Props, lir.PropUnit{Desc: d, Getter: getter, Setter: setter})
}

// Register records an exported descriptor once.
func (c *Collector) Register(d *decl.Descriptor) {
	if d == nil {
		return
	}
	if c.seen == nil {
		c.seen = make(map[*decl.Descriptor]struct{})
	}
	if _, ok := c.seen[d]; ok {
		return
	}
	c.seen[d] = struct{}{}
	c.Module.Exports = append(c.Module.Exports, d)
}

// PrefixFieldResolver resolves property backing fields by prefixing the
// property name.
type PrefixFieldResolver struct {
	Prefix string
}

// ResolveBackingField returns the backing-field reference for a property.
func (r PrefixFieldResolver) ResolveBackingField(d *decl.Descriptor) *lir.Expr {
	prefix := r.Prefix
	if prefix == "" {
		prefix = "_"
	}
	return lir.Field(prefix + d.Name)
}

// MemberClassTranslator is the reference class translator: it dispatches
// the class members through the same lowerer in a child scope and yields
// the class descriptor for export registration.
type MemberClassTranslator struct {
	Lowerer *Lowerer
}

// TranslateClass lowers the members of a class declaration.
func (t MemberClassTranslator) TranslateClass(d *decl.Declaration, scope *Scope) (*decl.Descriptor, error) {
	if t.Lowerer != nil {
		child := scope.Child()
		for _, member := range d.Members {
			if err := t.Lowerer.Dispatch(child, member); err != nil {
				return nil, err
			}
		}
	}
	return d.Desc, nil
}
