package lower

import (
	"sort"

	"lumen/internal/decl"
	"lumen/internal/lir"
)

// Unit owns the lowering state shared across the declarations of one
// compilation unit: the ordered accumulator of hoisted auxiliary
// declarations. It is created per unit and drained exactly once at
// finalization.
type Unit struct {
	Name    string
	hoisted []lir.InlineWrapper
	drained bool
}

// NewUnit creates the per-unit lowering state.
func NewUnit(name string) *Unit {
	return &Unit{Name: name}
}

// RootScope returns the top-level scope of the unit.
func (u *Unit) RootScope() *Scope {
	return &Scope{unit: u}
}

// Finalize drains the hoisted accumulator into the module, preserving
// insertion order. Later phases may resolve template references within
// that order, so it must match the order the source declarations were
// visited in.
func (u *Unit) Finalize(m *lir.Module) {
	m.Name = u.Name
	m.Hoisted = append(m.Hoisted, u.hoisted...)
	u.hoisted = nil
	u.drained = true
}

func (u *Unit) appendHoisted(w lir.InlineWrapper) {
	u.hoisted = append(u.hoisted, w)
}

// Scope is one level of the strictly nested translation context. A child
// scope created for a declaration's translation must not outlive that
// declaration's processing.
type Scope struct {
	unit   *Unit
	parent *Scope
	fn     *lir.Func
	names  map[string]struct{}
	free   map[string]struct{}
	segs   *lir.CoroutineSegments
}

// Child creates a nested scope for translating one declaration or body.
func (s *Scope) Child() *Scope {
	return &Scope{unit: s.unit, parent: s, fn: s.fn}
}

// Unit returns the owning per-unit state.
func (s *Scope) Unit() *Unit {
	return s.unit
}

// AllocFunc allocates the canonical output-function shell for a descriptor
// and binds its parameters into this scope. Suspend descriptors start out
// flagged for the state-machine transform; the coroutine split clears the
// flag on the template half when the function must be split.
func (s *Scope) AllocFunc(d *decl.Descriptor) *lir.Func {
	fn := &lir.Func{Name: d.Name, Link: d.Span}
	if d.IsSuspend() {
		fn.Flags |= lir.FuncCoroutine
	}
	if len(d.Params) > 0 {
		fn.Params = make([]lir.Param, 0, len(d.Params))
		for _, p := range d.Params {
			prm := lir.Param{Name: p.Name, HasDefault: p.HasDefault}
			if p.HasDefault {
				prm.Default = lir.Literal(p.Default)
			}
			fn.Params = append(fn.Params, prm)
			s.Declare(p.Name)
		}
	}
	s.fn = fn
	return fn
}

// Declare binds a name in this scope.
func (s *Scope) Declare(name string) {
	if name == "" {
		return
	}
	if s.names == nil {
		s.names = make(map[string]struct{})
	}
	s.names[name] = struct{}{}
}

// Use records a name reference. Names not bound inside the current
// function become part of its captured free-name set.
func (s *Scope) Use(name string) {
	if name == "" || s.boundInFunc(name) {
		return
	}
	if s.free == nil {
		s.free = make(map[string]struct{})
	}
	s.free[name] = struct{}{}
}

// boundInFunc walks the scope chain within the current function shell.
func (s *Scope) boundInFunc(name string) bool {
	for cur := s; cur != nil && cur.fn == s.fn; cur = cur.parent {
		if _, ok := cur.names[name]; ok {
			return true
		}
	}
	return false
}

// FreeNames returns the sorted captured free-name set of this scope.
func (s *Scope) FreeNames() []string {
	if len(s.free) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.free))
	for name := range s.free {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AttachSegments attaches coroutine segment bookkeeping to this scope.
// This does not transform control flow; it only lets the body translator
// record import/prototype/declaration statements for a possible split.
func (s *Scope) AttachSegments() {
	s.segs = &lir.CoroutineSegments{}
}

// Segments returns the coroutine segments recorded on this scope or the
// nearest ancestor, or nil when no suspend bookkeeping is attached.
func (s *Scope) Segments() *lir.CoroutineSegments {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.segs != nil {
			return cur.segs
		}
	}
	return nil
}

// RecordImport appends a statement to the import segment. Returns false
// when no suspend bookkeeping is attached.
func (s *Scope) RecordImport(st lir.Stmt) bool {
	segs := s.Segments()
	if segs == nil {
		return false
	}
	segs.Imports = append(segs.Imports, st)
	return true
}

// RecordPrototype appends a statement to the prototype segment.
func (s *Scope) RecordPrototype(st lir.Stmt) bool {
	segs := s.Segments()
	if segs == nil {
		return false
	}
	segs.Prototype = append(segs.Prototype, st)
	return true
}

// RecordDeclaration appends a statement to the declarations segment.
func (s *Scope) RecordDeclaration(st lir.Stmt) bool {
	segs := s.Segments()
	if segs == nil {
		return false
	}
	segs.Declarations = append(segs.Declarations, st)
	return true
}

// Hoist appends one template declaration to the unit's ordered hoisted
// list.
func (s *Scope) Hoist(w lir.InlineWrapper) {
	s.unit.appendHoisted(w)
}
