package decl

import (
	"lumen/internal/source"
)

// DescFlags represents descriptor facts as a bitmask.
type DescFlags uint32

const (
	// DescVar marks a mutable property (val otherwise).
	DescVar DescFlags = 1 << iota
	// DescSuspend marks a suspendable function.
	DescSuspend
	// DescInline marks a function eligible for call-site splicing.
	DescInline
	// DescExtension marks an extension property.
	DescExtension
	// DescExport marks a declaration admitted to the exported surface.
	// Derived upstream from visibility and the project export configuration.
	DescExport
)

// HasFlag returns true if the given flag is set.
func (f DescFlags) HasFlag(flag DescFlags) bool {
	return f&flag != 0
}

// String returns a human-readable representation of flags.
func (f DescFlags) String() string {
	s := ""
	if f.HasFlag(DescVar) {
		s += "var "
	}
	if f.HasFlag(DescSuspend) {
		s += "suspend "
	}
	if f.HasFlag(DescInline) {
		s += "inline "
	}
	if f.HasFlag(DescExtension) {
		s += "extension "
	}
	if f.HasFlag(DescExport) {
		s += "export "
	}
	return s
}

// ParamDesc describes one resolved function parameter.
type ParamDesc struct {
	Name       string
	HasDefault bool
	Default    string // default-value expression text (empty if none)
}

// Descriptor holds the immutable resolved facts about one declaration.
// Descriptors are produced by resolution upstream of lowering and are never
// mutated here.
type Descriptor struct {
	Name       string
	Modality   Modality
	Visibility Visibility
	Flags      DescFlags
	Params     []ParamDesc
	Span       source.Span

	// Getter and Setter are the accessor sub-descriptors of a property.
	// Getter is always present for a non-abstract property; Setter is
	// present iff the property is a var.
	Getter *Descriptor
	Setter *Descriptor
}

// IsVar returns true for mutable properties.
func (d *Descriptor) IsVar() bool { return d.Flags.HasFlag(DescVar) }

// IsSuspend returns true for suspendable functions.
func (d *Descriptor) IsSuspend() bool { return d.Flags.HasFlag(DescSuspend) }

// IsInline returns true for inline-eligible functions.
func (d *Descriptor) IsInline() bool { return d.Flags.HasFlag(DescInline) }

// IsExtension returns true for extension properties.
func (d *Descriptor) IsExtension() bool { return d.Flags.HasFlag(DescExtension) }

// IsOverridable reports whether the member can be overridden: any modality
// except final allows it.
func (d *Descriptor) IsOverridable() bool { return d.Modality.AllowsOverride() }

// ShouldExport reports whether the declaration belongs to the externally
// visible surface of its unit.
func (d *Descriptor) ShouldExport() bool { return d.Flags.HasFlag(DescExport) }
