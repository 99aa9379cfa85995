package decl

// Modality classifies how a member participates in overriding.
type Modality uint8

const (
	// ModalityFinal is the default: the member cannot be overridden.
	ModalityFinal Modality = iota
	// ModalityOpen allows overriding in subclasses.
	ModalityOpen
	// ModalityAbstract requires overriding; the member has no body.
	ModalityAbstract
	// ModalitySealed restricts overriding to the same compilation unit.
	ModalitySealed
)

// String returns a human-readable representation of the modality.
func (m Modality) String() string {
	switch m {
	case ModalityFinal:
		return "final"
	case ModalityOpen:
		return "open"
	case ModalityAbstract:
		return "abstract"
	case ModalitySealed:
		return "sealed"
	}
	return "unknown"
}

// AllowsOverride reports whether a member with this modality may be
// overridden somewhere in a hierarchy.
func (m Modality) AllowsOverride() bool {
	return m != ModalityFinal
}

// Visibility classifies how widely a declaration is visible.
type Visibility uint8

const (
	// VisPrivate restricts the declaration to its own scope.
	VisPrivate Visibility = iota
	// VisInternal restricts the declaration to its own compilation unit.
	VisInternal
	// VisPublic makes the declaration visible everywhere.
	VisPublic
)

// String returns a human-readable representation of the visibility.
func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisInternal:
		return "internal"
	case VisPublic:
		return "public"
	}
	return "unknown"
}
