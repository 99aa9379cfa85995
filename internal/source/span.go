package source

import (
	"fmt"
)

// UnitID uniquely identifies a compilation unit within a UnitSet.
type UnitID uint32

// NoUnitID is the zero, invalid unit identifier.
const NoUnitID UnitID = 0

// IsValid reports whether the identifier refers to a real unit.
func (id UnitID) IsValid() bool {
	return id != NoUnitID
}

// Span is a byte range inside one compilation unit. Start is inclusive,
// End is exclusive.
type Span struct {
	Unit  UnitID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Unit, s.Start, s.End)
}

// Cover widens the span to include other. Spans from different units are
// left untouched.
func (s Span) Cover(other Span) Span {
	if s.Unit != other.Unit {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
