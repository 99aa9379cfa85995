package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{Unit: 1, Start: 10, End: 20}
	b := Span{Unit: 1, Start: 5, End: 15}

	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Errorf("expected 5-20, got %d-%d", c.Start, c.End)
	}

	other := Span{Unit: 2, Start: 0, End: 100}
	c = a.Cover(other)
	if c != a {
		t.Errorf("cover across units must be a no-op, got %v", c)
	}
}

func TestSpanEmptyLen(t *testing.T) {
	s := Span{Unit: 1, Start: 7, End: 7}
	if !s.Empty() {
		t.Error("expected empty span")
	}
	s.End = 12
	if s.Empty() || s.Len() != 5 {
		t.Errorf("expected len 5, got %d", s.Len())
	}
}

func TestUnitSetLoadVirtual(t *testing.T) {
	us := NewUnitSet()
	f := us.AddVirtual("mem://a", []byte("hello"))
	if !f.ID.IsValid() {
		t.Fatal("expected valid unit id")
	}
	again := us.AddVirtual("mem://a", []byte("ignored"))
	if again.ID != f.ID {
		t.Errorf("expected same id for same name, got %d and %d", f.ID, again.ID)
	}
	if us.Len() != 1 {
		t.Errorf("expected 1 unit, got %d", us.Len())
	}
	if f.Span().Len() != 5 {
		t.Errorf("expected span len 5, got %d", f.Span().Len())
	}
}
