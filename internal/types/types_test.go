package types

import (
	"errors"
	"testing"
)

var allKinds = []Kind{None, Void, Char, Int, Long, Struct, Union}

func TestPointerValueRoundTrip(t *testing.T) {
	for _, k := range allKinds {
		for level := 0; level < MaxIndirection; level++ {
			base := Make(k, level)
			ptr, err := PointerTo(base)
			if err != nil {
				t.Fatalf("PointerTo(%s): %v", base, err)
			}
			if ptr.Kind() != k {
				t.Fatalf("PointerTo(%s) changed kind to %s", base, ptr.Kind())
			}
			back, err := ValueAt(ptr)
			if err != nil {
				t.Fatalf("ValueAt(%s): %v", ptr, err)
			}
			if back != base {
				t.Fatalf("ValueAt(PointerTo(%s)) = %s", base, back)
			}
		}
	}
}

func TestPointerToAtMaxFails(t *testing.T) {
	for _, k := range allKinds {
		top := Make(k, MaxIndirection)
		got, err := PointerTo(top)
		if !errors.Is(err, ErrTooMuchIndirection) {
			t.Fatalf("PointerTo(%s) err = %v, want ErrTooMuchIndirection", top, err)
		}
		if got != top {
			t.Fatalf("PointerTo(%s) wrapped to %s", top, got)
		}
	}
}

func TestValueAtValueFails(t *testing.T) {
	if _, err := ValueAt(Of(Int)); !errors.Is(err, ErrNotPointer) {
		t.Fatalf("ValueAt(int) err = %v", err)
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		typ       Type
		integer   bool
		pointer   bool
		composite bool
	}{
		{Of(Char), true, false, false},
		{Of(Int), true, false, false},
		{Of(Long), true, false, false},
		{Of(Void), false, false, false},
		{Make(Void, 1), false, true, false},
		{Make(Int, 2), false, true, false},
		{Of(Struct), false, false, true},
		{Make(Struct, 1), false, true, false},
		{Of(Union), false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := IsInteger(tt.typ); got != tt.integer {
				t.Errorf("IsInteger = %v", got)
			}
			if got := IsPointer(tt.typ); got != tt.pointer {
				t.Errorf("IsPointer = %v", got)
			}
			if got := IsComposite(tt.typ); got != tt.composite {
				t.Errorf("IsComposite = %v", got)
			}
		})
	}
}

func TestEncodingMatchesPackedLayout(t *testing.T) {
	if got := Make(Int, 2); uint16(got) != 50 {
		t.Fatalf("int ** encodes as %d, want 50", got)
	}
	if got := Make(Struct, 1).String(); got != "struct *" {
		t.Fatalf("String = %q", got)
	}
}
