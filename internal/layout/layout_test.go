package layout

import (
	"errors"
	"testing"

	"cfront/internal/types"
)

type fixedComposite struct{ size, align int }

func (c fixedComposite) CompositeSize() int  { return c.size }
func (c fixedComposite) CompositeAlign() int { return c.align }

func TestSizeOfScalars(t *testing.T) {
	e := New(X86_64())
	tests := []struct {
		typ  types.Type
		want int
	}{
		{types.Of(types.Char), 1},
		{types.Of(types.Int), 4},
		{types.Of(types.Long), 8},
		{types.Make(types.Char, 1), 8},
		{types.Make(types.Void, 1), 8},
		{types.Make(types.Struct, 3), 8},
	}
	for _, tt := range tests {
		got, err := e.SizeOf(tt.typ, nil)
		if err != nil {
			t.Fatalf("SizeOf(%s): %v", tt.typ, err)
		}
		if got != tt.want {
			t.Errorf("SizeOf(%s) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestSizeOfFollowsTarget(t *testing.T) {
	e := New(I386())
	if got, _ := e.SizeOf(types.Of(types.Long), nil); got != 4 {
		t.Errorf("i386 long = %d", got)
	}
	if got, _ := e.SizeOf(types.Make(types.Int, 1), nil); got != 4 {
		t.Errorf("i386 pointer = %d", got)
	}
}

func TestSizeOfComposite(t *testing.T) {
	e := New(X86_64())
	got, err := e.SizeOf(types.Of(types.Struct), fixedComposite{size: 24, align: 8})
	if err != nil || got != 24 {
		t.Fatalf("SizeOf(struct) = %d, %v", got, err)
	}

	_, err = e.SizeOf(types.Of(types.Union), nil)
	var le *LayoutError
	if !errors.As(err, &le) || le.Kind != LayoutErrIncomplete {
		t.Fatalf("expected incomplete error, got %v", err)
	}
}

func TestSizeOfNoneAndVoid(t *testing.T) {
	e := New(X86_64())
	for _, typ := range []types.Type{types.Of(types.None), types.Of(types.Void)} {
		_, err := e.SizeOf(typ, nil)
		var le *LayoutError
		if !errors.As(err, &le) || le.Kind != LayoutErrNoSize {
			t.Errorf("SizeOf(%s) err = %v", typ, err)
		}
	}
}

func TestStructLayoutNaturalAlignment(t *testing.T) {
	e := New(X86_64())
	// struct { char c; int i; char d; long l; }
	got := e.Struct([]Field{{1, 1}, {4, 4}, {1, 1}, {8, 8}})
	wantOffsets := []int{0, 4, 8, 16}
	for i, off := range wantOffsets {
		if got.FieldOffsets[i] != off {
			t.Errorf("field %d offset = %d, want %d", i, got.FieldOffsets[i], off)
		}
	}
	if got.Size != 24 || got.Align != 8 {
		t.Errorf("size/align = %d/%d, want 24/8", got.Size, got.Align)
	}
}

func TestStructTailPadding(t *testing.T) {
	e := New(X86_64())
	got := e.Struct([]Field{{4, 4}, {1, 1}})
	if got.Size != 8 {
		t.Errorf("size = %d, want 8", got.Size)
	}
	if empty := e.Struct(nil); empty.Size != 0 || empty.Align != 1 {
		t.Errorf("empty struct = %+v", empty)
	}
}

func TestUnionLayout(t *testing.T) {
	e := New(X86_64())
	got := e.Union([]Field{{1, 1}, {4, 4}, {5, 1}})
	if got.Size != 8 || got.Align != 4 {
		t.Errorf("size/align = %d/%d, want 8/4", got.Size, got.Align)
	}
	for i, off := range got.FieldOffsets {
		if off != 0 {
			t.Errorf("member %d offset = %d", i, off)
		}
	}
}

func TestArraySizeOverflow(t *testing.T) {
	e := New(X86_64())
	if n, err := e.ArraySize(types.Of(types.Int), 4, 10); err != nil || n != 40 {
		t.Fatalf("ArraySize = %d, %v", n, err)
	}
	if _, err := e.ArraySize(types.Of(types.Long), 8, 1<<30); err == nil {
		t.Fatalf("expected overflow")
	}
}

func TestTargetValidate(t *testing.T) {
	if err := X86_64().Validate(); err != nil {
		t.Fatalf("x86_64: %v", err)
	}
	bad := X86_64()
	bad.IntSize = 3
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for int size 3")
	}
	if _, err := TargetByName("pdp11"); err == nil {
		t.Fatalf("expected unknown target error")
	}
}
