package symbols

import (
	"slices"

	"cfront/internal/diag"
	"cfront/internal/layout"
)

// LayoutStruct moves the staged members onto the struct tag, assigning
// offsets with natural alignment, and empties the member catalog.
func (t *Table) LayoutStruct(tag SymbolID) {
	t.layoutComposite(tag, StructTag, t.Layout.Struct)
}

// LayoutUnion moves the staged members onto the union tag. Every member
// sits at offset zero.
func (t *Table) LayoutUnion(tag SymbolID) {
	t.layoutComposite(tag, UnionTag, t.Layout.Union)
}

func (t *Table) layoutComposite(tag SymbolID, class Class, lay func([]layout.Field) layout.TypeLayout) {
	sym := t.Symbols.Get(tag)
	if sym == nil || sym.Class != class {
		diag.Fatald(t, "layout of a non-"+class.String()+" symbol", int(tag))
	}

	staged := t.catalogs[Members].ids
	tl := t.placeStaged(lay)
	sym.Members = slices.Clone(staged)
	sym.Size = tl.Size
	sym.Align = tl.Align
	t.catalogs[Members].Clear()
}

// placeStaged assigns offsets to the staged members.
func (t *Table) placeStaged(lay func([]layout.Field) layout.TypeLayout) layout.TypeLayout {
	staged := t.catalogs[Members].ids
	fields := make([]layout.Field, len(staged))
	for i, id := range staged {
		m := t.Symbols.Get(id)
		align, err := t.AlignOf(m)
		if err != nil {
			align = 1
		}
		fields[i] = layout.Field{Size: m.Size, Align: align}
	}

	tl := lay(fields)
	for i, id := range staged {
		t.Symbols.Get(id).SetOffset(tl.FieldOffsets[i])
	}
	return tl
}

// MatchStaged lays out the staged members without attaching them and
// reports whether they describe the same layout as the laid-out tag. The
// member catalog is emptied either way; the staged records stay orphaned
// in the arena.
func (t *Table) MatchStaged(tag SymbolID) bool {
	sym := t.Symbols.Get(tag)
	if sym == nil || !sym.IsTag() {
		diag.Fatald(t, "member match against a non-tag symbol", int(tag))
	}
	lay := t.Layout.Struct
	if sym.Class == UnionTag {
		lay = t.Layout.Union
	}
	staged := slices.Clone(t.catalogs[Members].ids)
	tl := t.placeStaged(lay)
	t.catalogs[Members].Clear()
	return tl.Size == sym.Size && tl.Align == sym.Align && t.sameMembers(staged, sym.Members)
}

// SameTag reports whether a and b are the same tag, or two laid-out tags of
// the same class whose members agree in name, type, shape and offset.
// Anonymous tags nested in a repeated definition only ever match this way.
func (t *Table) SameTag(a, b SymbolID) bool {
	if a == b {
		return true
	}
	x, y := t.Symbols.Get(a), t.Symbols.Get(b)
	if x == nil || y == nil || !x.IsTag() || x.Class != y.Class || x.Name != y.Name {
		return false
	}
	if x.Align == 0 || y.Align == 0 {
		return false
	}
	return x.Size == y.Size && x.Align == y.Align && t.sameMembers(x.Members, y.Members)
}

func (t *Table) sameMembers(a, b []SymbolID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := t.Symbols.Get(a[i]), t.Symbols.Get(b[i])
		if x == nil || y == nil {
			return false
		}
		if x.Name != y.Name || x.Type != y.Type || x.Kind != y.Kind || x.NElems != y.NElems ||
			x.Size != y.Size || x.Offset() != y.Offset() {
			return false
		}
		if x.Composite.IsValid() != y.Composite.IsValid() {
			return false
		}
		if x.Composite.IsValid() && !t.SameTag(x.Composite, y.Composite) {
			return false
		}
	}
	return true
}
