package symbols

import (
	"slices"
	"strconv"

	"cfront/internal/diag"
	"cfront/internal/trace"
)

// Reset empties every catalog and the arena and clears the active function.
func (t *Table) Reset() {
	for k := range t.catalogs {
		t.catalogs[k].Clear()
	}
	t.Symbols.Reset()
	t.function = NoSymbolID
	t.fnSpan = nil
}

// AttachParams makes the current parameter catalog the signature of fn.
func (t *Table) AttachParams(fn SymbolID) {
	sym := t.mustFunction(fn)
	sym.Params = slices.Clone(t.catalogs[Params].ids)
	sym.NElems = len(sym.Params)
}

// BeginFunction makes fn the active function. The parameters registered so
// far become its signature and its visible member chain.
func (t *Table) BeginFunction(fn SymbolID) {
	t.AttachParams(fn)
	sym := t.Symbols.Get(fn)
	sym.Members = slices.Clone(sym.Params)
	t.function = fn
	t.fnSpan = trace.Begin(t.tracer(), trace.ScopeFunction, "function:"+sym.Name, 0)
}

// EndFunction forgets the locals and parameters of the active function.
// Calling it with no active function is a no-op apart from clearing the
// parameter catalog, so it also discards the parameters of a prototype.
func (t *Table) EndFunction() {
	locals := t.catalogs[Locals].Len()
	t.catalogs[Locals].Clear()
	t.catalogs[Params].Clear()
	if fn := t.Symbols.Get(t.function); fn != nil {
		fn.Members = nil
	}
	t.function = NoSymbolID
	if t.fnSpan != nil {
		t.fnSpan.With("locals", strconv.Itoa(locals)).End("")
		t.fnSpan = nil
	}
}

// PruneStatics drops static globals from the global catalog, keeping the
// order of the rest, and returns how many were dropped. It runs at the end
// of each translation unit.
func (t *Table) PruneStatics() int {
	n := t.catalogs[Globals].Retain(func(id SymbolID) bool {
		sym := t.Symbols.Get(id)
		return sym != nil && sym.Class != Static
	})
	if n > 0 {
		trace.Point(t.tracer(), trace.ScopeUnit, "prune-statics", strconv.Itoa(n))
	}
	return n
}

func (t *Table) mustFunction(fn SymbolID) *Symbol {
	sym := t.Symbols.Get(fn)
	if sym == nil || sym.Kind != Function {
		diag.Fatald(t, "not a function symbol", int(fn))
	}
	return sym
}
