package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cfront/internal/diag"
	"cfront/internal/layout"
	"cfront/internal/trace"
)

// Hints provide optional capacity suggestions for the symbol arena.
type Hints struct{ Symbols uint }

// Table is the compilation context of the front end: the symbol arena, the
// eight catalogs and the function whose body is being processed. One Table
// serves every translation unit of a run; it is not safe for concurrent use.
type Table struct {
	Symbols *Symbols
	Layout  *layout.Engine

	// Position is read by fatal errors to report where they happened.
	Position diag.Locator
	// Tracer receives function-scope and catalog events. Nil disables them.
	Tracer trace.Tracer

	catalogs [catalogCount]Catalog
	function SymbolID
	fnSpan   *trace.Span
}

// NewTable builds an empty table sizing types for target.
func NewTable(h Hints, target layout.Target) *Table {
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	t := &Table{
		Symbols: NewSymbols(symCap),
		Layout:  layout.New(target),
		Tracer:  trace.Nop,
	}
	for k := range t.catalogs {
		t.catalogs[k] = Catalog{kind: CatalogKind(k), loc: t}
	}
	return t
}

// Line implements diag.Locator by forwarding to Position.
func (t *Table) Line() int {
	if t.Position == nil {
		return 0
	}
	return t.Position.Line()
}

// Filename implements diag.Locator by forwarding to Position.
func (t *Table) Filename() string {
	if t.Position == nil {
		return ""
	}
	return t.Position.Filename()
}

// Catalog returns one of the eight catalogs.
func (t *Table) Catalog(kind CatalogKind) *Catalog {
	if kind >= catalogCount {
		diag.Fatald(t, "unknown catalog", int(kind))
	}
	return &t.catalogs[kind]
}

// Get returns the record behind id, or nil.
func (t *Table) Get(id SymbolID) *Symbol {
	return t.Symbols.Get(id)
}

// ActiveFunction returns the function whose body is being processed.
func (t *Table) ActiveFunction() SymbolID {
	return t.function
}

// composite returns the tag behind id as a layout.Composite, or a nil
// interface when there is none.
func (t *Table) composite(id SymbolID) layout.Composite {
	if sym := t.Symbols.Get(id); sym != nil {
		return sym
	}
	return nil
}

// SizeOf is the size of one value of sym's type.
func (t *Table) SizeOf(sym *Symbol) (int, error) {
	return t.Layout.SizeOf(sym.Type, t.composite(sym.Composite))
}

// AlignOf is the alignment of one value of sym's type.
func (t *Table) AlignOf(sym *Symbol) (int, error) {
	return t.Layout.AlignOf(sym.Type, t.composite(sym.Composite))
}

func (t *Table) tracer() trace.Tracer {
	if t.Tracer == nil {
		return trace.Nop
	}
	return t.Tracer
}
