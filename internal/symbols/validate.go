package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"cfront/internal/types"
)

// Validate walks the arena and the catalogs checking structural invariants.
// Returns nil if everything is consistent; otherwise aggregates all issues.
func (t *Table) Validate() error {
	var errs []error

	// Catalog entries point at live records of the right class.
	for k := range t.catalogs {
		cat := &t.catalogs[k]
		for _, id := range cat.ids {
			sym := t.Symbols.Get(id)
			if sym == nil {
				errs = append(errs, fmt.Errorf("%s catalog references missing symbol %d", cat.kind, id))
				continue
			}
			if !cat.kind.accepts(sym.Class) {
				errs = append(errs, fmt.Errorf("%s catalog holds %s symbol %q", cat.kind, sym.Class, sym.Name))
			}
		}
	}

	// Locals exist only inside a function body.
	active := t.Symbols.Get(t.function)
	if t.function.IsValid() && (active == nil || active.Kind != Function) {
		errs = append(errs, fmt.Errorf("active function %d is not a function symbol", t.function))
	}
	if !t.function.IsValid() && t.catalogs[Locals].Len() > 0 {
		errs = append(errs, fmt.Errorf("%d locals outside a function body", t.catalogs[Locals].Len()))
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		id, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sym := &t.Symbols.data[idx]

		if sym.Kind == Function && id != t.function && len(sym.Members) > 0 {
			errs = append(errs, fmt.Errorf("function %q keeps a member chain outside its body", sym.Name))
		}
		if types.IsComposite(sym.Type) && !sym.IsTag() && !sym.Composite.IsValid() && sym.Kind != Function && sym.Size != 0 {
			errs = append(errs, fmt.Errorf("symbol %q has a composite size without a tag", sym.Name))
		}
		if sym.Composite.IsValid() {
			tag := t.Symbols.Get(sym.Composite)
			if tag == nil || !tag.IsTag() {
				errs = append(errs, fmt.Errorf("symbol %q references %d, which is not a struct or union tag", sym.Name, sym.Composite))
			}
		}
		if sym.IsTag() {
			errs = append(errs, t.validateMembers(sym)...)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (t *Table) validateMembers(tag *Symbol) []error {
	var errs []error
	end := 0
	for _, id := range tag.Members {
		m := t.Symbols.Get(id)
		if m == nil || m.Class != Member {
			errs = append(errs, fmt.Errorf("%s %q has a non-member %d in its member chain", tag.Class, tag.Name, id))
			continue
		}
		off := m.Offset()
		switch tag.Class {
		case UnionTag:
			if off != 0 {
				errs = append(errs, fmt.Errorf("union %q member %q at offset %d", tag.Name, m.Name, off))
			}
		case StructTag:
			if off < end {
				errs = append(errs, fmt.Errorf("struct %q member %q overlaps the previous member", tag.Name, m.Name))
			}
			end = off + m.Size
		}
		if off+m.Size > tag.Size {
			errs = append(errs, fmt.Errorf("%s %q member %q ends past size %d", tag.Class, tag.Name, m.Name, tag.Size))
		}
	}
	return errs
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
