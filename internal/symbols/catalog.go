package symbols

import (
	"slices"

	"cfront/internal/diag"
)

// CatalogKind names one of the table's symbol lists.
type CatalogKind uint8

const (
	Globals CatalogKind = iota
	Locals
	Params
	Members
	Structs
	Unions
	Enums
	Typedefs

	catalogCount
)

func (k CatalogKind) String() string {
	switch k {
	case Globals:
		return "globals"
	case Locals:
		return "locals"
	case Params:
		return "params"
	case Members:
		return "members"
	case Structs:
		return "structs"
	case Unions:
		return "unions"
	case Enums:
		return "enums"
	case Typedefs:
		return "typedefs"
	default:
		return "unknown"
	}
}

// accepts reports whether a record of class c may live in the catalog.
func (k CatalogKind) accepts(c Class) bool {
	switch k {
	case Globals:
		return c == Global || c == Extern || c == Static
	case Locals:
		return c == Local
	case Params:
		return c == Param
	case Members:
		return c == Member
	case Structs:
		return c == StructTag
	case Unions:
		return c == UnionTag
	case Enums:
		return c == EnumType || c == EnumValue
	case Typedefs:
		return c == Typedef
	}
	return false
}

// Catalog is an ordered list of symbol handles in insertion order.
type Catalog struct {
	kind CatalogKind
	ids  []SymbolID
	loc  diag.Locator
}

// Kind returns which catalog this is.
func (c *Catalog) Kind() CatalogKind { return c.kind }

// Append adds id at the tail. Appending an invalid handle means the table
// itself is corrupted, so it aborts the compilation.
func (c *Catalog) Append(id SymbolID) {
	if !id.IsValid() {
		diag.Fatals(c.loc, "invalid symbol handle appended to catalog", c.kind.String())
	}
	c.ids = append(c.ids, id)
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.ids) }

// IDs returns the entries in insertion order. The slice must not be modified.
func (c *Catalog) IDs() []SymbolID { return c.ids }

// Head returns the first entry or NoSymbolID.
func (c *Catalog) Head() SymbolID {
	if len(c.ids) == 0 {
		return NoSymbolID
	}
	return c.ids[0]
}

// Tail returns the last entry or NoSymbolID.
func (c *Catalog) Tail() SymbolID {
	if len(c.ids) == 0 {
		return NoSymbolID
	}
	return c.ids[len(c.ids)-1]
}

// Clear empties the catalog. The records stay in the arena.
func (c *Catalog) Clear() {
	c.ids = c.ids[:0]
}

// Retain keeps the entries for which keep returns true, preserving order,
// and returns how many were dropped.
func (c *Catalog) Retain(keep func(SymbolID) bool) int {
	before := len(c.ids)
	c.ids = slices.DeleteFunc(c.ids, func(id SymbolID) bool { return !keep(id) })
	return before - len(c.ids)
}

// Stash hands out the current entries and empties the catalog; Restore
// puts them back. Nested struct bodies use the pair around the shared
// member staging catalog.
func (c *Catalog) Stash() []SymbolID {
	out := slices.Clone(c.ids)
	c.Clear()
	return out
}

// Restore replaces the entries with ids.
func (c *Catalog) Restore(ids []SymbolID) {
	c.ids = append(c.ids[:0], ids...)
}
