package symbols

// Lookups return the first record in insertion order whose name matches.
// Absence is reported through the boolean, never as an error. Anonymous
// records never match.

func (t *Table) findIn(ids []SymbolID, name string, class Class) (SymbolID, bool) {
	if name == "" {
		return NoSymbolID, false
	}
	for _, id := range ids {
		sym := t.Symbols.Get(id)
		if sym == nil || sym.Name != name {
			continue
		}
		if class != ClassNone && sym.Class != class {
			continue
		}
		return id, true
	}
	return NoSymbolID, false
}

// FindGlobal searches the global catalog.
func (t *Table) FindGlobal(name string) (SymbolID, bool) {
	return t.findIn(t.catalogs[Globals].ids, name, ClassNone)
}

// FindLocal searches the active function's parameter chain, then the locals.
func (t *Table) FindLocal(name string) (SymbolID, bool) {
	if fn := t.Symbols.Get(t.function); fn != nil {
		if id, ok := t.findIn(fn.Members, name, ClassNone); ok {
			return id, true
		}
	}
	return t.findIn(t.catalogs[Locals].ids, name, ClassNone)
}

// FindSymbol resolves an ordinary identifier: parameters shadow locals,
// which shadow globals.
func (t *Table) FindSymbol(name string) (SymbolID, bool) {
	if id, ok := t.FindLocal(name); ok {
		return id, true
	}
	return t.FindGlobal(name)
}

// FindMember searches the members staged for the composite being defined.
func (t *Table) FindMember(name string) (SymbolID, bool) {
	return t.findIn(t.catalogs[Members].ids, name, ClassNone)
}

// FindMemberOf searches the laid-out members of a struct or union tag.
func (t *Table) FindMemberOf(tag SymbolID, name string) (SymbolID, bool) {
	sym := t.Symbols.Get(tag)
	if sym == nil {
		return NoSymbolID, false
	}
	return t.findIn(sym.Members, name, Member)
}

// FindStruct searches the struct tags.
func (t *Table) FindStruct(name string) (SymbolID, bool) {
	return t.findIn(t.catalogs[Structs].ids, name, ClassNone)
}

// FindUnion searches the union tags.
func (t *Table) FindUnion(name string) (SymbolID, bool) {
	return t.findIn(t.catalogs[Unions].ids, name, ClassNone)
}

// FindEnumType searches the enum catalog for an enum type name.
func (t *Table) FindEnumType(name string) (SymbolID, bool) {
	return t.findIn(t.catalogs[Enums].ids, name, EnumType)
}

// FindEnumValue searches the enum catalog for an enumerator.
func (t *Table) FindEnumValue(name string) (SymbolID, bool) {
	return t.findIn(t.catalogs[Enums].ids, name, EnumValue)
}

// FindTypedef searches the typedef catalog.
func (t *Table) FindTypedef(name string) (SymbolID, bool) {
	return t.findIn(t.catalogs[Typedefs].ids, name, ClassNone)
}
