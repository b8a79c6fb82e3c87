package symbols

import (
	"cfront/internal/diag"
	"cfront/internal/trace"
	"cfront/internal/types"
)

// AddGlobal records a global, extern or static symbol. For functions nelems
// is the parameter count and posn the end label; posn is ignored otherwise.
func (t *Table) AddGlobal(name string, typ types.Type, composite SymbolID, kind StructKind, class Class, nelems, posn int) SymbolID {
	sym := Symbol{
		Name:      name,
		Type:      typ,
		Composite: composite,
		Kind:      kind,
		Class:     class,
		NElems:    nelems,
	}
	if kind == Function {
		sym.slot = posn
	}
	return t.add(Globals, &sym)
}

// AddLocal records a local variable of the active function.
func (t *Table) AddLocal(name string, typ types.Type, composite SymbolID, kind StructKind, nelems int) SymbolID {
	return t.add(Locals, &Symbol{
		Name:      name,
		Type:      typ,
		Composite: composite,
		Kind:      kind,
		Class:     Local,
		NElems:    nelems,
	})
}

// AddParam records a parameter of the function being declared.
func (t *Table) AddParam(name string, typ types.Type, composite SymbolID, kind StructKind) SymbolID {
	return t.add(Params, &Symbol{
		Name:      name,
		Type:      typ,
		Composite: composite,
		Kind:      kind,
		Class:     Param,
		NElems:    1,
	})
}

// AddMember stages a member of the struct or union being defined.
func (t *Table) AddMember(name string, typ types.Type, composite SymbolID, kind StructKind, nelems int) SymbolID {
	return t.add(Members, &Symbol{
		Name:      name,
		Type:      typ,
		Composite: composite,
		Kind:      kind,
		Class:     Member,
		NElems:    nelems,
	})
}

// AddStruct records a struct tag. Size and members are filled in by LayoutStruct.
func (t *Table) AddStruct(name string) SymbolID {
	return t.add(Structs, &Symbol{Name: name, Type: types.Of(types.Struct), Class: StructTag})
}

// AddUnion records a union tag. Size and members are filled in by LayoutUnion.
func (t *Table) AddUnion(name string) SymbolID {
	return t.add(Unions, &Symbol{Name: name, Type: types.Of(types.Union), Class: UnionTag})
}

// AddEnum records an enum type name (class EnumType) or an enumerator
// (class EnumValue, carrying value). Enum records have no elements and
// therefore size 0.
func (t *Table) AddEnum(name string, class Class, value int) SymbolID {
	sym := Symbol{Name: name, Type: types.Of(types.Int), Class: class}
	if class == EnumValue {
		sym.slot = value
	}
	return t.add(Enums, &sym)
}

// AddTypedef records a type alias.
func (t *Table) AddTypedef(name string, typ types.Type, composite SymbolID) SymbolID {
	return t.add(Typedefs, &Symbol{
		Name:      name,
		Type:      typ,
		Composite: composite,
		Class:     Typedef,
		NElems:    1,
	})
}

func (t *Table) add(kind CatalogKind, sym *Symbol) SymbolID {
	if !kind.accepts(sym.Class) {
		diag.Fatals(t, "symbol class "+sym.Class.String()+" does not belong in catalog", kind.String())
	}
	if sym.Kind == Variable && sym.NElems <= 0 && !sym.IsTag() && !sym.isEnum() {
		sym.NElems = 1
	}
	t.backfillSize(sym)
	id := t.Symbols.New(sym)
	t.catalogs[kind].Append(id)
	trace.Point(t.tracer(), trace.ScopeSymbol, "add-"+kind.String(), sym.Name)
	return id
}

// backfillSize sets Size from the type: one value for variables and
// functions (the return value), elements times element size for arrays.
// Types without a size (void, incomplete composites) leave it at zero.
func (t *Table) backfillSize(sym *Symbol) {
	if sym.IsTag() || sym.isEnum() {
		return
	}
	one, err := t.SizeOf(sym)
	if err != nil {
		sym.Size = 0
		return
	}
	if sym.Kind != Array {
		sym.Size = one
		return
	}
	total, err := t.Layout.ArraySize(sym.Type, one, sym.NElems)
	if err != nil {
		sym.Size = 0
		return
	}
	sym.Size = total
}
