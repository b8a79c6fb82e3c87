package decl

import (
	"strings"

	"cfront/internal/diag"
	"cfront/internal/source"
	"cfront/internal/symbols"
	"cfront/internal/token"
	"cfront/internal/types"
)

// declType is a base type as written in a declaration, before the
// declarator's stars.
type declType struct {
	typ       types.Type
	composite symbols.SymbolID
	span      source.Span
}

type storage uint8

const (
	storageNone storage = iota
	storageExtern
	storageStatic
	storageTypedef
)

func (s storage) String() string {
	switch s {
	case storageExtern:
		return "extern"
	case storageStatic:
		return "static"
	case storageTypedef:
		return "typedef"
	default:
		return ""
	}
}

func (s storage) class() symbols.Class {
	switch s {
	case storageExtern:
		return symbols.Extern
	case storageStatic:
		return symbols.Static
	default:
		return symbols.Global
	}
}

// atTypeStart reports whether the current token starts a declaration:
// a storage class, a type keyword, a tag keyword or a typedef name that no
// ordinary identifier shadows.
func (p *Processor) atTypeStart() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.KwExtern, token.KwStatic, token.KwTypedef,
		token.KwStruct, token.KwUnion, token.KwEnum:
		return true
	case token.Ident:
		return p.isTypedefName(tok.Text)
	default:
		return tok.IsTypeKeyword()
	}
}

func (p *Processor) isTypedefName(name string) bool {
	if _, ok := p.t.FindTypedef(name); !ok {
		return false
	}
	_, shadowed := p.t.FindSymbol(name)
	return !shadowed
}

// parseStorage consumes any storage class keywords.
func (p *Processor) parseStorage() storage {
	st := storageNone
	for {
		tok := p.peek()
		var next storage
		switch tok.Kind {
		case token.KwExtern:
			next = storageExtern
		case token.KwStatic:
			next = storageStatic
		case token.KwTypedef:
			next = storageTypedef
		default:
			return st
		}
		p.advance()
		if st != storageNone && st != next {
			p.errAt(tok.Span, diag.SemaStorageClassNotAllowed,
				"cannot combine '"+st.String()+"' and '"+next.String()+"'")
			continue
		}
		st = next
	}
}

// parseBaseType parses the type specifier of a declaration. A struct,
// union or enum body found here is declared on the way.
func (p *Processor) parseBaseType() (declType, bool) {
	tok := p.peek()
	dt := declType{span: tok.Span}
	switch tok.Kind {
	case token.KwVoid:
		p.advance()
		dt.typ = types.Of(types.Void)
	case token.KwChar:
		p.advance()
		dt.typ = types.Of(types.Char)
	case token.KwInt:
		p.advance()
		dt.typ = types.Of(types.Int)
	case token.KwLong:
		p.advance()
		dt.typ = types.Of(types.Long)
		if p.at(token.KwInt) {
			p.advance()
		}
	case token.KwStruct, token.KwUnion:
		return p.parseComposite()
	case token.KwEnum:
		if !p.parseEnum() {
			return dt, false
		}
		dt.typ = types.Of(types.Int)
	case token.Ident:
		id, ok := p.t.FindTypedef(tok.Text)
		if !ok {
			p.errAt(tok.Span, diag.SemaUnknownType, "unknown type name '"+tok.Text+"'")
			return dt, false
		}
		p.advance()
		td := p.t.Get(id)
		dt.typ, dt.composite = td.Type, td.Composite
	default:
		p.err(diag.SynExpectType, "expected a type, found "+describe(tok))
		return dt, false
	}
	return dt, true
}

// parseStars applies the declarator's '*' prefix to base.
func (p *Processor) parseStars(base types.Type) types.Type {
	typ := base
	for p.at(token.Star) {
		tok := p.advance()
		next, err := types.PointerTo(typ)
		if err != nil {
			p.errAt(tok.Span, diag.SemaTooMuchIndirection, err.Error())
			continue
		}
		typ = next
	}
	return typ
}

// complete reports whether a value of typ has a known size.
func (p *Processor) complete(typ types.Type, composite symbols.SymbolID) bool {
	if types.IsPointer(typ) || !types.IsComposite(typ) {
		return true
	}
	tag := p.t.Get(composite)
	return tag != nil && tag.Align > 0
}

// checkObjectType rejects object types without storage.
func (p *Processor) checkObjectType(name token.Token, typ types.Type, composite symbols.SymbolID) bool {
	if typ == types.Of(types.Void) {
		p.errAt(name.Span, diag.SemaVoidVariable, "variable '"+name.Text+"' declared void")
		return false
	}
	if !p.complete(typ, composite) {
		p.errAt(name.Span, diag.SemaIncompleteType,
			"'"+name.Text+"' has incomplete type "+p.typeName(typ, composite))
		return false
	}
	return true
}

func (p *Processor) typeName(typ types.Type, composite symbols.SymbolID) string {
	if tag := p.t.Get(composite); tag != nil && tag.Name != "" {
		s := typ.Kind().String() + " " + tag.Name
		if n := typ.Indirection(); n > 0 {
			s += " " + strings.Repeat("*", n)
		}
		return s
	}
	return typ.String()
}
