package decl

import (
	"slices"

	"cfront/internal/diag"
	"cfront/internal/symbols"
	"cfront/internal/token"
	"cfront/internal/types"
)

type tagOps struct {
	kind   types.Kind
	find   func(string) (symbols.SymbolID, bool)
	add    func(string) symbols.SymbolID
	layout func(symbols.SymbolID)
}

func (p *Processor) tagOps(k token.Kind) tagOps {
	if k == token.KwUnion {
		return tagOps{types.Union, p.t.FindUnion, p.t.AddUnion, p.t.LayoutUnion}
	}
	return tagOps{types.Struct, p.t.FindStruct, p.t.AddStruct, p.t.LayoutStruct}
}

// parseComposite handles "struct name", "struct name { ... }" and
// "struct { ... }" (and the union forms). A reference to an unknown tag
// declares it incomplete, so pointers to it can be formed before the body.
func (p *Processor) parseComposite() (declType, bool) {
	kw := p.advance()
	ops := p.tagOps(kw.Kind)
	dt := declType{typ: types.Of(ops.kind), span: kw.Span}

	var name token.Token
	if p.at(token.Ident) {
		name = p.advance()
	}
	if !p.at(token.LBrace) {
		if name.Kind != token.Ident {
			p.err(diag.SynExpectIdentifier, "expected "+kw.Kind.String()+" tag or '{'")
			return dt, false
		}
		id, ok := ops.find(name.Text)
		if !ok {
			id = ops.add(name.Text)
			p.t.Get(id).Span = name.Span
		}
		dt.composite = id
		return dt, true
	}

	var id, repeat symbols.SymbolID
	if name.Kind == token.Ident {
		prev, ok := ops.find(name.Text)
		switch {
		case ok && p.t.Get(prev).Align > 0 && p.s.fromEarlierUnit(prev):
			repeat = prev
		case ok && p.t.Get(prev).Align > 0:
			p.errRedeclared(name.Span, diag.SemaDuplicateSymbol,
				"redefinition of '"+kw.Kind.String()+" "+name.Text+"'", p.t.Get(prev).Span)
		case ok:
			id = prev
		}
	}
	if !id.IsValid() && !repeat.IsValid() {
		id = ops.add(name.Text)
		p.t.Get(id).Span = name.Span
	}

	outer := p.t.Catalog(symbols.Members).Stash()
	p.advance() // '{'
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.opts.Enough() {
		start := p.pos
		if !p.parseMemberDecl() {
			p.skipMember()
		}
		if p.pos == start {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' after member list")
	if repeat.IsValid() {
		// an earlier unit saw this body, typically from the same header
		if !p.t.MatchStaged(repeat) {
			p.errRedeclared(name.Span, diag.SemaConflictingTypes,
				"conflicting definition of '"+kw.Kind.String()+" "+name.Text+"'", p.t.Get(repeat).Span)
		}
		id = repeat
	} else {
		ops.layout(id)
		p.s.record(id)
	}
	p.t.Catalog(symbols.Members).Restore(outer)

	dt.composite = id
	return dt, true
}

// parseMemberDecl parses "type declarator {, declarator} ;".
func (p *Processor) parseMemberDecl() bool {
	if st := p.parseStorage(); st != storageNone {
		p.errAt(p.lastSpan, diag.SemaStorageClassNotAllowed, "'"+st.String()+"' is not allowed on a member")
	}
	dt, ok := p.parseBaseType()
	if !ok {
		return false
	}
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	for {
		typ := p.parseStars(dt.typ)
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name")
		if !ok {
			return false
		}
		kind, nelems := symbols.Variable, 1
		if p.at(token.LBracket) {
			n, ok := p.parseArraySize(false)
			if !ok {
				return false
			}
			kind, nelems = symbols.Array, n
		}
		if prev, dup := p.t.FindMember(name.Text); dup {
			p.errRedeclared(name.Span, diag.SemaDuplicateMember,
				"duplicate member '"+name.Text+"'", p.t.Get(prev).Span)
		} else if p.checkObjectType(name, typ, dt.composite) && p.checkArrayBytes(name, typ, dt.composite, kind, nelems) {
			id := p.t.AddMember(name.Text, typ, dt.composite, kind, nelems)
			p.t.Get(id).Span = name.Span
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after member")
	return ok
}

// skipMember skips past the next ';' inside a member list, stopping at the
// closing brace.
func (p *Processor) skipMember() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// parseEnum handles "enum name", "enum name { ... }" and "enum { ... }".
// Enumerators count up from zero or from the last explicit value.
func (p *Processor) parseEnum() bool {
	kw := p.advance()
	var name token.Token
	if p.at(token.Ident) {
		name = p.advance()
	}
	if !p.at(token.LBrace) {
		if name.Kind != token.Ident {
			p.err(diag.SynExpectIdentifier, "expected enum name or '{'")
			return false
		}
		if _, ok := p.t.FindEnumType(name.Text); !ok {
			p.errAt(name.Span, diag.SemaUnknownType, "unknown enum '"+name.Text+"'")
			return false
		}
		return true
	}
	var owner, repeat symbols.SymbolID
	if name.Kind == token.Ident {
		prev, ok := p.t.FindEnumType(name.Text)
		switch {
		case ok && p.s.fromEarlierUnit(prev):
			repeat = prev
		case ok:
			p.errRedeclared(name.Span, diag.SemaDuplicateSymbol,
				"redefinition of 'enum "+name.Text+"'", p.t.Get(prev).Span)
		default:
			owner = p.t.AddEnum(name.Text, symbols.EnumType, 0)
			p.t.Get(owner).Span = name.Span
			p.s.record(owner)
		}
	} else {
		name.Span = kw.Span
	}

	p.advance() // '{'
	var (
		next  int64
		seen  []symbols.SymbolID
		clean = true
	)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		id, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enumerator name")
		if !ok {
			return false
		}
		value := next
		if p.at(token.Assign) {
			p.advance()
			v, ok := p.constExpr()
			if !ok {
				return false
			}
			value = v
		}
		if sym, ok := p.declareEnumerator(owner, id, value); ok {
			seen = append(seen, sym)
		} else {
			clean = false
		}
		next = value + 1
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' after enumerators")
	if repeat.IsValid() && clean && !slices.Equal(seen, p.s.enumerators[repeat]) {
		p.errRedeclared(name.Span, diag.SemaConflictingTypes,
			"conflicting definition of 'enum "+name.Text+"'", p.t.Get(repeat).Span)
	}
	return ok
}

// declareEnumerator adds an enumerator to owner, the named enum being
// defined, if any. An identical enumerator defined by an earlier unit is
// reused.
func (p *Processor) declareEnumerator(owner symbols.SymbolID, name token.Token, value int64) (symbols.SymbolID, bool) {
	if prev, ok := p.ordinaryName(name.Text); ok {
		sym := p.t.Get(prev)
		if sym.Class == symbols.EnumValue && int64(sym.EnumValue()) == value && p.s.fromEarlierUnit(prev) {
			return prev, true
		}
		p.errRedeclared(name.Span, diag.SemaDuplicateSymbol,
			"redeclaration of '"+name.Text+"'", sym.Span)
		return symbols.NoSymbolID, false
	}
	if value < minInt || value > maxInt {
		p.errAt(name.Span, diag.SemaNotConstant, "enumerator value for '"+name.Text+"' is out of range")
		return symbols.NoSymbolID, false
	}
	id := p.t.AddEnum(name.Text, symbols.EnumValue, int(value))
	p.t.Get(id).Span = name.Span
	p.s.record(id)
	if owner.IsValid() {
		p.s.enumerators[owner] = append(p.s.enumerators[owner], id)
	}
	return id, true
}

// ordinaryName finds a name in the ordinary identifier namespace visible at
// file scope: globals, enumerators and typedefs.
func (p *Processor) ordinaryName(name string) (symbols.SymbolID, bool) {
	if id, ok := p.t.FindGlobal(name); ok {
		return id, true
	}
	if id, ok := p.t.FindEnumValue(name); ok {
		return id, true
	}
	return p.t.FindTypedef(name)
}
