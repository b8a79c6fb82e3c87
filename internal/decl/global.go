package decl

import (
	"cfront/internal/diag"
	"cfront/internal/symbols"
	"cfront/internal/token"
	"cfront/internal/types"
)

// parseExternal parses one top-level declaration or function definition.
func (p *Processor) parseExternal() bool {
	st := p.parseStorage()
	dt, ok := p.parseBaseType()
	if !ok {
		return false
	}
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	if st == storageTypedef {
		return p.parseTypedefs(dt)
	}
	for {
		typ := p.parseStars(dt.typ)
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name in declaration")
		if !ok {
			return false
		}
		if p.at(token.LParen) {
			def, ok := p.parseFunction(dt, typ, st, name)
			if !ok {
				return false
			}
			if def {
				return true
			}
		} else if !p.declareGlobal(dt, st, typ, name) {
			return false
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration")
	return ok
}

// parseArraySize parses "[N]". With allowEmpty, "[]" yields 0 and the
// initializer decides the count.
func (p *Processor) parseArraySize(allowEmpty bool) (int, bool) {
	open := p.advance()
	if p.at(token.RBracket) {
		p.advance()
		if !allowEmpty {
			p.errAt(open.Span, diag.SemaBadArraySize, "array size is required here")
			return 0, false
		}
		return 0, true
	}
	n, ok := p.constExpr()
	if !ok {
		return 0, false
	}
	if _, ok := p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']' after array size"); !ok {
		return 0, false
	}
	if n <= 0 || n > maxInt {
		p.errAt(open.Span, diag.SemaBadArraySize, "array size must be positive")
		return 0, false
	}
	return int(n), true
}

// checkArrayBytes rejects arrays whose byte size overflows.
func (p *Processor) checkArrayBytes(name token.Token, typ types.Type, composite symbols.SymbolID, kind symbols.StructKind, nelems int) bool {
	if kind != symbols.Array {
		return true
	}
	one, err := p.t.SizeOf(&symbols.Symbol{Type: typ, Composite: composite})
	if err == nil {
		_, err = p.t.Layout.ArraySize(typ, one, nelems)
	}
	if err != nil {
		p.errAt(name.Span, diag.SemaBadArraySize, "array '"+name.Text+"': "+err.Error())
		return false
	}
	return true
}

// declareGlobal handles an object declarator at file scope, with its
// optional array suffix and initializer.
func (p *Processor) declareGlobal(dt declType, st storage, typ types.Type, name token.Token) bool {
	kind, nelems := symbols.Variable, 1
	if p.at(token.LBracket) {
		n, ok := p.parseArraySize(true)
		if !ok {
			return false
		}
		kind, nelems = symbols.Array, n
	}
	var init []int64
	hasInit := false
	if p.at(token.Assign) {
		eq := p.advance()
		if st == storageExtern {
			p.errAt(eq.Span, diag.SemaStorageClassNotAllowed, "extern variable '"+name.Text+"' has an initializer")
		}
		vals, ok := p.parseInitializer(name, typ, kind, nelems)
		if !ok {
			return false
		}
		init, hasInit = vals, true
		if kind == symbols.Array && nelems == 0 {
			nelems = len(init)
		}
	}
	if kind == symbols.Array && nelems == 0 && st != storageExtern {
		p.errAt(name.Span, diag.SemaBadArraySize, "array '"+name.Text+"' needs a size or an initializer")
		return true
	}
	if !p.checkObjectType(name, typ, dt.composite) || !p.checkArrayBytes(name, typ, dt.composite, kind, nelems) {
		return true
	}
	id := p.defineGlobal(name, typ, dt.composite, kind, st.class(), nelems)
	if id.IsValid() && hasInit {
		p.t.Get(id).Init = init
	}
	return true
}

// defineGlobal adds a global object, or merges it with a compatible extern
// declaration of the same name.
func (p *Processor) defineGlobal(name token.Token, typ types.Type, composite symbols.SymbolID, kind symbols.StructKind, class symbols.Class, nelems int) symbols.SymbolID {
	prev, found := p.ordinaryName(name.Text)
	if !found {
		id := p.t.AddGlobal(name.Text, typ, composite, kind, class, nelems, 0)
		p.t.Get(id).Span = name.Span
		p.res.Globals++
		return id
	}
	sym := p.t.Get(prev)
	compatible := sym.Kind == kind && sym.Type == typ && sym.Composite == composite &&
		(sym.Class == symbols.Global || sym.Class == symbols.Extern || sym.Class == symbols.Static) &&
		(kind != symbols.Array || sym.NElems == nelems || sym.NElems == 0 || nelems == 0)
	if compatible && (sym.Class == symbols.Extern || class == symbols.Extern) {
		if class != symbols.Extern {
			sym.Class = class
		}
		if kind == symbols.Array && sym.NElems == 0 && nelems > 0 {
			sym.NElems = nelems
			if one, err := p.t.SizeOf(sym); err == nil {
				sym.Size, _ = p.t.Layout.ArraySize(typ, one, nelems)
			}
		}
		return prev
	}
	msg := "redeclaration of '" + name.Text + "'"
	if compatible {
		msg = "redefinition of '" + name.Text + "'"
	} else if sym.Kind == kind {
		p.errRedeclared(name.Span, diag.SemaConflictingTypes, "conflicting types for '"+name.Text+"'", sym.Span)
		return symbols.NoSymbolID
	}
	p.errRedeclared(name.Span, diag.SemaDuplicateSymbol, msg, sym.Span)
	return symbols.NoSymbolID
}

// parseInitializer parses "= value" or "= { value, ... }" for a global.
func (p *Processor) parseInitializer(name token.Token, typ types.Type, kind symbols.StructKind, nelems int) ([]int64, bool) {
	if kind == symbols.Array {
		open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to initialize array '"+name.Text+"'")
		if !ok {
			return nil, false
		}
		var vals []int64
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			v, ok := p.initValue(typ)
			if !ok {
				return nil, false
			}
			vals = append(vals, v)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' after initializer list"); !ok {
			return nil, false
		}
		if nelems > 0 && len(vals) > nelems {
			p.errAt(open.Span, diag.SemaTooManyInitializers, "too many initializers for '"+name.Text+"'")
			vals = vals[:nelems]
		}
		return vals, true
	}
	if types.IsComposite(typ) && !types.IsPointer(typ) {
		p.errAt(name.Span, diag.SemaConflictingTypes, "cannot initialize "+p.typeName(typ, symbols.NoSymbolID)+" '"+name.Text+"' in a declaration")
		return nil, false
	}
	v, ok := p.initValue(typ)
	if !ok {
		return nil, false
	}
	return []int64{v}, true
}

var charPtr = types.Make(types.Char, 1)

// initValue is one constant. A string literal is only valid for char *;
// its value is the label of the recorded string.
func (p *Processor) initValue(typ types.Type) (int64, bool) {
	if p.at(token.StringLit) {
		tok := p.advance()
		if typ != charPtr {
			p.errAt(tok.Span, diag.SemaConflictingTypes, "string literal initializes "+typ.String())
			return 0, false
		}
		return int64(p.s.addString(tok.Str)), true
	}
	start := p.peek()
	v, ok := p.constExpr()
	if !ok {
		return 0, false
	}
	if types.IsPointer(typ) && v != 0 {
		p.errAt(start.Span, diag.SemaConflictingTypes, "integer initializer for pointer "+typ.String())
		return 0, false
	}
	return v, true
}

// parseTypedefs parses the declarators of a typedef.
func (p *Processor) parseTypedefs(dt declType) bool {
	for {
		typ := p.parseStars(dt.typ)
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected typedef name")
		if !ok {
			return false
		}
		if p.at(token.LBracket) || p.at(token.LParen) {
			p.err(diag.SynUnexpectedToken, "only scalar, pointer and struct typedefs are supported")
			return false
		}
		if prev, ok := p.ordinaryName(name.Text); ok {
			sym := p.t.Get(prev)
			if sym.Class != symbols.Typedef || sym.Type != typ || !p.sameComposite(sym.Composite, dt.composite) {
				p.errRedeclared(name.Span, diag.SemaDuplicateSymbol, "redeclaration of '"+name.Text+"'", sym.Span)
			}
		} else {
			id := p.t.AddTypedef(name.Text, typ, dt.composite)
			p.t.Get(id).Span = name.Span
			p.res.Typedefs++
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after typedef")
	return ok
}

// sameComposite compares the tag of an earlier declaration with the tag just
// parsed. Distinct anonymous tags only match when the earlier one came from
// a previous unit.
func (p *Processor) sameComposite(prev, cur symbols.SymbolID) bool {
	if prev == cur {
		return true
	}
	return p.s.fromEarlierUnit(prev) && p.t.SameTag(prev, cur)
}
