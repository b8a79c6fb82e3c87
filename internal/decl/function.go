package decl

import (
	"strconv"

	"cfront/internal/diag"
	"cfront/internal/symbols"
	"cfront/internal/token"
	"cfront/internal/types"
)

// parseFunction handles a prototype or a definition once its name has been
// read. def reports whether a body was processed.
func (p *Processor) parseFunction(dt declType, ret types.Type, st storage, name token.Token) (def, ok bool) {
	if st == storageTypedef {
		p.errAt(name.Span, diag.SynUnexpectedToken, "function typedefs are not supported")
		return false, false
	}

	fn := symbols.NoSymbolID
	prototyped := false
	if prev, found := p.ordinaryName(name.Text); found {
		sym := p.t.Get(prev)
		if sym.Kind != symbols.Function {
			p.errRedeclared(name.Span, diag.SemaDuplicateSymbol,
				"'"+name.Text+"' redeclared as a function", sym.Span)
		} else {
			fn, prototyped = prev, true
			if sym.Type != ret || sym.Composite != dt.composite {
				p.errRedeclared(name.Span, diag.SemaConflictingTypes,
					"conflicting return type for '"+name.Text+"'", sym.Span)
			}
		}
	}
	if !fn.IsValid() {
		fn = p.t.AddGlobal(name.Text, ret, dt.composite, symbols.Function, st.class(), 0, p.s.NextLabel())
		p.t.Get(fn).Span = name.Span
	}

	p.advance() // '('
	if !p.parseParams() {
		p.t.EndFunction()
		return false, false
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after parameters"); !ok {
		p.t.EndFunction()
		return false, false
	}
	if prototyped {
		p.checkSignature(fn, name)
	}

	if !p.at(token.LBrace) {
		if !prototyped {
			p.t.AttachParams(fn)
		}
		p.t.EndFunction()
		p.res.Prototypes++
		return false, true
	}

	if p.s.defined[fn] {
		p.errRedeclared(name.Span, diag.SemaFunctionRedefined,
			"redefinition of function '"+name.Text+"'", p.t.Get(fn).Span)
	}
	p.s.defined[fn] = true
	p.t.BeginFunction(fn)
	p.parseBlock()
	p.t.EndFunction()
	p.res.Functions++
	return true, true
}

// parseParams registers the parameters of the declarator being parsed.
// "()" and "(void)" both declare none.
func (p *Processor) parseParams() bool {
	if p.at(token.RParen) {
		return true
	}
	if p.at(token.KwVoid) && p.peekAt(1).Kind == token.RParen {
		p.advance()
		return true
	}
	for {
		if st := p.parseStorage(); st != storageNone {
			p.errAt(p.lastSpan, diag.SemaStorageClassNotAllowed, "'"+st.String()+"' is not allowed on a parameter")
		}
		dt, ok := p.parseBaseType()
		if !ok {
			return false
		}
		typ := p.parseStars(dt.typ)
		name := token.Token{Span: p.diagSpan()}
		if p.at(token.Ident) {
			name = p.advance()
		}
		if p.at(token.LBracket) {
			p.advance()
			if !p.at(token.RBracket) {
				if _, ok := p.constExpr(); !ok {
					return false
				}
			}
			if _, ok := p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']'"); !ok {
				return false
			}
			next, err := types.PointerTo(typ)
			if err != nil {
				p.errAt(name.Span, diag.SemaTooMuchIndirection, err.Error())
			} else {
				typ = next
			}
		}
		p.declareParam(name, typ, dt.composite)
		if !p.at(token.Comma) {
			return true
		}
		p.advance()
	}
}

func (p *Processor) declareParam(name token.Token, typ types.Type, composite symbols.SymbolID) {
	label := name.Text
	if label == "" {
		label = "#" + strconv.Itoa(p.t.Catalog(symbols.Params).Len()+1)
	}
	if typ == types.Of(types.Void) {
		p.errAt(name.Span, diag.SemaVoidVariable, "parameter '"+label+"' declared void")
		return
	}
	if !p.complete(typ, composite) {
		p.errAt(name.Span, diag.SemaIncompleteType, "parameter '"+label+"' has incomplete type "+p.typeName(typ, composite))
		return
	}
	if name.Text != "" {
		for _, id := range p.t.Catalog(symbols.Params).IDs() {
			if prev := p.t.Get(id); prev.Name == name.Text {
				p.errRedeclared(name.Span, diag.SemaDuplicateSymbol, "duplicate parameter '"+name.Text+"'", prev.Span)
				return
			}
		}
	}
	id := p.t.AddParam(name.Text, typ, composite, symbols.Variable)
	p.t.Get(id).Span = name.Span
}

// checkSignature compares the parameters just parsed with the signature
// recorded by an earlier declaration of fn.
func (p *Processor) checkSignature(fn symbols.SymbolID, name token.Token) {
	sym := p.t.Get(fn)
	have := p.t.Catalog(symbols.Params).IDs()
	if len(have) != len(sym.Params) {
		p.errRedeclared(name.Span, diag.SemaParamMismatch,
			"'"+name.Text+"' declared with "+strconv.Itoa(len(sym.Params))+" parameters, now "+strconv.Itoa(len(have)), sym.Span)
		return
	}
	for i, id := range have {
		got, want := p.t.Get(id), p.t.Get(sym.Params[i])
		if got.Type != want.Type || got.Composite != want.Composite {
			p.errRedeclared(got.Span, diag.SemaParamMismatch,
				"type of parameter "+strconv.Itoa(i+1)+" of '"+name.Text+"' does not match its declaration", want.Span)
			return
		}
	}
}
