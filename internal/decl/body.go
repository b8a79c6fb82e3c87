package decl

import (
	"cfront/internal/diag"
	"cfront/internal/symbols"
	"cfront/internal/token"
	"cfront/internal/types"
)

// parseBlock walks a brace-enclosed block of the active function. Local
// declarations are registered; statements are scanned for names.
func (p *Processor) parseBlock() {
	p.advance() // '{'
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.opts.Enough() {
		start := p.pos
		if p.atTypeStart() {
			p.parseLocalDecl()
		} else {
			p.statement()
		}
		if p.pos == start {
			p.advance()
		}
	}
	p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' at end of block")
}

func (p *Processor) parseLocalDecl() {
	if st := p.parseStorage(); st != storageNone {
		p.errAt(p.lastSpan, diag.SemaStorageClassNotAllowed, "'"+st.String()+"' is not supported inside a function")
		p.skipStatement()
		p.advanceIf(token.Semicolon)
		return
	}
	dt, ok := p.parseBaseType()
	if !ok {
		p.skipStatement()
		p.advanceIf(token.Semicolon)
		return
	}
	for !p.at(token.Semicolon) {
		typ := p.parseStars(dt.typ)
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a name in declaration")
		if !ok {
			p.skipStatement()
			break
		}
		if p.at(token.LParen) {
			p.err(diag.SynUnexpectedToken, "function declarations are not allowed inside a function")
			p.skipStatement()
			break
		}
		kind, nelems := symbols.Variable, 1
		if p.at(token.LBracket) {
			n, ok := p.parseArraySize(false)
			if !ok {
				p.skipStatement()
				break
			}
			kind, nelems = symbols.Array, n
		}
		p.declareLocal(name, typ, dt, kind, nelems)
		if p.at(token.Assign) {
			p.advance()
			if p.at(token.LBrace) {
				p.skimBraces()
			} else {
				p.skimExpr(true)
			}
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration")
}

func (p *Processor) declareLocal(name token.Token, typ types.Type, dt declType, kind symbols.StructKind, nelems int) {
	if prev, dup := p.t.FindLocal(name.Text); dup {
		p.errRedeclared(name.Span, diag.SemaDuplicateSymbol, "redeclaration of '"+name.Text+"'", p.t.Get(prev).Span)
		return
	}
	if !p.checkObjectType(name, typ, dt.composite) || !p.checkArrayBytes(name, typ, dt.composite, kind, nelems) {
		return
	}
	id := p.t.AddLocal(name.Text, typ, dt.composite, kind, nelems)
	p.t.Get(id).Span = name.Span
	p.res.Locals++
}

// skipStatement skips to the ';' ending a broken declaration without
// looking at names, stopping before the ';' or an unmatched '}'.
func (p *Processor) skipStatement() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.Semicolon:
			if depth == 0 {
				return
			}
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

func (p *Processor) advanceIf(k token.Kind) {
	if p.at(k) {
		p.advance()
	}
}

func (p *Processor) statement() {
	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		p.parseBlock()
		return
	case token.Semicolon:
		p.advance()
		return
	case token.KwIf, token.KwWhile, token.KwFor, token.KwSwitch:
		p.advance()
		if p.at(token.LParen) {
			p.skimParens()
		} else {
			p.err(diag.SynUnexpectedToken, "expected '(' after '"+tok.Kind.String()+"'")
		}
		p.statement()
		if tok.Kind == token.KwIf && p.at(token.KwElse) {
			p.advance()
			p.statement()
		}
		return
	case token.KwCase:
		p.advance()
		if _, ok := p.constExpr(); !ok {
			p.skimExpr(false)
		}
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after case value")
		return
	case token.KwDefault:
		p.advance()
		p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after default")
		return
	case token.KwReturn, token.KwBreak, token.KwContinue:
		p.advance()
	}
	p.skimExpr(false)
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after statement")
}

// skimExpr scans an expression, resolving its names, and stops before the
// ';' that ends it, before a brace, before an unmatched ')' or ']', and
// with stopAtComma before a top-level ','.
func (p *Processor) skimExpr(stopAtComma bool) {
	depth := 0
	for {
		switch p.peek().Kind {
		case token.EOF, token.LBrace, token.RBrace:
			return
		case token.Semicolon:
			if depth == 0 {
				return
			}
		case token.Comma:
			if depth == 0 && stopAtComma {
				return
			}
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			if depth == 0 {
				return
			}
			depth--
		case token.Ident:
			p.resolveIdent()
			continue
		}
		p.advance()
	}
}

// skimParens scans a parenthesized group, which may hold ';' as in a for
// header, up to and including its closing ')'.
func (p *Processor) skimParens() {
	p.advance() // '('
	depth := 1
	for {
		switch p.peek().Kind {
		case token.EOF, token.LBrace, token.RBrace:
			p.err(diag.SynExpectRParen, "expected ')'")
			return
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case token.Ident:
			p.resolveIdent()
			continue
		}
		p.advance()
	}
}

// skimBraces scans a brace-enclosed initializer list.
func (p *Processor) skimBraces() {
	p.advance() // '{'
	depth := 1
	for {
		switch p.peek().Kind {
		case token.EOF, token.Semicolon:
			p.err(diag.SynExpectRBrace, "expected '}' after initializer list")
			return
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case token.Ident:
			p.resolveIdent()
			continue
		}
		p.advance()
	}
}

// endsOperand reports whether a token of kind k can end an operand, which
// makes a following '&' binary.
func endsOperand(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.StringLit, token.RParen, token.RBracket, token.Inc, token.Dec:
		return true
	}
	return false
}

// resolveIdent consumes an identifier inside a body and looks it up.
// Member names after '.' and '->' are resolved against the tag of the
// object they select from. A local or parameter under unary '&' is marked
// address-taken.
func (p *Processor) resolveIdent() {
	i := p.pos
	tok := p.advance()
	prev, before := token.EOF, token.EOF
	if i > 0 {
		prev = p.toks[i-1].Kind
	}
	if i > 1 {
		before = p.toks[i-2].Kind
	}

	switch prev {
	case token.Dot, token.Arrow:
		p.resolveMember(i, tok)
		return
	case token.KwStruct, token.KwUnion, token.KwEnum:
		var found bool
		switch prev {
		case token.KwStruct:
			_, found = p.t.FindStruct(tok.Text)
		case token.KwUnion:
			_, found = p.t.FindUnion(tok.Text)
		default:
			_, found = p.t.FindEnumType(tok.Text)
		}
		if !found {
			p.errAt(tok.Span, diag.SemaUnknownType, "unknown "+prev.String()+" '"+tok.Text+"'")
		}
		return
	}

	if id, ok := p.t.FindSymbol(tok.Text); ok {
		if prev == token.Amp && !endsOperand(before) {
			if sym := p.t.Get(id); sym.Class == symbols.Local || sym.Class == symbols.Param {
				sym.MarkAddrTaken()
			}
		}
		return
	}
	if _, ok := p.t.FindEnumValue(tok.Text); ok {
		return
	}
	if _, ok := p.t.FindTypedef(tok.Text); ok {
		return
	}
	p.errAt(tok.Span, diag.SemaUnresolvedSymbol, "undeclared identifier '"+tok.Text+"'")
}

// resolveMember checks the member name at toks[i] when the object before the
// operator is a plain named struct or union. Other operands, such as a[0].x
// or f().x, are not typed here and are left alone.
func (p *Processor) resolveMember(i int, member token.Token) {
	if i < 2 || p.toks[i-2].Kind != token.Ident {
		return
	}
	if i > 2 {
		if k := p.toks[i-3].Kind; k == token.Dot || k == token.Arrow {
			return
		}
	}
	id, ok := p.t.FindSymbol(p.toks[i-2].Text)
	if !ok {
		return
	}
	obj := p.t.Get(id)
	if k := obj.Type.Kind(); (k != types.Struct && k != types.Union) || !obj.Composite.IsValid() {
		return
	}
	tag := p.t.Get(obj.Composite)
	if tag == nil || tag.Align == 0 {
		return
	}
	if _, ok := p.t.FindMemberOf(obj.Composite, member.Text); !ok {
		p.errAt(member.Span, diag.SemaUnknownMember,
			"no member named '"+member.Text+"' in '"+p.typeName(types.Of(obj.Type.Kind()), obj.Composite)+"'")
	}
}
