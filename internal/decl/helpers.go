package decl

import (
	"cfront/internal/diag"
	"cfront/internal/source"
	"cfront/internal/token"
)

func (p *Processor) peek() token.Token { return p.toks[p.pos] }

func (p *Processor) peekAt(n int) token.Token {
	i := min(p.pos+n, len(p.toks)-1)
	return p.toks[i]
}

func (p *Processor) at(k token.Kind) bool { return p.toks[p.pos].Kind == k }

// advance consumes the current token. EOF is never consumed.
func (p *Processor) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// prevKind is the kind of the last consumed token, or EOF at the start.
func (p *Processor) prevKind() token.Kind {
	if p.pos == 0 {
		return token.EOF
	}
	return p.toks[p.pos-1].Kind
}

// diagSpan is the span of the current token, or the point after the last
// consumed one when the current token is EOF.
func (p *Processor) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// expect consumes a token of kind k or reports code.
func (p *Processor) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	if p.at(token.EOF) {
		code = diag.SynUnexpectedEOF
		msg += ", found end of file"
	} else {
		msg += ", found " + describe(p.peek())
	}
	p.errAt(p.diagSpan(), code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Ident, token.IntLit, token.StringLit:
		return "'" + tok.Text + "'"
	default:
		return "'" + tok.Kind.String() + "'"
	}
}

func (p *Processor) err(code diag.Code, msg string) {
	p.errAt(p.diagSpan(), code, msg)
}

func (p *Processor) errAt(sp source.Span, code diag.Code, msg string) {
	p.report(code, sp, msg, nil)
}

// errRedeclared reports a duplicate with a note at the earlier declaration.
func (p *Processor) errRedeclared(sp source.Span, code diag.Code, msg string, prev source.Span) {
	p.report(code, sp, msg, []diag.Note{{Span: prev, Msg: "previous declaration is here"}})
}

func (p *Processor) report(code diag.Code, sp source.Span, msg string, notes []diag.Note) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || p.opts.MaxErrors > 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return
	}
	b := diag.ReportError(p.opts.Reporter, code, sp, msg)
	for _, n := range notes {
		b.WithNote(n.Span, n.Msg)
	}
	b.Emit()
}
