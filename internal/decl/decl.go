package decl

import (
	"cfront/internal/diag"
	"cfront/internal/source"
	"cfront/internal/symbols"
	"cfront/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit was reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result summarizes one unit.
type Result struct {
	Functions  int // function bodies processed
	Prototypes int
	Globals    int // global objects declared
	Typedefs   int
	Locals     int // locals over all bodies
	Errors     uint
}

// Processor walks the tokens of one unit.
type Processor struct {
	s        *Session
	t        *symbols.Table
	toks     []token.Token
	pos      int
	opts     Options
	res      Result
	lastSpan source.Span
}

// Unit declares the tokens of one translation unit into the session's
// table. toks is the output of lexer.Tokenize.
func (s *Session) Unit(toks []token.Token, opts Options) Result {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		toks = append(toks, token.Token{Kind: token.EOF})
	}
	s.unit++
	p := &Processor{
		s:    s,
		t:    s.Table,
		toks: toks,
		opts: opts,
	}

	prev := p.t.Position
	p.t.Position = p
	defer func() { p.t.Position = prev }()

	p.parseUnit()
	p.res.Errors = p.opts.CurrentErrors
	return p.res
}

// Line implements diag.Locator: the logical line of the current token.
func (p *Processor) Line() int { return p.cur().Line }

// Filename implements diag.Locator: the logical file of the current token.
func (p *Processor) Filename() string { return p.cur().File }

func (p *Processor) cur() token.Token {
	if p.pos > 0 {
		return p.toks[p.pos-1]
	}
	return p.toks[0]
}

func (p *Processor) parseUnit() {
	for !p.at(token.EOF) && !p.opts.Enough() {
		start := p.pos
		if !p.parseExternal() {
			p.resyncTop()
		}
		if p.pos == start {
			p.advance()
		}
	}
	// a body cut short by the error limit must not leak its scope
	p.t.EndFunction()
}

// resyncTop skips to the end of the broken declaration: past the next ';'
// at brace depth zero, or past the '}' that closes a top-level brace.
func (p *Processor) resyncTop() {
	depth := 0
	for !p.at(token.EOF) {
		switch p.advance().Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth <= 0 {
				p.t.EndFunction()
				return
			}
		case token.Semicolon:
			if depth == 0 {
				p.t.EndFunction()
				return
			}
		}
	}
	p.t.EndFunction()
}
