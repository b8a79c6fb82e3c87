package lexer

import (
	"cfront/internal/source"
	"cfront/internal/token"
)

// maxTokenLength bounds identifiers and literals, like the fixed text
// buffer of classic single-pass compilers.
const maxTokenLength = 512

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // leading trivia collected for the next token

	// Logical position: line markers rename the file and renumber lines.
	lineDelta int
	name      string
	last      token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		name:   file.Path,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		lx.last = tok
		return tok
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	} else {
		ch := lx.cursor.Peek()
		switch {
		case isIdentStartByte(ch), ch >= utf8RuneSelf:
			tok = lx.scanIdentOrKeyword()
		case isDec(ch):
			tok = lx.scanNumber()
		case ch == '"':
			tok = lx.scanString()
		case ch == '\'':
			tok = lx.scanChar()
		default:
			tok = lx.scanOperatorOrPunct()
		}
		tok.Leading = lx.hold
		lx.hold = nil
	}

	tok.Line = lx.logicalLine(tok.Span.Start)
	tok.File = lx.name
	lx.last = tok
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	last := lx.last
	t := lx.Next()
	lx.look = &t
	lx.last = last
	return t
}

// Line implements diag.Locator: the logical line of the last token returned by Next.
func (lx *Lexer) Line() int { return lx.last.Line }

// Filename implements diag.Locator: the logical file of the last token returned by Next.
func (lx *Lexer) Filename() string { return lx.last.File }

func (lx *Lexer) logicalLine(off uint32) int {
	return int(lx.file.LineOf(off)) + lx.lineDelta
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) invalid(sp source.Span) token.Token {
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// Tokenize lexes the whole file. The result always ends with one EOF token.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}
