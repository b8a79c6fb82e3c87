package lexer

import (
	"strings"

	"cfront/internal/diag"
	"cfront/internal/token"
)

// scanString scans "..." and decodes its escapes into Token.Str.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if sp.Len() > maxTokenLength {
				lx.errLex(diag.LexTokenTooLong, sp, "string literal too long")
				return lx.invalid(sp)
			}
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Str: sb.String()}
		case '\\':
			c, _ := lx.scanEscape()
			sb.WriteByte(c)
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.invalid(sp)
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.invalid(sp)
}

// scanChar scans 'c' into an integer literal holding the character code.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	var value byte
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF(), b == '\n', b == '\'':
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "empty or unterminated character literal")
		return lx.invalid(sp)
	case b == '\\':
		value, _ = lx.scanEscape()
	default:
		value = lx.cursor.Bump()
	}

	if !lx.cursor.Eat('\'') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.cursor.Eat('\'')
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "expected ' to close character literal")
		return lx.invalid(sp)
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp), Value: int64(value)}
}

// scanEscape consumes a backslash escape and returns the byte it denotes.
func (lx *Lexer) scanEscape() (byte, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	c := lx.cursor.Bump()
	switch c {
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case '\\', '\'', '"', '?':
		return c, true
	case 'x':
		var v int
		n := 0
		for isHex(lx.cursor.Peek()) {
			v = v*16 + hexVal(lx.cursor.Bump())
			n++
		}
		if n == 0 {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "\\x used with no following hex digits")
			return 0, false
		}
		return byte(v), true
	}
	if isOct(c) {
		v := int(c - '0')
		for i := 0; i < 2 && isOct(lx.cursor.Peek()); i++ {
			v = v*8 + int(lx.cursor.Bump()-'0')
		}
		return byte(v), true
	}
	lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "unknown escape sequence")
	return c, false
}

func hexVal(b byte) int {
	switch {
	case isDec(b):
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}
