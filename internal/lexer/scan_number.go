package lexer

import (
	"strconv"
	"strings"

	"cfront/internal/diag"
	"cfront/internal/token"
)

// scanNumber scans decimal, 0x hexadecimal and 0-prefixed octal integers
// with an optional l/L suffix. Token.Value holds the value.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'x' || b == 'X' {
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected hex digit after "+lx.text(sp))
				return lx.invalid(sp)
			}
			for isHex(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			return lx.finishNumber(start)
		}
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.finishNumber(start)
}

func (lx *Lexer) finishNumber(start Mark) token.Token {
	digitsEnd := lx.cursor.Off
	if b := lx.cursor.Peek(); b == 'l' || b == 'L' {
		lx.cursor.Bump()
	}
	// "12abc" is one bad token, not a number followed by an identifier
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "malformed integer literal "+lx.text(sp))
		return lx.invalid(sp)
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	digits := string(lx.file.Content[uint32(start):digitsEnd])
	value, err := parseCInt(digits)
	if err != nil {
		lx.errLex(diag.LexBadNumber, sp, "malformed integer literal "+text+": "+err.Error())
		return lx.invalid(sp)
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text, Value: value}
}

// parseCInt parses C integer spelling: 0x.. is hex, a leading 0 is octal.
func parseCInt(s string) (int64, error) {
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return strconv.ParseInt(s[2:], 16, 64)
	case len(s) > 1 && s[0] == '0':
		return strconv.ParseInt(s[1:], 8, 64)
	default:
		return strconv.ParseInt(s, 10, 64)
	}
}
