package lexer

import (
	"strconv"
	"strings"

	"cfront/internal/diag"
	"cfront/internal/token"
)

// collectLeadingTrivia gathers the trivia before a significant token:
//   - runs of ' ', '\t', '\r', '\f', '\v' become one TriviaSpace
//   - runs of '\n' become one TriviaNewline
//   - //... up to '\n' is a TriviaLineComment
//   - /* ... */ is a TriviaBlockComment (not nested, as in C)
//   - # N "file" at the start of a line is a TriviaLineMarker
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isBlank(b):
			for isBlank(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.text(sp)})
			continue

		case b == '/':
			if lx.scanCommentIntoHold() {
				continue
			}

		case b == '#' && lx.cursor.AtLineStart():
			lx.scanLineMarker()
			continue
		}
		break
	}
}

func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: lx.text(sp)})
		return true

	case '*':
		lx.cursor.Bump()
		closed := false
		for !lx.cursor.EOF() {
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				closed = true
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		if !closed {
			lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		}
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaBlockComment, Span: sp, Text: lx.text(sp)})
		return true

	default:
		// a plain '/' operator
		lx.cursor.Reset(start)
		return false
	}
}

// scanLineMarker consumes a whole "# N "file" flags..." line. The line after
// it becomes line N of file. Anything else starting with '#' is reported
// and skipped.
func (lx *Lexer) scanLineMarker() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	lx.cursor.Eat('\n')

	marker, ok := parseLineMarker(text)
	if !ok {
		lx.errLex(diag.LexBadLineMarker, sp, "malformed line marker "+strconv.Quote(text))
		lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineComment, Span: sp, Text: text})
		return
	}

	// the marker's own physical line is L, so physical line L+1 is marker.Line
	physNext := int(lx.file.LineOf(uint32(start))) + 1
	lx.lineDelta = marker.Line - physNext
	if marker.File != "" {
		lx.name = marker.File
	}
	lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaLineMarker, Span: sp, Text: text, Marker: marker})
}

func parseLineMarker(text string) (*token.LineMarker, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(text, "#"))
	rest = strings.TrimPrefix(rest, "line ")
	rest = strings.TrimLeft(rest, " \t")

	end := 0
	for end < len(rest) && isDec(rest[end]) {
		end++
	}
	if end == 0 {
		return nil, false
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil || n <= 0 {
		return nil, false
	}
	marker := &token.LineMarker{Line: n}

	rest = strings.TrimLeft(rest[end:], " \t")
	if rest == "" {
		return marker, true
	}
	if rest[0] != '"' {
		return nil, false
	}
	closing := strings.IndexByte(rest[1:], '"')
	if closing < 0 {
		return nil, false
	}
	marker.File = rest[1 : closing+1]
	return marker, true
}
