package lexer

import (
	"testing"

	"cfront/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(content))
	return fs.Get(id)
}

func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("cursor must stay at EOF")
	}
}

func TestPeek2AtEnd(t *testing.T) {
	cursor := NewCursor(createFile("ab"))
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Fatalf("Peek2 must fail with one byte left")
	}
}

func TestMarkSpanReset(t *testing.T) {
	cursor := NewCursor(createFile("hello"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset left Off = %d", cursor.Off)
	}
	if !cursor.Eat('h') || cursor.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
}

func TestAtLineStart(t *testing.T) {
	cursor := NewCursor(createFile("x\n  #"))
	if !cursor.AtLineStart() {
		t.Fatalf("offset 0 is a line start")
	}
	cursor.Off = 1
	if cursor.AtLineStart() {
		t.Fatalf("after 'x' is not a line start")
	}
	cursor.Off = 4
	if !cursor.AtLineStart() {
		t.Fatalf("after blanks following a newline is a line start")
	}
}
