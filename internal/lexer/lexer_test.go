package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cfront/internal/diag"
	"cfront/internal/lexer"
	"cfront/internal/source"
	"cfront/internal/token"
)

// testReporter collects every diagnostic the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return out
}

func lexAll(input string) ([]token.Token, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(input)))
	rep := &testReporter{}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	return toks[:len(toks)-1], rep
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, rep := lexAll(input)
	if len(toks) != len(want) {
		t.Fatalf("input %q: got %d tokens, want %d (%v), errors %v", input, len(toks), len(want), toks, rep.messages())
	}
	for i, tok := range toks {
		if tok.Kind != want[i] {
			t.Errorf("input %q token %d: got %v (%q), want %v", input, i, tok.Kind, tok.Text, want[i])
		}
	}
	if len(rep.diagnostics) > 0 {
		t.Errorf("input %q: unexpected diagnostics %v", input, rep.messages())
	}
	return toks
}

func TestDeclarationTokens(t *testing.T) {
	expectKinds(t, "static int *x[10];",
		token.KwStatic, token.KwInt, token.Star, token.Ident,
		token.LBracket, token.IntLit, token.RBracket, token.Semicolon)
	expectKinds(t, "struct s { char c; } v;",
		token.KwStruct, token.Ident, token.LBrace, token.KwChar, token.Ident,
		token.Semicolon, token.RBrace, token.Ident, token.Semicolon)
	expectKinds(t, "typedef long L; enum e { A = 1 };",
		token.KwTypedef, token.KwLong, token.Ident, token.Semicolon,
		token.KwEnum, token.Ident, token.LBrace, token.Ident, token.Assign, token.IntLit,
		token.RBrace, token.Semicolon)
}

func TestOperatorsAreGreedy(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"a+=b", []token.Kind{token.Ident, token.PlusAssign, token.Ident}},
		{"a++ + b", []token.Kind{token.Ident, token.Inc, token.Plus, token.Ident}},
		{"p->x", []token.Kind{token.Ident, token.Arrow, token.Ident}},
		{"a<<=b", []token.Kind{token.Ident, token.Shl, token.Assign, token.Ident}},
		{"!a && ~b || c", []token.Kind{token.LogNot, token.Ident, token.LogAnd, token.Invert, token.Ident, token.LogOr, token.Ident}},
		{"a==b!=c<=d>=e", []token.Kind{token.Ident, token.EqEq, token.Ident, token.NotEq, token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident}},
		{"c ? x : y", []token.Kind{token.Ident, token.Question, token.Ident, token.Colon, token.Ident}},
		{"a%b/c", []token.Kind{token.Ident, token.Mod, token.Ident, token.Slash, token.Ident}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectKinds(t, tt.input, tt.want...)
		})
	}
}

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"42", 42},
		{"0x2A", 42},
		{"052", 42},
		{"100L", 100},
		{"'a'", 97},
		{`'\n'`, 10},
		{`'\0'`, 0},
		{`'\x41'`, 65},
		{`'\''`, 39},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := expectKinds(t, tt.input, token.IntLit)
			if toks[0].Value != tt.want {
				t.Fatalf("value = %d, want %d", toks[0].Value, tt.want)
			}
			if toks[0].Text != tt.input {
				t.Fatalf("text = %q", toks[0].Text)
			}
		})
	}
}

func TestStringLiteralDecoding(t *testing.T) {
	toks := expectKinds(t, `"a\tb\"c\\"`, token.StringLit)
	if toks[0].Str != "a\tb\"c\\" {
		t.Fatalf("decoded = %q", toks[0].Str)
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	toks := expectKinds(t, "int /* block\n comment */ x; // tail\n", token.KwInt, token.Ident, token.Semicolon)
	lead := toks[1].Leading
	if len(lead) == 0 {
		t.Fatalf("expected leading trivia on x")
	}
	found := false
	for _, tv := range lead {
		if tv.Kind == token.TriviaBlockComment {
			found = true
		}
	}
	if !found {
		t.Fatalf("block comment missing from leading trivia: %+v", lead)
	}
	if toks[1].Line != 2 {
		t.Fatalf("x is on line %d, want 2", toks[1].Line)
	}
}

func TestLineMarkers(t *testing.T) {
	input := "int a;\n# 40 \"inc/defs.h\" 1\nint b;\nint c;\n# 7 \"main.c\" 2\nint d;\n"
	toks := expectKinds(t, input,
		token.KwInt, token.Ident, token.Semicolon,
		token.KwInt, token.Ident, token.Semicolon,
		token.KwInt, token.Ident, token.Semicolon,
		token.KwInt, token.Ident, token.Semicolon)

	want := []struct {
		name string
		line int
		file string
	}{
		{"a", 1, "test.c"},
		{"b", 40, "inc/defs.h"},
		{"c", 41, "inc/defs.h"},
		{"d", 7, "main.c"},
	}
	idents := make([]token.Token, 0, 4)
	for _, tok := range toks {
		if tok.Kind == token.Ident {
			idents = append(idents, tok)
		}
	}
	for i, w := range want {
		got := idents[i]
		if got.Text != w.name || got.Line != w.line || got.File != w.file {
			t.Errorf("%s at %s:%d, want %s:%d", got.Text, got.File, got.Line, w.file, w.line)
		}
	}

	var marker *token.LineMarker
	for _, tv := range toks[3].Leading {
		if tv.Kind == token.TriviaLineMarker {
			marker = tv.Marker
		}
	}
	if marker == nil || marker.Line != 40 || marker.File != "inc/defs.h" {
		t.Fatalf("line marker trivia = %+v", marker)
	}
}

func TestLexerIsLocator(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("unit.c", []byte("int\nx;")))
	lx := lexer.New(file, lexer.Options{})
	var loc diag.Locator = lx

	lx.Next()
	if loc.Line() != 1 || loc.Filename() != "unit.c" {
		t.Fatalf("locator at %s:%d", loc.Filename(), loc.Line())
	}
	if peeked := lx.Peek(); peeked.Line != 2 || loc.Line() != 1 {
		t.Fatalf("Peek must not move the locator: peek line %d, locator %d", peeked.Line, loc.Line())
	}
	lx.Next()
	if loc.Line() != 2 {
		t.Fatalf("locator line %d after Next, want 2", loc.Line())
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"@", diag.LexUnknownChar},
		{`"abc`, diag.LexUnterminatedString},
		{"\"ab\ncd\"", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"12ab", diag.LexBadNumber},
		{"09", diag.LexBadNumber},
		{"0x", diag.LexBadNumber},
		{"'ab'", diag.LexUnterminatedChar},
		{"''", diag.LexUnterminatedChar},
		{`'\q'`, diag.LexBadEscape},
		{"#pragma once\n", diag.LexBadLineMarker},
		{"99999999999999999999", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, rep := lexAll(tt.input)
			codes := rep.codes()
			if len(codes) == 0 || codes[0] != tt.code {
				t.Fatalf("codes = %v, want first %s (%s)", codes, tt.code.ID(), strings.Join(rep.messages(), "; "))
			}
		})
	}
}

func TestEOFIsSticky(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("e.c", []byte("  ")))
	lx := lexer.New(file, lexer.Options{})
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: %v", i, tok.Kind)
		}
	}
}
