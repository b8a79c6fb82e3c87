package token_test

import (
	"testing"

	"cfront/internal/source"
	"cfront/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		kind    token.Kind
		literal bool
		punct   bool
		keyword bool
		typeKw  bool
	}{
		{token.IntLit, true, false, false, false},
		{token.StringLit, true, false, false, false},
		{token.Ident, false, false, false, false},
		{token.Assign, false, true, false, false},
		{token.LogNot, false, true, false, false},
		{token.Semicolon, false, true, false, false},
		{token.Arrow, false, true, false, false},
		{token.Colon, false, true, false, false},
		{token.KwVoid, false, false, true, true},
		{token.KwLong, false, false, true, true},
		{token.KwStruct, false, false, true, false},
		{token.KwStatic, false, false, true, false},
		{token.EOF, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			tk := tok(tt.kind)
			if tk.IsLiteral() != tt.literal {
				t.Errorf("IsLiteral = %v", tk.IsLiteral())
			}
			if tk.IsPunctOrOp() != tt.punct {
				t.Errorf("IsPunctOrOp = %v", tk.IsPunctOrOp())
			}
			if tk.IsKeyword() != tt.keyword {
				t.Errorf("IsKeyword = %v", tk.IsKeyword())
			}
			if tk.IsTypeKeyword() != tt.typeKw {
				t.Errorf("IsTypeKeyword = %v", tk.IsTypeKeyword())
			}
		})
	}
}

func TestKindStringUnknown(t *testing.T) {
	if got := token.Kind(250).String(); got != "unknown" {
		t.Fatalf("String = %q", got)
	}
}
