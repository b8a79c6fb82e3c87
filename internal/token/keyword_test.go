package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"void":    KwVoid,
		"char":    KwChar,
		"long":    KwLong,
		"struct":  KwStruct,
		"typedef": KwTypedef,
		"static":  KwStatic,
		"sizeof":  KwSizeof,
		"default": KwDefault,
	}
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Int", "VOID", "Struct", // case matters
		"unsigned", "short", "const", "float", // outside the subset
		"main", "printf",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestEveryKeywordHasName(t *testing.T) {
	for text, kind := range keywords {
		if kind.String() != text {
			t.Errorf("%v.String() = %q, want %q", kind, kind.String(), text)
		}
	}
}
