package token

import "cfront/internal/source"

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Value   int64  // IntLit: the value; char literals are folded into it
	Str     string // StringLit: the decoded contents
	Line    int    // logical line (after line markers)
	File    string // logical file name (after line markers)
	Leading []Trivia
}

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == StringLit
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return (t.Kind >= Assign && t.Kind <= LogNot) ||
		t.Kind == Semicolon || (t.Kind >= LBrace && t.Kind <= Colon)
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwVoid && t.Kind <= KwStatic
}

// IsTypeKeyword reports whether the token starts a builtin type.
func (t Token) IsTypeKeyword() bool {
	return t.Kind >= KwVoid && t.Kind <= KwLong
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
