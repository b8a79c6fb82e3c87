package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Binary operators.
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	ModAssign   // %=
	Question    // ?
	LogOr       // ||
	LogAnd      // &&
	Or          // |
	Xor         // ^
	Amp         // &
	EqEq        // ==
	NotEq       // !=
	Lt          // <
	Gt          // >
	LtEq        // <=
	GtEq        // >=
	Shl         // <<
	Shr         // >>
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Mod         // %

	// Other operators.
	Inc    // ++
	Dec    // --
	Invert // ~
	LogNot // !

	// Type keywords.
	KwVoid // void
	KwChar // char
	KwInt  // int
	KwLong // long

	// Other keywords.
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwReturn   // return
	KwStruct   // struct
	KwUnion    // union
	KwEnum     // enum
	KwTypedef  // typedef
	KwExtern   // extern
	KwBreak    // break
	KwContinue // continue
	KwSwitch   // switch
	KwCase     // case
	KwDefault  // default
	KwSizeof   // sizeof
	KwStatic   // static

	// Structural tokens.
	IntLit    // 42, 0x2a, 052, 'c'
	StringLit // "text"
	Semicolon // ;
	Ident     // name
	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Dot       // .
	Arrow     // ->
	Colon     // :
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "EOF",
	Assign:      "=",
	PlusAssign:  "+=",
	MinusAssign: "-=",
	StarAssign:  "*=",
	SlashAssign: "/=",
	ModAssign:   "%=",
	Question:    "?",
	LogOr:       "||",
	LogAnd:      "&&",
	Or:          "|",
	Xor:         "^",
	Amp:         "&",
	EqEq:        "==",
	NotEq:       "!=",
	Lt:          "<",
	Gt:          ">",
	LtEq:        "<=",
	GtEq:        ">=",
	Shl:         "<<",
	Shr:         ">>",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Mod:         "%",
	Inc:         "++",
	Dec:         "--",
	Invert:      "~",
	LogNot:      "!",
	KwVoid:      "void",
	KwChar:      "char",
	KwInt:       "int",
	KwLong:      "long",
	KwIf:        "if",
	KwElse:      "else",
	KwWhile:     "while",
	KwFor:       "for",
	KwReturn:    "return",
	KwStruct:    "struct",
	KwUnion:     "union",
	KwEnum:      "enum",
	KwTypedef:   "typedef",
	KwExtern:    "extern",
	KwBreak:     "break",
	KwContinue:  "continue",
	KwSwitch:    "switch",
	KwCase:      "case",
	KwDefault:   "default",
	KwSizeof:    "sizeof",
	KwStatic:    "static",
	IntLit:      "integer literal",
	StringLit:   "string literal",
	Semicolon:   ";",
	Ident:       "identifier",
	LBrace:      "{",
	RBrace:      "}",
	LParen:      "(",
	RParen:      ")",
	LBracket:    "[",
	RBracket:    "]",
	Comma:       ",",
	Dot:         ".",
	Arrow:       "->",
	Colon:       ":",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
