package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005
	LexBadEscape                Code = 1006
	LexBadLineMarker            Code = 1007
	LexTokenTooLong             Code = 1008

	// syntax
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectRBrace     Code = 2005
	SynExpectRParen     Code = 2006
	SynExpectRBracket   Code = 2007
	SynExpectConstant   Code = 2008
	SynUnexpectedEOF    Code = 2009

	// declarations and names
	SemaDuplicateSymbol        Code = 3001
	SemaUnresolvedSymbol       Code = 3002
	SemaUnknownType            Code = 3003
	SemaIncompleteType         Code = 3004
	SemaDuplicateMember        Code = 3005
	SemaVoidVariable           Code = 3006
	SemaConflictingTypes       Code = 3007
	SemaTooManyInitializers    Code = 3008
	SemaBadArraySize           Code = 3009
	SemaTooMuchIndirection     Code = 3010
	SemaParamMismatch          Code = 3011
	SemaFunctionRedefined      Code = 3012
	SemaStorageClassNotAllowed Code = 3013
	SemaNotConstant            Code = 3014
	SemaUnknownMember          Code = 3015

	// io / project
	IOLoadFileError   Code = 4001
	ProjManifestError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "unknown error",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed integer literal",
	LexUnterminatedChar:         "unterminated character literal",
	LexBadEscape:                "unknown escape sequence",
	LexBadLineMarker:            "malformed line marker",
	LexTokenTooLong:             "token too long",
	SynUnexpectedToken:          "unexpected token",
	SynExpectSemicolon:          "expected ';'",
	SynExpectIdentifier:         "expected identifier",
	SynExpectType:               "expected type",
	SynExpectRBrace:             "expected '}'",
	SynExpectRParen:             "expected ')'",
	SynExpectRBracket:           "expected ']'",
	SynExpectConstant:           "expected integer constant",
	SynUnexpectedEOF:            "unexpected end of file",
	SemaDuplicateSymbol:         "duplicate declaration",
	SemaUnresolvedSymbol:        "undeclared identifier",
	SemaUnknownType:             "unknown type",
	SemaIncompleteType:          "incomplete type",
	SemaDuplicateMember:         "duplicate member",
	SemaVoidVariable:            "variable declared void",
	SemaConflictingTypes:        "conflicting types",
	SemaTooManyInitializers:     "too many initializers",
	SemaBadArraySize:            "bad array size",
	SemaTooMuchIndirection:      "too many levels of indirection",
	SemaParamMismatch:           "parameter mismatch with prototype",
	SemaFunctionRedefined:       "function redefined",
	SemaStorageClassNotAllowed:  "storage class not allowed here",
	SemaNotConstant:             "initializer is not a constant",
	SemaUnknownMember:           "no such member",
	IOLoadFileError:             "failed to load file",
	ProjManifestError:           "invalid project manifest",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
