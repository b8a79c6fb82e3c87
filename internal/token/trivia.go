package token

import "cfront/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaLineMarker
)

// LineMarker is a preprocessor line marker: the next source line is line
// Line of File.
type LineMarker struct {
	Line int
	File string
}

type Trivia struct {
	Kind   TriviaKind
	Span   source.Span
	Text   string
	Marker *LineMarker // only when Kind == TriviaLineMarker
}
