// Package token defines lexical token kinds and trivia for the cfront C subset.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Token.Line and Token.File are the logical position after applying
//     preprocessor line markers (# N "file"); they are what fatal errors report.
//   - Line markers are represented as leading Trivia (TriviaLineMarker) and
//     never appear in the main token stream.
package token
