package decl

import (
	"cfront/internal/symbols"
)

// StringLit is a string literal used to initialize a global.
type StringLit struct {
	Label int
	Value string
}

// Session is the state shared by every unit declared into one table:
// the label counter, the set of function bodies already seen and the unit
// that defined each tag and enum entry.
type Session struct {
	Table *symbols.Table

	label   int
	defined map[symbols.SymbolID]bool
	strings []StringLit

	unit        int
	origin      map[symbols.SymbolID]int
	enumerators map[symbols.SymbolID][]symbols.SymbolID
}

// NewSession starts a session over table. Label numbering starts at 1.
func NewSession(table *symbols.Table) *Session {
	return &Session{
		Table:       table,
		label:       1,
		defined:     make(map[symbols.SymbolID]bool),
		origin:      make(map[symbols.SymbolID]int),
		enumerators: make(map[symbols.SymbolID][]symbols.SymbolID),
	}
}

// NextLabel hands out a fresh label number.
func (s *Session) NextLabel() int {
	l := s.label
	s.label++
	return l
}

// Strings returns every string literal recorded so far, in label order.
func (s *Session) Strings() []StringLit {
	return s.strings
}

func (s *Session) addString(value string) int {
	l := s.NextLabel()
	s.strings = append(s.strings, StringLit{Label: l, Value: value})
	return l
}

// record notes that id was defined by the unit being processed.
func (s *Session) record(id symbols.SymbolID) {
	s.origin[id] = s.unit
}

// fromEarlierUnit reports whether id was defined by a unit processed before
// the current one. Such definitions usually come from a shared header.
func (s *Session) fromEarlierUnit(id symbols.SymbolID) bool {
	u, ok := s.origin[id]
	return ok && u < s.unit
}
