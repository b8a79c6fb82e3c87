package trace

import "time"

// Kind tells span boundaries from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	}
	return "unknown"
}

// Scope is the granularity of an event; coarser scopes have lower values
// so a Level can cut them off with one comparison.
type Scope uint8

const (
	// ScopeDriver covers a whole command invocation.
	ScopeDriver Scope = iota + 1
	// ScopeUnit covers one translation unit.
	ScopeUnit
	// ScopeFunction covers one function body between BeginFunction and EndFunction.
	ScopeFunction
	// ScopeSymbol is a single catalog insertion.
	ScopeSymbol
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeUnit:
		return "unit"
	case ScopeFunction:
		return "function"
	case ScopeSymbol:
		return "symbol"
	}
	return "unknown"
}

// Attr is one key/value annotation. Attrs keep the order they were added in.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // process-wide, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points
	ParentID uint64 // 0 for roots
	Name     string // "compile", "unit:main.c", "add-globals", ...
	Detail   string
	Attrs    []Attr
}
