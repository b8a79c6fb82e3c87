package symbols

import (
	"errors"
	"fmt"
	"slices"

	"cfront/internal/source"
	"cfront/internal/types"
)

// StructKind is the structural shape of a symbol.
type StructKind uint8

const (
	Variable StructKind = iota
	Function
	Array
)

func (k StructKind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Function:
		return "function"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// Class is the storage class or namespace role of a symbol.
type Class uint8

const (
	ClassNone Class = iota
	Global
	Local
	Param
	Extern
	Static
	StructTag
	UnionTag
	Member
	EnumType
	EnumValue
	Typedef
)

func (c Class) String() string {
	switch c {
	case Global:
		return "global"
	case Local:
		return "local"
	case Param:
		return "param"
	case Extern:
		return "extern"
	case Static:
		return "static"
	case StructTag:
		return "struct"
	case UnionTag:
		return "union"
	case Member:
		return "member"
	case EnumType:
		return "enumtype"
	case EnumValue:
		return "enumval"
	case Typedef:
		return "typedef"
	default:
		return "unknown"
	}
}

// ErrSlotMisuse is the panic payload for reading a class-dependent field
// under a class that does not carry it.
var ErrSlotMisuse = errors.New("symbol slot read under the wrong class")

// Symbol is one named entity known to the front end.
type Symbol struct {
	Name      string // empty for anonymous structs, unions and enums
	Type      types.Type
	Composite SymbolID // struct/union tag for composite types, NoSymbolID otherwise
	Kind      StructKind
	Class     Class
	Size      int // total bytes
	NElems    int // params for functions, elements for arrays, 0 for enums, 1 otherwise
	Align     int // tags only, set by layout

	// Members is the member chain of a tag, or the parameter chain of a
	// function while its body is being processed.
	Members []SymbolID
	// Params is the parameter list of a function. It survives the body so a
	// later definition can be checked against a prototype.
	Params []SymbolID

	Init []int64 // initial values of a global, if any
	Span source.Span

	// slot holds the end label (functions), the address-taken flag (locals
	// and params), the enum value, or the member offset. Use the accessors.
	slot int
}

func misuse(s *Symbol, what string) {
	panic(fmt.Errorf("%w: %s of %s %q", ErrSlotMisuse, what, s.Class, s.Name))
}

// EndLabel returns the label that ends a function body.
func (s *Symbol) EndLabel() int {
	if s.Kind != Function {
		misuse(s, "end label")
	}
	return s.slot
}

// AddrTaken reports whether the address of a local or parameter is used.
func (s *Symbol) AddrTaken() bool {
	if s.Class != Local && s.Class != Param {
		misuse(s, "address-taken flag")
	}
	return s.slot != 0
}

// MarkAddrTaken records that the address of a local or parameter is used.
func (s *Symbol) MarkAddrTaken() {
	if s.Class != Local && s.Class != Param {
		misuse(s, "address-taken flag")
	}
	s.slot = 1
}

// EnumValue returns the integer value of an enumerator.
func (s *Symbol) EnumValue() int {
	if s.Class != EnumValue {
		misuse(s, "enum value")
	}
	return s.slot
}

// Offset returns the byte offset of a struct or union member.
func (s *Symbol) Offset() int {
	if s.Class != Member {
		misuse(s, "offset")
	}
	return s.slot
}

// SetOffset records the byte offset of a struct or union member.
func (s *Symbol) SetOffset(off int) {
	if s.Class != Member {
		misuse(s, "offset")
	}
	s.slot = off
}

// CompositeSize implements layout.Composite for tag records.
func (s *Symbol) CompositeSize() int { return s.Size }

// CompositeAlign implements layout.Composite for tag records.
func (s *Symbol) CompositeAlign() int { return s.Align }

// IsTag reports whether s names a struct or union type.
func (s *Symbol) IsTag() bool {
	return s.Class == StructTag || s.Class == UnionTag
}

func (s *Symbol) isEnum() bool {
	return s.Class == EnumType || s.Class == EnumValue
}

// clone copies s so the arena copy does not share slices with the caller.
func (s *Symbol) clone() Symbol {
	c := *s
	c.Members = slices.Clone(s.Members)
	c.Params = slices.Clone(s.Params)
	c.Init = slices.Clone(s.Init)
	return c
}
