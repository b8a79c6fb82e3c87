// Package types implements the packed primitive type encoding shared by the
// declaration processor, the symbol table and the layout engine.
//
// A Type keeps the base kind in the high bits and the level of indirection in
// the low four bits, so "pointer to struct" and "pointer to int" differ only
// in their base kind.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a base kind plus an indirection level.
type Type uint16

// Kind is the base kind of a Type with the indirection bits cleared.
type Kind uint16

const (
	None   Kind = 0
	Void   Kind = 16
	Char   Kind = 32
	Int    Kind = 48
	Long   Kind = 64
	Struct Kind = 80
	Union  Kind = 96
)

const (
	indirectionMask = 0xf
	// MaxIndirection is the deepest pointer level the encoding can hold.
	MaxIndirection = indirectionMask
)

var (
	// ErrTooMuchIndirection is returned by PointerTo at MaxIndirection.
	ErrTooMuchIndirection = errors.New("too many levels of indirection")
	// ErrNotPointer is returned by ValueAt for a value type.
	ErrNotPointer = errors.New("not a pointer type")
)

// Make builds a Type from a base kind and an indirection level.
func Make(kind Kind, level int) Type {
	if level < 0 || level > MaxIndirection {
		panic(fmt.Sprintf("types.Make: indirection %d out of range", level))
	}
	return Type(uint16(kind) | uint16(level))
}

// Of returns the value type of kind k.
func Of(k Kind) Type { return Type(k) }

// Kind strips the indirection bits.
func (t Type) Kind() Kind { return Kind(t &^ indirectionMask) }

// Indirection reports how many pointer levels t carries.
func (t Type) Indirection() int { return int(t & indirectionMask) }

// IsInteger reports whether t is a char, int or long value.
func IsInteger(t Type) bool {
	if t.Indirection() != 0 {
		return false
	}
	switch t.Kind() {
	case Char, Int, Long:
		return true
	}
	return false
}

// IsPointer reports whether t has at least one level of indirection.
func IsPointer(t Type) bool { return t.Indirection() != 0 }

// IsComposite reports whether t is a struct or union value.
func IsComposite(t Type) bool {
	if t.Indirection() != 0 {
		return false
	}
	k := t.Kind()
	return k == Struct || k == Union
}

// PointerTo returns the type one indirection level above t.
func PointerTo(t Type) (Type, error) {
	if t.Indirection() == MaxIndirection {
		return t, fmt.Errorf("pointer to %s: %w", t, ErrTooMuchIndirection)
	}
	return t + 1, nil
}

// ValueAt returns the type t points to.
func ValueAt(t Type) (Type, error) {
	if t.Indirection() == 0 {
		return t, fmt.Errorf("value at %s: %w", t, ErrNotPointer)
	}
	return t - 1, nil
}

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Void:
		return "void"
	case Char:
		return "char"
	case Int:
		return "int"
	case Long:
		return "long"
	case Struct:
		return "struct"
	case Union:
		return "union"
	default:
		return "unknown"
	}
}

func (t Type) String() string {
	level := t.Indirection()
	if level == 0 {
		return t.Kind().String()
	}
	return t.Kind().String() + " " + strings.Repeat("*", level)
}
