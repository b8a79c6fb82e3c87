package diag

import (
	"errors"
	"fmt"
)

// Locator is the side channel a fatal report reads the current position from.
// The declaration processor implements it; nil means "position unknown".
type Locator interface {
	Line() int
	Filename() string
}

// FatalError is raised (as a panic value) when the front end's own
// bookkeeping is corrupted. It is never used for user input errors.
type FatalError struct {
	Msg  string
	Line int
	File string
}

func (e *FatalError) Error() string {
	if e.File == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s on line %d of %s", e.Msg, e.Line, e.File)
}

// Fatal aborts the compilation with msg. It never returns.
func Fatal(loc Locator, msg string) {
	e := &FatalError{Msg: msg}
	if loc != nil {
		e.Line = loc.Line()
		e.File = loc.Filename()
	}
	panic(e)
}

// Fatals aborts with a message and a supplementary string.
func Fatals(loc Locator, msg, s string) {
	Fatal(loc, msg+":"+s)
}

// Fatald aborts with a message and a supplementary integer.
func Fatald(loc Locator, msg string, d int) {
	Fatal(loc, fmt.Sprintf("%s:%d", msg, d))
}

// Fatalc aborts with a message and a supplementary character.
func Fatalc(loc Locator, msg string, c rune) {
	Fatal(loc, fmt.Sprintf("%s:%c", msg, c))
}

// AsFatal converts a recovered panic value into a *FatalError when it is one.
func AsFatal(r any) (*FatalError, bool) {
	switch v := r.(type) {
	case *FatalError:
		return v, true
	case error:
		var fe *FatalError
		if errors.As(v, &fe) {
			return fe, true
		}
	}
	return nil, false
}
