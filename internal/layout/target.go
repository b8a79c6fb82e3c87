package layout

import "fmt"

// Target describes the scalar widths of the machine the front end sizes for.
//
// Only natural alignment is modelled: every scalar aligns to its own width.
type Target struct {
	Name     string // e.g. "x86_64"
	CharSize int    // bytes
	IntSize  int    // bytes
	LongSize int    // bytes
	PtrSize  int    // bytes
	PtrAlign int    // bytes
}

// X86_64 is the default LP64 target.
func X86_64() Target {
	return Target{
		Name:     "x86_64",
		CharSize: 1,
		IntSize:  4,
		LongSize: 8,
		PtrSize:  8,
		PtrAlign: 8,
	}
}

// I386 is an ILP32 target, useful to check that sizes really follow the target.
func I386() Target {
	return Target{
		Name:     "i386",
		CharSize: 1,
		IntSize:  4,
		LongSize: 4,
		PtrSize:  4,
		PtrAlign: 4,
	}
}

// TargetByName returns a predefined target.
func TargetByName(name string) (Target, error) {
	switch name {
	case "", "x86_64", "amd64":
		return X86_64(), nil
	case "i386", "x86":
		return I386(), nil
	default:
		return Target{}, fmt.Errorf("unknown target %q (expected x86_64|i386)", name)
	}
}

// Validate rejects widths that cannot describe a real machine.
func (t Target) Validate() error {
	for _, w := range []struct {
		name string
		val  int
	}{
		{"char", t.CharSize},
		{"int", t.IntSize},
		{"long", t.LongSize},
		{"pointer", t.PtrSize},
	} {
		if w.val <= 0 || w.val&(w.val-1) != 0 {
			return fmt.Errorf("target %s: %s size %d is not a positive power of two", t.Name, w.name, w.val)
		}
	}
	return nil
}
