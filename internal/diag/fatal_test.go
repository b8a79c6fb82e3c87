package diag

import (
	"fmt"
	"testing"
)

type fixedLocator struct {
	line int
	file string
}

func (l fixedLocator) Line() int        { return l.line }
func (l fixedLocator) Filename() string { return l.file }

func catchFatal(t *testing.T, fn func()) (fe *FatalError) {
	t.Helper()
	defer func() {
		r := recover()
		var ok bool
		fe, ok = AsFatal(r)
		if !ok {
			t.Fatalf("expected *FatalError panic, got %v", r)
		}
	}()
	fn()
	return nil
}

func TestFatalVariants(t *testing.T) {
	loc := fixedLocator{line: 12, file: "prog.c"}
	tests := []struct {
		name string
		fn   func()
		want string
	}{
		{"plain", func() { Fatal(loc, "Unable to allocate") }, "Unable to allocate on line 12 of prog.c"},
		{"string", func() { Fatals(loc, "Expected", ";") }, "Expected:; on line 12 of prog.c"},
		{"int", func() { Fatald(loc, "Bad type", 7) }, "Bad type:7 on line 12 of prog.c"},
		{"char", func() { Fatalc(loc, "Unrecognised character", '$') }, "Unrecognised character:$ on line 12 of prog.c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := catchFatal(t, tt.fn)
			if fe.Error() != tt.want {
				t.Fatalf("Error() = %q, want %q", fe.Error(), tt.want)
			}
		})
	}
}

func TestFatalWithoutLocator(t *testing.T) {
	fe := catchFatal(t, func() { Fatal(nil, "boom") })
	if fe.Error() != "boom" {
		t.Fatalf("Error() = %q", fe.Error())
	}
}

func TestAsFatalWrapped(t *testing.T) {
	wrapped := fmt.Errorf("driver: %w", &FatalError{Msg: "x"})
	if _, ok := AsFatal(wrapped); !ok {
		t.Fatalf("expected wrapped FatalError to be detected")
	}
	if _, ok := AsFatal("not an error"); ok {
		t.Fatalf("string panic must not be treated as fatal")
	}
}
