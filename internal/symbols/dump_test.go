package symbols

import (
	"errors"
	"strings"
	"testing"

	"cfront/internal/types"
)

func TestDumpAll(t *testing.T) {
	table := newTestTable()
	tag := table.AddStruct("point")
	table.AddMember("x", intType(), NoSymbolID, Variable, 1)
	table.AddMember("c", types.Of(types.Char), NoSymbolID, Variable, 1)
	table.LayoutStruct(tag)

	table.AddGlobal("g", intType(), NoSymbolID, Variable, Global, 1, 0)
	table.AddGlobal("name", types.Make(types.Char, 1), NoSymbolID, Variable, Global, 1, 0)
	table.AddGlobal("arr", intType(), NoSymbolID, Array, Global, 10, 0)
	table.AddGlobal("p", types.Of(types.Struct), tag, Variable, Extern, 1, 0)
	fn := table.AddGlobal("main", intType(), NoSymbolID, Function, Global, 0, 1)
	table.AddParam("argc", intType(), NoSymbolID, Variable)
	table.BeginFunction(fn)
	table.EndFunction()
	table.AddEnum("color", EnumType, 0)
	table.AddEnum("RED", EnumValue, 0)
	table.AddTypedef("L", types.Of(types.Long), NoSymbolID)

	var sb strings.Builder
	if err := table.DumpAll(&sb); err != nil {
		t.Fatal(err)
	}
	want := `Global
--------
int g: global, size 4
char *name: global, size 8
int arr[]: global, 10 elems, size 40
struct point p: extern, size 8
int main(): global, 1 params
    int argc: param, size 4

Enums
--------
int color: enumtype, size 0
int RED: enumval, value 0

Typedefs
--------
long L: typedef, size 8
`
	if got := sb.String(); got != want {
		t.Fatalf("DumpAll mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}

	sb.Reset()
	if err := table.DumpCatalog(&sb, Structs, "Structs", 0); err != nil {
		t.Fatal(err)
	}
	wantStructs := "Structs\n--------\nstruct point point: struct, size 8\n    int x: member, size 4\n    char c: member, size 1\n"
	if sb.String() != wantStructs {
		t.Fatalf("struct dump = %q", sb.String())
	}
}

func TestDumpKeepsInsertionOrder(t *testing.T) {
	table := newTestTable()
	for _, n := range []string{"X", "Y", "Z"} {
		table.AddTypedef(n, intType(), NoSymbolID)
	}
	var sb strings.Builder
	if err := table.DumpCatalog(&sb, Typedefs, "", 2); err != nil {
		t.Fatal(err)
	}
	want := "  int X: typedef, size 4\n  int Y: typedef, size 4\n  int Z: typedef, size 4\n"
	if sb.String() != want {
		t.Fatalf("dump = %q, want %q", sb.String(), want)
	}
}

func TestDumpEmptyCatalogHasNoTitle(t *testing.T) {
	table := newTestTable()
	var sb strings.Builder
	if err := table.DumpCatalog(&sb, Unions, "Unions", 0); err != nil {
		t.Fatal(err)
	}
	if sb.Len() != 0 {
		t.Fatalf("dump of empty catalog = %q", sb.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDumpSymbolIndentsMembers(t *testing.T) {
	table := newTestTable()
	point := table.AddStruct("point")
	table.AddMember("x", intType(), NoSymbolID, Variable, 1)
	table.LayoutStruct(point)

	pair := table.AddStruct("pair")
	table.AddMember("a", intType(), NoSymbolID, Variable, 1)
	table.AddMember("p", types.Make(types.Struct, 1), point, Variable, 1)
	table.AddMember("buf", types.Of(types.Char), NoSymbolID, Array, 3)
	table.LayoutStruct(pair)

	var sb strings.Builder
	if err := table.DumpSymbol(&sb, pair, 2); err != nil {
		t.Fatal(err)
	}
	want := "  struct pair pair: struct, size 24\n" +
		"      int a: member, size 4\n" +
		"      struct point *p: member, size 8\n" +
		"      char buf[]: member, 3 elems, size 3\n"
	if got := sb.String(); got != want {
		t.Fatalf("DumpSymbol mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}

	sb.Reset()
	if err := table.DumpSymbol(&sb, NoSymbolID, 0); err != nil || sb.Len() != 0 {
		t.Errorf("DumpSymbol(none) = %q, %v", sb.String(), err)
	}
	if err := table.DumpSymbol(failingWriter{}, pair, 0); err == nil {
		t.Errorf("expected write error")
	}
}
