package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"cfront/internal/buildpipeline"
	"cfront/internal/diag"
	"cfront/internal/layout"
	"cfront/internal/symbols"
	"cfront/internal/testkit"
)

func writeUnits(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(files))
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

func TestCompileSharesGlobalsAcrossUnits(t *testing.T) {
	paths := writeUnits(t, map[string]string{
		"a.c": "int counter;\nstatic int hidden;\nint bump(int by) { counter = counter + by; return counter; }\n",
		"b.c": "extern int counter;\nstatic char local;\nint bump(int by);\nint main() { return bump(1); }\n",
	})
	sink := &buildpipeline.RecordingSink{}
	var dump strings.Builder
	res, err := Compile(context.Background(), Request{
		Files:    paths,
		Target:   layout.X86_64(),
		Dump:     &dump,
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if len(res.Units) != 2 {
		t.Fatalf("units = %d", len(res.Units))
	}
	if err := testkit.CheckSymbolSpans(res.Table, res.FileSet); err != nil {
		t.Fatalf("symbol spans: %v", err)
	}
	if res.Units[0].Pruned != 1 || res.Units[1].Pruned != 1 {
		t.Errorf("pruned = %d, %d", res.Units[0].Pruned, res.Units[1].Pruned)
	}
	for _, name := range []string{"counter", "bump", "main"} {
		if _, ok := res.Table.FindGlobal(name); !ok {
			t.Errorf("global %q missing", name)
		}
	}
	for _, name := range []string{"hidden", "local"} {
		if _, ok := res.Table.FindGlobal(name); ok {
			t.Errorf("static %q survived its unit", name)
		}
	}
	if !strings.HasPrefix(dump.String(), "Global\n--------\n") || !strings.Contains(dump.String(), "main") {
		t.Errorf("dump = %q", dump.String())
	}

	declared := 0
	for _, evt := range sink.Events() {
		if evt.Stage == buildpipeline.StageDeclare && evt.Status == buildpipeline.StatusDone {
			declared++
		}
	}
	if declared != 2 {
		t.Errorf("declare done events = %d, want 2", declared)
	}
	if !res.Timings.Has(buildpipeline.StageDeclare) || !res.Timings.Has(buildpipeline.StageDump) {
		t.Errorf("timings missing stages")
	}
}

func TestCompileRepeatedHeaderDefinitions(t *testing.T) {
	header := "struct point { int x; int y; };\nenum color { RED, GREEN };\ntypedef int T;\n"
	paths := writeUnits(t, map[string]string{
		"a.c": header + "struct point a;\n",
		"b.c": header + "struct point b;\nint pick(void) { return GREEN; }\n",
	})
	res, err := Compile(context.Background(), Request{Files: paths, Target: layout.X86_64()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if items := res.Bag.Items(); len(items) > 0 {
		t.Fatalf("unexpected diagnostics: %v", items)
	}
	point, ok := res.Table.FindStruct("point")
	if !ok {
		t.Fatalf("struct point missing")
	}
	for _, name := range []string{"a", "b"} {
		id, ok := res.Table.FindGlobal(name)
		if !ok || res.Table.Get(id).Composite != point {
			t.Errorf("global %s does not use the shared struct point", name)
		}
	}
	if n := res.Table.Catalog(symbols.Structs).Len(); n != 1 {
		t.Errorf("struct catalog has %d entries, want 1", n)
	}
}

func TestCompileCollectsDiagnosticsPerUnit(t *testing.T) {
	paths := writeUnits(t, map[string]string{
		"a.c": "int x;\nint x;\n",
		"b.c": "int f() { return y; }\n",
	})
	res, err := Compile(context.Background(), Request{Files: paths, Target: layout.X86_64()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	var codes []diag.Code
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	want := []diag.Code{diag.SemaDuplicateSymbol, diag.SemaUnresolvedSymbol}
	if !slices.Equal(codes, want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	if res.Units[0].Decl.Errors != 1 || res.Units[1].Decl.Errors != 1 {
		t.Errorf("per-unit errors = %d, %d", res.Units[0].Decl.Errors, res.Units[1].Decl.Errors)
	}
}

func TestCompileMissingFile(t *testing.T) {
	paths := writeUnits(t, map[string]string{"ok.c": "int ok;\n"})
	paths = append(paths, filepath.Join(t.TempDir(), "missing.c"))
	res, err := Compile(context.Background(), Request{Files: paths, Target: layout.X86_64()})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Units[1].LoadErr == nil {
		t.Fatalf("expected load error for missing file")
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("diagnostics = %+v", items)
	}
	if _, ok := res.Table.FindGlobal("ok"); !ok {
		t.Errorf("good unit was not declared")
	}
}

func TestCompileNoInput(t *testing.T) {
	if _, err := Compile(context.Background(), Request{Target: layout.X86_64()}); !errors.Is(err, ErrNoInput) {
		t.Fatalf("err = %v", err)
	}
}

func TestCompileRejectsBadTarget(t *testing.T) {
	target := layout.X86_64()
	target.PtrSize = 6
	paths := writeUnits(t, map[string]string{"a.c": "int a;\n"})
	if _, err := Compile(context.Background(), Request{Files: paths, Target: target}); err == nil {
		t.Fatalf("expected target validation error")
	}
}

func TestCompileCanceled(t *testing.T) {
	paths := writeUnits(t, map[string]string{"a.c": "int a;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Compile(ctx, Request{Files: paths, Target: layout.X86_64()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSnapshotRoundTripThroughDriver(t *testing.T) {
	paths := writeUnits(t, map[string]string{
		"a.c": "struct pt { int x; long y; };\nstruct pt origin;\nenum { RED, GREEN = 4 };\ntypedef int count;\n",
	})
	snap := filepath.Join(t.TempDir(), "syms.msgpack")
	var direct strings.Builder
	res, err := Compile(context.Background(), Request{
		Files:        paths,
		Target:       layout.X86_64(),
		Dump:         &direct,
		SnapshotPath: snap,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", res.Bag.Items())
	}
	var replay strings.Builder
	if err := DumpSnapshot(snap, &replay); err != nil {
		t.Fatalf("DumpSnapshot: %v", err)
	}
	if replay.String() != direct.String() {
		t.Fatalf("snapshot dump differs:\n%s\nwant:\n%s", replay.String(), direct.String())
	}

	loaded, err := symbols.ReadSnapshotFile(snap)
	if err != nil {
		t.Fatal(err)
	}
	id, ok := loaded.FindEnumValue("GREEN")
	if !ok || loaded.Get(id).EnumValue() != 4 {
		t.Errorf("GREEN lost in snapshot")
	}
}
