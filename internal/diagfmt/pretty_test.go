package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cfront/internal/diag"
	"cfront/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/src/unit.c", []byte("int x;\nint x;\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaDuplicateSymbol, source.Span{File: id, Start: 11, End: 12}, "redefinition of 'x'").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "previous declaration is here"))
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := "unit.c:2:5: ERROR SEM3001: redefinition of 'x'\n" +
		"2 | int x;\n" +
		"  |     ^\n" +
		"  note: unit.c:1:5: previous declaration is here\n" +
		"1 | int x;\n" +
		"  |     ^\n"
	if got := buf.String(); got != want {
		t.Fatalf("pretty mismatch\n--- got ---\n%s--- want ---\n%s", got, want)
	}
}

func TestPrettyNotesHidden(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "note:") {
		t.Errorf("notes printed although ShowNotes is off:\n%s", buf.String())
	}
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("\tfoo bar;\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SemaUnknownType, source.Span{File: id, Start: 1, End: 4}, "unknown type name 'foo'"))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "  | \t^~~\n") {
		t.Errorf("underline wrong:\n%q", buf.String())
	}
}

func TestPathModes(t *testing.T) {
	bag, fs := sampleBag(t)
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"auto", PathModeAuto, "/home/user/project/src/unit.c:2:5"},
		{"absolute", PathModeAbsolute, "/home/user/project/src/unit.c:2:5"},
		{"relative", PathModeRelative, "src/unit.c:2:5"},
		{"basename", PathModeBasename, "unit.c:2:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"}
			if err := Pretty(&buf, bag, fs, opts); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(buf.String(), tt.contains) {
				t.Errorf("output starts with %q, want %q", firstLine(buf.String()), tt.contains)
			}
		})
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
