package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[package]
name = "demo"

[build]
sources = ["src/a.c", "b.c"]
dump_symbols = true

[target]
name = "i386"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, found, err := LoadManifest(nested)
	if err != nil || !found {
		t.Fatalf("LoadManifest: found=%v err=%v", found, err)
	}
	if m.Config.Package.Name != "demo" || !m.Config.Build.DumpSymbols {
		t.Errorf("config = %+v", m.Config)
	}
	srcs := m.Sources()
	if len(srcs) != 2 || srcs[0] != filepath.Join(m.Root, "src", "a.c") {
		t.Errorf("sources = %v", srcs)
	}
	target, err := m.Config.Target.Layout()
	if err != nil || target.LongSize != 4 {
		t.Errorf("target = %+v, %v", target, err)
	}
}

func TestLoadManifestNotFound(t *testing.T) {
	m, found, err := LoadManifest(t.TempDir())
	if err != nil || found || m != nil {
		t.Fatalf("got %v %v %v", m, found, err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no package", "[build]\nsources = [\"a.c\"]\n", "missing [package]"},
		{"no name", "[package]\nname = \" \"\n[build]\nsources = [\"a.c\"]\n", "missing [package].name"},
		{"no sources", "[package]\nname = \"x\"\n", "missing [build].sources"},
		{"empty source", "[package]\nname = \"x\"\n[build]\nsources = [\"\"]\n", "sources[0] is empty"},
		{"bad target", "[package]\nname = \"x\"\n[build]\nsources = [\"a.c\"]\n[target]\nname = \"pdp11\"\n", "unknown target"},
		{"bad width", "[package]\nname = \"x\"\n[build]\nsources = [\"a.c\"]\n[target]\nint = 3\n", "not a positive power of two"},
		{"unknown key", "[package]\nname = \"x\"\nversion = 2\n[build]\nsources = [\"a.c\"]\n", "unknown key package.version"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestNoSourcesIsSentinel(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[package]\nname = \"x\"\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrNoSources) {
		t.Fatalf("err = %v", err)
	}
}

func TestTargetOverrides(t *testing.T) {
	target, err := TargetConfig{Name: "x86_64", Long: 4}.Layout()
	if err != nil {
		t.Fatal(err)
	}
	if target.LongSize != 4 || target.IntSize != 4 || target.PtrSize != 8 || target.Name != "x86_64+custom" {
		t.Errorf("target = %+v", target)
	}
}
