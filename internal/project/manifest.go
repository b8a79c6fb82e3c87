package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"cfront/internal/layout"
)

// Manifest is a loaded cfront.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Target  TargetConfig  `toml:"target"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Sources        []string `toml:"sources"`
	DumpSymbols    bool     `toml:"dump_symbols"`
	Snapshot       string   `toml:"snapshot"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

// TargetConfig starts from a named target; any width given overrides it.
type TargetConfig struct {
	Name    string `toml:"name"`
	Char    int    `toml:"char"`
	Int     int    `toml:"int"`
	Long    int    `toml:"long"`
	Pointer int    `toml:"pointer"`
}

// ErrNoSources is returned when [build].sources is missing or empty.
var ErrNoSources = errors.New("missing [build].sources")

// LoadManifest finds cfront.toml above startDir and loads it. found is
// false, with a nil error, when there is no manifest.
func LoadManifest(startDir string) (m *Manifest, found bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build", "sources") || len(cfg.Build.Sources) == 0 {
		return Config{}, fmt.Errorf("%s: %w", path, ErrNoSources)
	}
	for i, src := range cfg.Build.Sources {
		if strings.TrimSpace(src) == "" {
			return Config{}, fmt.Errorf("%s: [build].sources[%d] is empty", path, i)
		}
	}
	if cfg.Build.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [build].max_diagnostics must not be negative", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if _, err := cfg.Target.Layout(); err != nil {
		return Config{}, fmt.Errorf("%s: [target]: %w", path, err)
	}
	return cfg, nil
}

// Sources returns the manifest's sources resolved against its directory.
func (m *Manifest) Sources() []string {
	out := make([]string, 0, len(m.Config.Build.Sources))
	for _, src := range m.Config.Build.Sources {
		p := filepath.FromSlash(src)
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		out = append(out, p)
	}
	return out
}

// Layout resolves the named target and applies the width overrides.
func (c TargetConfig) Layout() (layout.Target, error) {
	t, err := layout.TargetByName(c.Name)
	if err != nil {
		return layout.Target{}, err
	}
	if c.Char != 0 {
		t.CharSize = c.Char
	}
	if c.Int != 0 {
		t.IntSize = c.Int
	}
	if c.Long != 0 {
		t.LongSize = c.Long
	}
	if c.Pointer != 0 {
		t.PtrSize = c.Pointer
		t.PtrAlign = c.Pointer
	}
	if c.Char != 0 || c.Int != 0 || c.Long != 0 || c.Pointer != 0 {
		t.Name += "+custom"
	}
	return t, t.Validate()
}
