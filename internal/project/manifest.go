package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded lilit.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Export  ExportConfig  `toml:"export"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	// Sources - файлы или каталоги относительно корня проекта; пусто - весь корень.
	Sources        []string `toml:"sources,omitempty"`
	Jobs           int      `toml:"jobs,omitempty"`
	Parallel       bool     `toml:"parallel,omitempty"`
	Prelude        *bool    `toml:"prelude,omitempty"`
	MaxDiagnostics int      `toml:"max_diagnostics,omitempty"`
}

type ExportConfig struct {
	Path string `toml:"path,omitempty"`
}

// ErrInvalidManifest wraps every validation failure of Load.
var ErrInvalidManifest = errors.New("invalid manifest")

// Load reads and validates a manifest.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%w: %s: missing [package]", ErrInvalidManifest, path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%w: %s: missing [package].name", ErrInvalidManifest, path)
	}
	if cfg.Build.Jobs < 0 {
		return nil, fmt.Errorf("%w: %s: [build].jobs must be >= 0", ErrInvalidManifest, path)
	}
	if cfg.Build.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%w: %s: [build].max_diagnostics must be >= 0", ErrInvalidManifest, path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: %s: unknown key %s", ErrInvalidManifest, path, undecoded[0])
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadFromDir finds lilit.toml above startDir and loads it. ok is false when there is none.
func LoadFromDir(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// SourcePaths returns [build].sources resolved against the project root.
func (m *Manifest) SourcePaths() []string {
	if len(m.Config.Build.Sources) == 0 {
		return []string{m.Root}
	}
	out := make([]string, 0, len(m.Config.Build.Sources))
	for _, s := range m.Config.Build.Sources {
		out = append(out, filepath.Join(m.Root, filepath.FromSlash(s)))
	}
	return out
}

// PreludeEnabled: prelude подключается, если не выключен явно.
func (m *Manifest) PreludeEnabled() bool {
	return m.Config.Build.Prelude == nil || *m.Config.Build.Prelude
}

// ExportPath returns [export].path resolved against the root, or "".
func (m *Manifest) ExportPath() string {
	if m.Config.Export.Path == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Export.Path))
}

// DefaultConfig is what `lilit init` writes.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name},
		Build:   BuildConfig{Sources: []string{"src"}},
		Export:  ExportConfig{Path: "build/" + name + ".lri"},
	}
}

// Write encodes cfg to path; an existing file is an error.
func Write(path string, cfg Config) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
