package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadFromNestedDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[build]
sources = ["src", "lib/extra.lil"]
jobs = 4
parallel = true
prelude = false

[export]
path = "out/demo.lri"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := LoadFromDir(nested)
	if err != nil || !ok {
		t.Fatalf("LoadFromDir: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Build.Jobs != 4 || !m.Config.Build.Parallel {
		t.Fatalf("config: %+v", m.Config)
	}
	if m.PreludeEnabled() {
		t.Fatalf("prelude must be disabled")
	}
	srcs := m.SourcePaths()
	if len(srcs) != 2 || srcs[1] != filepath.Join(root, "lib", "extra.lil") {
		t.Fatalf("sources: %v", srcs)
	}
	if m.ExportPath() != filepath.Join(root, "out", "demo.lri") {
		t.Fatalf("export path: %s", m.ExportPath())
	}
}

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"x\"\n")
	m, err := Load(filepath.Join(root, ManifestName))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.PreludeEnabled() || m.ExportPath() != "" {
		t.Fatalf("defaults: %+v", m.Config)
	}
	if srcs := m.SourcePaths(); len(srcs) != 1 || srcs[0] != root {
		t.Fatalf("default sources: %v", srcs)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"no package":  "[build]\njobs = 1\n",
		"no name":     "[package]\n",
		"bad jobs":    "[package]\nname = \"x\"\n[build]\njobs = -1\n",
		"unknown key": "[package]\nname = \"x\"\nversion = \"1\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, content)
			if _, err := Load(path); !errors.Is(err, ErrInvalidManifest) {
				t.Fatalf("expected ErrInvalidManifest, got %v", err)
			}
		})
	}
}

func TestFindManifestMissing(t *testing.T) {
	_, ok, err := LoadFromDir(t.TempDir())
	if err != nil || ok {
		t.Fatalf("expected no manifest, got ok=%v err=%v", ok, err)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	if err := Write(path, DefaultConfig("demo")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Config.Package.Name != "demo" || m.Config.Export.Path != "build/demo.lri" {
		t.Fatalf("config: %+v", m.Config)
	}
	if err := Write(path, DefaultConfig("demo")); err == nil {
		t.Fatalf("second Write must fail")
	}
}

func TestCombineOrderMatters(t *testing.T) {
	a, b := Digest{1}, Digest{2}
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("combine must depend on order")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatalf("combine must be deterministic")
	}
}
