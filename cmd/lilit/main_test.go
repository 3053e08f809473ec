package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lilit/internal/diag"
	"lilit/internal/driver"
	"lilit/internal/export"
	"lilit/internal/project"
	"lilit/internal/trace"
)

func TestParseAutoSwitch(t *testing.T) {
	cases := map[string]autoSwitch{"": switchAuto, "AUTO": switchAuto, " on ": switchOn, "off": switchOff}
	for in, want := range cases {
		got, err := parseAutoSwitch("ui", in)
		if err != nil || got != want {
			t.Fatalf("parseAutoSwitch(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	_, err := parseAutoSwitch("color", "sometimes")
	if err == nil || !strings.Contains(err.Error(), "--color") {
		t.Fatalf("expected --color error, got %v", err)
	}
	if !switchOn.enabled(nil) || switchOff.enabled(nil) {
		t.Fatalf("on/off must ignore the terminal")
	}
}

func TestInitProjectChecksClean(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	var out bytes.Buffer
	if err := initProject(&out, dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out.String(), project.ManifestName) {
		t.Fatalf("unexpected init output:\n%s", out.String())
	}

	m, err := project.Load(filepath.Join(dir, project.ManifestName))
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if m.Config.Package.Name != "hello" {
		t.Fatalf("package name = %q", m.Config.Package.Name)
	}

	res, err := driver.Check(context.Background(), m.SourcePaths(), driver.Options{BaseDir: m.Root})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("generated project has diagnostics:\n%s", diag.FormatGoldenDiagnostics(res.Bag.Items(), res.FileSet, true))
	}

	// второй init в том же каталоге запрещён
	if err := initProject(&out, dir); err == nil {
		t.Fatalf("expected error on repeated init")
	}
}

func TestInitNestedProjectNotes(t *testing.T) {
	outer := filepath.Join(t.TempDir(), "outer")
	var out bytes.Buffer
	if err := initProject(&out, outer); err != nil {
		t.Fatalf("init outer: %v", err)
	}
	out.Reset()
	inner := filepath.Join(outer, "libs", "inner")
	if err := initProject(&out, inner); err != nil {
		t.Fatalf("init inner: %v", err)
	}
	if !strings.Contains(out.String(), "is inside project "+outer) {
		t.Fatalf("missing nested-project note:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(inner, project.ManifestName)); err != nil {
		t.Fatalf("inner manifest not written: %v", err)
	}
}

func TestManifestDiagnostic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte("[build]\njobs = 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := project.Load(path)
	if err == nil {
		t.Fatalf("expected invalid manifest")
	}
	fs, bag := manifestDiagnostic(path, err)
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.ProjManifestInvalid {
		t.Fatalf("unexpected diagnostics: %+v", items)
	}
	if got := fs.Get(items[0].Primary.File).Path; got != path {
		t.Fatalf("diagnostic path = %q, want %q", got, path)
	}
}

func TestWriteProgramFormats(t *testing.T) {
	prog := &export.Program{
		Schema:  export.SchemaVersion,
		BuildID: "b1",
		Classes: []export.Class{{ID: 1, Name: "Native__Int", Native: "int64"}},
	}
	var yml bytes.Buffer
	if err := writeProgram(&yml, prog, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yml.String(), "schema: 1") || !strings.Contains(yml.String(), "native: int64") {
		t.Fatalf("unexpected yaml:\n%s", yml.String())
	}
	var js bytes.Buffer
	if err := writeProgram(&js, prog, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(js.String(), `"build_id": "b1"`) {
		t.Fatalf("unexpected json:\n%s", js.String())
	}
	if err := writeProgram(&js, prog, "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestTraceFlagsConfig(t *testing.T) {
	cfg, err := traceFlags{output: "run.ndjson", level: "off", mode: "both", format: "auto", ringSize: 16}.config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != trace.LevelPhase || cfg.Mode != trace.ModeBoth || cfg.RingSize != 16 {
		t.Fatalf("config = %+v", cfg)
	}
	if _, err := (traceFlags{level: "loud", mode: "stream"}).config(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if _, err := (traceFlags{level: "phase", mode: "stream", format: "xml"}).config(); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
