package export_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"lilit/internal/export"
	"lilit/internal/testkit"
)

func buildProgram(t *testing.T, src string) *export.Program {
	t.Helper()
	p := testkit.ParseWithPrelude(src)
	ix, res := p.Resolve()
	if p.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", p.Summary())
	}
	return export.Build(p.Builder, ix, res, p.FileSet)
}

func TestBuildSnapshot(t *testing.T) {
	prog := buildProgram(t, "def main: Void\n  a = 2\n  println(\"hi\")\nend\n")

	if prog.Schema != export.SchemaVersion || prog.BuildID == "" {
		t.Fatalf("bad header: %d %q", prog.Schema, prog.BuildID)
	}
	natives := map[string]string{}
	for _, c := range prog.Classes {
		natives[c.Name] = c.Native
	}
	if natives["Native__Int"] != "int64" || natives["Native__String"] != "i8*" || natives["Int"] != "" {
		t.Fatalf("native representations: %v", natives)
	}

	var printf, main bool
	mains := 0
	for _, m := range prog.Methods {
		switch m.Name {
		case "native__printf":
			printf = m.Native
		case "main":
			mains++
			main = len(m.Body) == 2 && m.Return.Name == "Void"
		}
	}
	if !printf || !main || mains != 1 {
		t.Fatalf("methods not exported correctly: printf=%v main=%v count=%d", printf, main, mains)
	}

	var assignType string
	lits := 0
	for _, e := range prog.Exprs {
		switch e.Kind {
		case "Assign":
			assignType = e.Type.Name
		case "Literal":
			lits++
			if e.Target == 0 {
				t.Fatalf("literal %d has no instance", e.ID)
			}
		}
	}
	if assignType != "Int" {
		t.Fatalf("assignment type: %q", assignType)
	}
	// 2 и "hi": по два экземпляра на литерал
	if lits != 2 || len(prog.Instances) != 4 {
		t.Fatalf("literals=%d instances=%d", lits, len(prog.Instances))
	}
}

func TestWriteRead(t *testing.T) {
	prog := buildProgram(t, "def main: Int\n  42\nend\n")
	path := filepath.Join(t.TempDir(), "out", "main.lri")

	if err := export.Write(path, prog); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := export.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.BuildID != prog.BuildID || len(got.Exprs) != len(prog.Exprs) {
		t.Fatalf("round trip lost data")
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary files left behind: %d entries", len(entries))
	}
}

func TestReadRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.lri")
	data, err := msgpack.Marshal(&export.Program{Schema: export.SchemaVersion + 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := export.Read(path); !errors.Is(err, export.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestNativeRepr(t *testing.T) {
	cases := map[string]string{
		"Native__Int":  "int64",
		"Native__Char": "i8",
		"Native__Void": "void",
		"Native__Pair": "aggregate",
		"Pair":         "",
	}
	for name, want := range cases {
		if got := export.NativeRepr(name); got != want {
			t.Fatalf("NativeRepr(%s) = %q, want %q", name, got, want)
		}
	}
}
