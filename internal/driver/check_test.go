package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"lilit/internal/diag"
	"lilit/internal/observ"
	"lilit/internal/trace"
)

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func codes(bag *diag.Bag) string {
	ids := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		ids = append(ids, d.Code.ID())
	}
	return strings.Join(ids, ",")
}

func TestCheckDirectory(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"main.lil":     "def main: Void\n  a = helper()\n  println(\"hi\")\nend\n",
		"lib/util.lil": "def helper: Int\n  42\nend\n",
		"notes.txt":    "not a source",
	})
	sink := &recordingSink{}
	timer := observ.NewTimer()

	res, err := Check(context.Background(), []string{dir}, Options{Progress: sink, Timer: timer, SelfCheck: true})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", codes(res.Bag))
	}
	if len(res.Files) != 2 || !strings.HasSuffix(res.Files[0], filepath.Join("lib", "util.lil")) {
		t.Fatalf("files: %v", res.Files)
	}
	if !res.Prelude.IsValid() || len(res.UserUnits()) != 2 {
		t.Fatalf("units: prelude=%d user=%d", res.Prelude, len(res.UserUnits()))
	}

	prog, err := res.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if prog.Digest != res.Digest.String() {
		t.Fatalf("digest not propagated")
	}

	var doneResolve int
	for _, e := range sink.events {
		if e.File != "" && e.Stage == StageResolve && e.Status == StatusDone {
			doneResolve++
		}
	}
	if doneResolve != 2 {
		t.Fatalf("expected 2 resolve-done events, got %d", doneResolve)
	}
	if got := len(timer.Report().Phases); got != 4 {
		t.Fatalf("expected 4 timed phases, got %d", got)
	}
}

func TestCheckParallelMatchesSequential(t *testing.T) {
	dir := writeSources(t, map[string]string{
		"a.lil": "class P(x: Int)\n  def get: Int\n    x\n  end\nend\n",
		"b.lil": "def main: Void\n  p = P(1)\n  q = p.x\n  missing\nend\n",
		"c.lil": "def f: Void\n  A().g()\nend\nclass A\n  def g: Void\n  end\nend\n",
	})
	seq, err := Check(context.Background(), []string{dir}, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	par, err := Check(context.Background(), []string{dir}, Options{Parallel: true, Jobs: 3})
	if err != nil {
		t.Fatalf("Check parallel: %v", err)
	}
	if codes(seq.Bag) != codes(par.Bag) {
		t.Fatalf("diagnostics differ: %s vs %s", codes(seq.Bag), codes(par.Bag))
	}
	if codes(seq.Bag) != "SEM3003,SEM3006" {
		t.Fatalf("unexpected diagnostics: %s", codes(seq.Bag))
	}
	if _, err := seq.Export(); err == nil {
		t.Fatalf("export must be refused when there are errors")
	}
}

func TestCheckNoPrelude(t *testing.T) {
	dir := writeSources(t, map[string]string{"x.lil": "class A end\ndef f: A\n  1\nend\n"})
	res, err := Check(context.Background(), []string{dir}, Options{NoPrelude: true})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Prelude.IsValid() {
		t.Fatalf("prelude must be skipped")
	}
	if !strings.Contains(codes(res.Bag), "SEM3004") {
		t.Fatalf("expected missing prelude, got %s", codes(res.Bag))
	}
}

func TestCheckNoSources(t *testing.T) {
	res, err := Check(context.Background(), []string{t.TempDir()}, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if codes(res.Bag) != "IO4002" {
		t.Fatalf("expected IO4002, got %s", codes(res.Bag))
	}
	if res.Sema != nil {
		t.Fatalf("nothing must be resolved")
	}
}

func TestCheckMissingPath(t *testing.T) {
	if _, err := Check(context.Background(), []string{filepath.Join(t.TempDir(), "nope.lil")}, Options{}); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestCheckParseOnlyAndCap(t *testing.T) {
	dir := writeSources(t, map[string]string{"bad.lil": "x\ndef f Void end\ny\n"})
	res, err := Check(context.Background(), []string{dir}, Options{ParseOnly: true, MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Index != nil || res.Sema != nil {
		t.Fatalf("parse-only must stop before indexing")
	}
	if res.Bag.Len() != 2 || !res.Bag.HasErrors() {
		t.Fatalf("expected 2 capped errors, got %s", codes(res.Bag))
	}
}

func TestCheckTraces(t *testing.T) {
	dir := writeSources(t, map[string]string{"m.lil": "def main: Void\nend\n"})
	ring := trace.NewRingTracer(256, trace.LevelDebug, "test")
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := Check(ctx, []string{dir}, Options{}); err != nil {
		t.Fatalf("Check: %v", err)
	}
	passes := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		if ev.Scope == trace.ScopePass && ev.Kind == trace.KindSpanBegin {
			passes[ev.Name] = true
		}
	}
	for _, name := range []string{"load", "parse", "index", "resolve"} {
		if !passes[name] {
			t.Fatalf("missing pass span %q", name)
		}
	}
}

func TestCollectFilesDedup(t *testing.T) {
	dir := writeSources(t, map[string]string{"b.lil": "", "a.lil": ""})
	files, err := CollectFiles([]string{filepath.Join(dir, "b.lil"), dir})
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "b.lil" || filepath.Base(files[1]) != "a.lil" {
		t.Fatalf("files: %v", files)
	}
}

func TestTokenizeFiles(t *testing.T) {
	dir := writeSources(t, map[string]string{"a.lil": "class A end\n", "b.lil": "def f: Void @ end\n"})
	files, _ := CollectFiles([]string{dir})
	files = append(files, filepath.Join(dir, "missing.lil"))
	fs, results, err := TokenizeFiles(context.Background(), files, 0, 2)
	if err != nil {
		t.Fatalf("TokenizeFiles: %v", err)
	}
	if len(results) != 3 || len(results[0].Tokens) != 4 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if !results[1].Bag.HasErrors() {
		t.Fatalf("unknown char must be reported")
	}
	if results[2].Bag.Items()[0].Code != diag.IOLoadFileError || !fs.Get(results[2].FileID).IsVirtual() {
		t.Fatalf("load error not reported")
	}
}
