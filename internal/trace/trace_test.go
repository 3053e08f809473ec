package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelGating(t *testing.T) {
	cases := []struct {
		level Level
		kind  Kind
		scope Scope
		want  bool
	}{
		{LevelPhase, KindSpanBegin, ScopePass, true},
		{LevelPhase, KindSpanBegin, ScopeModule, false},
		{LevelDetail, KindPoint, ScopeModule, true},
		{LevelDebug, KindPoint, ScopeNode, true},
		{LevelOff, KindSpanBegin, ScopeDriver, false},
		{LevelOff, KindError, ScopeDriver, false},
		{LevelError, KindSpanBegin, ScopeDriver, false},
		{LevelError, KindError, ScopeNode, true},
		{LevelPhase, KindError, ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.Allows(tc.kind, tc.scope); got != tc.want {
			t.Fatalf("%s.Allows(%s, %s) = %v, want %v", tc.level, tc.kind, tc.scope, got, tc.want)
		}
	}
	if l, err := ParseLevel(" DEBUG "); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(DEBUG) = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestErrorLevelKeepsOnlyErrors(t *testing.T) {
	r := NewRingTracer(8, LevelError, "")
	span := Begin(r, ScopeDriver, "check", 0)
	Point(r, ScopePass, "note", span.ID(), "")
	Error(r, ScopePass, "resolve", span.ID(), "context canceled")
	span.End("")
	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].Kind != KindError || snap[0].Detail != "context canceled" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "! resolve (context canceled)") {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeStream, Format: FormatNDJSON, Output: &buf, Session: "run-1"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	span := Begin(tr, ScopePass, "parse", 0)
	span.WithExtra("files", "2")
	span.End("ok")
	Point(tr, ScopeNode, "ignored", span.ID(), "below detail level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin+end, got %d lines:\n%s", len(lines), buf.String())
	}
	var end map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if end["kind"] != "end" || end["session"] != "run-1" || end["detail"] != "ok" {
		t.Fatalf("unexpected end event: %v", end)
	}
}

func TestTextFormatSortsExtra(t *testing.T) {
	ev := &Event{Kind: KindPoint, Scope: ScopeModule, Name: "file", Extra: map[string]string{"b": "2", "a": "1"}}
	out := string(FormatEvent(ev, FormatText, ev.Time))
	if !strings.Contains(out, "file {a=1, b=2}") {
		t.Fatalf("text output = %q", out)
	}
}

func TestRingWrapsAround(t *testing.T) {
	r := NewRingTracer(2, LevelDebug, "s")
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopeNode, name, 0, "")
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("missing tracer must fall back to Nop")
	}
	r := NewRingTracer(8, LevelPhase, "")
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer lost in context")
	}
}

func TestMultiFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase, "")
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText, ""), ring)
	Begin(m, ScopeDriver, "check", 0).End("")
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("events not delivered to all children")
	}
	if got, ok := m.Ring(); !ok || got != ring {
		t.Fatalf("Ring() did not find the ring child")
	}
}

func TestNewPicksStorage(t *testing.T) {
	if tr, err := New(Config{Level: LevelOff, Mode: ModeBoth}); err != nil || tr != Nop {
		t.Fatalf("off level must give Nop, got %T %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, OutputPath: "run.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("both mode gave %T", tr)
	}
	Begin(m, ScopeDriver, "check", 0).End("")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf(".ndjson path must select NDJSON, got %q", buf.String())
	}
	ring, _ := m.Ring()
	if snap := ring.Snapshot(); len(snap) != 2 || snap[0].Session == "" {
		t.Fatalf("ring snapshot = %+v", snap)
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if mode, err := ParseMode("Ring"); err != nil || mode != ModeRing || mode.String() != "ring" {
		t.Fatalf("ParseMode(Ring) = %v, %v", mode, err)
	}
}
