package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONBasic(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if out.Count != 1 {
		t.Fatalf("count: %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM3002" || d.Severity != "ERROR" || d.Location.StartLine != 2 || d.Location.StartCol != 3 {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartLine != 1 {
		t.Fatalf("notes: %+v", d.Notes)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{})
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartByte != 17 || loc.EndByte != 21 {
		t.Fatalf("location: %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatalf("notes must be omitted")
	}
}

func TestJSONMaxLimit(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Add(bag.Items()[0])
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || !out.Truncated || out.Errors != 2 {
		t.Fatalf("max not applied: %+v", out)
	}
}
