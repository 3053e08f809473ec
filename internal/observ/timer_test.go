package observ

import (
	"bytes"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("parse")
	done("2 files")
	done("ignored")
	tm.Track("resolve")("")

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[1].Name != "resolve" {
		t.Fatalf("phases = %+v", rep.Phases)
	}
	if rep.Phases[0].Note != "2 files" {
		t.Fatalf("second end must not overwrite the note, got %q", rep.Phases[0].Note)
	}

	var buf bytes.Buffer
	if _, err := tm.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "(2 files)") || !strings.HasPrefix(strings.Split(out, "\n")[2], "total") {
		t.Fatalf("table = %q", out)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")("") // must not panic
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatalf("nil timer report = %+v", rep)
	}
}

func TestEmptyReport(t *testing.T) {
	if rep := NewTimer().Report(); rep.TotalMS != 0 || len(rep.Phases) != 0 {
		t.Fatalf("empty timer report = %+v", rep)
	}
}
