// Package observ собирает длительности фаз проверки для --timings.
package observ

import (
	"fmt"
	"io"
	"sync"
	"time"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
	note  string
	ended bool
}

// Timer records phases in start order. A nil *Timer ignores everything,
// so callers do not check whether --timings is on.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

func NewTimer() *Timer { return &Timer{} }

// Track starts a phase and returns the function that ends it. Only the first
// call of the returned function counts.
//
//	done := timer.Track("parse")
//	defer done("")
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	t.mu.Unlock()

	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if p.ended {
			return
		}
		p.dur, p.note, p.ended = time.Since(p.start), note, true
	}
}

// PhaseReport is one finished or running phase; a running phase reports zero.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report: TotalMS - сумма фаз, вложенные не вычитаются.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	var rep Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		rep.Phases = append(rep.Phases, PhaseReport{Name: p.name, DurationMS: ms(p.dur), Note: p.note})
	}
	rep.TotalMS = ms(total)
	return rep
}

// WriteTo prints the report as an aligned table ending with the total.
func (t *Timer) WriteTo(w io.Writer) (int64, error) {
	rep := t.Report()
	var n int64
	line := func(name string, dur float64, note string) error {
		if note != "" {
			note = "  (" + note + ")"
		}
		k, err := fmt.Fprintf(w, "%-8s %7.1f ms%s\n", name, dur, note)
		n += int64(k)
		return err
	}
	for _, p := range rep.Phases {
		if err := line(p.Name, p.DurationMS, p.Note); err != nil {
			return n, err
		}
	}
	return n, line("total", rep.TotalMS, "")
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
