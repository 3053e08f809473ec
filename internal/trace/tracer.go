package trace

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tracer receives events. Emit must be safe for concurrent use: the index
// build and parallel resolution emit from several goroutines.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// sink - общая часть stream и ring: уровень, сессия и момент старта.
type sink struct {
	level   Level
	session string
	start   time.Time
}

func newSink(level Level, session string) sink {
	return sink{level: level, session: session, start: time.Now()}
}

func (s *sink) Level() Level  { return s.level }
func (s *sink) Enabled() bool { return s.level > LevelOff }

// accept filters ev by level and returns a copy stamped with the session.
func (s *sink) accept(ev *Event) (Event, bool) {
	if ev == nil || !s.level.Allows(ev.Kind, ev.Scope) {
		return Event{}, false
	}
	out := *ev
	out.Session = s.session
	return out, true
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they come
	ModeRing                          // kept in memory, dumped on panic
	ModeBoth
)

var modeNames = []string{"", "stream", "ring", "both"}

func (m StorageMode) String() string {
	if int(m) > 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

func ParseMode(s string) (StorageMode, error) {
	if i := slices.Index(modeNames, strings.ToLower(strings.TrimSpace(s))); i > 0 {
		return StorageMode(i), nil // #nosec G115 -- i < len(modeNames)
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config describes a tracer built by New.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto picks NDJSON for .ndjson/.jsonl paths
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "" or "-" means stderr
	RingSize   int
	Session    string // a random UUID when empty
}

// New builds the tracer for cfg; LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Session == "" {
		cfg.Session = uuid.NewString()
	}
	ring := func() *RingTracer { return NewRingTracer(cfg.RingSize, cfg.Level, cfg.Session) }

	switch cfg.Mode {
	case ModeRing:
		return ring(), nil
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStreamTracer(w, cfg.Level, formatFor(cfg), cfg.Session)
		if cfg.Mode == ModeStream {
			return stream, nil
		}
		return NewMultiTracer(cfg.Level, stream, ring()), nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

func formatFor(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	for _, ext := range []string{".ndjson", ".jsonl"} {
		if strings.HasSuffix(cfg.OutputPath, ext) {
			return FormatNDJSON
		}
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		// без Close: stderr закрывать нельзя
		return struct{ io.Writer }{os.Stderr}, nil
	}
	// #nosec G304 -- path comes from the --trace flag
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
