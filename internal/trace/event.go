package trace

import (
	"fmt"
	"strings"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	// KindError is emitted on failed phases and panics; it passes every level but off.
	KindError
)

var kindNames = [...]string{"unknown", "begin", "end", "point", "error"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Scope indicates the granularity of the event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // one check run
	ScopePass                    // load, parse, index, resolve
	ScopeModule                  // one file / unit
	ScopeNode                    // one syntax node
)

var scopeNames = [...]string{"unknown", "driver", "pass", "module", "node"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only KindError events
	LevelPhase        // driver + pass spans
	LevelDetail       // + per-unit spans
	LevelDebug        // + resolver node events
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil // #nosec G115 -- i < len(levelNames)
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// Allows reports whether an event of kind at scope passes level l.
func (l Level) Allows(kind Kind, scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case kind == KindError:
		return true
	case l == LevelError:
		return false
	}
	// phase пропускает driver+pass, detail ещё module, debug всё
	return int(scope) <= int(l)
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, monotonic
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for the root span
	Session  string // run id shared by all events of a tracer
	Name     string // "check", "parse", "resolve_bodies", "ident"...
	Detail   string
	Extra    map[string]string
}
