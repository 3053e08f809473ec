package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// Format selects how events are rendered.
type Format uint8

const (
	FormatAuto Format = iota // by output file extension
	FormatText
	FormatNDJSON
)

var formatAliases = map[string]Format{
	"":       FormatAuto,
	"auto":   FormatAuto,
	"text":   FormatText,
	"ndjson": FormatNDJSON,
	"json":   FormatNDJSON,
}

// ParseFormat converts a --trace-format value.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent renders one event terminated by a newline. start anchors the
// relative timestamp of text output.
func FormatEvent(ev *Event, format Format, start time.Time) []byte {
	if format == FormatNDJSON {
		return appendJSON(nil, ev)
	}
	return appendText(nil, ev, start)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Session  string            `json:"session,omitempty"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func appendJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Session:  ev.Session,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		data = fmt.Appendf(nil, `{"name":%q,"error":%q}`, ev.Name, err.Error())
	}
	return append(append(dst, data...), '\n')
}

var kindMarks = map[Kind]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindError:     "! ",
}

// appendText: "[   1.234ms]   → name (detail) {k=v, ...}", отступ по scope.
func appendText(dst []byte, ev *Event, start time.Time) []byte {
	var elapsed time.Duration
	if !start.IsZero() && ev.Time.After(start) {
		elapsed = ev.Time.Sub(start)
	}
	dst = fmt.Appendf(dst, "[%9.3fms] ", float64(elapsed.Microseconds())/1000)
	if ev.Scope > ScopeDriver {
		dst = append(dst, strings.Repeat("  ", int(ev.Scope-ScopeDriver))...)
	}
	dst = append(dst, kindMarks[ev.Kind]...)
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = append(append(append(dst, " ("...), ev.Detail...), ')')
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = append(append(append(dst, k...), '='), ev.Extra[k]...)
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}
