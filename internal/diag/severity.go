package diag

// Severity orders diagnostics: info < warning < error.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, label string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String is the upper-case form used by the golden ("short") format and JSON.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lower-case form printed in front of pretty diagnostics.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].label
	}
	return "unknown"
}
