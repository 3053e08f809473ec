package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a limit. Not safe for concurrent use:
// parallel phases fill one bag per worker and Merge them afterwards.
type Bag struct {
	items   []Diagnostic
	max     int // <= 0: без лимита
	dropped int
}

func NewBag(max int) *Bag {
	hint := 64
	if max > 0 {
		hint = min(max, hint)
	}
	return &Bag{items: make([]Diagnostic, 0, hint), max: max}
}

// Add stores d unless the limit is reached; a rejected one is counted in Dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors counts dropped diagnostics as errors: the limit hides them,
// it does not make the program valid.
func (b *Bag) HasErrors() bool {
	return b.dropped > 0 || slices.ContainsFunc(b.items, func(d Diagnostic) bool {
		return d.Severity >= SevError
	})
}

// Count returns the number of stored diagnostics with exactly sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int     { return len(b.items) }
func (b *Bag) Dropped() int { return b.dropped }

// Items returns the stored diagnostics. Do not modify the slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge moves other's diagnostics into b under b's limit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Sort orders by primary span (file, start, end), then errors first, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
