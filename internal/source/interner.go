package source

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// StringID identifies an interned string; NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

func (id StringID) IsValid() bool { return id != NoStringID }

// Interner maps strings to dense ids. Safe for concurrent use.
type Interner struct {
	mu    sync.RWMutex
	byID  []string // byID[0] = "" для NoStringID
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern возвращает ID строки, добавляя её при первом появлении.
func (i *Interner) Intern(s string) StringID {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	// собственная копия, чтобы не держать буфер файла
	cpy := string([]byte(s))
	id = StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the id of s without interning it.
func (i *Interner) Find(s string) (StringID, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the string for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on unknown ids.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic(fmt.Errorf("invalid string id %d", id))
	}
	return s
}

// Len counts interned strings including NoStringID.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}
