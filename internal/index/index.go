package index

import (
	"lilit/internal/ast"
	"lilit/internal/source"
)

// EntryKind отличает класс от свободного метода.
type EntryKind uint8

const (
	EntryClass EntryKind = iota
	EntryMethod
)

func (k EntryKind) String() string {
	switch k {
	case EntryClass:
		return "class"
	case EntryMethod:
		return "method"
	default:
		return "entry?"
	}
}

// Method is a method reference as seen by the index.
type Method struct {
	ID   ast.MethodID
	Name source.StringID
}

// Class is a class entry together with its own methods.
type Class struct {
	ID      ast.ClassID
	Name    source.StringID
	Methods []Method
}

// FindMethod returns the first own method named name.
func (c *Class) FindMethod(name source.StringID) (Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// HasMethod reports whether id is one of the class methods.
func (c *Class) HasMethod(id ast.MethodID) bool {
	for _, m := range c.Methods {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Entry is a single top-level declaration. Exactly one of Class/Method is set
// according to Kind.
type Entry struct {
	Kind   EntryKind
	Unit   ast.UnitID
	Class  Class
	Method Method
}

// Index is the flat table. Lookups by name return the first match in unit order;
// duplicate names are not detected.
type Index struct {
	entries []Entry

	classByName  map[source.StringID]int
	methodByName map[source.StringID]int
	classByID    map[ast.ClassID]int
	methodByID   map[ast.MethodID]int
}

func newIndex(entries []Entry) *Index {
	ix := &Index{
		entries:      entries,
		classByName:  make(map[source.StringID]int, len(entries)),
		methodByName: make(map[source.StringID]int, len(entries)),
		classByID:    make(map[ast.ClassID]int, len(entries)),
		methodByID:   make(map[ast.MethodID]int, len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		switch e.Kind {
		case EntryClass:
			if _, dup := ix.classByName[e.Class.Name]; !dup {
				ix.classByName[e.Class.Name] = i
			}
			ix.classByID[e.Class.ID] = i
		case EntryMethod:
			if _, dup := ix.methodByName[e.Method.Name]; !dup {
				ix.methodByName[e.Method.Name] = i
			}
			ix.methodByID[e.Method.ID] = i
		}
	}
	return ix
}

// Entries returns the ordered entries. READONLY
func (ix *Index) Entries() []Entry {
	return ix.entries
}

func (ix *Index) Len() int {
	return len(ix.entries)
}

// FindClass returns the first class entry named name.
func (ix *Index) FindClass(name source.StringID) (*Class, bool) {
	i, ok := ix.classByName[name]
	if !ok {
		return nil, false
	}
	return &ix.entries[i].Class, true
}

// FindMethod returns the first free method named name.
func (ix *Index) FindMethod(name source.StringID) (Method, bool) {
	i, ok := ix.methodByName[name]
	if !ok {
		return Method{}, false
	}
	return ix.entries[i].Method, true
}

// ClassEntry finds the entry of a class by identity.
func (ix *Index) ClassEntry(id ast.ClassID) (*Class, bool) {
	i, ok := ix.classByID[id]
	if !ok {
		return nil, false
	}
	return &ix.entries[i].Class, true
}

// HasMethod reports whether id is an indexed free method.
func (ix *Index) HasMethod(id ast.MethodID) bool {
	_, ok := ix.methodByID[id]
	return ok
}
