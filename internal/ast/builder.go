package ast

import (
	"lilit/internal/source"
)

type Hints struct{ Units, Items, Exprs, Types uint }

type Builder struct {
	Units   *Units
	Items   *Items
	Exprs   *Exprs
	Types   *Types
	Strings *source.Interner
}

// NewBuilder allocates the arenas. A nil strings interner gets a fresh one.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Units == 0 {
		hints.Units = 1 << 4
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Units:   NewUnits(hints.Units),
		Items:   NewItems(hints.Items),
		Exprs:   NewExprs(hints.Exprs),
		Types:   NewTypes(hints.Types),
		Strings: strings,
	}
}

func (b *Builder) NewUnit(file source.FileID, sp source.Span) UnitID {
	return b.Units.New(file, sp)
}

// PushClass appends a class to the unit items.
func (b *Builder) PushClass(unit UnitID, class ClassID) {
	u := b.Units.Get(unit)
	u.Items = append(u.Items, Item{Kind: ItemClass, Class: class})
}

func (b *Builder) PushMethod(unit UnitID, method MethodID) {
	u := b.Units.Get(unit)
	u.Items = append(u.Items, Item{Kind: ItemMethod, Method: method})
}

// Name returns the interned text for id, "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	s, _ := b.Strings.Lookup(id)
	return s
}
