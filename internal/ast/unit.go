package ast

import (
	"lilit/internal/source"
)

type ItemKind uint8

const (
	ItemClass ItemKind = iota
	ItemMethod
)

func (k ItemKind) String() string {
	switch k {
	case ItemClass:
		return "class"
	case ItemMethod:
		return "method"
	default:
		return "item?"
	}
}

// Item is a top-level declaration of a unit: a class or a free method.
type Item struct {
	Kind   ItemKind
	Class  ClassID
	Method MethodID
}

// Unit is one parsed compilation unit (one source file).
type Unit struct {
	File  source.FileID
	Span  source.Span
	Items []Item
}

type Units struct {
	Arena *Arena[Unit]
}

func NewUnits(capHint uint) *Units {
	return &Units{Arena: NewArena[Unit](capHint)}
}

func (u *Units) New(file source.FileID, sp source.Span) UnitID {
	return UnitID(u.Arena.Allocate(Unit{
		File:  file,
		Span:  sp,
		Items: make([]Item, 0),
	}))
}

func (u *Units) Get(id UnitID) *Unit {
	return u.Arena.Get(uint32(id))
}
