package ast

import "lilit/internal/source"

// TypeRef is a type as written in source: a bare class or generic name.
type TypeRef struct {
	Name source.StringID
	Span source.Span
}

type Types struct {
	Arena *Arena[TypeRef]
}

func NewTypes(capHint uint) *Types {
	return &Types{Arena: NewArena[TypeRef](capHint)}
}

func (t *Types) New(name source.StringID, sp source.Span) TypeID {
	return TypeID(t.Arena.Allocate(TypeRef{Name: name, Span: sp}))
}

func (t *Types) Get(id TypeID) *TypeRef {
	return t.Arena.Get(uint32(id))
}
