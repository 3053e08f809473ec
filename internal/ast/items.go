package ast

import (
	"lilit/internal/source"
)

// Class is `class Name[G...](fields...) methods... end`.
type Class struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Generics []GenericID
	Fields   []ParamID
	Methods  []MethodID
	Unit     UnitID
}

// GenericDef is one declared generic parameter of a class.
type GenericDef struct {
	Name  source.StringID
	Span  source.Span
	Index uint32
	Owner ClassID
}

// Method is `def name(params...): Ret body... end`. Owner is NoClassID for free methods.
type Method struct {
	Name     source.StringID
	NameSpan source.Span
	Span     source.Span
	Params   []ParamID
	Return   TypeID
	Body     []ExprID
	Owner    ClassID
	Unit     UnitID
}

// ParamOwner: ровно одно из полей валидно.
type ParamOwner struct {
	Class  ClassID  // поле класса
	Method MethodID // параметр метода
}

// Param is a class field or a method parameter.
// Name is NoStringID for the implicit receiver.
type Param struct {
	Name     source.StringID
	Span     source.Span
	Type     TypeID
	Index    uint32
	Variadic bool
	Receiver bool
	Owner    ParamOwner
}

// IsField reports whether the param is a class field.
func (p *Param) IsField() bool { return p.Owner.Class.IsValid() }

type Items struct {
	Classes  *Arena[Class]
	Methods  *Arena[Method]
	Params   *Arena[Param]
	Generics *Arena[GenericDef]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Classes:  NewArena[Class](capHint),
		Methods:  NewArena[Method](capHint),
		Params:   NewArena[Param](capHint * 2),
		Generics: NewArena[GenericDef](capHint),
	}
}

func (i *Items) NewClass(unit UnitID, name source.StringID, nameSpan, sp source.Span) ClassID {
	return ClassID(i.Classes.Allocate(Class{
		Name:     name,
		NameSpan: nameSpan,
		Span:     sp,
		Unit:     unit,
	}))
}

func (i *Items) Class(id ClassID) *Class {
	return i.Classes.Get(uint32(id))
}

func (i *Items) NewMethod(unit UnitID, owner ClassID, name source.StringID, nameSpan, sp source.Span) MethodID {
	return MethodID(i.Methods.Allocate(Method{
		Name:     name,
		NameSpan: nameSpan,
		Span:     sp,
		Owner:    owner,
		Unit:     unit,
	}))
}

func (i *Items) Method(id MethodID) *Method {
	return i.Methods.Get(uint32(id))
}

func (i *Items) NewParam(p Param) ParamID {
	return ParamID(i.Params.Allocate(p))
}

func (i *Items) Param(id ParamID) *Param {
	return i.Params.Get(uint32(id))
}

func (i *Items) NewGeneric(owner ClassID, name source.StringID, sp source.Span, index uint32) GenericID {
	return GenericID(i.Generics.Allocate(GenericDef{
		Name:  name,
		Span:  sp,
		Index: index,
		Owner: owner,
	}))
}

func (i *Items) Generic(id GenericID) *GenericDef {
	return i.Generics.Get(uint32(id))
}
