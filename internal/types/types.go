package types

import (
	"fmt"

	"lilit/internal/ast"
)

// Kind enumerates the forms a type can take. Every value is an instance of a
// class, so apart from generic parameters the only real kind is KindClass.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindClass
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindClass:
		return "class"
	case KindGeneric:
		return "generic"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor compared by value.
type Type struct {
	Kind    Kind
	Class   ast.ClassID
	Generic ast.GenericID
}

// Invalid is the zero type: an unresolved or erroneous expression.
var Invalid = Type{}

func Class(id ast.ClassID) Type {
	if !id.IsValid() {
		return Invalid
	}
	return Type{Kind: KindClass, Class: id}
}

func Generic(id ast.GenericID) Type {
	if !id.IsValid() {
		return Invalid
	}
	return Type{Kind: KindGeneric, Generic: id}
}

func (t Type) IsValid() bool   { return t.Kind != KindInvalid }
func (t Type) IsClass() bool   { return t.Kind == KindClass }
func (t Type) IsGeneric() bool { return t.Kind == KindGeneric }

// Format renders t with names from the builder: `Int`, `T`, `<invalid>`.
func Format(b *ast.Builder, t Type) string {
	switch t.Kind {
	case KindClass:
		if cls := b.Items.Class(t.Class); cls != nil {
			return b.Name(cls.Name)
		}
	case KindGeneric:
		if g := b.Items.Generic(t.Generic); g != nil {
			return b.Name(g.Name)
		}
	}
	return "<invalid>"
}
