package ast

import (
	"lilit/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprIdent is a bare identifier.
	ExprIdent ExprKind = iota
	// ExprLit is an int, char or string literal.
	ExprLit
	// ExprInvoke is `name(args)` or `recv.name(args)`.
	ExprInvoke
	// ExprMember is `target.name`.
	ExprMember
	ExprNew
	ExprAssign
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLit:
		return "Literal"
	case ExprInvoke:
		return "Invoke"
	case ExprMember:
		return "Member"
	case ExprNew:
		return "New"
	case ExprAssign:
		return "Assign"
	default:
		return "Expr?"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitChar
	LitString
)

func (k ExprLitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitChar:
		return "char"
	case LitString:
		return "string"
	default:
		return "lit?"
	}
}

type ExprIdentData struct {
	Name source.StringID
}

// ExprLiteralData хранит исходный текст литерала как есть (с кавычками);
// декодирование делает sema.
type ExprLiteralData struct {
	Kind ExprLitKind
	Raw  source.StringID
}

// ExprInvokeData: Receiver == NoExprID для вызова без получателя.
type ExprInvokeData struct {
	Receiver ExprID
	Name     source.StringID
	NameSpan source.Span
	Args     []ExprID
}

type ExprMemberData struct {
	Target   ExprID
	Name     source.StringID
	NameSpan source.Span
}

type ExprNewData struct {
	Class     source.StringID
	ClassSpan source.Span
	Generics  []TypeID
	Args      []ExprID
}

type ExprAssignData struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}
