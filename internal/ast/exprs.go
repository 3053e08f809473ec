package ast

import (
	"lilit/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Invokes  *Arena[ExprInvokeData]
	Members  *Arena[ExprMemberData]
	News     *Arena[ExprNewData]
	Assigns  *Arena[ExprAssignData]
}

// NewExprs creates per-kind arenas preallocated with capHint (1<<8 when zero).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Invokes:  NewArena[ExprInvokeData](capHint),
		Members:  NewArena[ExprMemberData](capHint),
		News:     NewArena[ExprNewData](capHint),
		Assigns:  NewArena[ExprAssignData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len returns the number of allocated expressions.
func (e *Exprs) Len() uint32 {
	return e.Arena.Len()
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, raw source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Raw: raw})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewInvoke creates a method invocation; receiver may be NoExprID.
func (e *Exprs) NewInvoke(span source.Span, receiver ExprID, name source.StringID, nameSpan source.Span, args []ExprID) ExprID {
	payload := e.Invokes.Allocate(ExprInvokeData{
		Receiver: receiver,
		Name:     name,
		NameSpan: nameSpan,
		Args:     append([]ExprID(nil), args...),
	})
	return e.new(ExprInvoke, span, PayloadID(payload))
}

// Invoke returns the invocation data for the given expression ID.
func (e *Exprs) Invoke(id ExprID) (*ExprInvokeData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprInvoke {
		return nil, false
	}
	return e.Invokes.Get(uint32(expr.Payload)), true
}

// NewMember creates a new member access expression.
func (e *Exprs) NewMember(span source.Span, target ExprID, name source.StringID, nameSpan source.Span) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Target: target, Name: name, NameSpan: nameSpan})
	return e.new(ExprMember, span, PayloadID(payload))
}

// Member returns the member access data for the given expression ID.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

// NewNew creates an instance construction `Class[G](args)`.
func (e *Exprs) NewNew(span source.Span, class source.StringID, classSpan source.Span, generics []TypeID, args []ExprID) ExprID {
	payload := e.News.Allocate(ExprNewData{
		Class:     class,
		ClassSpan: classSpan,
		Generics:  append([]TypeID(nil), generics...),
		Args:      append([]ExprID(nil), args...),
	})
	return e.new(ExprNew, span, PayloadID(payload))
}

// New returns the construction data for the given expression ID.
func (e *Exprs) New(id ExprID) (*ExprNewData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNew {
		return nil, false
	}
	return e.News.Get(uint32(expr.Payload)), true
}

// NewAssign creates `name = value`.
func (e *Exprs) NewAssign(span source.Span, name source.StringID, nameSpan source.Span, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Name: name, NameSpan: nameSpan, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

// Assign returns the assignment data for the given expression ID.
func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}
