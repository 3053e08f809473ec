package sema

import (
	"fmt"

	"lilit/internal/ast"
	"lilit/internal/scope"
	"lilit/internal/types"
)

type InstanceID uint32

const NoInstanceID InstanceID = 0

func (id InstanceID) IsValid() bool { return id != NoInstanceID }

type NativeKind uint8

const (
	NativeNone NativeKind = iota
	NativeInt
	NativeChar
	NativeString
)

func (k NativeKind) String() string {
	switch k {
	case NativeInt:
		return "int"
	case NativeChar:
		return "char"
	case NativeString:
		return "string"
	default:
		return "none"
	}
}

// NativeValue is a raw machine value held by a native class instance.
type NativeValue struct {
	Kind NativeKind
	Int  int64
	Char rune
	Str  string
}

// Instance is a synthetic construction created while desugaring a literal.
// Либо Arg (обёртка над вложенным экземпляром), либо Leaf (нативное значение).
type Instance struct {
	Class   ast.ClassID
	Literal ast.ExprID // литерал, из которого построен экземпляр
	Arg     InstanceID
	Leaf    NativeValue
}

// Result holds the resolution tables. Missing keys mean "not resolved".
type Result struct {
	Idents   map[ast.ExprID]scope.Source
	Invokes  map[ast.ExprID]ast.MethodID
	Members  map[ast.ExprID]ast.ParamID
	News     map[ast.ExprID]ast.ClassID
	Generics map[ast.ExprID][]ast.GenericID
	Literals map[ast.ExprID]InstanceID
	Assigns  map[ast.ExprID]types.Type
	TypeRefs map[ast.TypeID]types.Type

	Instances *ast.Arena[Instance]

	b       *ast.Builder
	visited map[ast.ExprID]struct{}
	// sigRefs - типы сигнатур, общие для частичных результатов параллельного прохода (read-only)
	sigRefs map[ast.TypeID]types.Type
}

func NewResult(b *ast.Builder) *Result {
	hint := uint(1 << 6)
	return &Result{
		Idents:    make(map[ast.ExprID]scope.Source),
		Invokes:   make(map[ast.ExprID]ast.MethodID),
		Members:   make(map[ast.ExprID]ast.ParamID),
		News:      make(map[ast.ExprID]ast.ClassID),
		Generics:  make(map[ast.ExprID][]ast.GenericID),
		Literals:  make(map[ast.ExprID]InstanceID),
		Assigns:   make(map[ast.ExprID]types.Type),
		TypeRefs:  make(map[ast.TypeID]types.Type),
		Instances: ast.NewArena[Instance](hint),
		b:         b,
		visited:   make(map[ast.ExprID]struct{}),
	}
}

// markVisited panics when an expression is resolved a second time.
func (r *Result) markVisited(id ast.ExprID) {
	if _, seen := r.visited[id]; seen {
		panic(fmt.Errorf("sema: expression %d resolved twice", id))
	}
	r.visited[id] = struct{}{}
}

// Visited reports whether the resolver walked the expression.
func (r *Result) Visited(id ast.ExprID) bool {
	_, ok := r.visited[id]
	return ok
}

func (r *Result) newInstance(inst Instance) InstanceID {
	return InstanceID(r.Instances.Allocate(inst))
}

// Instance returns a synthetic instance or nil.
func (r *Result) Instance(id InstanceID) *Instance {
	return r.Instances.Get(uint32(id))
}

// TypeRef returns the resolved type of a type reference.
func (r *Result) TypeRef(id ast.TypeID) types.Type {
	if t, ok := r.TypeRefs[id]; ok {
		return t
	}
	if t, ok := r.sigRefs[id]; ok {
		return t
	}
	return types.Invalid
}

// ParamType returns the declared type of a field or parameter.
func (r *Result) ParamType(id ast.ParamID) types.Type {
	p := r.b.Items.Param(id)
	if p == nil {
		return types.Invalid
	}
	return r.TypeRef(p.Type)
}

// TypeOf computes the type of an expression from the tables.
func (r *Result) TypeOf(id ast.ExprID) types.Type {
	expr := r.b.Exprs.Get(id)
	if expr == nil {
		return types.Invalid
	}
	switch expr.Kind {
	case ast.ExprIdent:
		src, ok := r.Idents[id]
		if !ok {
			return types.Invalid
		}
		if src.Kind == scope.SourceLocal {
			return r.Assigns[src.Assign]
		}
		return r.ParamType(src.Param)
	case ast.ExprMember:
		if field, ok := r.Members[id]; ok {
			return r.ParamType(field)
		}
	case ast.ExprNew:
		if cls, ok := r.News[id]; ok {
			return types.Class(cls)
		}
	case ast.ExprInvoke:
		if m, ok := r.Invokes[id]; ok {
			return r.TypeRef(r.b.Items.Method(m).Return)
		}
	case ast.ExprAssign:
		return r.Assigns[id]
	case ast.ExprLit:
		if inst, ok := r.Literals[id]; ok {
			return r.InstanceType(inst)
		}
	}
	return types.Invalid
}

// InstanceType is the class of a synthetic instance. For the inner instance of
// a literal that is the native class.
func (r *Result) InstanceType(id InstanceID) types.Type {
	inst := r.Instance(id)
	if inst == nil {
		return types.Invalid
	}
	return types.Class(inst.Class)
}
