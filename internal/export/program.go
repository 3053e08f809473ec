package export

import (
	"encoding/hex"

	"github.com/google/uuid"

	"lilit/internal/ast"
	"lilit/internal/index"
	"lilit/internal/scope"
	"lilit/internal/sema"
	"lilit/internal/source"
	"lilit/internal/types"
)

// SchemaVersion - увеличивать при любом изменении формата Program.
const SchemaVersion uint16 = 1

// Program is the snapshot handed to the code generator. IDs are the arena IDs
// of the front end; 0 means "none".
type Program struct {
	Schema  uint16 `msgpack:"schema" json:"schema" yaml:"schema"`
	BuildID string `msgpack:"build_id" json:"build_id" yaml:"build_id"`
	// Digest - хеш всех исходников программы, заполняется драйвером.
	Digest string `msgpack:"digest,omitempty" json:"digest,omitempty" yaml:"digest,omitempty"`

	Files     []File     `msgpack:"files" json:"files" yaml:"files"`
	Classes   []Class    `msgpack:"classes" json:"classes" yaml:"classes"`
	Methods   []Method   `msgpack:"methods" json:"methods" yaml:"methods"`
	Exprs     []Expr     `msgpack:"exprs" json:"exprs" yaml:"exprs"`
	Instances []Instance `msgpack:"instances" json:"instances" yaml:"instances"`
}

type File struct {
	ID     uint32 `msgpack:"id" json:"id" yaml:"id"`
	Path   string `msgpack:"path" json:"path" yaml:"path"`
	SHA256 string `msgpack:"sha256" json:"sha256" yaml:"sha256"`
}

// Type: Kind is "class", "generic" or "invalid".
type Type struct {
	Kind string `msgpack:"kind" json:"kind" yaml:"kind"`
	ID   uint32 `msgpack:"id,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	Name string `msgpack:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
}

type Span struct {
	File  uint32 `msgpack:"file" json:"file" yaml:"file"`
	Start uint32 `msgpack:"start" json:"start" yaml:"start"`
	End   uint32 `msgpack:"end" json:"end" yaml:"end"`
}

type Param struct {
	ID       uint32 `msgpack:"id" json:"id" yaml:"id"`
	Name     string `msgpack:"name" json:"name" yaml:"name"`
	Type     Type   `msgpack:"type" json:"type" yaml:"type"`
	Variadic bool   `msgpack:"variadic,omitempty" json:"variadic,omitempty" yaml:"variadic,omitempty"`
	Receiver bool   `msgpack:"receiver,omitempty" json:"receiver,omitempty" yaml:"receiver,omitempty"`
}

// Class. Native is the machine representation for Native__ classes
// ("int64", "i8", "i8*", "void", "aggregate"), empty for boxed classes.
type Class struct {
	ID       uint32   `msgpack:"id" json:"id" yaml:"id"`
	Name     string   `msgpack:"name" json:"name" yaml:"name"`
	Native   string   `msgpack:"native,omitempty" json:"native,omitempty" yaml:"native,omitempty"`
	Generics []string `msgpack:"generics,omitempty" json:"generics,omitempty" yaml:"generics,omitempty"`
	Fields   []Param  `msgpack:"fields,omitempty" json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods  []uint32 `msgpack:"methods,omitempty" json:"methods,omitempty" yaml:"methods,omitempty"`
}

type Method struct {
	ID     uint32   `msgpack:"id" json:"id" yaml:"id"`
	Name   string   `msgpack:"name" json:"name" yaml:"name"`
	Owner  uint32   `msgpack:"owner,omitempty" json:"owner,omitempty" yaml:"owner,omitempty"`
	Native bool     `msgpack:"native,omitempty" json:"native,omitempty" yaml:"native,omitempty"`
	Params []Param  `msgpack:"params,omitempty" json:"params,omitempty" yaml:"params,omitempty"`
	Return Type     `msgpack:"return" json:"return" yaml:"return"`
	Body   []uint32 `msgpack:"body,omitempty" json:"body,omitempty" yaml:"body,omitempty"`
}

// Expr. Target depends on Kind: param/field/assignment for ident, method for
// invoke, field for member, class for new, instance for literal.
type Expr struct {
	ID       uint32   `msgpack:"id" json:"id" yaml:"id"`
	Kind     string   `msgpack:"kind" json:"kind" yaml:"kind"`
	Span     Span     `msgpack:"span" json:"span" yaml:"span"`
	Name     string   `msgpack:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	Source   string   `msgpack:"source,omitempty" json:"source,omitempty" yaml:"source,omitempty"`
	Target   uint32   `msgpack:"target,omitempty" json:"target,omitempty" yaml:"target,omitempty"`
	Receiver uint32   `msgpack:"receiver,omitempty" json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Type     Type     `msgpack:"type" json:"type" yaml:"type"`
	Children []uint32 `msgpack:"children,omitempty" json:"children,omitempty" yaml:"children,omitempty"`
}

type Instance struct {
	ID      uint32 `msgpack:"id" json:"id" yaml:"id"`
	Class   uint32 `msgpack:"class" json:"class" yaml:"class"`
	Literal uint32 `msgpack:"literal" json:"literal" yaml:"literal"`
	Arg     uint32 `msgpack:"arg,omitempty" json:"arg,omitempty" yaml:"arg,omitempty"`
	Native  string `msgpack:"native,omitempty" json:"native,omitempty" yaml:"native,omitempty"`
	Int     int64  `msgpack:"int,omitempty" json:"int,omitempty" yaml:"int,omitempty"`
	Char    int32  `msgpack:"char,omitempty" json:"char,omitempty" yaml:"char,omitempty"`
	Str     string `msgpack:"str,omitempty" json:"str,omitempty" yaml:"str,omitempty"`
}

// NativeRepr maps a Native__ class name to its machine representation.
func NativeRepr(name string) string {
	if !ast.IsNativeClassName(name) {
		return ""
	}
	switch name {
	case "Native__Int":
		return "int64"
	case "Native__Char":
		return "i8"
	case "Native__String":
		return "i8*"
	case "Native__Void":
		return "void"
	default:
		return "aggregate"
	}
}

type builder struct {
	b   *ast.Builder
	res *sema.Result
}

// Build snapshots the program. Classes and free methods follow index order.
func Build(b *ast.Builder, ix *index.Index, res *sema.Result, fs *source.FileSet) *Program {
	x := builder{b: b, res: res}
	p := &Program{
		Schema:  SchemaVersion,
		BuildID: uuid.NewString(),
	}
	for _, f := range fs.Files() {
		p.Files = append(p.Files, File{ID: uint32(f.ID), Path: f.Path, SHA256: hex.EncodeToString(f.Hash[:])})
	}
	for _, e := range ix.Entries() {
		switch e.Kind {
		case index.EntryClass:
			cls := b.Items.Class(e.Class.ID)
			p.Classes = append(p.Classes, x.class(e.Class.ID, cls))
			for _, mid := range cls.Methods {
				p.Methods = append(p.Methods, x.method(mid))
			}
		case index.EntryMethod:
			p.Methods = append(p.Methods, x.method(e.Method.ID))
		}
	}
	for _, m := range p.Methods {
		for _, id := range m.Body {
			b.Exprs.Walk(ast.ExprID(id), func(eid ast.ExprID) bool {
				p.Exprs = append(p.Exprs, x.expr(eid))
				return true
			})
		}
	}
	for i, inst := range res.Instances.Slice() {
		p.Instances = append(p.Instances, instance(uint32(i+1), inst))
	}
	return p
}

func (x builder) typ(t types.Type) Type {
	switch t.Kind {
	case types.KindClass:
		return Type{Kind: "class", ID: uint32(t.Class), Name: types.Format(x.b, t)}
	case types.KindGeneric:
		return Type{Kind: "generic", ID: uint32(t.Generic), Name: types.Format(x.b, t)}
	}
	return Type{Kind: "invalid"}
}

func (x builder) params(ids []ast.ParamID) []Param {
	out := make([]Param, 0, len(ids))
	for _, pid := range ids {
		p := x.b.Items.Param(pid)
		out = append(out, Param{
			ID:       uint32(pid),
			Name:     x.b.Name(p.Name),
			Type:     x.typ(x.res.ParamType(pid)),
			Variadic: p.Variadic,
			Receiver: p.Receiver,
		})
	}
	return out
}

func (x builder) class(id ast.ClassID, cls *ast.Class) Class {
	name := x.b.Name(cls.Name)
	out := Class{
		ID:     uint32(id),
		Name:   name,
		Native: NativeRepr(name),
		Fields: x.params(cls.Fields),
	}
	for _, gid := range cls.Generics {
		out.Generics = append(out.Generics, x.b.Name(x.b.Items.Generic(gid).Name))
	}
	for _, mid := range cls.Methods {
		out.Methods = append(out.Methods, uint32(mid))
	}
	return out
}

func (x builder) method(id ast.MethodID) Method {
	m := x.b.Items.Method(id)
	name := x.b.Name(m.Name)
	out := Method{
		ID:     uint32(id),
		Name:   name,
		Owner:  uint32(m.Owner),
		Native: ast.IsNativeCallName(name),
		Params: x.params(m.Params),
		Return: x.typ(x.res.TypeRef(m.Return)),
	}
	for _, e := range m.Body {
		out.Body = append(out.Body, uint32(e))
	}
	return out
}

func (x builder) expr(id ast.ExprID) Expr {
	e := x.b.Exprs.Get(id)
	out := Expr{
		ID:   uint32(id),
		Kind: e.Kind.String(),
		Span: Span{File: uint32(e.Span.File), Start: e.Span.Start, End: e.Span.End},
		Type: x.typ(x.res.TypeOf(id)),
	}
	for _, c := range x.b.Exprs.Children(id) {
		out.Children = append(out.Children, uint32(c))
	}
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := x.b.Exprs.Ident(id)
		out.Name = x.b.Name(data.Name)
		if src, ok := x.res.Idents[id]; ok {
			out.Source = src.Kind.String()
			if src.Kind == scope.SourceLocal {
				out.Target = uint32(src.Assign)
			} else {
				out.Target = uint32(src.Param)
				out.Receiver = uint32(src.Receiver)
			}
		}
	case ast.ExprInvoke:
		data, _ := x.b.Exprs.Invoke(id)
		out.Name = x.b.Name(data.Name)
		out.Target = uint32(x.res.Invokes[id])
	case ast.ExprMember:
		data, _ := x.b.Exprs.Member(id)
		out.Name = x.b.Name(data.Name)
		out.Target = uint32(x.res.Members[id])
	case ast.ExprNew:
		data, _ := x.b.Exprs.New(id)
		out.Name = x.b.Name(data.Class)
		out.Target = uint32(x.res.News[id])
	case ast.ExprAssign:
		data, _ := x.b.Exprs.Assign(id)
		out.Name = x.b.Name(data.Name)
	case ast.ExprLit:
		data, _ := x.b.Exprs.Literal(id)
		out.Name = x.b.Name(data.Raw)
		out.Target = uint32(x.res.Literals[id])
	}
	return out
}

func instance(id uint32, inst sema.Instance) Instance {
	out := Instance{
		ID:      id,
		Class:   uint32(inst.Class),
		Literal: uint32(inst.Literal),
		Arg:     uint32(inst.Arg),
	}
	if inst.Leaf.Kind != sema.NativeNone {
		out.Native = inst.Leaf.Kind.String()
		out.Int = inst.Leaf.Int
		out.Char = inst.Leaf.Char
		out.Str = inst.Leaf.Str
	}
	return out
}
