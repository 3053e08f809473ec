package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lilit/internal/ast"
	"lilit/internal/scope"
	"lilit/internal/sema"
	"lilit/internal/source"
	"lilit/internal/types"
)

type treeNode struct {
	Label    string      `json:"label"`
	Children []*treeNode `json:"children,omitempty"`
}

func (n *treeNode) add(child *treeNode) *treeNode {
	n.Children = append(n.Children, child)
	return child
}

func leaf(format string, args ...any) *treeNode {
	return &treeNode{Label: fmt.Sprintf(format, args...)}
}

// treeBuilder строит дерево юнита; при res != nil узлы выражений аннотируются результатами разрешения.
type treeBuilder struct {
	b   *ast.Builder
	fs  *source.FileSet
	res *sema.Result
}

// Tree печатает синтаксическое дерево юнита с префиксами ├─ └─.
func Tree(w io.Writer, b *ast.Builder, unit ast.UnitID, fs *source.FileSet, res *sema.Result) error {
	root, err := treeBuilder{b: b, fs: fs, res: res}.unit(unit)
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(root.Label)
	sb.WriteByte('\n')
	renderChildren(&sb, root, "")
	_, err = io.WriteString(w, sb.String())
	return err
}

// TreeJSON пишет то же дерево в JSON.
func TreeJSON(w io.Writer, b *ast.Builder, unit ast.UnitID, fs *source.FileSet, res *sema.Result) error {
	root, err := treeBuilder{b: b, fs: fs, res: res}.unit(unit)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func renderChildren(sb *strings.Builder, n *treeNode, prefix string) {
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(child.Label)
		sb.WriteByte('\n')
		renderChildren(sb, child, prefix+next)
	}
}

func (t treeBuilder) name(id source.StringID) string {
	return t.b.Name(id)
}

func (t treeBuilder) typ(ty types.Type) string {
	return types.Format(t.b, ty)
}

func (t treeBuilder) unit(id ast.UnitID) (*treeNode, error) {
	u := t.b.Units.Get(id)
	if u == nil {
		return nil, fmt.Errorf("unit %d not found", id)
	}
	header := "Unit"
	if t.fs != nil {
		header = t.fs.Get(u.File).FormatPath("auto", t.fs.BaseDir())
	}
	root := leaf("%s (span: %s)", header, formatSpan(u.Span, t.fs))
	for _, item := range u.Items {
		switch item.Kind {
		case ast.ItemClass:
			root.add(t.class(item.Class))
		case ast.ItemMethod:
			root.add(t.method(item.Method))
		}
	}
	return root, nil
}

func (t treeBuilder) class(id ast.ClassID) *treeNode {
	cls := t.b.Items.Class(id)
	node := leaf("Class %s (span: %s)", t.name(cls.Name), formatSpan(cls.Span, t.fs))
	if len(cls.Generics) > 0 {
		names := make([]string, 0, len(cls.Generics))
		for _, gid := range cls.Generics {
			names = append(names, t.name(t.b.Items.Generic(gid).Name))
		}
		node.add(leaf("Generics: [%s]", strings.Join(names, ", ")))
	}
	if len(cls.Fields) > 0 {
		fields := node.add(leaf("Fields"))
		for _, fid := range cls.Fields {
			fields.add(t.param(fid))
		}
	}
	for _, mid := range cls.Methods {
		node.add(t.method(mid))
	}
	return node
}

func (t treeBuilder) param(id ast.ParamID) *treeNode {
	p := t.b.Items.Param(id)
	dots := ""
	if p.Variadic {
		dots = "..."
	}
	if p.Receiver {
		return leaf("<receiver>: %s", t.typeRef(p.Type))
	}
	return leaf("%s%s: %s", t.name(p.Name), dots, t.typeRef(p.Type))
}

func (t treeBuilder) typeRef(id ast.TypeID) string {
	ref := t.b.Types.Get(id)
	if ref == nil {
		return "<none>"
	}
	name := t.name(ref.Name)
	if t.res == nil {
		return name
	}
	ty := t.res.TypeRef(id)
	switch ty.Kind {
	case types.KindInvalid:
		return name + " (unresolved)"
	case types.KindGeneric:
		return name + " (generic)"
	}
	return name
}

func (t treeBuilder) method(id ast.MethodID) *treeNode {
	m := t.b.Items.Method(id)
	node := leaf("Method %s (span: %s)", t.name(m.Name), formatSpan(m.Span, t.fs))
	if len(m.Params) > 0 {
		params := node.add(leaf("Params"))
		for _, pid := range m.Params {
			params.add(t.param(pid))
		}
	}
	node.add(leaf("Return: %s", t.typeRef(m.Return)))
	if len(m.Body) == 0 {
		node.add(leaf("Body: <none>"))
		return node
	}
	body := node.add(leaf("Body"))
	for _, e := range m.Body {
		body.add(t.expr(e))
	}
	return node
}

func (t treeBuilder) expr(id ast.ExprID) *treeNode {
	e := t.b.Exprs.Get(id)
	var label string
	switch e.Kind {
	case ast.ExprIdent:
		data, _ := t.b.Exprs.Ident(id)
		label = "Ident " + t.name(data.Name)
	case ast.ExprLit:
		data, _ := t.b.Exprs.Literal(id)
		label = fmt.Sprintf("Literal %s %s", data.Kind, t.name(data.Raw))
	case ast.ExprInvoke:
		data, _ := t.b.Exprs.Invoke(id)
		label = "Invoke " + t.name(data.Name)
	case ast.ExprMember:
		data, _ := t.b.Exprs.Member(id)
		label = "Member ." + t.name(data.Name)
	case ast.ExprNew:
		data, _ := t.b.Exprs.New(id)
		label = "New " + t.name(data.Class)
		if len(data.Generics) > 0 {
			args := make([]string, 0, len(data.Generics))
			for _, gid := range data.Generics {
				args = append(args, t.typeRef(gid))
			}
			label += "[" + strings.Join(args, ", ") + "]"
		}
	case ast.ExprAssign:
		data, _ := t.b.Exprs.Assign(id)
		label = "Assign " + t.name(data.Name)
	}
	if t.res != nil {
		label += t.annotation(id, e.Kind)
	}
	node := &treeNode{Label: label}
	for _, c := range t.b.Exprs.Children(id) {
		node.add(t.expr(c))
	}
	return node
}

func (t treeBuilder) annotation(id ast.ExprID, kind ast.ExprKind) string {
	ty := " : " + t.typ(t.res.TypeOf(id))
	switch kind {
	case ast.ExprIdent:
		src, ok := t.res.Idents[id]
		if !ok {
			return " -> <unresolved>"
		}
		if src.Kind == scope.SourceLocal {
			return fmt.Sprintf(" -> local @%s%s", formatSpan(t.b.Exprs.Get(src.Assign).Span, t.fs), ty)
		}
		return fmt.Sprintf(" -> %s %s%s", src.Kind, t.name(t.b.Items.Param(src.Param).Name), ty)
	case ast.ExprInvoke:
		mid, ok := t.res.Invokes[id]
		if !ok {
			return " -> <unresolved>"
		}
		return fmt.Sprintf(" -> method #%d%s", mid, ty)
	case ast.ExprMember:
		if _, ok := t.res.Members[id]; !ok {
			return " -> <unresolved>"
		}
		return ty
	case ast.ExprNew:
		if _, ok := t.res.News[id]; !ok {
			return " -> <unresolved>"
		}
		return ty
	case ast.ExprLit:
		inst, ok := t.res.Literals[id]
		if !ok {
			return " -> <unresolved>"
		}
		return " = " + t.instance(inst)
	default:
		return ty
	}
}

// instance рендерит экземпляр как Int(Native__Int(42)).
func (t treeBuilder) instance(id sema.InstanceID) string {
	inst := t.res.Instance(id)
	if inst == nil {
		return "<nil>"
	}
	name := t.name(t.b.Items.Class(inst.Class).Name)
	if inst.Arg.IsValid() {
		return name + "(" + t.instance(inst.Arg) + ")"
	}
	switch inst.Leaf.Kind {
	case sema.NativeInt:
		return fmt.Sprintf("%s(%d)", name, inst.Leaf.Int)
	case sema.NativeChar:
		return fmt.Sprintf("%s(%q)", name, inst.Leaf.Char)
	case sema.NativeString:
		return fmt.Sprintf("%s(%q)", name, inst.Leaf.Str)
	}
	return name + "()"
}
