package sema_test

import (
	"context"
	"reflect"
	"testing"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/index"
	"lilit/internal/prelude"
	"lilit/internal/scope"
	"lilit/internal/sema"
	"lilit/internal/testkit"
	"lilit/internal/types"
)

// exprsOf collects the body expressions of a method with the given kind, parents first.
func exprsOf(t *testing.T, p *testkit.Program, method string, kind ast.ExprKind) []ast.ExprID {
	t.Helper()
	mid, ok := p.Method(method)
	if !ok {
		t.Fatalf("method %s not found", method)
	}
	var out []ast.ExprID
	for _, e := range p.Builder.Items.Method(mid).Body {
		p.Builder.Exprs.Walk(e, func(id ast.ExprID) bool {
			if p.Builder.Exprs.Get(id).Kind == kind {
				out = append(out, id)
			}
			return true
		})
	}
	return out
}

func resolveClean(t *testing.T, p *testkit.Program) *sema.Result {
	t.Helper()
	if p.Bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %s", p.Summary())
	}
	_, res := p.Resolve()
	if p.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", p.Summary())
	}
	if err := testkit.CheckResolved(p.Builder, p.Units, res); err != nil {
		t.Fatalf("resolution incomplete: %v", err)
	}
	if err := testkit.CheckLiteralShape(p.Builder, res); err != nil {
		t.Fatalf("literal shape: %v", err)
	}
	return res
}

func classID(t *testing.T, p *testkit.Program, name string) ast.ClassID {
	t.Helper()
	id, ok := p.Class(name)
	if !ok {
		t.Fatalf("class %s not found", name)
	}
	return id
}

func TestMemberAccessResolvesField(t *testing.T) {
	p := testkit.Parse("class A end\nclass B(x: A) end\ndef main: A\n  B(A()).x\nend\n")
	res := resolveClean(t, p)

	members := exprsOf(t, p, "main", ast.ExprMember)
	if len(members) != 1 {
		t.Fatalf("expected 1 member access, got %d", len(members))
	}
	field, ok := res.Members[members[0]]
	if !ok {
		t.Fatalf("member access not resolved")
	}
	param := p.Builder.Items.Param(field)
	if p.Builder.Name(param.Name) != "x" || param.Owner.Class != classID(t, p, "B") {
		t.Fatalf("resolved to wrong field: %+v", param)
	}
	if got, want := res.TypeOf(members[0]), types.Class(classID(t, p, "A")); got != want {
		t.Fatalf("member type: got %s, want %s", types.Format(p.Builder, got), types.Format(p.Builder, want))
	}
}

func TestIntLiteralTwoLevels(t *testing.T) {
	p := testkit.ParseWithPrelude("def main: Int\n  42\nend\n")
	res := resolveClean(t, p)

	lits := exprsOf(t, p, "main", ast.ExprLit)
	if len(lits) != 1 {
		t.Fatalf("expected 1 literal, got %d", len(lits))
	}
	outer := res.Instance(res.Literals[lits[0]])
	if outer == nil {
		t.Fatalf("literal has no instance")
	}
	if outer.Class != classID(t, p, prelude.IntClass) {
		t.Fatalf("outer class: got %d", outer.Class)
	}
	inner := res.Instance(outer.Arg)
	if inner == nil || inner.Class != classID(t, p, prelude.NativeIntClass) {
		t.Fatalf("inner instance: %+v", inner)
	}
	if inner.Arg.IsValid() {
		t.Fatalf("inner instance must be a leaf")
	}
	if inner.Leaf.Kind != sema.NativeInt || inner.Leaf.Int != 42 {
		t.Fatalf("leaf: %+v", inner.Leaf)
	}
	if got := res.TypeOf(lits[0]); got != types.Class(classID(t, p, prelude.IntClass)) {
		t.Fatalf("literal type: %s", types.Format(p.Builder, got))
	}
}

func TestCharAndStringLiterals(t *testing.T) {
	p := testkit.ParseWithPrelude("def main: Void\n  'x'\n  println(\"caf\\u0065\\u0301\")\nend\n")
	res := resolveClean(t, p)

	lits := exprsOf(t, p, "main", ast.ExprLit)
	if len(lits) != 2 {
		t.Fatalf("expected 2 literals, got %d", len(lits))
	}
	ch := res.Instance(res.Instance(res.Literals[lits[0]]).Arg)
	if ch.Leaf.Kind != sema.NativeChar || ch.Leaf.Char != 'x' {
		t.Fatalf("char leaf: %+v", ch.Leaf)
	}
	str := res.Instance(res.Instance(res.Literals[lits[1]]).Arg)
	if str.Leaf.Kind != sema.NativeString || str.Leaf.Str != "café" {
		t.Fatalf("string leaf: %q", str.Leaf.Str)
	}

	invokes := exprsOf(t, p, "main", ast.ExprInvoke)
	mid, ok := res.Invokes[invokes[0]]
	if !ok || p.Builder.Name(p.Builder.Items.Method(mid).Name) != "println" {
		t.Fatalf("println not resolved")
	}
}

func TestParamShadowsField(t *testing.T) {
	p := testkit.ParseWithPrelude("class C(v: Int)\n  def get(v: Int): Int\n    v\n  end\nend\n")
	res := resolveClean(t, p)

	idents := exprsOf(t, p, "get", ast.ExprIdent)
	src, ok := res.Idents[idents[0]]
	if !ok {
		t.Fatalf("identifier not resolved")
	}
	if src.Kind != scope.SourceParam {
		t.Fatalf("expected parameter, got %s", src.Kind)
	}
	param := p.Builder.Items.Param(src.Param)
	if !param.Owner.Method.IsValid() || param.Receiver {
		t.Fatalf("resolved to %+v", param)
	}
}

func TestFieldThroughReceiver(t *testing.T) {
	p := testkit.ParseWithPrelude("class C(v: Int)\n  def get: Int\n    v\n  end\nend\n")
	res := resolveClean(t, p)

	idents := exprsOf(t, p, "get", ast.ExprIdent)
	src := res.Idents[idents[0]]
	if src.Kind != scope.SourceField {
		t.Fatalf("expected field, got %s", src.Kind)
	}
	recv := p.Builder.Items.Param(src.Receiver)
	if recv == nil || !recv.Receiver || recv.Index != 0 {
		t.Fatalf("field access lacks receiver: %+v", recv)
	}
	if got := res.ParamType(src.Receiver); got != types.Class(classID(t, p, "C")) {
		t.Fatalf("receiver type: %s", types.Format(p.Builder, got))
	}
}

func TestUseBeforeAssignment(t *testing.T) {
	p := testkit.ParseWithPrelude("def f: Void\n  a\n  a = 1\nend\n")
	_, res := p.Resolve()

	idents := exprsOf(t, p, "f", ast.ExprIdent)
	if _, ok := res.Idents[idents[0]]; ok {
		t.Fatalf("identifier used before assignment must stay unresolved")
	}
	var found *diag.Diagnostic
	for _, d := range p.Bag.Items() {
		if d.Code == diag.SemaUnresolvedIdentifier {
			found = &d
			break
		}
	}
	if found == nil {
		t.Fatalf("expected %s, got %s", diag.SemaUnresolvedIdentifier.ID(), p.Summary())
	}
	if len(found.Notes) != 1 {
		t.Fatalf("expected a note pointing at the later assignment, got %+v", found.Notes)
	}
}

func TestDeclarationOrderIndependence(t *testing.T) {
	p := testkit.ParseWithPrelude("def main: Void\n  test()\nend\ndef test: Void\nend\n")
	res := resolveClean(t, p)

	invokes := exprsOf(t, p, "main", ast.ExprInvoke)
	want, _ := p.Method("test")
	if got := res.Invokes[invokes[0]]; got != want {
		t.Fatalf("invoke resolved to %d, want %d", got, want)
	}
}

func TestEndToEndLocal(t *testing.T) {
	p := testkit.ParseWithPrelude("def main: Void  a = 2  a end")
	res := resolveClean(t, p)

	assigns := exprsOf(t, p, "main", ast.ExprAssign)
	idents := exprsOf(t, p, "main", ast.ExprIdent)
	if len(assigns) != 1 || len(idents) != 1 {
		t.Fatalf("unexpected shape: %d assigns, %d idents", len(assigns), len(idents))
	}
	if got := res.Assigns[assigns[0]]; got != types.Class(classID(t, p, prelude.IntClass)) {
		t.Fatalf("assignment type: %s", types.Format(p.Builder, got))
	}
	src := res.Idents[idents[0]]
	if src.Kind != scope.SourceLocal || src.Assign != assigns[0] {
		t.Fatalf("identifier resolved to %+v", src)
	}
	if got := res.TypeOf(idents[0]); got != types.Class(classID(t, p, prelude.IntClass)) {
		t.Fatalf("identifier type: %s", types.Format(p.Builder, got))
	}
}

func TestCrossUnitReturnType(t *testing.T) {
	p := testkit.ParseWithPrelude(
		"def main: Void\n  x = answer()\nend\n",
		"def answer: Int\n  42\nend\n",
	)
	res := resolveClean(t, p)

	assigns := exprsOf(t, p, "main", ast.ExprAssign)
	if got := res.Assigns[assigns[0]]; got != types.Class(classID(t, p, prelude.IntClass)) {
		t.Fatalf("assignment type: %s", types.Format(p.Builder, got))
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		sev  diag.Severity
	}{
		{"unresolved class", "def f(a: Nope): Void\nend\n", diag.SemaUnresolvedClass, diag.SevError},
		{"unresolved method", "def f: Void\n  nope()\nend\n", diag.SemaUnresolvedMethod, diag.SevError},
		{"unknown member", "class A end\ndef f: A\n  A().y\nend\n", diag.SemaUnknownMember, diag.SevError},
		{"receiver call", "class A\n  def g: Void\n  end\nend\ndef f: Void\n  A().g()\nend\n", diag.SemaReceiverCallUnsupported, diag.SevError},
		{"generic args", "class Box[T](item: T) end\ndef f: Void\n  Box[Int](1)\nend\n", diag.SemaGenericArgsDiscarded, diag.SevWarning},
		{"variadic not last", "def f(a...: Int, b: Int): Void\nend\n", diag.SemaVariadicNotLast, diag.SevError},
		{"bad literal", "def f: Void\n  99999999999999999999\nend\n", diag.SemaBadLiteral, diag.SevError},
		{"member on generic", "class Box[T](item: T)\n  def g: Void\n    item.x\n  end\nend\n", diag.SemaMemberOnGeneric, diag.SevError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testkit.ParseWithPrelude(tt.src)
			if p.Bag.Len() != 0 {
				t.Fatalf("parse diagnostics: %s", p.Summary())
			}
			_, res := p.Resolve()
			var got *diag.Diagnostic
			for _, d := range p.Bag.Items() {
				if d.Code == tt.code {
					got = &d
					break
				}
			}
			if got == nil {
				t.Fatalf("expected %s, got %s", tt.code.ID(), p.Summary())
			}
			if got.Severity != tt.sev {
				t.Fatalf("severity: got %s, want %s", got.Severity, tt.sev)
			}
			if err := testkit.CheckResolved(p.Builder, p.Units, res); err != nil {
				t.Fatalf("resolution must continue after errors: %v", err)
			}
		})
	}
}

func TestReceiverCallStillResolvesOperands(t *testing.T) {
	p := testkit.ParseWithPrelude("class A\n  def g(n: Int): Void\n  end\nend\ndef f: Void\n  A().g(1)\nend\n")
	_, res := p.Resolve()

	invokes := exprsOf(t, p, "f", ast.ExprInvoke)
	if _, ok := res.Invokes[invokes[0]]; ok {
		t.Fatalf("receiver call must not resolve")
	}
	news := exprsOf(t, p, "f", ast.ExprNew)
	if _, ok := res.News[news[0]]; !ok {
		t.Fatalf("receiver expression must still resolve")
	}
	if len(res.Literals) != 1 {
		t.Fatalf("argument literal must still resolve, got %d", len(res.Literals))
	}
}

func TestGenericsOverwritten(t *testing.T) {
	p := testkit.ParseWithPrelude("class Box[T](item: T) end\ndef f: Void\n  Box[Int](1)\nend\n")
	_, res := p.Resolve()

	news := exprsOf(t, p, "f", ast.ExprNew)
	box := p.Builder.Items.Class(classID(t, p, "Box"))
	if got := res.Generics[news[0]]; !reflect.DeepEqual(got, box.Generics) {
		t.Fatalf("generics: got %v, want %v", got, box.Generics)
	}
	data, _ := p.Builder.Exprs.New(news[0])
	if got := res.TypeRef(data.Generics[0]); got != types.Class(classID(t, p, prelude.IntClass)) {
		t.Fatalf("caller generic argument must still resolve, got %s", types.Format(p.Builder, got))
	}
}

func TestMissingPreludeReportedOnce(t *testing.T) {
	p := testkit.Parse("class A end\ndef f: A\n  1\n  2\nend\n")
	_, res := p.Resolve()

	count := 0
	for _, d := range p.Bag.Items() {
		if d.Code == diag.SemaMissingPrelude {
			count++
		}
	}
	// Int и Native__Int, по одному разу
	if count != 2 {
		t.Fatalf("expected 2 missing-prelude diagnostics, got %d: %s", count, p.Summary())
	}
	if len(res.Literals) != 0 {
		t.Fatalf("literals without prelude must not get instances")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	srcs := []string{
		"class Point(x: Int, y: Int)\n  def getX: Int\n    x\n  end\nend\n",
		"def main: Void\n  p = Point(1, 2)\n  q = p.y\n  println(\"hi\")\n  nope\nend\n",
		"def helper(n: Int): Int\n  m = n\n  'c'\n  m\nend\n",
	}

	seq := testkit.ParseWithPrelude(srcs...)
	_, want := seq.Resolve()

	par := testkit.ParseWithPrelude(srcs...)
	ix := index.Build(par.Builder, par.Units)
	got, err := sema.ResolveParallel(context.Background(), par.Builder, ix, par.Units,
		sema.Options{Reporter: &diag.BagReporter{Bag: par.Bag}, Jobs: 2})
	if err != nil {
		t.Fatalf("ResolveParallel: %v", err)
	}

	if !reflect.DeepEqual(got.Idents, want.Idents) {
		t.Fatalf("idents differ")
	}
	if !reflect.DeepEqual(got.Invokes, want.Invokes) {
		t.Fatalf("invokes differ")
	}
	if !reflect.DeepEqual(got.Members, want.Members) {
		t.Fatalf("members differ")
	}
	if !reflect.DeepEqual(got.News, want.News) {
		t.Fatalf("news differ")
	}
	if !reflect.DeepEqual(got.Assigns, want.Assigns) {
		t.Fatalf("assigns differ")
	}
	if !reflect.DeepEqual(got.TypeRefs, want.TypeRefs) {
		t.Fatalf("type refs differ")
	}
	if got.Instances.Len() != want.Instances.Len() {
		t.Fatalf("instances: got %d, want %d", got.Instances.Len(), want.Instances.Len())
	}
	if err := testkit.CheckLiteralShape(par.Builder, got); err != nil {
		t.Fatalf("literal shape after merge: %v", err)
	}
	if err := testkit.CheckResolved(par.Builder, par.Units, got); err != nil {
		t.Fatalf("resolution incomplete after merge: %v", err)
	}
	if testkit.Summary(par.Bag) != testkit.Summary(seq.Bag) {
		t.Fatalf("diagnostics differ:\n%s\n%s", testkit.Summary(par.Bag), testkit.Summary(seq.Bag))
	}
}
