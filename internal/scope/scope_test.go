package scope

import (
	"testing"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/index"
	"lilit/internal/lexer"
	"lilit/internal/parser"
	"lilit/internal/source"
)

type fixture struct {
	b    *ast.Builder
	ix   *index.Index
	unit *ast.Unit
}

func setup(t *testing.T, src string) fixture {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("scope.lil", []byte(src))
	bag := diag.NewBag(0)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(fs.Get(id), lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("parse diagnostics: %v", bag.Items())
	}
	return fixture{b: b, ix: index.Build(b, []ast.UnitID{res.Unit}), unit: b.Units.Get(res.Unit)}
}

func (f fixture) name(s string) source.StringID { return f.b.Strings.Intern(s) }

func expectPanic(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", what)
		}
	}()
	fn()
}

const shadowSrc = `
class Box(value: Int, other: Int)
  def get(value: Int): Int
    value
  end
end
class Int end
def main: Int end
`

func TestParamShadowsField(t *testing.T) {
	f := setup(t, shadowSrc)
	cls := f.unit.Items[0].Class
	get := f.b.Items.Class(cls).Methods[0]

	s := New(f.b)
	s.EnterProgram(f.ix)
	s.EnterClass(cls)

	src, ok := s.FindIdentifier(f.name("value"))
	if !ok || src.Kind != SourceField {
		t.Fatalf("inside class only the field is visible, got %+v", src)
	}
	if src.Receiver.IsValid() {
		t.Fatalf("no method entered, receiver must be empty")
	}

	s.EnterMethod(get)
	src, ok = s.FindIdentifier(f.name("value"))
	if !ok || src.Kind != SourceParam {
		t.Fatalf("parameter must shadow field, got %+v", src)
	}
	if f.b.Items.Param(src.Param).Index != 1 {
		t.Fatalf("expected the explicit param (index 1)")
	}

	other, ok := s.FindIdentifier(f.name("other"))
	if !ok || other.Kind != SourceField {
		t.Fatalf("field lookup through method = %+v", other)
	}
	if other.Receiver != f.b.Items.Method(get).Params[0] {
		t.Fatalf("field source must carry the method receiver")
	}
}

func TestLocalsShadowAndNoHoisting(t *testing.T) {
	f := setup(t, shadowSrc)
	cls := f.unit.Items[0].Class
	get := f.b.Items.Class(cls).Methods[0]

	s := New(f.b)
	s.EnterProgram(f.ix)
	s.EnterClass(cls)
	s.EnterMethod(get)

	if _, ok := s.FindIdentifier(f.name("tmp")); ok {
		t.Fatalf("unbound local must not resolve")
	}
	s.AddLocal(f.name("value"), ast.ExprID(41))
	s.AddLocal(f.name("value"), ast.ExprID(42))
	src, ok := s.FindIdentifier(f.name("value"))
	if !ok || src.Kind != SourceLocal || src.Assign != 42 {
		t.Fatalf("latest local must win, got %+v", src)
	}

	s.Leave()
	src, _ = s.FindIdentifier(f.name("value"))
	if src.Kind != SourceField {
		t.Fatalf("locals must be dropped with their level, got %+v", src)
	}
}

func TestFindClassAndMethod(t *testing.T) {
	f := setup(t, shadowSrc)
	cls := f.unit.Items[0].Class

	s := New(f.b)
	s.EnterProgram(f.ix)
	if _, ok := s.FindClass(f.name("Int")); !ok {
		t.Fatalf("Int must be visible from program level")
	}
	if _, ok := s.FindMethod(f.name("get")); ok {
		t.Fatalf("class method must not be visible at program level")
	}
	s.EnterClass(cls)
	if _, ok := s.FindMethod(f.name("get")); !ok {
		t.Fatalf("own method must be visible inside class")
	}
	if _, ok := s.FindMethod(f.name("main")); !ok {
		t.Fatalf("free method must be visible inside class")
	}
	if _, ok := s.FindClass(f.name("Missing")); ok {
		t.Fatalf("unknown class resolved")
	}
	if got, ok := s.EnclosingClass(); !ok || got != cls {
		t.Fatalf("EnclosingClass = %d, %v", got, ok)
	}
}

func TestStructuralViolationsPanic(t *testing.T) {
	f := setup(t, shadowSrc)
	cls := f.unit.Items[0].Class
	get := f.b.Items.Class(cls).Methods[0]
	main := f.unit.Items[2].Method

	expectPanic(t, "leave on empty", func() { New(f.b).Leave() })
	expectPanic(t, "class outside program", func() { New(f.b).EnterClass(cls) })
	expectPanic(t, "unknown class", func() {
		s := New(f.b)
		s.EnterProgram(f.ix)
		s.EnterClass(ast.ClassID(999))
	})
	expectPanic(t, "class method from program level", func() {
		s := New(f.b)
		s.EnterProgram(f.ix)
		s.EnterMethod(get)
	})
	expectPanic(t, "method inside method", func() {
		s := New(f.b)
		s.EnterProgram(f.ix)
		s.EnterMethod(main)
		s.EnterMethod(main)
	})
	expectPanic(t, "second program level", func() {
		s := New(f.b)
		s.EnterProgram(f.ix)
		s.EnterProgram(f.ix)
	})
}

func TestFreeMethodHasNoReceiver(t *testing.T) {
	f := setup(t, shadowSrc)
	s := New(f.b)
	s.EnterProgram(f.ix)
	s.EnterMethod(f.unit.Items[2].Method)
	if s.Receiver().IsValid() {
		t.Fatalf("free method must not have a receiver")
	}
	if s.Depth() != 2 || s.Top().Kind != LevelMethod {
		t.Fatalf("unexpected stack: depth=%d", s.Depth())
	}
}
