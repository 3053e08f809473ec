package ast

import (
	"testing"

	"lilit/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be the 'none' slot")
	}
	id := a.Allocate(7)
	if id != 1 {
		t.Fatalf("first allocation id = %d, want 1", id)
	}
	if got := *a.Get(id); got != 7 {
		t.Fatalf("Get(1) = %d", got)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range Get must return nil")
	}
	if a.Len() != 1 || len(a.Slice()) != 1 {
		t.Fatalf("len mismatch")
	}
}

func TestExprAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	x := b.Strings.Intern("x")
	id := b.Exprs.NewIdent(source.Span{}, x)
	if _, ok := b.Exprs.Member(id); ok {
		t.Fatalf("Member() must reject an identifier")
	}
	data, ok := b.Exprs.Ident(id)
	if !ok || data.Name != x {
		t.Fatalf("Ident() = %+v, %v", data, ok)
	}
}

func TestChildrenOrder(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{}
	recv := b.Exprs.NewIdent(sp, b.Strings.Intern("r"))
	a1 := b.Exprs.NewIdent(sp, b.Strings.Intern("a"))
	a2 := b.Exprs.NewIdent(sp, b.Strings.Intern("b"))
	call := b.Exprs.NewInvoke(sp, recv, b.Strings.Intern("m"), sp, []ExprID{a1, a2})

	got := b.Exprs.Children(call)
	want := []ExprID{recv, a1, a2}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}

	var visited []ExprID
	b.Exprs.Walk(call, func(id ExprID) bool {
		visited = append(visited, id)
		return true
	})
	if len(visited) != 4 || visited[0] != call {
		t.Fatalf("walk order = %v", visited)
	}
}

func TestUnitItems(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	u := b.NewUnit(0, source.Span{})
	c := b.Items.NewClass(u, b.Strings.Intern("A"), source.Span{}, source.Span{})
	m := b.Items.NewMethod(u, NoClassID, b.Strings.Intern("main"), source.Span{}, source.Span{})
	b.PushClass(u, c)
	b.PushMethod(u, m)

	items := b.Units.Get(u).Items
	if len(items) != 2 || items[0].Kind != ItemClass || items[1].Kind != ItemMethod {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Class != c || items[1].Method != m {
		t.Fatalf("item ids mismatch: %+v", items)
	}
	if b.Name(b.Items.Class(c).Name) != "A" {
		t.Fatalf("class name lost")
	}
}

func TestNativeMarkers(t *testing.T) {
	if !IsNativeClassName("Native__Int") || IsNativeClassName("Int") {
		t.Fatalf("native class marker")
	}
	if !IsNativeCallName("native__printf") || IsNativeCallName("printf") {
		t.Fatalf("native call marker")
	}
}
