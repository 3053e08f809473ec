package lexer

import (
	"testing"

	"lilit/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("c.lil", []byte("ab")))
	c := NewCursor(f)

	m := c.Mark()
	if c.Peek() != 'a' {
		t.Fatalf("peek = %q", c.Peek())
	}
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("peek2 = %q %q %v", b0, b1, ok)
	}
	if !c.Eat('a') || c.Eat('x') {
		t.Fatalf("eat mismatch")
	}
	if c.Bump() != 'b' || !c.EOF() {
		t.Fatalf("expected EOF after two bytes")
	}
	if c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("reads past EOF must return 0")
	}
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("reset failed, off=%d", c.Off)
	}
}

func TestCursorSkipAndPair(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c.lil", []byte("  /*x"))))
	if !c.SkipWhile(isSpace) || c.Off != 2 {
		t.Fatalf("skip blanks: off=%d", c.Off)
	}
	if c.SkipWhile(isSpace) {
		t.Fatalf("second skip must consume nothing")
	}
	if c.EatPair('*', '/') || !c.EatPair('/', '*') || c.Peek() != 'x' {
		t.Fatalf("pair matching broken at off=%d", c.Off)
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok || c.EatPair('x', 0) {
		t.Fatalf("pairs past EOF must fail")
	}
}
