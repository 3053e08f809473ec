package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"lilit/internal/source"
)

// Cursor walks the bytes of one file. Reads past the end yield 0.
type Cursor struct {
	File  *source.File
	Off   uint32
	limit uint32
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("lexer: file larger than 4GiB: %w", err))
	}
	return Cursor{File: f, limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.limit }

func (c *Cursor) at(off uint32) byte {
	if off >= c.limit {
		return 0
	}
	return c.File.Content[off]
}

func (c *Cursor) Peek() byte { return c.at(c.Off) }

// Peek2: текущий и следующий байт; ok=false, если второго нет.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	return c.at(c.Off), c.at(c.Off + 1), c.Off+1 < c.limit
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.at(c.Off)
	if !c.EOF() {
		c.Off++
	}
	return b
}

func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// EatPair consumes a and b when they are the next two bytes.
func (c *Cursor) EatPair(a, b byte) bool {
	if b0, b1, ok := c.Peek2(); ok && b0 == a && b1 == b {
		c.Off += 2
		return true
	}
	return false
}

// SkipWhile consumes bytes while keep holds and reports whether any were consumed.
func (c *Cursor) SkipWhile(keep func(byte) bool) bool {
	start := c.Off
	for !c.EOF() && keep(c.File.Content[c.Off]) {
		c.Off++
	}
	return c.Off > start
}

// Mark запоминает позицию для SpanFrom и Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
