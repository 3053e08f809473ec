package testkit

import (
	"fmt"
	"strings"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/index"
	"lilit/internal/lexer"
	"lilit/internal/parser"
	"lilit/internal/prelude"
	"lilit/internal/sema"
	"lilit/internal/source"
)

// Program is a parsed in-memory program for tests.
type Program struct {
	FileSet *source.FileSet
	Builder *ast.Builder
	Units   []ast.UnitID
	Bag     *diag.Bag
}

// Parse parses each source as its own virtual file (test0.lil, test1.lil, ...).
func Parse(srcs ...string) *Program {
	p := &Program{
		FileSet: source.NewFileSet(),
		Builder: ast.NewBuilder(ast.Hints{}, nil),
		Bag:     diag.NewBag(0),
	}
	for i, src := range srcs {
		p.add(fmt.Sprintf("test%d.lil", i), []byte(src))
	}
	return p
}

// ParseWithPrelude is Parse with the built-in prelude as the first unit.
func ParseWithPrelude(srcs ...string) *Program {
	p := &Program{
		FileSet: source.NewFileSet(),
		Builder: ast.NewBuilder(ast.Hints{}, nil),
		Bag:     diag.NewBag(0),
	}
	p.add(prelude.FileName, prelude.Source())
	for i, src := range srcs {
		p.add(fmt.Sprintf("test%d.lil", i), []byte(src))
	}
	return p
}

func (p *Program) add(name string, content []byte) {
	id := p.FileSet.AddVirtual(name, content)
	rep := &diag.BagReporter{Bag: p.Bag}
	lx := lexer.New(p.FileSet.Get(id), lexer.Options{Reporter: rep})
	res := parser.ParseFile(lx, p.Builder, parser.Options{Reporter: rep})
	p.Units = append(p.Units, res.Unit)
}

// Resolve builds the index and resolves all units; diagnostics go to p.Bag.
func (p *Program) Resolve() (*index.Index, *sema.Result) {
	ix := index.Build(p.Builder, p.Units)
	res := sema.Resolve(p.Builder, ix, p.Units, sema.Options{Reporter: &diag.BagReporter{Bag: p.Bag}})
	return ix, res
}

// Summary renders the bag as "[CODE] message; ..." for failure messages.
func (p *Program) Summary() string {
	return Summary(p.Bag)
}

// HasCode reports whether the bag contains a diagnostic with the code.
func (p *Program) HasCode(code diag.Code) bool {
	for _, d := range p.Bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func Summary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// Method finds the first method with the given name, free or in any class.
func (p *Program) Method(name string) (ast.MethodID, bool) {
	for i, m := range p.Builder.Items.Methods.Slice() {
		if p.Builder.Name(m.Name) == name {
			return ast.MethodID(i + 1), true
		}
	}
	return ast.NoMethodID, false
}

// Class finds the first class with the given name.
func (p *Program) Class(name string) (ast.ClassID, bool) {
	for i, c := range p.Builder.Items.Classes.Slice() {
		if p.Builder.Name(c.Name) == name {
			return ast.ClassID(i + 1), true
		}
	}
	return ast.NoClassID, false
}
