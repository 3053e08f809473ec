package parser

import (
	"fmt"
	"strings"
	"testing"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/lexer"
	"lilit/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.UnitID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lil", []byte(src))
	bag := diag.NewBag(100)
	rep := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep})
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(lx, b, Options{Reporter: rep})
	return b, res.Unit, bag
}

func mustParse(t *testing.T, src string) (*ast.Builder, *ast.Unit) {
	t.Helper()
	b, unit, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return b, b.Units.Get(unit)
}

func diagnosticsSummary(bag *diag.Bag) string {
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

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
