package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lilit/internal/ast"
	"lilit/internal/scope"
	"lilit/internal/sema"
	"lilit/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) unit.Span is within file content bounds
// 2) every item span is non-empty and fully contained in unit.Span
// 3) every body expression lies inside its method
func CheckSpanInvariants(b *ast.Builder, unitID ast.UnitID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	u := b.Units.Get(unitID)
	if u == nil {
		return fmt.Errorf("unit node not found")
	}
	if u.Span.File != sf.ID {
		return fmt.Errorf("unit span points to different file id: got=%d want=%d", u.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if u.Span.End > lenContent {
		return fmt.Errorf("unit span end beyond content: %d > %d", u.Span.End, lenContent)
	}

	inside := func(what string, sp, outer source.Span) error {
		if sp.Empty() {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if !outer.Contains(sp) {
			return fmt.Errorf("%s span %v is outside %v", what, sp, outer)
		}
		return nil
	}

	checkMethod := func(mid ast.MethodID, outer source.Span) error {
		m := b.Items.Method(mid)
		if m == nil {
			return fmt.Errorf("nil method for id=%d", mid)
		}
		if err := inside("method", m.Span, outer); err != nil {
			return err
		}
		for _, e := range m.Body {
			var walkErr error
			b.Exprs.Walk(e, func(id ast.ExprID) bool {
				if walkErr = inside("expression", b.Exprs.Get(id).Span, m.Span); walkErr != nil {
					return false
				}
				return true
			})
			if walkErr != nil {
				return walkErr
			}
		}
		return nil
	}

	for _, it := range u.Items {
		switch it.Kind {
		case ast.ItemClass:
			cls := b.Items.Class(it.Class)
			if cls == nil {
				return fmt.Errorf("nil class for id=%d", it.Class)
			}
			if err := inside("class", cls.Span, u.Span); err != nil {
				return err
			}
			for _, mid := range cls.Methods {
				if err := checkMethod(mid, cls.Span); err != nil {
					return err
				}
			}
		case ast.ItemMethod:
			if err := checkMethod(it.Method, u.Span); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckResolved verifies that every body expression of the units was visited
// exactly once and that resolved entries point at live nodes.
func CheckResolved(b *ast.Builder, units []ast.UnitID, res *sema.Result) error {
	var firstErr error
	visit := func(mid ast.MethodID) {
		for _, e := range b.Items.Method(mid).Body {
			b.Exprs.Walk(e, func(id ast.ExprID) bool {
				if firstErr != nil {
					return false
				}
				if !res.Visited(id) {
					firstErr = fmt.Errorf("expression %d (%s) was not resolved", id, b.Exprs.Get(id).Kind)
				}
				return true
			})
		}
	}
	for _, uid := range units {
		u := b.Units.Get(uid)
		if u == nil {
			return fmt.Errorf("unit %d not found", uid)
		}
		for _, it := range u.Items {
			switch it.Kind {
			case ast.ItemClass:
				for _, mid := range b.Items.Class(it.Class).Methods {
					visit(mid)
				}
			case ast.ItemMethod:
				visit(it.Method)
			}
		}
	}
	if firstErr != nil {
		return firstErr
	}

	for id, src := range res.Idents {
		switch src.Kind {
		case scope.SourceLocal:
			if e := b.Exprs.Get(src.Assign); e == nil || e.Kind != ast.ExprAssign {
				return fmt.Errorf("identifier %d points at non-assignment %d", id, src.Assign)
			}
		default:
			if b.Items.Param(src.Param) == nil {
				return fmt.Errorf("identifier %d points at missing param %d", id, src.Param)
			}
		}
	}
	for id, mid := range res.Invokes {
		if b.Items.Method(mid) == nil {
			return fmt.Errorf("invoke %d points at missing method %d", id, mid)
		}
	}
	for id, fid := range res.Members {
		if p := b.Items.Param(fid); p == nil || !p.IsField() {
			return fmt.Errorf("member access %d points at non-field %d", id, fid)
		}
	}
	return nil
}

// CheckLiteralShape verifies the wrapper(native(leaf)) shape of every literal instance.
func CheckLiteralShape(b *ast.Builder, res *sema.Result) error {
	for lit, outerID := range res.Literals {
		outer := res.Instance(outerID)
		if outer == nil {
			return fmt.Errorf("literal %d: missing instance %d", lit, outerID)
		}
		if outer.Literal != lit {
			return fmt.Errorf("literal %d: outer instance belongs to %d", lit, outer.Literal)
		}
		if ast.IsNativeClassName(b.Name(b.Items.Class(outer.Class).Name)) {
			return fmt.Errorf("literal %d: outer class is native", lit)
		}
		inner := res.Instance(outer.Arg)
		if inner == nil {
			return fmt.Errorf("literal %d: outer instance has no argument", lit)
		}
		if inner.Arg.IsValid() {
			return fmt.Errorf("literal %d: more than two instance levels", lit)
		}
		if !ast.IsNativeClassName(b.Name(b.Items.Class(inner.Class).Name)) {
			return fmt.Errorf("literal %d: inner class is not native", lit)
		}
		if inner.Leaf.Kind == sema.NativeNone {
			return fmt.Errorf("literal %d: inner instance has no native value", lit)
		}
	}
	return nil
}
