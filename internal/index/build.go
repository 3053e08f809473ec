package index

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"lilit/internal/ast"
)

// Build indexes units sequentially. No validation is performed.
func Build(b *ast.Builder, units []ast.UnitID) *Index {
	var entries []Entry
	for _, u := range units {
		entries = append(entries, unitEntries(b, u)...)
	}
	return newIndex(entries)
}

// BuildParallel produces the same index as Build with one task per unit.
// jobs <= 0 means no limit.
func BuildParallel(ctx context.Context, b *ast.Builder, units []ast.UnitID, jobs int) (*Index, error) {
	parts := make([][]Entry, len(units))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, u := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts[i] = unitEntries(b, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("index build: %w", err)
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	entries := make([]Entry, 0, total)
	for _, p := range parts {
		entries = append(entries, p...)
	}
	return newIndex(entries), nil
}

// unitEntries только читает арены, поэтому безопасен для параллельного вызова.
func unitEntries(b *ast.Builder, unit ast.UnitID) []Entry {
	u := b.Units.Get(unit)
	if u == nil {
		panic(fmt.Errorf("index: unknown unit %d", unit))
	}
	out := make([]Entry, 0, len(u.Items))
	for _, item := range u.Items {
		switch item.Kind {
		case ast.ItemClass:
			cls := b.Items.Class(item.Class)
			methods := make([]Method, 0, len(cls.Methods))
			for _, mid := range cls.Methods {
				methods = append(methods, Method{ID: mid, Name: b.Items.Method(mid).Name})
			}
			out = append(out, Entry{
				Kind:  EntryClass,
				Unit:  unit,
				Class: Class{ID: item.Class, Name: cls.Name, Methods: methods},
			})
		case ast.ItemMethod:
			out = append(out, Entry{
				Kind:   EntryMethod,
				Unit:   unit,
				Method: Method{ID: item.Method, Name: b.Items.Method(item.Method).Name},
			})
		}
	}
	return out
}
