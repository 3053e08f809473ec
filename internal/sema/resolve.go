package sema

import (
	"context"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/index"
	"lilit/internal/trace"
)

// Resolve resolves all units sequentially. The index must already contain
// every unit of the program.
func Resolve(b *ast.Builder, ix *index.Index, units []ast.UnitID, opts Options) *Result {
	res := NewResult(b)
	pc := newPreludeClasses(b, ix)

	r := newResolver(b, ix, res, pc, opts)
	forEachUnit(b, units, opts, "resolve_definitions", func(u *ast.Unit) { r.resolveDefinitions(u) })
	forEachUnit(b, units, opts, "resolve_bodies", func(u *ast.Unit) { r.resolveBodies(u) })
	return res
}

func forEachUnit(b *ast.Builder, units []ast.UnitID, opts Options, phase string, fn func(*ast.Unit)) {
	for _, uid := range units {
		u := b.Units.Get(uid)
		span := trace.Begin(opts.tracer(), trace.ScopeModule, phase, opts.Parent)
		span.WithExtra("unit", fmt.Sprint(uid))
		fn(u)
		span.End("")
	}
}

type partial struct {
	res *Result
	bag *diag.Bag
}

// ResolveParallel: definitions are resolved sequentially, then every unit body
// is resolved in its own task with its own scope, result and diagnostic bag.
// Partial results are merged in unit order, so the output matches Resolve up to
// synthetic instance numbering within a unit.
func ResolveParallel(ctx context.Context, b *ast.Builder, ix *index.Index, units []ast.UnitID, opts Options) (*Result, error) {
	res := NewResult(b)
	defBag := diag.NewBag(0)
	defOpts := opts
	defOpts.Reporter = &diag.BagReporter{Bag: defBag}
	defs := newResolver(b, ix, res, newPreludeClasses(b, ix), defOpts)
	forEachUnit(b, units, opts, "resolve_definitions", func(u *ast.Unit) { defs.resolveDefinitions(u) })

	parts := make([]partial, len(units))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, uid := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			part := NewResult(b)
			part.sigRefs = res.TypeRefs
			bag := diag.NewBag(0)
			unitOpts := opts
			unitOpts.Reporter = &diag.BagReporter{Bag: bag}
			r := newResolver(b, ix, part, newPreludeClasses(b, ix), unitOpts)

			span := trace.Begin(opts.tracer(), trace.ScopeModule, "resolve_bodies", opts.Parent)
			span.WithExtra("unit", fmt.Sprint(uid))
			r.resolveBodies(b.Units.Get(uid))
			span.End("")

			parts[i] = partial{res: part, bag: bag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	rep := opts.reporter()
	seenPrelude := make(map[string]bool)
	forward := func(bag *diag.Bag) {
		for _, d := range bag.Items() {
			if d.Code == diag.SemaMissingPrelude {
				if seenPrelude[d.Message] {
					continue
				}
				seenPrelude[d.Message] = true
			}
			rep.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
		}
	}
	forward(defBag)
	for _, p := range parts {
		res.absorb(p.res)
		forward(p.bag)
	}
	return res, nil
}

// absorb переносит частичный результат, сдвигая ID синтетических экземпляров.
func (r *Result) absorb(part *Result) {
	offset := r.Instances.Len()
	rebase := func(id InstanceID) InstanceID {
		if !id.IsValid() {
			return id
		}
		v, err := safecast.Conv[uint32](uint64(id) + uint64(offset))
		if err != nil {
			panic(fmt.Errorf("instance id overflow: %w", err))
		}
		return InstanceID(v)
	}
	for _, inst := range part.Instances.Slice() {
		inst.Arg = rebase(inst.Arg)
		r.Instances.Allocate(inst)
	}
	for id, iid := range part.Literals {
		r.Literals[id] = rebase(iid)
	}
	for id, v := range part.Idents {
		r.Idents[id] = v
	}
	for id, v := range part.Invokes {
		r.Invokes[id] = v
	}
	for id, v := range part.Members {
		r.Members[id] = v
	}
	for id, v := range part.News {
		r.News[id] = v
	}
	for id, v := range part.Generics {
		r.Generics[id] = v
	}
	for id, v := range part.Assigns {
		r.Assigns[id] = v
	}
	for id, v := range part.TypeRefs {
		r.TypeRefs[id] = v
	}
	for id := range part.visited {
		r.markVisited(id)
	}
}
