package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"fortio.org/safecast"

	"lilit/internal/ast"
	"lilit/internal/diag"
	"lilit/internal/export"
	"lilit/internal/index"
	"lilit/internal/lexer"
	"lilit/internal/parser"
	"lilit/internal/prelude"
	"lilit/internal/project"
	"lilit/internal/sema"
	"lilit/internal/source"
	"lilit/internal/testkit"
	"lilit/internal/trace"
)

// Result is everything a check run produced. Index and Sema are nil when the
// run stopped after parsing.
type Result struct {
	FileSet *source.FileSet
	Builder *ast.Builder
	// Files are the user files in load order (without the prelude).
	Files   []string
	Units   []ast.UnitID
	Prelude ast.UnitID
	Index   *index.Index
	Sema    *sema.Result
	Bag     *diag.Bag
	// Digest combines the hashes of all loaded files, prelude first.
	Digest project.Digest
}

// UserUnits returns the units parsed from user files.
func (r *Result) UserUnits() []ast.UnitID {
	if r.Prelude.IsValid() && len(r.Units) > 0 {
		return r.Units[1:]
	}
	return r.Units
}

// Export snapshots the resolved program for the code generator.
func (r *Result) Export() (*export.Program, error) {
	if r.Sema == nil {
		return nil, fmt.Errorf("export: program was not resolved")
	}
	if r.Bag.HasErrors() {
		return nil, fmt.Errorf("export: program has errors")
	}
	p := export.Build(r.Builder, r.Index, r.Sema, r.FileSet)
	p.Digest = r.Digest.String()
	return p, nil
}

type checker struct {
	ctx    context.Context
	opts   Options
	tracer trace.Tracer
	res    *Result
	rep    diag.Reporter
	// файлы для разбора, prelude первым
	ids []source.FileID
}

// Check loads, parses, indexes and resolves the sources at paths.
// Go errors are returned only for problems outside the program itself
// (unreadable directories, cancellation, self-check failures).
func Check(ctx context.Context, paths []string, opts Options) (*Result, error) {
	c := &checker{
		ctx:    ctx,
		opts:   opts,
		tracer: trace.FromContext(ctx),
	}
	if c.opts.Jobs <= 0 {
		c.opts.Jobs = runtime.GOMAXPROCS(0)
	}
	fs := source.NewFileSet()
	if opts.BaseDir != "" {
		fs.SetBaseDir(opts.BaseDir)
	}
	bag := diag.NewBag(0)
	c.res = &Result{
		FileSet: fs,
		Builder: ast.NewBuilder(ast.Hints{}, nil),
		Bag:     bag,
	}
	// парсер после восстановления может повторить ту же ошибку
	c.rep = diag.NewDedupReporter(&diag.BagReporter{Bag: bag})

	span := trace.Begin(c.tracer, trace.ScopeDriver, "check", 0)
	defer span.End("")

	if err := c.run(paths, span.ID()); err != nil {
		return c.res, err
	}
	c.finish()
	span.WithExtra("diagnostics", fmt.Sprint(c.res.Bag.Len()))
	return c.res, nil
}

func (c *checker) run(paths []string, parent uint64) error {
	if err := c.phase(StageLoad, parent, func(uint64) error { return c.load(paths) }); err != nil {
		return err
	}
	if len(c.res.Files) == 0 {
		c.reportIO(diag.IONoSources, "<input>", "no "+SourceExt+" files to check")
		return nil
	}

	if err := c.phase(StageParse, parent, c.parse); err != nil {
		return err
	}
	if c.opts.ParseOnly {
		emitAll(c.opts.Progress, c.res.Files, StageParse, StatusDone)
		return nil
	}

	if err := c.phase(StageIndex, parent, func(uint64) error { return c.index() }); err != nil {
		return err
	}
	if err := c.phase(StageResolve, parent, c.resolve); err != nil {
		return err
	}
	emitAll(c.opts.Progress, c.res.Files, StageResolve, StatusDone)

	if c.opts.SelfCheck {
		return c.selfCheck()
	}
	return nil
}

// phase оборачивает шаг в таймер, pass-span и событие прогресса.
func (c *checker) phase(stage Stage, parent uint64, fn func(span uint64) error) error {
	if err := c.ctx.Err(); err != nil {
		return err
	}
	done := c.opts.Timer.Track(string(stage))
	span := trace.Begin(c.tracer, trace.ScopePass, string(stage), parent)
	start := time.Now()
	emit(c.opts.Progress, Event{Stage: stage, Status: StatusWorking})

	err := fn(span.ID())

	status := StatusDone
	if err != nil {
		status = StatusError
		trace.Error(c.tracer, trace.ScopePass, string(stage), span.ID(), err.Error())
	}
	emit(c.opts.Progress, Event{Stage: stage, Status: status, Err: err, Elapsed: time.Since(start)})
	span.End("")
	done(fmt.Sprintf("%d diagnostics", c.res.Bag.Len()))
	return err
}

// load fills FileSet; Files gets the user files that loaded, prelude excluded.
func (c *checker) load(paths []string) error {
	files, err := CollectFiles(paths)
	if err != nil {
		return err
	}
	emitAll(c.opts.Progress, files, StageLoad, StatusQueued)

	var digests []project.Digest
	if !c.opts.NoPrelude {
		id := c.res.FileSet.AddVirtual(prelude.FileName, prelude.Source())
		digests = append(digests, c.res.FileSet.Get(id).Hash)
		c.ids = append(c.ids, id)
	}
	loaded := make([]string, 0, len(files))
	for _, path := range files {
		id, err := c.res.FileSet.Load(path)
		if err != nil {
			c.reportIO(diag.IOLoadFileError, path, "failed to load file: "+err.Error())
			emit(c.opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		digests = append(digests, c.res.FileSet.Get(id).Hash)
		c.ids = append(c.ids, id)
		loaded = append(loaded, path)
	}
	c.res.Files = loaded
	if len(digests) > 0 {
		c.res.Digest = project.Combine(digests[0], digests[1:]...)
	}
	return nil
}

// reportIO привязывает диагностику к пустому виртуальному файлу с именем path,
// чтобы у неё был путь в выводе.
func (c *checker) reportIO(code diag.Code, path, msg string) {
	id := c.res.FileSet.AddVirtual(path, nil)
	diag.ReportError(c.rep, code, source.Span{File: id}, msg).Emit()
}

func (c *checker) parse(parent uint64) error {
	maxErrors, err := safecast.Conv[uint](max(c.opts.MaxDiagnostics, 0))
	if err != nil {
		return err
	}
	for _, id := range c.ids {
		if err := c.ctx.Err(); err != nil {
			return err
		}
		file := c.res.FileSet.Get(id)
		display := file.Path
		if !file.IsVirtual() {
			emit(c.opts.Progress, Event{File: display, Stage: StageParse, Status: StatusWorking})
		}

		span := trace.Begin(c.tracer, trace.ScopeModule, "parse_file", parent)
		span.WithExtra("file", display)
		before := c.res.Bag.Count(diag.SevError)

		lx := lexer.New(file, lexer.Options{Reporter: c.rep})
		pr := parser.ParseFile(lx, c.res.Builder, parser.Options{Reporter: c.rep, MaxErrors: maxErrors})
		c.res.Units = append(c.res.Units, pr.Unit)
		if file.IsVirtual() && display == prelude.FileName {
			c.res.Prelude = pr.Unit
		}
		span.End("")

		if !file.IsVirtual() && c.res.Bag.Count(diag.SevError) > before {
			emit(c.opts.Progress, Event{File: display, Stage: StageParse, Status: StatusError})
		}
	}
	return nil
}

func (c *checker) index() error {
	ix, err := index.BuildParallel(c.ctx, c.res.Builder, c.res.Units, c.opts.Jobs)
	if err != nil {
		return err
	}
	c.res.Index = ix
	return nil
}

func (c *checker) resolve(parent uint64) error {
	emitAll(c.opts.Progress, c.res.Files, StageResolve, StatusWorking)
	opts := sema.Options{
		Reporter: c.rep,
		Tracer:   c.tracer,
		Parent:   parent,
		Jobs:     c.opts.Jobs,
	}
	if !c.opts.Parallel {
		c.res.Sema = sema.Resolve(c.res.Builder, c.res.Index, c.res.Units, opts)
		return nil
	}
	res, err := sema.ResolveParallel(c.ctx, c.res.Builder, c.res.Index, c.res.Units, opts)
	if err != nil {
		return err
	}
	c.res.Sema = res
	return nil
}

func (c *checker) selfCheck() error {
	for _, uid := range c.res.Units {
		u := c.res.Builder.Units.Get(uid)
		if err := testkit.CheckSpanInvariants(c.res.Builder, uid, c.res.FileSet.Get(u.File)); err != nil {
			return fmt.Errorf("self-check: %w", err)
		}
	}
	if err := testkit.CheckResolved(c.res.Builder, c.res.Units, c.res.Sema); err != nil {
		return fmt.Errorf("self-check: %w", err)
	}
	if err := testkit.CheckLiteralShape(c.res.Builder, c.res.Sema); err != nil {
		return fmt.Errorf("self-check: %w", err)
	}
	return nil
}

// finish сортирует диагностики и обрезает их до MaxDiagnostics.
func (c *checker) finish() {
	c.res.Bag.Sort()
	if c.opts.MaxDiagnostics <= 0 || c.res.Bag.Len() <= c.opts.MaxDiagnostics {
		return
	}
	capped := diag.NewBag(c.opts.MaxDiagnostics)
	capped.Merge(c.res.Bag)
	c.res.Bag = capped
}
