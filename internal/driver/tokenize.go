package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lilit/internal/diag"
	"lilit/internal/lexer"
	"lilit/internal/source"
	"lilit/internal/token"
)

type TokenizeResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
	Bag    *diag.Bag
}

func lexAll(file *source.File, bag *diag.Bag) []token.Token {
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// Tokenize лексит один файл.
func Tokenize(path string, maxDiagnostics int) (*source.FileSet, *TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	return fs, &TokenizeResult{
		Path:   path,
		FileID: fileID,
		Tokens: lexAll(fs.Get(fileID), bag),
		Bag:    bag,
	}, nil
}

// TokenizeFiles лексит файлы параллельно; результаты идут в порядке files.
// Файлы загружаются заранее и последовательно, FileSet не потокобезопасен.
func TokenizeFiles(ctx context.Context, files []string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeResult, error) {
	fs := source.NewFileSet()
	results := make([]TokenizeResult, len(files))
	failed := make([]bool, len(files))
	for i, path := range files {
		results[i] = TokenizeResult{Path: path, Bag: diag.NewBag(maxDiagnostics)}
		id, err := fs.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы у диагностики был путь
			id = fs.AddVirtual(path, nil)
			results[i].Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
			failed[i] = true
		}
		results[i].FileID = id
	}
	if len(files) == 0 {
		return fs, nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := &results[i]
			if failed[i] {
				return nil
			}
			r.Tokens = lexAll(fs.Get(r.FileID), r.Bag)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fs, results, err
	}
	return fs, results, nil
}
