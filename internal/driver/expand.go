// Package driver orchestrates the preprocessor pipeline:
// load -> lex -> expand -> rewrite, for single files and directory walks.
package driver

import (
	"errors"

	"strhash/internal/diag"
	"strhash/internal/expand"
	"strhash/internal/lexer"
	"strhash/internal/observ"
	"strhash/internal/rewrite"
	"strhash/internal/source"
)

// Options configures a preprocessor run.
type Options struct {
	// MaxDiagnostics bounds the per-file diagnostic bag.
	MaxDiagnostics int
	// Jobs bounds directory-walk parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// Check computes and reports without writing any file.
	Check bool
	// Backup writes .bak files next to rewritten files.
	Backup bool
	// Registry supplies the macros; nil means expand.DefaultMacros.
	Registry *expand.Registry
	// Cache skips files whose digest is known to hold no invocations;
	// nil disables caching.
	Cache *DiskCache
	// Timer, when non-nil, records pipeline phases and run counters.
	Timer *observ.Timer
}

func (o Options) registry() *expand.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return expand.NewRegistry(expand.DefaultMacros()...)
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return 100
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	FileSet     *source.FileSet
	Bag         *diag.Bag
	Edits       []diag.TextEdit
	Invocations int
	// Rewritten reports whether edits were applied (in memory under
	// opts.Check, on disk otherwise).
	Rewritten bool
	// CacheHit reports the file was skipped via the disk cache.
	CacheHit bool
	// NewBytes holds the rewritten content when Rewritten is set.
	NewBytes []byte
}

// ExpandFile runs the full pipeline on a single file.
//
// A file with error diagnostics is never rewritten: the failed invocation
// aborts that file's output while the remaining files of a directory run
// still proceed.
func ExpandFile(path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		// An unreadable file fails like any other diagnosed file: the
		// rest of a directory run is unaffected.
		res := &FileResult{Path: path, FileSet: fs, Bag: diag.NewBag(opts.maxDiagnostics())}
		res.Bag.Add(diag.NewError(diag.IOReadFailed, source.Span{}, err.Error()))
		return res, nil
	}
	return expandLoaded(fs, id, opts)
}

// ExpandVirtual runs the pipeline on in-memory content. Used by tests and
// the stdin mode of the CLI; nothing touches the disk.
func ExpandVirtual(name string, content []byte, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return expandLoaded(fs, id, opts)
}

func expandLoaded(fs *source.FileSet, id source.FileID, opts Options) (*FileResult, error) {
	f := fs.Get(id)
	res := &FileResult{
		Path:    f.Path,
		FileID:  id,
		FileSet: fs,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}

	if opts.Cache != nil {
		var entry CacheEntry
		if hit, err := opts.Cache.Get(f.Hash, &entry); err == nil && hit && entry.NoInvocations {
			res.CacheHit = true
			return res, nil
		}
	}

	rep := diag.BagReporter{Bag: res.Bag}
	toks := lexer.New(f, lexer.Options{Reporter: rep}).All()

	er := expand.Expand(toks, opts.registry(), rep)
	res.Edits = er.Edits
	res.Invocations = er.Invocations

	if opts.Cache != nil && er.Invocations == 0 && !res.Bag.HasErrors() {
		// Remember clean files so the next run skips them outright.
		_ = opts.Cache.Put(f.Hash, &CacheEntry{NoInvocations: true})
	}

	if len(er.Edits) == 0 || res.Bag.HasErrors() {
		return res, nil
	}

	rres, err := rewrite.Apply(fs, er.Edits, rewrite.Options{Check: opts.Check, Backup: opts.Backup})
	if err != nil {
		code := diag.IOWriteFailed
		if errors.Is(err, rewrite.ErrOverlap) {
			code = diag.RewriteOverlapping
		}
		res.Bag.Add(diag.NewError(code, er.Edits[0].Span, err.Error()))
		return res, nil
	}
	res.Rewritten = true
	if len(rres.Changes) > 0 {
		res.NewBytes = rres.Changes[0].NewBytes
	}
	return res, nil
}
