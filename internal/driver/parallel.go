package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"strhash/internal/project"
)

// ListFiles resolves the manifest's include entries into a sorted list of
// candidate files. Directories are walked recursively; explicit file
// entries bypass the extension filter.
func ListFiles(m *project.Manifest) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, inc := range m.Expand.Include {
		root := inc
		if !filepath.IsAbs(root) {
			root = filepath.Join(m.Dir, inc)
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !m.WantsFile(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Deterministic processing and output order.
	sort.Strings(files)
	return files, nil
}

// ExpandAll processes every manifest file, bounded-parallel, and returns
// per-file results in sorted path order.
func ExpandAll(ctx context.Context, m *project.Manifest, opts Options) ([]*FileResult, error) {
	var scanPhase int
	if opts.Timer != nil {
		scanPhase = opts.Timer.Begin("scan")
	}
	files, err := ListFiles(m)
	if err != nil {
		return nil, err
	}
	if opts.Timer != nil {
		opts.Timer.End(scanPhase, fmt.Sprintf("%d file(s)", len(files)))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*FileResult, len(files))
	var expandPhase int
	if opts.Timer != nil {
		expandPhase = opts.Timer.Begin("expand")
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ExpandFile(path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if opts.Timer != nil {
		opts.Timer.End(expandPhase, fmt.Sprintf("%d worker(s)", jobs))
		opts.Timer.Count("files", len(results))
		for _, res := range results {
			if res.CacheHit {
				opts.Timer.Count("cache-hits", 1)
			}
			if res.Rewritten {
				opts.Timer.Count("rewritten", 1)
			}
			opts.Timer.Count("invocations", res.Invocations)
		}
	}
	return results, nil
}
