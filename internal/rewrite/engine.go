// Package rewrite applies text edits produced by the macro expander to
// source files: in memory first, then atomically on disk.
package rewrite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"strhash/internal/diag"
	"strhash/internal/source"
)

// ErrNoEdits is returned when there is nothing to apply.
var ErrNoEdits = errors.New("no applicable edits found")

// ErrOverlap is returned when two edits touch the same byte range.
var ErrOverlap = errors.New("overlapping edits")

// Options configures how edits are applied.
type Options struct {
	// Check computes results without touching any file on disk.
	Check bool
	// Backup writes a .bak copy next to each rewritten file.
	Backup bool
}

// FileChange summarises the modifications performed on one file.
type FileChange struct {
	Path      string
	EditCount int
	NewBytes  []byte
}

// Result aggregates per-file changes in deterministic path order.
type Result struct {
	Changes []FileChange
}

// Apply groups edits by file, validates them, applies them bottom-up, and
// (unless opts.Check) writes the rewritten files to disk. Virtual files are
// rewritten in memory only.
func Apply(fs *source.FileSet, edits []diag.TextEdit, opts Options) (*Result, error) {
	if fs == nil {
		return nil, fmt.Errorf("rewrite: FileSet is nil")
	}
	if len(edits) == 0 {
		return nil, ErrNoEdits
	}

	byFile := make(map[source.FileID][]diag.TextEdit)
	for _, e := range edits {
		byFile[e.Span.File] = append(byFile[e.Span.File], e)
	}

	ids := make([]source.FileID, 0, len(byFile))
	for id := range byFile {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := &Result{Changes: make([]FileChange, 0, len(ids))}
	for _, id := range ids {
		f := fs.Get(id)
		newBytes, err := applyToContent(f.Content, byFile[id])
		if err != nil {
			return nil, fmt.Errorf("rewrite %s: %w", f.Path, err)
		}
		change := FileChange{Path: f.Path, EditCount: len(byFile[id]), NewBytes: newBytes}

		if !opts.Check && f.Flags&source.FileVirtual == 0 {
			if err := writeFile(f.Path, newBytes, opts.Backup); err != nil {
				return nil, fmt.Errorf("rewrite %s: %w", f.Path, err)
			}
		}
		result.Changes = append(result.Changes, change)
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		return result.Changes[i].Path < result.Changes[j].Path
	})
	return result, nil
}

// applyToContent applies the edits to one file's bytes. Edits must not
// overlap; they are applied back to front so earlier offsets stay valid.
func applyToContent(content []byte, edits []diag.TextEdit) ([]byte, error) {
	sorted := make([]diag.TextEdit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Span.Start < sorted[i-1].Span.End {
			return nil, fmt.Errorf("%w at %s and %s",
				ErrOverlap, sorted[i-1].Span.String(), sorted[i].Span.String())
		}
	}
	last := sorted[len(sorted)-1]
	if int(last.Span.End) > len(content) {
		return nil, fmt.Errorf("edit %s exceeds file size %d", last.Span.String(), len(content))
	}

	out := make([]byte, 0, len(content))
	prev := uint32(0)
	for _, e := range sorted {
		out = append(out, content[prev:e.Span.Start]...)
		out = append(out, e.NewText...)
		prev = e.Span.End
	}
	out = append(out, content[prev:]...)
	return out, nil
}

// writeFile replaces path's content atomically via temp file + rename.
func writeFile(path string, content []byte, backup bool) error {
	if backup {
		orig, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read for backup: %w", err)
		}
		if err := os.WriteFile(path+".bak", orig, 0o644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".strhash-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		// Keep the original permissions; CreateTemp defaults to 0600.
		if err := os.Chmod(tmp.Name(), info.Mode().Perm()); err != nil {
			return err
		}
	}
	return os.Rename(tmp.Name(), path)
}
