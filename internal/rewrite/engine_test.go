package rewrite_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"strhash/internal/diag"
	"strhash/internal/rewrite"
	"strhash/internal/source"
)

func edit(file source.FileID, start, end uint32, text string) diag.TextEdit {
	return diag.TextEdit{
		Span:    source.Span{File: file, Start: start, End: end},
		NewText: text,
	}
}

func TestApplyVirtual(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.src", []byte("x := CALL; y := CALL;"))

	res, err := rewrite.Apply(fs, []diag.TextEdit{
		edit(id, 5, 9, "111"),
		edit(id, 16, 20, "222"),
	}, rewrite.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Changes) != 1 || res.Changes[0].EditCount != 2 {
		t.Fatalf("changes: %+v", res.Changes)
	}
	if got := string(res.Changes[0].NewBytes); got != "x := 111; y := 222;" {
		t.Fatalf("rewritten = %q", got)
	}
}

func TestApplyOrderIndependent(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.src", []byte("abcdef"))

	// Edits supplied back to front must still apply correctly.
	res, err := rewrite.Apply(fs, []diag.TextEdit{
		edit(id, 4, 6, "Z"),
		edit(id, 0, 2, "Y"),
	}, rewrite.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.Changes[0].NewBytes); got != "YcdZ" {
		t.Fatalf("rewritten = %q", got)
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.src", []byte("abcdef"))

	_, err := rewrite.Apply(fs, []diag.TextEdit{
		edit(id, 0, 4, "X"),
		edit(id, 2, 6, "Y"),
	}, rewrite.Options{})
	if !errors.Is(err, rewrite.ErrOverlap) {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestApplyRejectsOutOfBounds(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("v.src", []byte("ab"))

	_, err := rewrite.Apply(fs, []diag.TextEdit{edit(id, 0, 10, "X")}, rewrite.Options{})
	if err == nil {
		t.Fatal("expected bounds error")
	}
}

func TestApplyNoEdits(t *testing.T) {
	fs := source.NewFileSet()
	_, err := rewrite.Apply(fs, nil, rewrite.Options{})
	if !errors.Is(err, rewrite.ErrNoEdits) {
		t.Fatalf("err = %v, want ErrNoEdits", err)
	}
}

func TestApplyWritesToDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "real.src")
	if err := os.WriteFile(path, []byte("before CALL after"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	_, err = rewrite.Apply(fs, []diag.TextEdit{edit(id, 7, 11, "42")}, rewrite.Options{Backup: true})
	if err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "before 42 after" {
		t.Fatalf("on disk: %q", got)
	}

	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(bak) != "before CALL after" {
		t.Fatalf("backup content: %q", bak)
	}
}

func TestApplyCheckModeLeavesDiskAlone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "real.src")
	if err := os.WriteFile(path, []byte("keep CALL intact"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	res, err := rewrite.Apply(fs, []diag.TextEdit{edit(id, 5, 9, "42")}, rewrite.Options{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Changes[0].NewBytes) != "keep 42 intact" {
		t.Fatalf("in-memory result: %q", res.Changes[0].NewBytes)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "keep CALL intact" {
		t.Fatalf("check mode must not write, got %q", got)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatal("check mode must not create backups")
	}
}
