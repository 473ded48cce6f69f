package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.txt", []byte("hello\nworld\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if len(f.LineIdx) != 2 {
		t.Errorf("expected 2 newlines in index, got %d", len(f.LineIdx))
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.txt")
	raw := []byte{0xEF, 0xBB, 0xBF, 'a', '\r', '\n', 'b'}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb" {
		t.Errorf("expected normalized content %q, got %q", "a\nb", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestGetByPathLatestWins(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("same.txt", []byte("version 1"), 0)
	id2 := fs.Add("same.txt", []byte("version 2"), 0)
	if id1 == id2 {
		t.Fatal("expected distinct FileIDs")
	}

	f, ok := fs.GetByPath("same.txt")
	if !ok {
		t.Fatal("expected file to exist")
	}
	if f.ID != id2 || string(f.Content) != "version 2" {
		t.Errorf("expected latest version, got id=%d content=%q", f.ID, f.Content)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.txt", []byte("ab\ncd"))

	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v, want 2:1", start)
	}
	if end != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("end = %+v, want 2:3", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.txt", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, c := range cases {
		if got := f.GetLine(c.line); got != c.want {
			t.Errorf("GetLine(%d) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 5, End: 10}
	b := Span{File: 1, Start: 2, End: 7}
	got := a.Cover(b)
	if got.Start != 2 || got.End != 10 {
		t.Errorf("Cover = %+v", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if a.Cover(other) != a {
		t.Error("Cover across files must be a no-op")
	}
}
