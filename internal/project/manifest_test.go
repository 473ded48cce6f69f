package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"strhash/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[expand]
include = ["src", "gen/api.src"]
extensions = [".src"]
macros = ["str_hash_fnv1a"]
backup = true
`)

	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Package.Name != "demo" {
		t.Errorf("name = %q", m.Package.Name)
	}
	if len(m.Expand.Include) != 2 || m.Expand.Include[0] != "src" {
		t.Errorf("include = %v", m.Expand.Include)
	}
	if !m.Expand.Backup {
		t.Error("backup must be true")
	}
	if m.Dir != dir {
		t.Errorf("dir = %q, want %q", m.Dir, dir)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
flavour = "salted"
`)
	if _, err := project.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadDefaultsInclude(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"
`)
	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Expand.Include) != 1 || m.Expand.Include[0] != "." {
		t.Errorf("include = %v, want [.]", m.Expand.Include)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"up\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := project.Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(found) != root {
		t.Errorf("found %q, want manifest in %q", found, root)
	}
}

func TestFindNotFound(t *testing.T) {
	_, err := project.Find(t.TempDir())
	if !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMacroEnabled(t *testing.T) {
	m := project.Default(".")
	if !m.MacroEnabled("str_hash_default") || !m.MacroEnabled("anything") {
		t.Error("empty filter must admit everything")
	}

	m.Expand.Macros = []string{"str_hash_fnv1a"}
	if !m.MacroEnabled("str_hash_fnv1a") {
		t.Error("listed macro must be enabled")
	}
	if m.MacroEnabled("str_hash_default") {
		t.Error("unlisted macro must be disabled")
	}
}

func TestWantsFile(t *testing.T) {
	m := project.Default(".")
	if !m.WantsFile("any.thing") {
		t.Error("empty filter must admit everything")
	}

	m.Expand.Extensions = []string{".src"}
	if !m.WantsFile("dir/file.src") || m.WantsFile("dir/file.go") {
		t.Error("extension filter wrong")
	}
}
