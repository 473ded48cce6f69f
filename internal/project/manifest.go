// Package project locates and decodes the strhash.toml manifest that
// scopes a preprocessor run.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file looked up when walking parent directories.
const ManifestName = "strhash.toml"

// ErrNotFound is returned when no manifest exists up to the volume root.
var ErrNotFound = errors.New("no strhash.toml found")

// Manifest is the decoded strhash.toml.
type Manifest struct {
	Package PackageConfig `toml:"package"`
	Expand  ExpandConfig  `toml:"expand"`

	// Dir is the directory the manifest was loaded from; not part of the
	// TOML payload.
	Dir string `toml:"-"`
}

// PackageConfig identifies the project.
type PackageConfig struct {
	Name string `toml:"name"`
}

// ExpandConfig scopes what the preprocessor touches and how.
type ExpandConfig struct {
	// Include lists files or directories, relative to the manifest.
	Include []string `toml:"include"`
	// Extensions filters directory walks, e.g. [".src", ".sg"].
	Extensions []string `toml:"extensions"`
	// Macros enables a subset of the built-in macros; empty means all.
	Macros []string `toml:"macros"`
	// Backup writes .bak files next to every rewritten file.
	Backup bool `toml:"backup"`
}

// Default returns the manifest used when no strhash.toml exists: current
// directory, any extension, all macros.
func Default(dir string) *Manifest {
	return &Manifest{
		Package: PackageConfig{Name: filepath.Base(dir)},
		Expand:  ExpandConfig{Include: []string{"."}},
		Dir:     dir,
	}
}

// Load decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode %s: unknown key %q", path, undecoded[0].String())
	}
	m.Dir = filepath.Dir(path)
	if len(m.Expand.Include) == 0 {
		m.Expand.Include = []string{"."}
	}
	return &m, nil
}

// Find walks from dir toward the root looking for strhash.toml.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(abs, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotFound
		}
		abs = parent
	}
}

// MacroEnabled reports whether name is admitted by the Macros filter.
func (m *Manifest) MacroEnabled(name string) bool {
	if len(m.Expand.Macros) == 0 {
		return true
	}
	for _, allowed := range m.Expand.Macros {
		if allowed == name {
			return true
		}
	}
	return false
}

// WantsFile reports whether path passes the Extensions filter.
func (m *Manifest) WantsFile(path string) bool {
	if len(m.Expand.Extensions) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, want := range m.Expand.Extensions {
		if want == ext {
			return true
		}
	}
	return false
}
