package expand

import (
	"strconv"

	"strhash"
)

// Macro binds an invocation identifier to the function producing the
// replacement literal text for the dequoted, unescaped string content.
type Macro struct {
	Name string
	Hash func(content string) string
}

// Registry resolves macro names during expansion.
type Registry struct {
	byName map[string]Macro
}

func NewRegistry(macros ...Macro) *Registry {
	r := &Registry{byName: make(map[string]Macro, len(macros))}
	for _, m := range macros {
		r.byName[m.Name] = m
	}
	return r
}

// Lookup returns the macro registered under name.
func (r *Registry) Lookup(name string) (Macro, bool) {
	m, ok := r.byName[name]
	return m, ok
}

// Len returns the number of registered macros.
func (r *Registry) Len() int {
	return len(r.byName)
}

// DefaultMacros returns the two built-in hash macros. The emitted literal
// is unsuffixed decimal, valid syntax in any host language worth naming.
func DefaultMacros() []Macro {
	return []Macro{
		{
			Name: "str_hash_default",
			Hash: func(content string) string {
				return strconv.FormatUint(strhash.Default64(content), 10)
			},
		},
		{
			Name: "str_hash_fnv1a",
			Hash: func(content string) string {
				return strconv.FormatUint(uint64(strhash.FNV1a32(content)), 10)
			},
		},
	}
}
