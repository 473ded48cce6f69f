package strhash

import (
	"github.com/cespare/xxhash/v2"
)

// Default64 hashes s to a 64-bit value using the default general-purpose
// hasher (xxHash64). Unlike hash/maphash this is not randomly seeded, so
// constants generated at build time stay valid in every later process.
func Default64(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Default64Bytes is Default64 for callers that already hold a byte slice.
func Default64Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
