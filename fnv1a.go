package strhash

// FNV-1a constants for the 32-bit variant.
const (
	fnv1aSeed32  uint32 = 0x811C9DC5
	fnv1aPrime32 uint32 = 0x01000193
)

// FNV1a32 hashes s to a 32-bit value using the FNV-1a algorithm.
// Returns the seed (0x811C9DC5) for the empty string.
func FNV1a32(s string) uint32 {
	hash := fnv1aSeed32
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= fnv1aPrime32
	}
	return hash
}

// FNV1a32Bytes is FNV1a32 for callers that already hold a byte slice.
func FNV1a32Bytes(b []byte) uint32 {
	hash := fnv1aSeed32
	for _, c := range b {
		hash ^= uint32(c)
		hash *= fnv1aPrime32
	}
	return hash
}
