// Package strhash provides the runtime half of the strhash toolchain:
// the hash functions whose values the strhash preprocessor bakes into
// source code as integer constants.
//
// The preprocessor (cmd/strhash) replaces invocations such as
//
//	str_hash_fnv1a("window.resize")
//
// with the precomputed constant. Code that later needs to hash incoming
// strings at runtime (string-keyed dispatch, event routing) calls
// FNV1a32 or Default64 from this package and compares against those
// constants. Both functions are pure, deterministic across processes
// and platforms, and defined for every input including the empty string.
package strhash
