// Hash algorithm implementations for record identifiers and content
// fingerprints.
//
// Every record's _id is a 16 hex character hash of its path, computed
// with the configured algorithm. ContentHash (always Blake2b, see
// contentHash) fingerprints file content for change detection beyond
// the mtime check alone: mtime only catches mtime changes, while a
// content hash catches content changes under an unchanged mtime. A
// bumped mtime always causes a rewrite, even when the hash is unchanged.
package indexstore

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants.
const (
	AlgXXHash3 = 1 // default, fastest
	AlgFNV1a   = 2 // no external dependencies
	AlgBlake2b = 3 // best distribution
)

// hashKey generates a 16 hex character ID from a string using the
// specified algorithm.
func hashKey(s string, alg int) string {
	switch alg {
	case AlgXXHash3:
		h := xxh3.HashString(s)
		return fmt.Sprintf("%016x", h)
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write([]byte(s))
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write([]byte(s))
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}

// contentHash fingerprints file content for duplicate suppression. It
// always uses Blake2b at full 256-bit width regardless of Config's path
// hash algorithm — a path ID is only a short identifier, but a
// content fingerprint must be collision-resistant enough that two
// different files are never mistaken for identical content.
func contentHash(data []byte) string {
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("%x", sum)
}

// ContentHash exposes the same fingerprint computation used internally by
// Upsert, for callers (the indexer's cross-path duplicate-content bloom
// filter) that want to recognise identical content under a different path
// without reaching into the store.
func ContentHash(data []byte) string {
	return contentHash(data)
}
