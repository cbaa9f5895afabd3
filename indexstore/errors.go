// Package indexstore provides the durable inverted index: an
// append-only JSONL log for crash-safe persistence, with an in-memory
// posting index rebuilt from the log on Open and updated in place under
// one read-write lock. A query and a write therefore never run at the
// same time: a query waits for an in-progress write, and a write waits
// for in-progress queries.
package indexstore

import "errors"

// Sentinel errors returned by store operations.
var (
	// ErrNotFound is returned when a path has no current record.
	ErrNotFound = errors.New("record not found")

	// ErrPathTooLong is returned when a path exceeds MaxPathSize bytes.
	ErrPathTooLong = errors.New("path exceeds maximum size")

	// ErrInvalidPath is returned when a path contains prohibited characters.
	ErrInvalidPath = errors.New("path contains invalid characters")

	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("index store is closed")

	// ErrCorruptHeader is returned when the log header cannot be parsed.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrCorruptRecord is returned when a log line cannot be parsed.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrDecompress is returned when a stored content blob cannot be
	// decompressed during log replay.
	ErrDecompress = errors.New("decompress failed")

	// ErrLocked wraps a failure of the OS lock call on the index log
	// file during Open. The lock call waits while another holder has the
	// lock, so contention makes Open block; it does not return ErrLocked.
	ErrLocked = errors.New("index directory is locked by another process")
)
