// Package errs holds the sentinel error taxonomy: a flat set of
// package-level errors, checked with errors.Is and wrapped at call sites
// with fmt.Errorf("%w: ..."). A flat var block is enough here since each
// kind maps to one clear recovery policy; a richer error-code type would
// just add indirection for five cases.
package errs

import "errors"

var (
	// ErrConfig marks a malformed or missing configuration file.
	// Recovered by writing a default document.
	ErrConfig = errors.New("config: malformed or missing configuration")

	// ErrIndexUnavailable marks the index directory being locked,
	// corrupt, or unwritable. Surfaced on startup; fatal for the
	// session.
	ErrIndexUnavailable = errors.New("index: unavailable")

	// ErrIndexTransient marks a single upsert/commit failure (disk
	// full, transient I/O). Logged; the offending batch is dropped;
	// the writer continues.
	ErrIndexTransient = errors.New("index: transient write failure")

	// ErrSourceRead marks a file or browser artifact that could not be
	// read (permission denied, locked, decode failure). Logged at
	// debug; that item is skipped; never fails an entire bulk pass.
	ErrSourceRead = errors.New("source: read failed")

	// ErrQueryInvalid marks a query that could not be parsed (e.g. a
	// malformed filter). Returned as an empty result with a warning;
	// never crashes the caller.
	ErrQueryInvalid = errors.New("query: invalid")
)
