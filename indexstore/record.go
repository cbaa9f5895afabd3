// Record format and type definitions.
//
// Every line in the log is a JSON object beginning with {"idx":N, where N
// identifies the record type. The fixed prefix lets log replay detect a
// tombstone by its type byte at TypePos without unmarshalling the whole
// line, avoiding a JSON decode for every record it's about to skip.
package indexstore

import (
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Record type markers. These appear as the first value in every JSON
// line ({"idx":N) and are checked at TypePos during replay.
const (
	TypeActive    = 1 // current record, visible to search
	TypeTombstone = 2 // superseded or deleted record, ignored by replay
)

// TypePos is the byte offset of the type digit within an encoded line,
// given the fixed field order of Record ({"idx":N...). Record must keep
// Type as its first field for this to hold.
const TypePos = 7

// RecordType distinguishes the three kinds of indexed item.
type RecordType int

const (
	RecordFile RecordType = iota + 1
	RecordBookmark
	RecordHistory
)

func (t RecordType) String() string {
	switch t {
	case RecordFile:
		return "FILE"
	case RecordBookmark:
		return "BOOKMARK"
	case RecordHistory:
		return "HISTORY"
	default:
		return "UNKNOWN"
	}
}

// MaxPathSize bounds a single path/URL key.
const MaxPathSize = 4096

// MaxRecordSize bounds a single log line, large enough for a 1MB file
// body after zstd compression plus schema overhead.
const MaxRecordSize = 2 * 1024 * 1024

// Record is one line of the durable log. Content is kept only so the
// in-memory postings index can be rebuilt after a restart; it is never
// surfaced to callers.
type Record struct {
	Type        int    `json:"idx"`
	ID          string `json:"_id"`  // hash of Path, computed with Config.HashAlgorithm
	Timestamp   int64  `json:"_ts"`  // unix milliseconds when this line was written
	Path        string `json:"_p"`
	Name        string `json:"_n"`
	Content     string `json:"_c"`   // compressed+encoded, see compress.go
	Extension   string `json:"_ext"`
	Size        int64  `json:"_sz"`
	MTime       int64  `json:"_mt"`
	RecordType  int    `json:"_rt"`
	Source      string `json:"_src"`
	ContentHash string `json:"_ch"` // fingerprint for duplicate suppression beyond mtime
}

func now() int64 {
	return time.Now().UnixMilli()
}

func encode(r *Record) ([]byte, error) {
	return json.Marshal(r)
}

func decode(line []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(line, &r); err != nil {
		return nil, ErrCorruptRecord
	}
	return &r, nil
}

// valid performs a cheap structural sanity check before a full JSON
// decode: every line must be long enough to hold the type prefix and
// must actually start with '{'.
func valid(line []byte) bool {
	return len(line) > TypePos+1 && line[0] == '{'
}

// validateDoc rejects obviously bad input before any write happens.
func validateDoc(path string) error {
	if path == "" {
		return ErrInvalidPath
	}
	if len(path) > MaxPathSize {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\"") {
		return ErrInvalidPath
	}
	return nil
}
