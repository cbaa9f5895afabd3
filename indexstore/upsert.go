// Document upsert: conceptually "delete any record at path, then add",
// implemented as append-then-blank. A new line is always appended at
// the tail; an older line for the same path, if any, is retyped to
// TypeTombstone in place. This avoids rewriting the file on every
// update while keeping the latest version immediately reachable via the
// in-memory postings index (Get/Upsert never need to scan the log).
package indexstore

import (
	"sync/atomic"

	"github.com/worksentry/worksentry/tokenize"
	"go.uber.org/zap"
)

// UpsertInput carries the scalar fields of Record plus raw (not yet
// tokenized) name and content. Content is never retained verbatim in
// memory past this call; it is tokenized, fingerprinted, and compressed
// for the durable log.
type UpsertInput struct {
	Path       string
	Name       string
	Content    string
	Extension  string
	Size       int64
	MTime      int64
	RecordType RecordType
	Source     string
}

// counters, exported via Stats, support the property that an unchanged
// file produces no write on a repeat pass.
var (
	processedTotal atomic.Int64
	writtenTotal   atomic.Int64
)

// Upsert creates or replaces the record at in.Path. Returns (written
// bool, err error): written is false when the stored mtime is already
// ≥ the source mtime *and* the content fingerprint is unchanged, which
// lets callers distinguish "considered" from "actually written" without
// the store exposing internal state.
func (s *Store) Upsert(in UpsertInput) (bool, error) {
	if err := validateDoc(in.Path); err != nil {
		return false, err
	}

	if err := s.blockWrite(); err != nil {
		return false, err
	}
	defer s.unblockWrite()

	processedTotal.Add(1)

	fingerprint := contentHash([]byte(in.Content))

	if old, ok := s.byPath[in.Path]; ok {
		if old.record.MTime >= in.MTime && old.record.ContentHash == fingerprint {
			return false, nil
		}
	}

	nameTerms := tokenize.Tokenize(in.Name)
	contentTerms := tokenize.Tokenize(in.Content)
	terms := dedupeTerms(nameTerms, contentTerms)

	rec := &Record{
		Type:        TypeActive,
		ID:          hashKey(in.Path, s.config.HashAlgorithm),
		Timestamp:   now(),
		Path:        in.Path,
		Name:        in.Name,
		Content:     compressContent([]byte(in.Content)),
		Extension:   in.Extension,
		Size:        in.Size,
		MTime:       in.MTime,
		RecordType:  int(in.RecordType),
		Source:      in.Source,
		ContentHash: fingerprint,
	}

	offset, err := s.appendRecord(rec)
	if err != nil {
		s.log.Warn("upsert append failed", zap.String("path", in.Path), zap.Error(err))
		return false, err
	}

	if old, ok := s.byPath[in.Path]; ok {
		s.tombstone(old)
	}

	s.byPath[in.Path] = &entry{record: rec, terms: terms, offset: offset}
	s.addPostings(in.Path, terms)

	s.maybeFlush()
	writtenTotal.Add(1)
	return true, nil
}

// tombstone patches an in-memory-superseded line's type byte on disk so
// replay skips it, without moving the tail or touching any other line.
func (s *Store) tombstone(e *entry) {
	s.writer.WriteAt([]byte{'0' + byte(TypeTombstone)}, e.offset+TypePos)
}

func (s *Store) addPostings(path string, terms []string) {
	for _, t := range terms {
		set, ok := s.postings[t]
		if !ok {
			set = make(map[string]struct{})
			s.postings[t] = set
		}
		set[path] = struct{}{}
	}
}

func (s *Store) removePostings(path string, terms []string) {
	for _, t := range terms {
		set, ok := s.postings[t]
		if !ok {
			continue
		}
		delete(set, path)
		if len(set) == 0 {
			delete(s.postings, t)
		}
	}
}

func dedupeTerms(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
