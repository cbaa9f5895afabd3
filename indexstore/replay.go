// Log replay: rebuilds the in-memory postings index from the durable
// log on Open. This is the store's crash-recovery path: the log has no
// sorted sections that a crash could leave inconsistent, so recovery is
// always a single linear pass and is always correct, regardless of how
// the process was last terminated.
package indexstore

import (
	"bufio"
	"io"

	"github.com/worksentry/worksentry/tokenize"
	"go.uber.org/zap"
)

func (s *Store) replay() error {
	if _, err := s.reader.Seek(HeaderSize, io.SeekStart); err != nil {
		return err
	}
	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 64*1024), MaxRecordSize)

	offset := int64(HeaderSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		lineLen := int64(len(line))

		if !valid(line) {
			offset += lineLen + 1
			continue
		}

		// Cheap type check before a full JSON decode: a tombstoned
		// line is never going to survive into the postings index, so
		// there is no reason to unmarshal it.
		if line[TypePos] != '0'+byte(TypeActive) {
			offset += lineLen + 1
			continue
		}

		rec, err := decode(line)
		if err != nil {
			s.log.Debug("skipping corrupt log line during replay")
			offset += lineLen + 1
			continue
		}

		content, err := decompressContent(rec.Content)
		if err != nil {
			s.log.Debug("skipping record with corrupt content blob", zap.String("path", rec.Path))
			offset += lineLen + 1
			continue
		}

		terms := dedupeTerms(tokenize.Tokenize(rec.Name), tokenize.Tokenize(string(content)))
		s.byPath[rec.Path] = &entry{record: rec, terms: terms, offset: offset}
		s.addPostings(rec.Path, terms)

		offset += lineLen + 1
	}

	return scanner.Err()
}
