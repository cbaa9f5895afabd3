// Compact reclaims space occupied by tombstoned lines by rewriting the
// log with only the currently active records, then atomically replacing
// the old file. A temp file is built up in full before anything is
// swapped in, so a crash mid-compaction leaves the original log
// untouched.
package indexstore

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Compact rewrites the log, dropping tombstones. It takes the same
// exclusive access a write does: no reader observes a half-rewritten
// log, and no writer appends to a file mid-rename.
func (s *Store) Compact() error {
	if err := s.blockWrite(); err != nil {
		return err
	}
	defer s.unblockWrite()

	tmpPath := s.dir + string(os.PathSeparator) + s.name + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("indexstore: compact: %w", err)
	}
	defer os.Remove(tmpPath)

	hdrBuf, err := s.header.encode()
	if err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(hdrBuf); err != nil {
		tmp.Close()
		return err
	}

	tail := int64(HeaderSize)
	newOffsets := make(map[string]int64, len(s.byPath))
	for path, e := range s.byPath {
		data, err := encode(e.record)
		if err != nil {
			continue
		}
		line := append(data, '\n')
		if _, err := tmp.Write(line); err != nil {
			tmp.Close()
			return err
		}
		newOffsets[path] = tail
		tail += int64(len(line))
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	tmp.Close()

	finalPath := s.dir + string(os.PathSeparator) + s.name
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("indexstore: compact: rename: %w", err)
	}

	newReader, err := os.OpenFile(finalPath, os.O_RDONLY, 0o644)
	if err != nil {
		return err
	}
	newWriter, err := os.OpenFile(finalPath, os.O_RDWR, 0o644)
	if err != nil {
		newReader.Close()
		return err
	}

	s.reader.Close()
	s.writer.Close()
	s.reader = newReader
	s.writer = newWriter
	s.lock.setFile(newWriter)
	s.tail = tail
	for path, off := range newOffsets {
		if e, ok := s.byPath[path]; ok {
			e.offset = off
		}
	}

	s.log.Info("compact finished", zap.Int("records", len(s.byPath)), zap.Int64("size", tail))
	return nil
}
