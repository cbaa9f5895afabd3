// Write operations for appending log lines.
//
// Every appended line flows through raw/appendRecord, which sets the
// dirty flag on the first append (cleared only on a clean Close) so a
// crash leaves a durable signal that replay must double-check the tail.
// Tombstoning an existing line (upsert.go) does not go through raw.
package indexstore

import (
	"fmt"

	"github.com/worksentry/worksentry/errs"
)

// raw writes raw bytes to the end of the file. Sets the dirty flag on
// first write. I/O failures (disk full, device gone) are wrapped in
// errs.ErrIndexTransient so the caller's batch can be dropped without
// the store itself going down.
func (s *Store) raw(line []byte) (int64, error) {
	if s.header.Error == 0 {
		s.header.Error = 1
		dirty(s.writer, true)
	}

	offset := s.tail
	data := append(line, '\n')
	if _, err := s.writer.WriteAt(data, offset); err != nil {
		return 0, fmt.Errorf("%w: write at offset %d: %v", errs.ErrIndexTransient, offset, err)
	}
	s.tail += int64(len(data))
	s.pendingBytes += len(data)

	if s.config.SyncWrites {
		if err := s.writer.Sync(); err != nil {
			return offset, fmt.Errorf("%w: sync: %v", errs.ErrIndexTransient, err)
		}
	}
	return offset, nil
}

// appendRecord marshals and appends one record line.
func (s *Store) appendRecord(r *Record) (int64, error) {
	data, err := encode(r)
	if err != nil {
		return 0, fmt.Errorf("%w: encode record: %v", errs.ErrIndexTransient, err)
	}
	return s.raw(data)
}

// maybeFlush forces an fsync once the pending-batch byte estimate
// exceeds the configured writer buffer budget (50MB default),
// independent of any caller-requested commit.
func (s *Store) maybeFlush() {
	if s.pendingBytes >= s.config.WriterBufCap {
		s.writer.Sync()
		s.pendingBytes = 0
	}
}

// Commit marks a clean checkpoint: clears the dirty flag if no writes
// are pending would be premature mid-batch, so Commit simply fsyncs and
// resets the pending-byte counter. Callers that perform several
// Upsert/Delete calls as one logical batch (bulk indexing) call Commit
// once at the end of the pass rather than after every individual write.
func (s *Store) Commit() error {
	if err := s.blockWrite(); err != nil {
		return err
	}
	defer s.unblockWrite()

	if err := s.writer.Sync(); err != nil {
		return fmt.Errorf("%w: commit sync: %v", errs.ErrIndexTransient, err)
	}
	s.pendingBytes = 0
	return nil
}
