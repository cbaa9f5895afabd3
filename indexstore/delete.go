// Deletion operations: by exact path, by path prefix (root removal),
// and by record_type (browser-source toggles). All three tombstone in
// place rather than rewriting the file; reclaiming the tombstoned space
// is Compact's job (compact.go).
package indexstore

import "strings"

// DeleteByPath removes the record at path, if any. Safe to call for an
// absent path.
func (s *Store) DeleteByPath(path string) error {
	if err := s.blockWrite(); err != nil {
		return err
	}
	defer s.unblockWrite()

	e, ok := s.byPath[path]
	if !ok {
		return nil
	}
	s.tombstone(e)
	s.removePostings(path, e.terms)
	delete(s.byPath, path)
	return nil
}

// DeleteByPathPrefix removes every record whose path starts with root
// followed by the platform separator, or equals root exactly. Used for
// root removal.
func (s *Store) DeleteByPathPrefix(root string, sep byte) (int, error) {
	if err := s.blockWrite(); err != nil {
		return 0, err
	}
	defer s.unblockWrite()

	var toDelete []string
	for p := range s.byPath {
		if p == root || strings.HasPrefix(p, root+string(sep)) {
			toDelete = append(toDelete, p)
		}
	}

	for _, p := range toDelete {
		e := s.byPath[p]
		s.tombstone(e)
		s.removePostings(p, e.terms)
		delete(s.byPath, p)
	}
	return len(toDelete), nil
}

// DeleteByRecordType removes every record of the given type. Used when
// a browser source toggle is switched off.
func (s *Store) DeleteByRecordType(rt RecordType) (int, error) {
	return s.deleteWhere(func(e *entry) bool {
		return RecordType(e.record.RecordType) == rt
	})
}

// DeleteBySourceAndType removes every record of the given type from the
// given source. A browser extraction pass calls this immediately before
// re-inserting its fresh set, within the same upsert sequence, so a
// crash mid-extraction never leaves stale and fresh records mixed.
func (s *Store) DeleteBySourceAndType(source string, rt RecordType) (int, error) {
	return s.deleteWhere(func(e *entry) bool {
		return e.record.Source == source && RecordType(e.record.RecordType) == rt
	})
}

func (s *Store) deleteWhere(match func(*entry) bool) (int, error) {
	if err := s.blockWrite(); err != nil {
		return 0, err
	}
	defer s.unblockWrite()

	var toDelete []string
	for p, e := range s.byPath {
		if match(e) {
			toDelete = append(toDelete, p)
		}
	}

	for _, p := range toDelete {
		e := s.byPath[p]
		s.tombstone(e)
		s.removePostings(p, e.terms)
		delete(s.byPath, p)
	}
	return len(toDelete), nil
}
