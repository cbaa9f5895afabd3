// Read-side query primitives used by the query package. Every method
// here acquires blockRead, so a query never blocks behind a writer
// longer than the time it takes to finish one append plus one
// posting-map update.
package indexstore

// Lookup returns the set of paths whose name or content postings
// contain term. The returned slice is a fresh copy, safe for the caller
// to sort or filter without racing a concurrent writer.
func (s *Store) Lookup(term string) ([]string, error) {
	if err := s.blockRead(); err != nil {
		return nil, err
	}
	defer s.unblockRead()

	set, ok := s.postings[term]
	if !ok {
		return nil, nil
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	return out, nil
}

// LookupPrefix returns the union of paths for every term starting with
// prefix. The vocabulary is scanned linearly; at the few-hundred-
// thousand-document scale this store targets, the vocabulary itself
// stays small enough that this is not the dominant query cost, so no
// sorted term index is maintained.
func (s *Store) LookupPrefix(prefix string) ([]string, error) {
	if err := s.blockRead(); err != nil {
		return nil, err
	}
	defer s.unblockRead()

	seen := make(map[string]struct{})
	for term, set := range s.postings {
		if len(term) < len(prefix) || term[:len(prefix)] != prefix {
			continue
		}
		for p := range set {
			seen[p] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	return out, nil
}

// Terms returns every term currently in the vocabulary. Used by fuzzy
// matching (query package) to compute edit distance against candidates
// rather than against the entire term space.
func (s *Store) Terms() ([]string, error) {
	if err := s.blockRead(); err != nil {
		return nil, err
	}
	defer s.unblockRead()

	out := make([]string, 0, len(s.postings))
	for t := range s.postings {
		out = append(out, t)
	}
	return out, nil
}

// Get returns the stored scalar fields for path (not its content, which
// is never retrievable per I5).
func (s *Store) Get(path string) (*Record, error) {
	if err := s.blockRead(); err != nil {
		return nil, err
	}
	defer s.unblockRead()

	e, ok := s.byPath[path]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e.record
	cp.Content = "" // defense in depth: never let a caller see the blob
	return &cp, nil
}

// Exists reports whether path currently has an active record.
func (s *Store) Exists(path string) (bool, error) {
	if err := s.blockRead(); err != nil {
		return false, err
	}
	defer s.unblockRead()

	_, ok := s.byPath[path]
	return ok, nil
}

// AllPaths returns every currently indexed path. Used by the query
// planner when a query carries only filters and no free text (e.g. a
// bare ".pdf" shorthand), where there is no term to look up postings by.
func (s *Store) AllPaths() ([]string, error) {
	if err := s.blockRead(); err != nil {
		return nil, err
	}
	defer s.unblockRead()

	out := make([]string, 0, len(s.byPath))
	for p := range s.byPath {
		out = append(out, p)
	}
	return out, nil
}

// PathsWithPrefix returns every currently indexed path starting with
// root followed by the platform separator, or equal to root. Used by
// the indexer's orphan sweep to find records that were not re-visited
// during a bulk pass.
func (s *Store) PathsWithPrefix(root string, sep byte) ([]string, error) {
	if err := s.blockRead(); err != nil {
		return nil, err
	}
	defer s.unblockRead()

	var out []string
	prefix := root + string(sep)
	for p := range s.byPath {
		if p == root || len(p) > len(prefix) && p[:len(prefix)] == prefix {
			out = append(out, p)
		}
	}
	return out, nil
}
