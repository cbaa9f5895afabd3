// Core store type and lifecycle operations.
//
// Store is the durable inverted index: one append-only log file on disk,
// guarded by an OS-level flock so at most one process ever holds the
// writer, and an in-memory posting index rebuilt from the log on Open.
// Readers take the RWMutex's read side: the lock's release point is the
// commit's publish point, so a search that acquires the lock after a
// commit is guaranteed to observe it. Writers take the write side for
// the duration of a log append plus its posting-index update, so a
// commit is never partially visible.
package indexstore

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// State constants for concurrency control: a four-state gate
// (all/read-only/none/closed). Open leaves a store in StateAll and Close
// moves it to StateClosed; no operation in this package sets StateRead
// or StateNone (Compact takes the same write lock as any other write).
const (
	StateAll    = 0 // readers and writer allowed
	StateRead   = 1 // only readers allowed
	StateNone   = 2 // nothing allowed
	StateClosed = 3 // store closed
)

// Config holds store configuration options.
type Config struct {
	HashAlgorithm int  // 1=xxHash3, 2=FNV1a, 3=Blake2b (see hash.go)
	SyncWrites    bool // call fsync after every append
	WriterBufCap  int  // bounded in-memory pending-batch budget, bytes (default 50MB)
}

// entry is the in-memory, queryable state for one current path.
type entry struct {
	record *Record // schema fields, Content kept compressed (never decompressed for callers)
	terms  []string
	offset int64 // log offset of this entry's line, used to tombstone it on the next write
}

// Store is the durable inverted index.
type Store struct {
	log    *zap.Logger
	dir    string
	name   string
	reader *os.File
	writer *os.File
	lock   *fileLock
	header *Header
	config Config
	tail   int64
	state  atomic.Int32
	cond   *sync.Cond
	mu     sync.RWMutex

	byPath  map[string]*entry            // path -> current entry
	postings map[string]map[string]struct{} // term -> set of paths

	pendingBytes int // bytes appended since the last explicit flush point
}

// Open opens or creates the index directory's log file and takes the OS
// flock in lock.go on it, so a second Open of the same directory, from
// this process or another, waits until the first Store is closed.
func Open(dir, name string, config Config, log *zap.Logger) (*Store, error) {
	if config.HashAlgorithm == 0 {
		config.HashAlgorithm = AlgXXHash3
	}
	if config.WriterBufCap == 0 {
		config.WriterBufCap = 50 * 1024 * 1024
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("indexstore: mkdir: %w", err)
	}

	path := dir + string(os.PathSeparator) + name
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("indexstore: create: %w", err)
		}
		hdr := Header{Version: 1, Timestamp: now(), Algorithm: config.HashAlgorithm}
		buf, _ := hdr.encode()
		f.Write(buf)
		f.Sync()
		f.Close()
	}

	reader, err := os.OpenFile(path, os.O_RDONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("indexstore: open reader: %w", err)
	}

	writer, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		reader.Close()
		return nil, fmt.Errorf("indexstore: open writer: %w", err)
	}

	flock := &fileLock{f: writer}
	if err := flock.Lock(LockExclusive); err != nil {
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("%w: %v", ErrLocked, err)
	}

	info, _ := writer.Stat()
	hdr, err := readHeader(reader)
	if err != nil {
		flock.Unlock()
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("indexstore: %w", err)
	}

	s := &Store{
		log:      log.Named("indexstore"),
		dir:      dir,
		name:     name,
		reader:   reader,
		writer:   writer,
		lock:     flock,
		header:   hdr,
		config:   config,
		tail:     info.Size(),
		cond:     sync.NewCond(&sync.Mutex{}),
		byPath:   make(map[string]*entry),
		postings: make(map[string]map[string]struct{}),
	}

	wasDirty := hdr.Error == 1
	if err := s.replay(); err != nil {
		flock.Unlock()
		reader.Close()
		writer.Close()
		return nil, fmt.Errorf("indexstore: replay: %w", err)
	}
	if wasDirty {
		log.Warn("index log was not closed cleanly; replay completed", zap.String("path", path))
	}

	return s, nil
}

// Close flushes crash-recovery state and releases the writer lock.
func (s *Store) Close() error {
	s.cond.L.Lock()
	s.state.Store(StateClosed)
	s.cond.Broadcast()
	s.cond.L.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.header.Error == 1 {
		s.header.Error = 0
		dirty(s.writer, false)
		s.writer.Sync()
	}

	s.lock.Unlock()

	var errs []error
	if err := s.reader.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.writer.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// blockWrite acquires exclusive access for a log append plus posting
// update: check closed, then gate on state via the condvar (any state
// other than StateAll makes it wait), then take the in-process write
// lock.
func (s *Store) blockWrite() error {
	if s.state.Load() == StateClosed {
		return ErrClosed
	}

	s.cond.L.Lock()
	for s.state.Load() != StateAll {
		if s.state.Load() == StateClosed {
			s.cond.L.Unlock()
			return ErrClosed
		}
		s.cond.Wait()
	}
	s.mu.Lock()
	s.cond.L.Unlock()
	return nil
}

func (s *Store) unblockWrite() {
	s.mu.Unlock()
}

// blockRead acquires shared access for a query. Blocked only while the
// state is StateNone; allowed to proceed during StateRead.
func (s *Store) blockRead() error {
	if s.state.Load() == StateClosed {
		return ErrClosed
	}

	s.cond.L.Lock()
	for s.state.Load() == StateNone {
		if s.state.Load() == StateClosed {
			s.cond.L.Unlock()
			return ErrClosed
		}
		s.cond.Wait()
	}
	s.mu.RLock()
	s.cond.L.Unlock()
	return nil
}

func (s *Store) unblockRead() {
	s.mu.RUnlock()
}
